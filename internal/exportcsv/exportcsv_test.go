package exportcsv

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/reinka/oncall-scheduler/internal/icalexport"
	"github.com/reinka/oncall-scheduler/pkg/roster"
)

func sampleShifts() []roster.Shift {
	loc := time.UTC
	return []roster.Shift{
		{
			Block: 0, Week: 0, Role: "D", RoleName: "Daytime",
			EntryIndex: 0, Weekday: time.Monday, Engineer: "alice",
			Start: time.Date(2025, 11, 3, 9, 0, 0, 0, loc),
			End:   time.Date(2025, 11, 3, 17, 0, 0, 0, loc),
		},
		{
			Block: 0, Week: 1, Role: "D", RoleName: "Daytime",
			EntryIndex: 0, Weekday: time.Monday, Engineer: "bob",
			Start: time.Date(2025, 11, 10, 9, 0, 0, 0, loc),
			End:   time.Date(2025, 11, 10, 17, 0, 0, 0, loc),
		},
	}
}

func TestWrite_ProducesOneRowPerShift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	shifts := sampleShifts()
	if err := Write(path, shifts); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rows, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != len(shifts) {
		t.Fatalf("len(rows) = %d, want %d", len(rows), len(shifts))
	}
	if rows[0].Start != "2025-11-03 09:00" || rows[0].End != "2025-11-03 17:00" {
		t.Errorf("rows[0] = %+v, want 2025-11-03 09:00 -> 17:00", rows[0])
	}
}

// TestRoundTrip_CSVAndICalAgree checks that parsing the CSV yields the same
// shift set as parsing the iCal, compared on the fields that survive both
// encodings (role, engineer, start, end).
func TestRoundTrip_CSVAndICalAgree(t *testing.T) {
	dir := t.TempDir()
	shifts := sampleShifts()

	csvPath := filepath.Join(dir, "schedule.csv")
	icsPath := filepath.Join(dir, "schedule.ics")
	if err := Write(csvPath, shifts); err != nil {
		t.Fatalf("exportcsv.Write: %v", err)
	}
	if err := icalexport.Write(icsPath, shifts); err != nil {
		t.Fatalf("icalexport.Write: %v", err)
	}

	rows, err := Read(csvPath)
	if err != nil {
		t.Fatalf("exportcsv.Read: %v", err)
	}
	events, err := icalexport.Read(icsPath)
	if err != nil {
		t.Fatalf("icalexport.Read: %v", err)
	}
	if len(rows) != len(events) {
		t.Fatalf("len(rows) = %d, len(events) = %d, want equal", len(rows), len(events))
	}

	type key struct{ role, engineer, start, end string }
	fromRows := make(map[key]bool, len(rows))
	for _, r := range rows {
		fromRows[key{r.RoleName, r.Engineer, r.Start, r.End}] = true
	}
	for _, e := range events {
		k := key{e.RoleName, e.Engineer, e.Start, e.End}
		if !fromRows[k] {
			t.Errorf("event %+v has no matching CSV row", e)
		}
	}
}
