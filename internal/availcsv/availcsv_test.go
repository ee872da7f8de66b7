package availcsv

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ParsesRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "availability.csv")
	contents := "engineer,start_date,end_date\nalice,2025-11-05,2025-11-05\nbob,2025-11-10,2025-11-12\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}

	records, err := Load(path, time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Engineer != "alice" {
		t.Errorf("records[0].Engineer = %q, want alice", records[0].Engineer)
	}
	if !records[1].End.Equal(time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("records[1].End = %v, want 2025-11-12", records[1].End)
	}
}

func TestLoad_EmptyPathReturnsNil(t *testing.T) {
	records, err := Load("", time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestLoad_EndBeforeStartIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "availability.csv")
	contents := "engineer,start_date,end_date\nalice,2025-11-10,2025-11-05\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}

	if _, err := Load(path, time.UTC); err == nil {
		t.Fatal("expected error for end_date before start_date")
	}
}
