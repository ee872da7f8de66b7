package roster

import (
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

// Scenario A: a minimal weekly shift, one day, same-day start/end.
func TestShiftsForWeek_MinimalWeeklyShift(t *testing.T) {
	week := Week{Block: 0, Index: 0, Start: mustDate(t, "2024-01-01")} // Monday
	role := Role{
		ID:   "D",
		Name: "Daytime",
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Monday}, StartTime: TimeOfDay{9, 0}, EndTime: TimeOfDay{17, 0}, SpanDays: 1},
		},
	}

	got := ShiftsForWeek(week, role)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if !got[0].Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got[0].Start, want)
	}
	wantEnd := time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
	if !got[0].End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", got[0].End, wantEnd)
	}
}

// Scenario B: an overnight shift (end_time <= start_time) rolls onto the
// next calendar day.
func TestShiftsForWeek_Overnight(t *testing.T) {
	week := Week{Block: 0, Index: 0, Start: mustDate(t, "2024-01-01")}
	role := Role{
		ID:   "NP",
		Name: "Night Primary",
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Tuesday}, StartTime: TimeOfDay{20, 0}, EndTime: TimeOfDay{8, 0}, SpanDays: 1},
		},
	}

	got := ShiftsForWeek(week, role)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	wantStart := time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", got[0].Start, wantStart)
	}
	if !got[0].End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", got[0].End, wantEnd)
	}
}

// Scenario C: a multi-day weekend span (SpanDays: 3) starting Friday.
func TestShiftsForWeek_WeekendSpan(t *testing.T) {
	week := Week{Block: 0, Index: 0, Start: mustDate(t, "2024-01-01")}
	role := Role{
		ID:   "WE",
		Name: "Weekend",
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Friday}, StartTime: TimeOfDay{18, 0}, EndTime: TimeOfDay{9, 0}, SpanDays: 3},
		},
	}

	got := ShiftsForWeek(week, role)
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	wantStart := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", got[0].Start, wantStart)
	}
	if !got[0].End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", got[0].End, wantEnd)
	}
}

func TestShiftsForWeek_OrderingIsEntryThenWeekday(t *testing.T) {
	week := Week{Block: 0, Index: 0, Start: mustDate(t, "2024-01-01")}
	role := Role{
		ID:   "D",
		Name: "Daytime",
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Friday, time.Monday, time.Wednesday}, StartTime: TimeOfDay{9, 0}, EndTime: TimeOfDay{17, 0}, SpanDays: 1},
		},
	}

	got := ShiftsForWeek(week, role)
	wantDays := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got) != len(wantDays) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(wantDays))
	}
	for i, d := range wantDays {
		if got[i].Weekday != d {
			t.Errorf("got[%d].Weekday = %v, want %v", i, got[i].Weekday, d)
		}
	}
}

func TestShiftsForWeek_MultipleEntriesPreserveConfigOrder(t *testing.T) {
	week := Week{Block: 0, Index: 0, Start: mustDate(t, "2024-01-01")}
	role := Role{
		ID:   "D",
		Name: "Daytime",
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Thursday}, StartTime: TimeOfDay{9, 0}, EndTime: TimeOfDay{17, 0}, SpanDays: 1},
			{Days: []time.Weekday{time.Monday}, StartTime: TimeOfDay{9, 0}, EndTime: TimeOfDay{17, 0}, SpanDays: 1},
		},
	}

	got := ShiftsForWeek(week, role)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].EntryIndex != 0 || got[0].Weekday != time.Thursday {
		t.Errorf("got[0] = entry %d weekday %v, want entry 0 Thursday", got[0].EntryIndex, got[0].Weekday)
	}
	if got[1].EntryIndex != 1 || got[1].Weekday != time.Monday {
		t.Errorf("got[1] = entry %d weekday %v, want entry 1 Monday", got[1].EntryIndex, got[1].Weekday)
	}
}
