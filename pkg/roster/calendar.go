package roster

import "time"

// ShiftInterval is one concrete date/time interval produced by expanding a
// Role's ScheduleEntry against a specific Week. It carries no engineer yet —
// that comes from the Assignment once the Constraint Model Builder and
// Block Solver have run.
type ShiftInterval struct {
	Role       RoleId
	RoleName   string
	EntryIndex int
	Weekday    time.Weekday
	Start      time.Time
	End        time.Time
}

// ShiftsForWeek expands every ScheduleEntry of role against week's 7-day
// window. Weekday tokens in a ScheduleEntry always refer to the actual
// calendar weekday within week's window, never an offset from week.Start:
// every weekday appears exactly once in a 7-day window, so the mapping is
// total. Results are ordered (schedule-entry, weekday) to match the
// emission order the rest of the system requires.
//
// ShiftsForWeek assumes role has already passed validation (no negative
// durations, SpanDays >= 1, recognized weekdays); see the Validator for
// those checks.
func ShiftsForWeek(week Week, role Role) []ShiftInterval {
	var out []ShiftInterval
	for entryIdx, entry := range role.Schedule {
		for _, d := range weekdayOrder {
			if !containsWeekday(entry.Days, d) {
				continue
			}
			out = append(out, shiftInterval(week, role, entryIdx, entry, d))
		}
	}
	return out
}

func shiftInterval(week Week, role Role, entryIdx int, entry ScheduleEntry, d time.Weekday) ShiftInterval {
	loc := week.Start.Location()
	offset := (int(d) - int(week.Start.Weekday()) + 7) % 7
	date := week.Start.AddDate(0, 0, offset)

	start := time.Date(date.Year(), date.Month(), date.Day(),
		entry.StartTime.Hour, entry.StartTime.Minute, 0, 0, loc)

	durationMinutes := entry.EndTime.minutesSinceMidnight() - entry.StartTime.minutesSinceMidnight()
	if durationMinutes <= 0 {
		durationMinutes += 24 * 60
	}
	spanDays := entry.SpanDays
	if spanDays < 1 {
		spanDays = 1
	}
	end := start.AddDate(0, 0, spanDays-1).Add(time.Duration(durationMinutes) * time.Minute)

	return ShiftInterval{
		Role:       role.ID,
		RoleName:   role.Name,
		EntryIndex: entryIdx,
		Weekday:    d,
		Start:      start,
		End:        end,
	}
}

func containsWeekday(days []time.Weekday, d time.Weekday) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}
