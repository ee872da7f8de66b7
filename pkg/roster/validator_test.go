package roster

import (
	"testing"
	"time"
)

func dailyRole(id RoleId) Role {
	return Role{
		ID:   id,
		Name: string(id),
		Schedule: []ScheduleEntry{
			{Days: []time.Weekday{time.Monday}, StartTime: TimeOfDay{9, 0}, EndTime: TimeOfDay{17, 0}, SpanDays: 1},
		},
	}
}

// Scenario F: capacity error. 3 engineers, 2 roles, weeks_per_block:6,
// max_shifts_per_engineer:3. Capacity 3*3=9 < demand 6*2=12.
func TestValidate_CapacityError(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a", "b", "c"},
		Roles:    []Role{dailyRole("D"), dailyRole("NP")},
		Schedule: ScheduleConfig{StartDate: mustDate(t, "2025-11-03"), NumBlocks: 1, WeeksPerBlock: 6},
		Rules:    Rules{RosterCompleteness: true, MaxWorkload: true},
		Constraints: Constraints{
			MaxShiftsPerEngineer: 3,
		},
	}

	problems := Validate(in)
	if !HasFatal(problems) {
		t.Fatal("expected a fatal capacity problem")
	}
}

func TestValidate_EmptyTeamIsFatal(t *testing.T) {
	in := ValidationInput{
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 1},
		Rules:    Rules{RosterCompleteness: true},
	}
	if !HasFatal(Validate(in)) {
		t.Fatal("expected fatal problem for empty team")
	}
}

func TestValidate_DuplicateEngineerIsFatal(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a", "a"},
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 1},
		Rules:    Rules{RosterCompleteness: true},
		Constraints: Constraints{
			MaxShiftsPerEngineer: 10,
		},
	}
	if !HasFatal(Validate(in)) {
		t.Fatal("expected fatal problem for duplicate engineer")
	}
}

func TestValidate_UnknownWeekendRoleIsFatal(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a"},
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 1},
		Rules:    Rules{RosterCompleteness: true, WeekendLimit: true},
		Constraints: Constraints{
			MaxShiftsPerEngineer:   10,
			MaxWeekendsPerEngineer: 10,
			WeekendRole:            "missing",
		},
	}
	if !HasFatal(Validate(in)) {
		t.Fatal("expected fatal problem for unknown weekend_role")
	}
}

func TestValidate_RosterCompletenessAndMaxWorkloadBothOffIsFatal(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a"},
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 1},
		Rules:    Rules{},
	}
	if !HasFatal(Validate(in)) {
		t.Fatal("expected fatal problem when roster_completeness and max_workload are both disabled")
	}
}

func TestValidate_UnknownEngineerInRecordsIsWarningOnly(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a"},
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 1},
		Rules:    Rules{RosterCompleteness: true},
		Constraints: Constraints{
			MaxShiftsPerEngineer: 10,
		},
		Records: []UnavailabilityRecord{
			{Engineer: "ghost", Start: mustDate(t, "2025-11-03"), End: mustDate(t, "2025-11-03")},
		},
	}
	problems := Validate(in)
	if HasFatal(problems) {
		t.Fatalf("unexpected fatal problems: %v", problems)
	}
	if len(problems) != 1 {
		t.Fatalf("problems = %v, want exactly one warning", problems)
	}
}

func TestValidate_FeasibleConfigHasNoProblems(t *testing.T) {
	in := ValidationInput{
		Team:     Team{"a", "b", "c"},
		Roles:    []Role{dailyRole("D")},
		Schedule: ScheduleConfig{NumBlocks: 1, WeeksPerBlock: 2},
		Rules:    Rules{RosterCompleteness: true, MaxWorkload: true},
		Constraints: Constraints{
			MaxShiftsPerEngineer: 1,
		},
	}
	if problems := Validate(in); len(problems) != 0 {
		t.Fatalf("problems = %v, want none", problems)
	}
}
