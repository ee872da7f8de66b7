package roster

import "fmt"

// ValidationInput bundles everything the Validator independently re-checks:
// the fully parsed team, roles, schedule, rule toggles, constraints, and raw
// unavailability records.
type ValidationInput struct {
	Team        Team
	Roles       []Role
	Schedule    ScheduleConfig
	Rules       Rules
	Constraints Constraints
	Records     []UnavailabilityRecord
}

// Validate independently re-checks structural well-formedness and capacity
// feasibility. It never touches the solver: a clean result here is a
// precondition for calling Run, not a guarantee it will find a feasible
// schedule.
func Validate(in ValidationInput) []Problem {
	var problems []Problem

	engineerSeen := make(map[Engineer]bool, len(in.Team))
	if len(in.Team) == 0 {
		problems = append(problems, Problem{Fatal: true, Field: "team", Message: "team must not be empty"})
	}
	for _, e := range in.Team {
		if e == "" {
			problems = append(problems, Problem{Fatal: true, Field: "team", Message: "engineer name must not be empty"})
			continue
		}
		if engineerSeen[e] {
			problems = append(problems, Problem{Fatal: true, Field: "team", Message: fmt.Sprintf("duplicate engineer %q", e)})
		}
		engineerSeen[e] = true
	}

	if len(in.Roles) == 0 {
		problems = append(problems, Problem{Fatal: true, Field: "roles", Message: "at least one role is required"})
	}
	roleSeen := make(map[RoleId]bool, len(in.Roles))
	for _, r := range in.Roles {
		if roleSeen[r.ID] {
			problems = append(problems, Problem{Fatal: true, Field: "roles", Message: fmt.Sprintf("duplicate role id %q", r.ID)})
		}
		roleSeen[r.ID] = true
		if len(r.Schedule) == 0 {
			problems = append(problems, Problem{Fatal: true, Field: fmt.Sprintf("roles.%s.schedule", r.ID), Message: "role has no schedule entries"})
		}
		for i, entry := range r.Schedule {
			if len(entry.Days) == 0 {
				problems = append(problems, Problem{Fatal: true, Field: fmt.Sprintf("roles.%s.schedule[%d].days", r.ID, i), Message: "schedule entry names no weekdays"})
			}
			if entry.SpanDays < 1 {
				problems = append(problems, Problem{Fatal: true, Field: fmt.Sprintf("roles.%s.schedule[%d].span_days", r.ID, i), Message: "span_days must be >= 1"})
			}
		}
	}

	if in.Schedule.NumBlocks < 1 {
		problems = append(problems, Problem{Fatal: true, Field: "schedule.num_blocks", Message: "num_blocks must be >= 1"})
	}
	if in.Schedule.WeeksPerBlock < 1 {
		problems = append(problems, Problem{Fatal: true, Field: "schedule.weeks_per_block", Message: "weeks_per_block must be >= 1"})
	}

	if in.Rules.WeekendLimit {
		if in.Constraints.WeekendRole == "" || !roleSeen[in.Constraints.WeekendRole] {
			problems = append(problems, Problem{Fatal: true, Field: "constraints.weekend_role", Message: fmt.Sprintf("weekend_role %q does not name a configured role", in.Constraints.WeekendRole)})
		}
	}

	// Open question (see design notes): roster_completeness and max_workload
	// disabled together would permit a trivially empty schedule. Forbidden.
	if !in.Rules.RosterCompleteness && !in.Rules.MaxWorkload {
		problems = append(problems, Problem{Fatal: true, Field: "rules", Message: "roster_completeness and max_workload cannot both be disabled"})
	}

	if in.Schedule.WeeksPerBlock >= 1 && len(in.Roles) > 0 {
		if in.Rules.MaxWorkload {
			if err := CheckCapacity(len(in.Team), in.Schedule.WeeksPerBlock, len(in.Roles), in.Constraints.MaxShiftsPerEngineer); err != nil {
				problems = append(problems, Problem{Fatal: true, Field: "constraints.max_shifts_per_engineer", Message: err.Error()})
			}
		}
		if in.Rules.WeekendLimit && roleSeen[in.Constraints.WeekendRole] {
			weekendWeeks := weekendWeeksFor(in.Roles, in.Constraints.WeekendRole, in.Schedule.WeeksPerBlock)
			if err := CheckWeekendCapacity(len(in.Team), weekendWeeks, in.Constraints.MaxWeekendsPerEngineer); err != nil {
				problems = append(problems, Problem{Fatal: true, Field: "constraints.max_weekends_per_engineer", Message: err.Error()})
			}
		}
	}

	for i, rec := range in.Records {
		if !engineerSeen[rec.Engineer] {
			problems = append(problems, AvailabilityWarning(rec.Engineer, i+1))
		}
	}

	return problems
}

// weekendWeeksFor counts the weeks in a block in which the weekend role has
// any schedule entry. A role's schedule repeats identically every week, so
// this is either 0 (no entries) or weeksPerBlock (at least one entry).
func weekendWeeksFor(roles []Role, weekendRole RoleId, weeksPerBlock int) int {
	for _, r := range roles {
		if r.ID == weekendRole && len(r.Schedule) > 0 {
			return weeksPerBlock
		}
	}
	return 0
}

// HasFatal reports whether problems contains any error (as opposed to
// warning). generate refuses to run when this is true.
func HasFatal(problems []Problem) bool {
	for _, p := range problems {
		if p.Fatal {
			return true
		}
	}
	return false
}
