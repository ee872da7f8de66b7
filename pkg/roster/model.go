package roster

import (
	"fmt"

	"github.com/reinka/oncall-scheduler/pkg/solver"
)

// Rules toggles which constraint families the Constraint Model Builder
// includes. Every field maps directly to one of the keys under rules in
// configuration.
type Rules struct {
	RosterCompleteness bool
	RoleSeparation     bool
	Availability       bool
	NoConsecutiveWeeks bool
	MaxWorkload        bool
	WeekendLimit       bool
}

// Constraints holds the numeric and role parameters the capacity-bound
// constraint families need.
type Constraints struct {
	MaxShiftsPerEngineer   int
	MaxWeekendsPerEngineer int
	WeekendRole            RoleId
}

// Vars indexes the decision variable for every (engineer, week, role)
// triple built for one block.
type Vars map[Engineer]map[int]map[RoleId]solver.BoolVar

// BuiltModel is a solver.Model plus the variable index needed to extract an
// Assignment back out of a Solution.
type BuiltModel struct {
	Model *solver.Model
	Vars  Vars
	Weeks int
	Roles []Role
}

// BuildModel constructs the boolean decision variables and the enabled
// constraint families for one block, per the constraint model: roster
// completeness, role separation, availability, no-consecutive-weeks, max
// workload, and weekend limit, each gated by rules.
func BuildModel(team Team, roles []Role, weeks int, rules Rules, constraints Constraints, forbidden []ForbiddenPair) *BuiltModel {
	m := solver.NewModel()
	vars := make(Vars, len(team))
	for _, e := range team {
		vars[e] = make(map[int]map[RoleId]solver.BoolVar, weeks)
		for w := 0; w < weeks; w++ {
			vars[e][w] = make(map[RoleId]solver.BoolVar, len(roles))
			for _, r := range roles {
				vars[e][w][r.ID] = m.NewBoolVar(fmt.Sprintf("x[%s,%d,%s]", e, w, r.ID))
			}
		}
	}

	if rules.RosterCompleteness {
		for w := 0; w < weeks; w++ {
			for _, r := range roles {
				group := make([]solver.BoolVar, 0, len(team))
				for _, e := range team {
					group = append(group, vars[e][w][r.ID])
				}
				m.AddEquality(group, 1)
			}
		}
	}

	if rules.RoleSeparation {
		for _, e := range team {
			for w := 0; w < weeks; w++ {
				group := make([]solver.BoolVar, 0, len(roles))
				for _, r := range roles {
					group = append(group, vars[e][w][r.ID])
				}
				m.AddAtMost(group, 1)
			}
		}
	}

	if rules.Availability {
		for _, fp := range forbidden {
			weekVars, ok := vars[fp.Engineer]
			if !ok {
				continue
			}
			roleVars, ok := weekVars[fp.Week]
			if !ok {
				continue
			}
			for _, v := range roleVars {
				m.Fix(v, false)
			}
		}
	}

	if rules.NoConsecutiveWeeks {
		for _, e := range team {
			for w := 0; w <= weeks-2; w++ {
				group := make([]solver.BoolVar, 0, 2*len(roles))
				for _, r := range roles {
					group = append(group, vars[e][w][r.ID], vars[e][w+1][r.ID])
				}
				m.AddAtMost(group, 1)
			}
		}
	}

	if rules.MaxWorkload {
		for _, e := range team {
			group := make([]solver.BoolVar, 0, weeks*len(roles))
			for w := 0; w < weeks; w++ {
				for _, r := range roles {
					group = append(group, vars[e][w][r.ID])
				}
			}
			m.AddAtMost(group, constraints.MaxShiftsPerEngineer)
		}
	}

	if rules.WeekendLimit {
		for _, e := range team {
			group := make([]solver.BoolVar, 0, weeks)
			for w := 0; w < weeks; w++ {
				if v, ok := vars[e][w][constraints.WeekendRole]; ok {
					group = append(group, v)
				}
			}
			m.AddAtMost(group, constraints.MaxWeekendsPerEngineer)
		}
	}

	return &BuiltModel{Model: m, Vars: vars, Weeks: weeks, Roles: roles}
}

// CheckCapacity asserts E·max_shifts_per_engineer >= W·R, the pre-solve
// inequality that must hold for roster_completeness to be satisfiable at
// all. A failure here is a CapacityError, distinct from solver
// infeasibility.
func CheckCapacity(numEngineers, weeks, numRoles, maxShiftsPerEngineer int) error {
	have := numEngineers * maxShiftsPerEngineer
	need := weeks * numRoles
	if have < need {
		return newError(KindCapacity, fmt.Sprintf(
			"capacity: %d engineers x %d max shifts = %d < demand %d weeks x %d roles = %d",
			numEngineers, maxShiftsPerEngineer, have, weeks, numRoles, need))
	}
	return nil
}

// CheckWeekendCapacity asserts E·max_weekends_per_engineer >= weekend
// weeks, the analogous pre-solve inequality for the weekend_limit rule.
func CheckWeekendCapacity(numEngineers, weekendWeeks, maxWeekendsPerEngineer int) error {
	have := numEngineers * maxWeekendsPerEngineer
	if have < weekendWeeks {
		return newError(KindCapacity, fmt.Sprintf(
			"weekend capacity: %d engineers x %d max weekends = %d < demand %d weekend weeks",
			numEngineers, maxWeekendsPerEngineer, have, weekendWeeks))
	}
	return nil
}
