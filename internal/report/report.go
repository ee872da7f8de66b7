// Package report prints human-readable console summaries of a generated
// roster, and of the diagnostics the Validator and solver surface when a
// run fails.
package report

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

// PrintSchedule renders one row per shift, grouped by (block, week, role) in
// the same order they were emitted in.
func PrintSchedule(shifts []roster.Shift) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Block", "Week", "Role", "Engineer", "Start", "End"})
	table.SetBorder(false)
	table.SetHeaderColor(
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
		tablewriter.Colors{tablewriter.Bold},
	)

	for _, s := range shifts {
		table.Append([]string{
			fmt.Sprintf("%d", s.Block),
			fmt.Sprintf("%d", s.Week),
			string(s.Role),
			string(s.Engineer),
			s.Start.Format("2006-01-02 15:04"),
			s.End.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// PrintProblems renders the Validator's structured problem list, errors
// before warnings.
func PrintProblems(problems []roster.Problem) {
	if len(problems) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Level", "Field", "Message"})
	table.SetBorder(false)

	for _, p := range problems {
		if !p.Fatal {
			continue
		}
		table.Append([]string{"error", p.Field, p.Message})
	}
	for _, p := range problems {
		if p.Fatal {
			continue
		}
		table.Append([]string{"warning", p.Field, p.Message})
	}
	table.Render()
}

// PrintValidationSummary renders the roster's shape after a clean validate:
// team size, per-role weekly shift counts, and capacity against demand.
func PrintValidationSummary(team roster.Team, roles []roster.Role, schedule roster.ScheduleConfig, constraints roster.Constraints) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Role", "Name", "Shifts/Week"})
	table.SetBorder(false)
	for _, r := range roles {
		shiftsPerWeek := 0
		for _, entry := range r.Schedule {
			shiftsPerWeek += len(entry.Days)
		}
		table.Append([]string{string(r.ID), r.Name, fmt.Sprintf("%d", shiftsPerWeek)})
	}
	table.Render()

	capacity := len(team) * constraints.MaxShiftsPerEngineer
	demand := schedule.WeeksPerBlock * len(roles)
	fmt.Printf("team: %d engineers, %d block(s) of %d week(s)\n",
		len(team), schedule.NumBlocks, schedule.WeeksPerBlock)
	fmt.Printf("capacity per block: %d engineers x %d max shifts = %d, demand %d weeks x %d roles = %d\n",
		len(team), constraints.MaxShiftsPerEngineer, capacity,
		schedule.WeeksPerBlock, len(roles), demand)
}

// PrintInfeasible prints the enabled rule set and capacity numbers to aid
// diagnosis when the solver reports Infeasible.
func PrintInfeasible(rules roster.Rules, constraints roster.Constraints, numEngineers, weeks, numRoles int) {
	fmt.Println("no feasible roster found for this block")
	fmt.Printf("enabled rules: roster_completeness=%t role_separation=%t availability=%t "+
		"no_consecutive_weeks=%t max_workload=%t weekend_limit=%t\n",
		rules.RosterCompleteness, rules.RoleSeparation, rules.Availability,
		rules.NoConsecutiveWeeks, rules.MaxWorkload, rules.WeekendLimit)
	fmt.Printf("capacity: %d engineers x %d max shifts = %d, demand %d weeks x %d roles = %d\n",
		numEngineers, constraints.MaxShiftsPerEngineer, numEngineers*constraints.MaxShiftsPerEngineer,
		weeks, numRoles, weeks*numRoles)
}

// PrintTimeout prints a suggestion to raise the solver timeout or loosen
// rules when the solver reports Timeout.
func PrintTimeout(timeoutSeconds int) {
	fmt.Printf("solver exceeded its %ds timeout without proving feasibility or infeasibility\n", timeoutSeconds)
	fmt.Println("try raising solver.timeout_seconds, or loosening an enabled rule")
}

// PrintCapacityError prints both sides of the failing capacity inequality.
func PrintCapacityError(err error) {
	fmt.Println("capacity check failed before the solver was invoked:")
	fmt.Println(err.Error())
}
