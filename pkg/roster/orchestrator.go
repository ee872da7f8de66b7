package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScheduleConfig parameterizes the block sequence the Orchestrator runs.
type ScheduleConfig struct {
	StartDate     time.Time
	NumBlocks     int
	WeeksPerBlock int
}

// Metrics optionally records solver telemetry as the orchestrator drives
// each block. Collectors are passed in as plain parameters rather than
// registered globally. A nil *Metrics, or a nil field within one, disables
// that particular recording.
type Metrics struct {
	Variables     *prometheus.GaugeVec     // labeled "block"
	Constraints   *prometheus.GaugeVec     // labeled "block"
	SolveDuration *prometheus.HistogramVec // labeled "status"
	BlocksSolved  *prometheus.CounterVec   // labeled "status"
}

func (m *Metrics) observe(block int, built *BuiltModel, status BlockStatus, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := fmt.Sprintf("%d", block)
	if m.Variables != nil {
		m.Variables.WithLabelValues(label).Set(float64(built.Model.NumVars()))
	}
	if m.Constraints != nil {
		m.Constraints.WithLabelValues(label).Set(float64(built.Model.NumConstraints()))
	}
	statusLabel := status.String()
	if m.SolveDuration != nil {
		m.SolveDuration.WithLabelValues(statusLabel).Observe(elapsed.Seconds())
	}
	if m.BlocksSolved != nil {
		m.BlocksSolved.WithLabelValues(statusLabel).Inc()
	}
}

func (s BlockStatus) String() string {
	switch s {
	case BlockFeasible:
		return "feasible"
	case BlockInfeasible:
		return "infeasible"
	case BlockTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Run executes the Calendar Mapper, Availability Resolver, Constraint Model
// Builder, and Block Solver once per block in sequence, threading the last
// week's assignment of block k into the forbidden pairs for week 0 of block
// k+1 when no_consecutive_weeks is enabled. On Infeasible or Timeout the
// whole run aborts with that status; nothing is partially emitted. metrics
// may be nil.
func Run(ctx context.Context, team Team, roles []Role, records []UnavailabilityRecord, schedule ScheduleConfig, rules Rules, constraints Constraints, seed int64, timeout time.Duration, metrics *Metrics) ([]Shift, []Problem, error) {
	var shifts []Shift
	var warnings []Problem
	var lastWeekAssigned map[Engineer]bool

	if rules.MaxWorkload {
		if err := CheckCapacity(len(team), schedule.WeeksPerBlock, len(roles), constraints.MaxShiftsPerEngineer); err != nil {
			return nil, nil, err
		}
	}
	if rules.WeekendLimit {
		weekendWeeks := weekendWeeksFor(roles, constraints.WeekendRole, schedule.WeeksPerBlock)
		if err := CheckWeekendCapacity(len(team), weekendWeeks, constraints.MaxWeekendsPerEngineer); err != nil {
			return nil, nil, err
		}
	}

	for k := 0; k < schedule.NumBlocks; k++ {
		block := Block{
			Index: k,
			Start: schedule.StartDate.AddDate(0, 0, k*schedule.WeeksPerBlock*7),
			Weeks: schedule.WeeksPerBlock,
		}

		forbidden, probs := ResolveAvailability(records, team, block)
		warnings = append(warnings, probs...)
		if !rules.Availability {
			forbidden = nil
		}

		if rules.NoConsecutiveWeeks {
			for e := range lastWeekAssigned {
				forbidden = append(forbidden, ForbiddenPair{Engineer: e, Week: 0})
			}
		}

		// forbidden now holds only pairs that must bind. BuildModel fixes
		// forbidden pairs under its Availability switch, so it is turned on
		// here for continuity pairs even when the availability rule is off.
		modelRules := rules
		modelRules.Availability = true
		built := BuildModel(team, roles, block.Weeks, modelRules, constraints, forbidden)
		solveStart := time.Now()
		result, err := SolveBlock(ctx, built, seed, timeout)
		if err != nil {
			return nil, warnings, err
		}
		metrics.observe(k, built, result.Status, time.Since(solveStart))

		switch result.Status {
		case BlockInfeasible:
			return nil, warnings, newError(KindInfeasible, fmt.Sprintf("block %d: no feasible assignment", k))
		case BlockTimeout:
			return nil, warnings, newError(KindTimeout, fmt.Sprintf("block %d: solver exceeded timeout", k))
		}

		for w := 0; w < block.Weeks; w++ {
			week := Week{Block: k, Index: w, Start: block.Start.AddDate(0, 0, 7*w)}
			for _, r := range roles {
				engineer := result.Assignment[AssignmentKey{Week: w, Role: r.ID}]
				for _, iv := range ShiftsForWeek(week, r) {
					shifts = append(shifts, Shift{
						Block:      k,
						Week:       w,
						Role:       r.ID,
						RoleName:   r.Name,
						EntryIndex: iv.EntryIndex,
						Weekday:    iv.Weekday,
						Engineer:   engineer,
						Start:      iv.Start,
						End:        iv.End,
					})
				}
			}
		}

		lastWeekAssigned = make(map[Engineer]bool)
		lastWeek := block.Weeks - 1
		for _, r := range roles {
			if e, ok := result.Assignment[AssignmentKey{Week: lastWeek, Role: r.ID}]; ok && e != "" {
				lastWeekAssigned[e] = true
			}
		}
	}

	return shifts, warnings, nil
}
