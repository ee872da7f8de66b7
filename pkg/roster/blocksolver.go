package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/reinka/oncall-scheduler/pkg/solver"
)

// BlockStatus is the outcome of solving one block, mirroring solver.Status
// but named for the roster domain so callers outside this package never
// import pkg/solver directly.
type BlockStatus int

const (
	BlockInfeasible BlockStatus = iota
	BlockFeasible
	BlockTimeout
)

// BlockResult is the outcome of one SolveBlock call.
type BlockResult struct {
	Status     BlockStatus
	Assignment Assignment
}

// SolveBlock invokes the solver on built under timeout, seeded by seed so
// repeated runs over identical input reproduce byte-identical output, and
// extracts the Assignment on success.
func SolveBlock(ctx context.Context, built *BuiltModel, seed int64, timeout time.Duration) (BlockResult, error) {
	sol, err := solver.New(seed, timeout).Solve(ctx, built.Model)
	if err != nil {
		return BlockResult{}, err
	}

	switch sol.Status {
	case solver.StatusInfeasible:
		return BlockResult{Status: BlockInfeasible}, nil
	case solver.StatusTimeout:
		return BlockResult{Status: BlockTimeout}, nil
	}

	assignment, err := ExtractAssignment(built, sol)
	if err != nil {
		return BlockResult{}, err
	}
	return BlockResult{Status: BlockFeasible, Assignment: assignment}, nil
}

// ExtractAssignment reads, for every (week, role) slot, the unique engineer
// whose variable is true. Seeing zero or more than one set variable for a
// slot violates roster_completeness + role_separation and is treated as an
// internal error rather than silently picking one.
func ExtractAssignment(built *BuiltModel, sol solver.Solution) (Assignment, error) {
	assignment := make(Assignment, built.Weeks*len(built.Roles))
	for w := 0; w < built.Weeks; w++ {
		for _, r := range built.Roles {
			var found Engineer
			count := 0
			for e, weeks := range built.Vars {
				if sol.Value(weeks[w][r.ID]) {
					found = e
					count++
				}
			}
			switch count {
			case 1:
				assignment[AssignmentKey{Week: w, Role: r.ID}] = found
			case 0:
				return nil, newError(KindInternal, fmt.Sprintf("no engineer assigned to week %d role %s", w, r.ID))
			default:
				return nil, newError(KindInternal, fmt.Sprintf("%d engineers assigned to week %d role %s", count, w, r.ID))
			}
		}
	}
	return assignment, nil
}
