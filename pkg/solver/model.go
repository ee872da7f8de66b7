// Package solver implements a small boolean constraint-satisfaction engine:
// decision variables plus linear equality and at-most constraints over them,
// solved by deterministic backtracking search with constraint propagation.
//
// It plays the role the rest of the system's documentation calls "CP-SAT":
// a collaborator that takes a built model and a wall-clock budget and
// reports Feasible, Infeasible, or Timeout. No third-party CP/SAT/MIP
// binding for Go was available to wire this to, so it is implemented here
// from first principles; see DESIGN.md.
package solver

import "fmt"

// BoolVar is a reference to a decision variable in a Model.
type BoolVar int

type constraintKind int

const (
	kindEquality constraintKind = iota
	kindAtMost
)

type constraint struct {
	kind constraintKind
	vars []BoolVar
	rhs  int
}

// Model is a set of boolean decision variables and linear constraints over
// them. It is built once per block and handed to a Solver.
type Model struct {
	names []string
	cons  []constraint
	fixed map[BoolVar]bool
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{fixed: make(map[BoolVar]bool)}
}

// NewBoolVar allocates a new decision variable. name is used only for
// diagnostics.
func (m *Model) NewBoolVar(name string) BoolVar {
	m.names = append(m.names, name)
	return BoolVar(len(m.names) - 1)
}

// NumVars returns the number of decision variables in the model.
func (m *Model) NumVars() int {
	return len(m.names)
}

// NumConstraints returns the number of linear constraints in the model.
func (m *Model) NumConstraints() int {
	return len(m.cons)
}

// Name returns the diagnostic name of v.
func (m *Model) Name(v BoolVar) string {
	if int(v) < 0 || int(v) >= len(m.names) {
		return fmt.Sprintf("var#%d", v)
	}
	return m.names[v]
}

// AddEquality adds the constraint sum(vars) == rhs.
func (m *Model) AddEquality(vars []BoolVar, rhs int) {
	m.cons = append(m.cons, constraint{kind: kindEquality, vars: append([]BoolVar(nil), vars...), rhs: rhs})
}

// AddAtMost adds the constraint sum(vars) <= rhs.
func (m *Model) AddAtMost(vars []BoolVar, rhs int) {
	m.cons = append(m.cons, constraint{kind: kindAtMost, vars: append([]BoolVar(nil), vars...), rhs: rhs})
}

// Fix pins v to value before search starts. Used for forbidden pairs, where
// availability or continuity rules force a variable to false.
func (m *Model) Fix(v BoolVar, value bool) {
	m.fixed[v] = value
}
