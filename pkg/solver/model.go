// Package solver is an exact solver for small integer linear models:
// bounded integer variables, linear (in)equality constraints, and a single
// linear objective to minimize. Solving is a depth-first branch-and-bound
// search with bounds propagation under a wall-clock budget.
package solver

import "math"

// Status is the terminal outcome of a Solve call. The zero value is
// StatusUnknown, which Solve itself never returns.
type Status int

const (
	StatusUnknown Status = iota
	// StatusOptimal: the search space was exhausted and the returned
	// assignment is provably optimal.
	StatusOptimal
	// StatusFeasible: an assignment was found but the budget expired
	// before optimality was proven.
	StatusFeasible
	// StatusInfeasible: the search space was exhausted without finding
	// any assignment.
	StatusInfeasible
	// StatusTimeout: the budget expired before any assignment was found.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	}
	return "unknown"
}

// Solved reports whether the status carries a usable assignment.
func (s Status) Solved() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// Var is a handle to a model variable.
type Var int

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Var  Var
	Coef int
}

// Sentinels for one-sided constraints. Kept well clear of integer limits
// so activity sums cannot overflow.
const (
	noLower = math.MinInt / 4
	noUpper = math.MaxInt / 4
)

// linear holds Σ terms constrained to [lo, hi].
type linear struct {
	terms []Term
	lo    int
	hi    int
}

// Model accumulates variables and constraints for a single Solve call.
// It is not safe for concurrent use.
type Model struct {
	names    []string
	lo       []int
	hi       []int
	cons     []linear
	obj      []Term
	minimize bool
}

func NewModel() *Model {
	return &Model{}
}

// NewBool adds a 0/1 decision variable.
func (m *Model) NewBool(name string) Var {
	return m.NewInt(name, 0, 1)
}

// NewInt adds an integer variable bounded to [lo, hi] inclusive.
func (m *Model) NewInt(name string, lo, hi int) Var {
	m.names = append(m.names, name)
	m.lo = append(m.lo, lo)
	m.hi = append(m.hi, hi)
	return Var(len(m.names) - 1)
}

// Name returns the name a variable was created with.
func (m *Model) Name(v Var) string {
	return m.names[v]
}

func (m *Model) NumVars() int {
	return len(m.names)
}

func (m *Model) NumConstraints() int {
	return len(m.cons)
}

// AddSumEquals constrains Σ terms == k.
func (m *Model) AddSumEquals(terms []Term, k int) {
	m.addLinear(terms, k, k)
}

// AddSumAtMost constrains Σ terms <= k.
func (m *Model) AddSumAtMost(terms []Term, k int) {
	m.addLinear(terms, noLower, k)
}

// AddSumAtLeast constrains Σ terms >= k.
func (m *Model) AddSumAtLeast(terms []Term, k int) {
	m.addLinear(terms, k, noUpper)
}

func (m *Model) addLinear(terms []Term, lo, hi int) {
	copied := make([]Term, len(terms))
	copy(copied, terms)
	m.cons = append(m.cons, linear{terms: copied, lo: lo, hi: hi})
}

// Minimize sets the objective expression, replacing any previous one.
func (m *Model) Minimize(terms []Term) {
	copied := make([]Term, len(terms))
	copy(copied, terms)
	m.obj = copied
	m.minimize = true
}

// Result is the outcome of a Solve call.
type Result struct {
	Status Status
	// Objective is the objective value of the returned assignment.
	// Meaningful only when Status.Solved().
	Objective int

	values []int
}

// Value returns the solved value of v, or zero when no assignment exists.
func (r *Result) Value(v Var) int {
	if r.values == nil || int(v) >= len(r.values) {
		return 0
	}
	return r.values[v]
}

// BoolValue returns the solved value of a 0/1 variable.
func (r *Result) BoolValue(v Var) bool {
	return r.Value(v) == 1
}
