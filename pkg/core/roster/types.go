package roster

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/solver"
)

// DefaultSolveBudget bounds the search when Input.SolveBudget is unset.
const DefaultSolveBudget = 10 * time.Second

// InfeasibleMessage is reported when the model admits no assignment within
// budget even though every slot has at least one eligible employee.
const InfeasibleMessage = "constraints too tight (rest rules or holiday bids): no feasible roster found"

// Input describes one rostering period.
type Input struct {
	Employees []model.Employee
	// Dates is the set of days to roster. Duplicates are dropped and the
	// days need not be contiguous.
	Dates    []time.Time
	Holidays []time.Time
	Scheme   model.Scheme
	// ImmunityYears overrides the holiday immunity window. Zero means the
	// default of two years.
	ImmunityYears int
	// SolveBudget caps the solver's wall-clock time. Zero means
	// DefaultSolveBudget.
	SolveBudget time.Duration
}

// Result is all or nothing: either Solved is true and Rows and Summary hold
// a complete roster, or Errors explains why none could be produced.
type Result struct {
	Solved  bool
	Status  solver.Status
	Rows    []model.RosterRow
	Summary []model.SummaryRow
	// Spread is the solved gap between the highest and lowest projected
	// points balance, in points.
	Spread float64
	Errors []string
}
