package db

// Employee represents an employee directory record
type Employee struct {
	ID        string
	Name      string
	Team      string
	Role      string
	YTDPoints int
	// LastHolidayWorked is YYYY-MM-DD, empty when the employee has never
	// worked a public holiday.
	LastHolidayWorked string
	Blackouts         []string // YYYY-MM-DD
	HolidayBids       []string // YYYY-MM-DD
}

// RosterRun represents one solved rostering period
type RosterRun struct {
	ID          string
	PeriodStart string // YYYY-MM-DD
	PeriodEnd   string // YYYY-MM-DD
	Scheme      string
	Status      string // solver status the run finished with
	CreatedAt   string // RFC 3339
}

// RosterAssignment represents a single rostered shift
type RosterAssignment struct {
	ID       string
	RunID    string
	Day      string // YYYY-MM-DD
	Shift    string
	Employee string
}

// RosterSummary represents one employee's points movement for a run.
// Earned and total balances are stored in tenths of a point so weekend
// premiums stay integral.
type RosterSummary struct {
	RunID          string
	Employee       string
	StartingPoints int
	EarnedTenths   int
	TotalTenths    int
}

// EmployeePointsUpdate carries a points write-back for one employee
type EmployeePointsUpdate struct {
	ID        string
	YTDPoints int
	// LastHolidayWorked advances the immunity anchor; empty leaves the
	// stored value untouched.
	LastHolidayWorked string
}
