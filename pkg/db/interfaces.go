package db

import "context"

// EmployeeStore defines the interface for employee directory operations
type EmployeeStore interface {
	GetEmployees(ctx context.Context) ([]Employee, error)
	UpsertEmployees(ctx context.Context, employees []Employee) error
	UpdateEmployeePoints(ctx context.Context, updates []EmployeePointsUpdate) error
}

// RunStore defines the interface for roster run history operations
type RunStore interface {
	InsertRosterRun(ctx context.Context, run *RosterRun, assignments []RosterAssignment, summaries []RosterSummary) error
	GetRosterRuns(ctx context.Context) ([]RosterRun, error)
	GetRosterRun(ctx context.Context, runID string) (*RosterRun, error)
	GetAssignments(ctx context.Context, runID string) ([]RosterAssignment, error)
	GetSummaries(ctx context.Context, runID string) ([]RosterSummary, error)
}

// Database defines the interface for all database operations, implemented
// by postgres.DB.
type Database interface {
	EmployeeStore
	RunStore
}
