package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// InsertRosterRun stores a run with its assignments and summaries in a
// single transaction so history never holds a partial roster.
func (d *DB) InsertRosterRun(ctx context.Context, run *db.RosterRun, assignments []db.RosterAssignment, summaries []db.RosterSummary) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO roster_run (id, period_start, period_end, scheme, status)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.PeriodStart, run.PeriodEnd, run.Scheme, run.Status)
	if err != nil {
		return fmt.Errorf("failed to insert roster run: %w", err)
	}

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_assignment (id, run_id, day, shift, employee)
			VALUES ($1, $2, $3, $4, $5)
		`, a.ID, a.RunID, a.Day, a.Shift, a.Employee)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, s := range summaries {
		_, err := tx.Exec(ctx, `
			INSERT INTO roster_summary (run_id, employee, starting_points, earned_tenths, total_tenths)
			VALUES ($1, $2, $3, $4, $5)
		`, s.RunID, s.Employee, s.StartingPoints, s.EarnedTenths, s.TotalTenths)
		if err != nil {
			return fmt.Errorf("failed to insert summary: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRosterRuns retrieves all roster runs, newest first
func (d *DB) GetRosterRuns(ctx context.Context) ([]db.RosterRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, period_start, period_end, scheme, status, created_at
		FROM roster_run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster runs: %w", err)
	}
	defer rows.Close()

	var runs []db.RosterRun
	for rows.Next() {
		run, err := scanRosterRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster runs: %w", err)
	}

	return runs, nil
}

// GetRosterRun retrieves a single roster run by id
func (d *DB) GetRosterRun(ctx context.Context, runID string) (*db.RosterRun, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, period_start, period_end, scheme, status, created_at
		FROM roster_run
		WHERE id = $1
	`, runID)

	run, err := scanRosterRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("roster run %s not found", runID)
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

func scanRosterRun(row pgx.Row) (*db.RosterRun, error) {
	var run db.RosterRun
	var start, end time.Time
	var createdAt time.Time
	if err := row.Scan(&run.ID, &start, &end, &run.Scheme, &run.Status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan roster run: %w", err)
	}
	run.PeriodStart = start.Format("2006-01-02")
	run.PeriodEnd = end.Format("2006-01-02")
	run.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &run, nil
}

// GetAssignments retrieves the assignments of a run ordered by day and shift
func (d *DB) GetAssignments(ctx context.Context, runID string) ([]db.RosterAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, day, shift, employee
		FROM roster_assignment
		WHERE run_id = $1
		ORDER BY day, shift
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.RosterAssignment
	for rows.Next() {
		var a db.RosterAssignment
		var day time.Time
		if err := rows.Scan(&a.ID, &a.RunID, &day, &a.Shift, &a.Employee); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Day = day.Format("2006-01-02")
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// GetSummaries retrieves the points summaries of a run ordered by employee
func (d *DB) GetSummaries(ctx context.Context, runID string) ([]db.RosterSummary, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT run_id, employee, starting_points, earned_tenths, total_tenths
		FROM roster_summary
		WHERE run_id = $1
		ORDER BY employee
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var summaries []db.RosterSummary
	for rows.Next() {
		var s db.RosterSummary
		if err := rows.Scan(&s.RunID, &s.Employee, &s.StartingPoints, &s.EarnedTenths, &s.TotalTenths); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summaries: %w", err)
	}

	return summaries, nil
}
