package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// GetEmployees retrieves the full employee directory with blackout dates and
// holiday bids attached, ordered by name.
func (d *DB) GetEmployees(ctx context.Context) ([]db.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, team, role, ytd_points, last_holiday_worked
		FROM employee
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var e db.Employee
		var lastHoliday *time.Time
		if err := rows.Scan(&e.ID, &e.Name, &e.Team, &e.Role, &e.YTDPoints, &lastHoliday); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if lastHoliday != nil {
			e.LastHolidayWorked = lastHoliday.Format("2006-01-02")
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	blackouts, err := d.employeeDays(ctx, "employee_blackout")
	if err != nil {
		return nil, err
	}
	bids, err := d.employeeDays(ctx, "employee_holiday_bid")
	if err != nil {
		return nil, err
	}
	for i := range employees {
		employees[i].Blackouts = blackouts[employees[i].ID]
		employees[i].HolidayBids = bids[employees[i].ID]
	}

	return employees, nil
}

// employeeDays loads the per-employee day rows of one of the two date-set
// tables, keyed by employee id.
func (d *DB) employeeDays(ctx context.Context, table string) (map[string][]string, error) {
	rows, err := d.pool.Query(ctx, fmt.Sprintf(`SELECT employee_id, day FROM %s ORDER BY day`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	days := make(map[string][]string)
	for rows.Next() {
		var employeeID string
		var day time.Time
		if err := rows.Scan(&employeeID, &day); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		days[employeeID] = append(days[employeeID], day.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}

	return days, nil
}

// UpsertEmployees inserts or updates directory records by name, replacing
// each employee's blackout and bid dates with the supplied sets. Existing
// rows keep their id.
func (d *DB) UpsertEmployees(ctx context.Context, employees []db.Employee) error {
	if len(employees) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range employees {
		var lastHoliday *string
		if e.LastHolidayWorked != "" {
			lastHoliday = &e.LastHolidayWorked
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO employee (id, name, team, role, ytd_points, last_holiday_worked)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET
				team = EXCLUDED.team,
				role = EXCLUDED.role,
				ytd_points = EXCLUDED.ytd_points,
				last_holiday_worked = EXCLUDED.last_holiday_worked
		`, e.ID, e.Name, e.Team, e.Role, e.YTDPoints, lastHoliday)
		if err != nil {
			return fmt.Errorf("failed to upsert employee %s: %w", e.Name, err)
		}

		var id string
		if err := tx.QueryRow(ctx, `SELECT id FROM employee WHERE name = $1`, e.Name).Scan(&id); err != nil {
			return fmt.Errorf("failed to resolve employee id for %s: %w", e.Name, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM employee_blackout WHERE employee_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear blackouts for %s: %w", e.Name, err)
		}
		for _, day := range e.Blackouts {
			if _, err := tx.Exec(ctx, `
				INSERT INTO employee_blackout (employee_id, day) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, day); err != nil {
				return fmt.Errorf("failed to insert blackout for %s: %w", e.Name, err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM employee_holiday_bid WHERE employee_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear holiday bids for %s: %w", e.Name, err)
		}
		for _, day := range e.HolidayBids {
			if _, err := tx.Exec(ctx, `
				INSERT INTO employee_holiday_bid (employee_id, day) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, id, day); err != nil {
				return fmt.Errorf("failed to insert holiday bid for %s: %w", e.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateEmployeePoints applies points write-backs in a single transaction.
// An empty LastHolidayWorked leaves the stored anchor untouched.
func (d *DB) UpdateEmployeePoints(ctx context.Context, updates []db.EmployeePointsUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		var lastHoliday *string
		if u.LastHolidayWorked != "" {
			lastHoliday = &u.LastHolidayWorked
		}
		_, err := tx.Exec(ctx, `
			UPDATE employee
			SET ytd_points = $2,
			    last_holiday_worked = COALESCE($3, last_holiday_worked)
			WHERE id = $1
		`, u.ID, u.YTDPoints, lastHoliday)
		if err != nil {
			return fmt.Errorf("failed to update points for employee %s: %w", u.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
