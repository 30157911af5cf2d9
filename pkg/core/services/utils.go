package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// runStore is the slice of the database both run-consuming services share.
type runStore interface {
	GetRosterRuns(ctx context.Context) ([]db.RosterRun, error)
	GetRosterRun(ctx context.Context, runID string) (*db.RosterRun, error)
}

// resolveRun looks up a run by ID, or the most recent run when runID is
// empty.
func resolveRun(ctx context.Context, database runStore, runID string) (*db.RosterRun, error) {
	if runID != "" {
		return database.GetRosterRun(ctx, runID)
	}

	runs, err := database.GetRosterRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no roster runs found, solve a roster first")
	}

	return findLatestRun(runs), nil
}

// employeeFromRecord converts a stored employee row into the domain form the
// roster engine works with.
func employeeFromRecord(rec db.Employee) (model.Employee, error) {
	role := model.Role(rec.Role)
	if !role.IsValid() {
		return model.Employee{}, fmt.Errorf("employee %s has unknown role %q", rec.Name, rec.Role)
	}

	blackouts, err := dateSetFromStrings(rec.Blackouts)
	if err != nil {
		return model.Employee{}, fmt.Errorf("employee %s has invalid blackout date: %w", rec.Name, err)
	}

	holidayBids, err := dateSetFromStrings(rec.HolidayBids)
	if err != nil {
		return model.Employee{}, fmt.Errorf("employee %s has invalid holiday bid date: %w", rec.Name, err)
	}

	var lastHolidayWorked *time.Time
	if rec.LastHolidayWorked != "" {
		day, err := model.ParseDay(rec.LastHolidayWorked)
		if err != nil {
			return model.Employee{}, fmt.Errorf("employee %s has invalid last holiday worked date: %w", rec.Name, err)
		}
		lastHolidayWorked = &day
	}

	return model.Employee{
		Name:              rec.Name,
		Team:              rec.Team,
		Role:              role,
		YTDPoints:         rec.YTDPoints,
		Blackouts:         blackouts,
		HolidayBids:       holidayBids,
		LastHolidayWorked: lastHolidayWorked,
	}, nil
}

func employeesFromRecords(recs []db.Employee) ([]model.Employee, error) {
	employees := make([]model.Employee, 0, len(recs))
	for _, rec := range recs {
		emp, err := employeeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// employeeRecord converts a domain employee into its stored row form.
func employeeRecord(emp model.Employee, id string) db.Employee {
	rec := db.Employee{
		ID:          id,
		Name:        emp.Name,
		Team:        emp.Team,
		Role:        string(emp.Role),
		YTDPoints:   emp.YTDPoints,
		Blackouts:   sortedDays(emp.Blackouts),
		HolidayBids: sortedDays(emp.HolidayBids),
	}
	if emp.LastHolidayWorked != nil {
		rec.LastHolidayWorked = emp.LastHolidayWorked.Format(model.DateLayout)
	}
	return rec
}

func dateSetFromStrings(days []string) (model.DateSet, error) {
	if len(days) == 0 {
		return nil, nil
	}

	set := model.NewDateSet()
	for _, raw := range days {
		day, err := model.ParseDay(raw)
		if err != nil {
			return nil, err
		}
		set.Add(day)
	}
	return set, nil
}

func sortedDays(set model.DateSet) []string {
	if len(set) == 0 {
		return nil
	}

	days := make([]string, 0, len(set))
	for day := range set {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// findLatestRun finds the run with the most recent creation time.
func findLatestRun(runs []db.RosterRun) *db.RosterRun {
	if len(runs) == 0 {
		return nil
	}

	latest := &runs[0]
	latestCreated, err := time.Parse(time.RFC3339, latest.CreatedAt)
	if err != nil {
		return latest
	}

	for i := 1; i < len(runs); i++ {
		created, err := time.Parse(time.RFC3339, runs[i].CreatedAt)
		if err != nil {
			continue
		}

		if created.After(latestCreated) {
			latest = &runs[i]
			latestCreated = created
		}
	}

	return latest
}

// roundTenths rounds a tenths-of-a-point balance to whole points, halves up.
func roundTenths(tenths int) int {
	if tenths < 0 {
		return -((-tenths + 5) / 10)
	}
	return (tenths + 5) / 10
}
