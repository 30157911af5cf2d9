package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/eligibility"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListEmployeesStore defines the database operations needed to list employees
type ListEmployeesStore interface {
	GetEmployees(ctx context.Context) ([]db.Employee, error)
}

// EmployeeStatus is one line of the employee listing
type EmployeeStatus struct {
	Name          string
	Team          string
	Role          model.Role
	YTDPoints     int
	Blackouts     int
	HolidayBids   int
	HolidayStatus string // "Available" or "Immune until YYYY-MM-DD"
}

// ListEmployees returns the imported employees with their current
// holiday-duty status as of the given day.
func ListEmployees(
	ctx context.Context,
	database ListEmployeesStore,
	logger *zap.Logger,
	asOf time.Time,
	immunityYears int,
) ([]EmployeeStatus, error) {
	logger.Debug("Starting listEmployees", zap.Time("as_of", asOf))

	records, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	employees, err := employeesFromRecords(records)
	if err != nil {
		return nil, err
	}

	statuses := make([]EmployeeStatus, len(employees))
	for i, emp := range employees {
		status := "Available"
		if until, ok := eligibility.ImmuneUntil(emp, immunityYears); ok && model.Day(asOf).Before(until) {
			status = fmt.Sprintf("Immune until %s", until.Format(model.DateLayout))
		}

		statuses[i] = EmployeeStatus{
			Name:          emp.Name,
			Team:          emp.Team,
			Role:          emp.Role,
			YTDPoints:     emp.YTDPoints,
			Blackouts:     len(emp.Blackouts),
			HolidayBids:   len(emp.HolidayBids),
			HolidayStatus: status,
		}
	}

	logger.Info("Listed employees", zap.Int("count", len(statuses)))
	return statuses, nil
}
