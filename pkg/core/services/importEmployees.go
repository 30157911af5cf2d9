package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// DirectoryClient defines the sheet operations needed to read the employee
// directory
type DirectoryClient interface {
	FetchEmployees(cfg *config.Config) ([]model.Employee, []string, error)
}

// ImportEmployeesStore defines the database operations needed to import the
// directory
type ImportEmployeesStore interface {
	UpsertEmployees(ctx context.Context, employees []db.Employee) error
}

// ImportResult reports how an import went
type ImportResult struct {
	Imported int
	Warnings []string
}

// ImportEmployees pulls the employee directory from its spreadsheet and
// upserts it into the database, keyed by employee name. Rows the directory
// parser had to skip or adjust come back as warnings.
func ImportEmployees(
	ctx context.Context,
	database ImportEmployeesStore,
	directory DirectoryClient,
	cfg *config.Config,
	logger *zap.Logger,
) (*ImportResult, error) {
	logger.Debug("Starting importEmployees",
		zap.String("sheet_id", cfg.DirectorySheetID),
		zap.String("tab", cfg.EmployeesTab))

	employees, warnings, err := directory.FetchEmployees(cfg)
	if err != nil {
		return nil, err
	}

	for _, warning := range warnings {
		logger.Warn("Directory row skipped or adjusted", zap.String("detail", warning))
	}

	if len(employees) == 0 {
		return nil, fmt.Errorf("no usable employees found in the directory")
	}

	records := make([]db.Employee, len(employees))
	for i, emp := range employees {
		records[i] = employeeRecord(emp, uuid.New().String())
	}

	if err := database.UpsertEmployees(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save employees: %w", err)
	}

	logger.Info("Employee directory imported",
		zap.Int("employees", len(records)),
		zap.Int("warnings", len(warnings)))

	return &ImportResult{
		Imported: len(records),
		Warnings: warnings,
	}, nil
}
