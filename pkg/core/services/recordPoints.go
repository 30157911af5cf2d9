package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// DirectoryPointsClient defines the sheet operations needed to sync recorded
// points back to the employee directory
type DirectoryPointsClient interface {
	UpdateDirectoryPoints(cfg *config.Config, updates []sheetsclient.PointsUpdate) ([]string, error)
}

// RecordPointsStore defines the database operations needed to record a run's
// points
type RecordPointsStore interface {
	GetRosterRuns(ctx context.Context) ([]db.RosterRun, error)
	GetRosterRun(ctx context.Context, runID string) (*db.RosterRun, error)
	GetAssignments(ctx context.Context, runID string) ([]db.RosterAssignment, error)
	GetSummaries(ctx context.Context, runID string) ([]db.RosterSummary, error)
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	UpdateEmployeePoints(ctx context.Context, updates []db.EmployeePointsUpdate) error
}

// RecordedEmployee is one employee's balance change from recording a run
type RecordedEmployee struct {
	Name              string
	PreviousPoints    int
	NewPoints         int
	Rounded           bool
	LastHolidayWorked string // YYYY-MM-DD, empty when the run changes nothing
}

// RecordPointsResult reports the outcome of recording a run
type RecordPointsResult struct {
	RunID            string
	Updated          []RecordedEmployee
	SkippedUnknown   []string
	SheetSynced      bool
	MissingFromSheet []string
}

// RecordPoints folds a saved roster run back into the employee records: each
// employee's year-to-date balance becomes the run's total rounded to whole
// points, and anyone who worked a holiday shift gets their last holiday
// worked date moved forward. If runID is empty, it defaults to the most
// recent run. With syncSheet set, the same updates are written back to the
// directory spreadsheet.
func RecordPoints(
	ctx context.Context,
	database RecordPointsStore,
	directory DirectoryPointsClient,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
	syncSheet bool,
) (*RecordPointsResult, error) {
	logger.Debug("Starting recordPoints",
		zap.String("run_id", runID),
		zap.Bool("sync_sheet", syncSheet))

	if syncSheet && directory == nil {
		return nil, fmt.Errorf("directory client required to sync the sheet")
	}

	run, err := resolveRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	summaries, err := database.GetSummaries(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summaries: %w", err)
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("roster run %s has no summaries", run.ID)
	}

	assignments, err := database.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	records, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	byName := make(map[string]db.Employee, len(records))
	for _, rec := range records {
		byName[rec.Name] = rec
	}

	lastHoliday := latestHolidayWorked(assignments)

	var updates []db.EmployeePointsUpdate
	var recorded []RecordedEmployee
	var skipped []string

	for _, summary := range summaries {
		rec, ok := byName[summary.Employee]
		if !ok {
			skipped = append(skipped, summary.Employee)
			logger.Warn("Summary names an unknown employee, skipping",
				zap.String("employee", summary.Employee))
			continue
		}

		points := roundTenths(summary.TotalTenths)
		rounded := summary.TotalTenths%10 != 0
		if rounded {
			logger.Debug("Rounded point balance to whole points",
				zap.String("employee", summary.Employee),
				zap.Int("total_tenths", summary.TotalTenths),
				zap.Int("points", points))
		}

		updates = append(updates, db.EmployeePointsUpdate{
			ID:                rec.ID,
			YTDPoints:         points,
			LastHolidayWorked: lastHoliday[summary.Employee],
		})
		recorded = append(recorded, RecordedEmployee{
			Name:              summary.Employee,
			PreviousPoints:    rec.YTDPoints,
			NewPoints:         points,
			Rounded:           rounded,
			LastHolidayWorked: lastHoliday[summary.Employee],
		})
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no matching employees to update for run %s", run.ID)
	}

	if err := database.UpdateEmployeePoints(ctx, updates); err != nil {
		return nil, fmt.Errorf("failed to update employee points: %w", err)
	}

	logger.Info("Employee points recorded",
		zap.String("run_id", run.ID),
		zap.Int("employees", len(updates)),
		zap.Int("skipped", len(skipped)))

	result := &RecordPointsResult{
		RunID:          run.ID,
		Updated:        recorded,
		SkippedUnknown: skipped,
	}

	if !syncSheet {
		return result, nil
	}

	sheetUpdates := make([]sheetsclient.PointsUpdate, len(recorded))
	for i, r := range recorded {
		sheetUpdates[i] = sheetsclient.PointsUpdate{
			Name:              r.Name,
			YTDPoints:         r.NewPoints,
			LastHolidayWorked: r.LastHolidayWorked,
		}
	}

	missing, err := directory.UpdateDirectoryPoints(cfg, sheetUpdates)
	if err != nil {
		return nil, fmt.Errorf("failed to sync points to the directory sheet: %w", err)
	}
	for _, name := range missing {
		logger.Warn("Employee missing from the directory sheet", zap.String("employee", name))
	}

	result.SheetSynced = true
	result.MissingFromSheet = missing

	logger.Info("Directory sheet synced",
		zap.Int("updated", len(sheetUpdates)-len(missing)),
		zap.Int("missing", len(missing)))

	return result, nil
}

// latestHolidayWorked finds, per employee, the most recent holiday day
// assigned in the run. Day strings sort chronologically.
func latestHolidayWorked(assignments []db.RosterAssignment) map[string]string {
	latest := make(map[string]string)
	for _, assignment := range assignments {
		if model.Shift(assignment.Shift).Class() != model.DayHoliday {
			continue
		}
		if assignment.Day > latest[assignment.Employee] {
			latest[assignment.Employee] = assignment.Day
		}
	}
	return latest
}
