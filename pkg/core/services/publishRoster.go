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

// RosterPublisher defines the sheet operations needed to publish a roster run
type RosterPublisher interface {
	PublishRoster(cfg *config.Config, published *sheetsclient.PublishedRoster) (string, error)
}

// PublishRosterStore defines the database operations needed to publish a
// roster run
type PublishRosterStore interface {
	GetRosterRuns(ctx context.Context) ([]db.RosterRun, error)
	GetRosterRun(ctx context.Context, runID string) (*db.RosterRun, error)
	GetAssignments(ctx context.Context, runID string) ([]db.RosterAssignment, error)
	GetSummaries(ctx context.Context, runID string) ([]db.RosterSummary, error)
}

// PublishRosterResult reports where a run was published
type PublishRosterResult struct {
	RunID    string
	TabTitle string
	Rows     int
}

// PublishRoster writes a saved roster run to the roster spreadsheet, one tab
// per period. If runID is empty, it defaults to the most recent run.
func PublishRoster(
	ctx context.Context,
	database PublishRosterStore,
	publisher RosterPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	runID string,
) (*PublishRosterResult, error) {
	logger.Debug("Starting publishRoster", zap.String("run_id", runID))

	run, err := resolveRun(ctx, database, runID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Found target run",
		zap.String("id", run.ID),
		zap.String("period_start", run.PeriodStart),
		zap.String("period_end", run.PeriodEnd),
		zap.String("status", run.Status))

	assignments, err := database.GetAssignments(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("roster run %s has no assignments", run.ID)
	}

	summaries, err := database.GetSummaries(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summaries: %w", err)
	}

	published, err := buildPublishedRoster(run, assignments, summaries)
	if err != nil {
		return nil, err
	}

	tabTitle, err := publisher.PublishRoster(cfg, published)
	if err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published",
		zap.String("run_id", run.ID),
		zap.String("tab", tabTitle),
		zap.Int("assignments", len(assignments)))

	return &PublishRosterResult{
		RunID:    run.ID,
		TabTitle: tabTitle,
		Rows:     len(assignments),
	}, nil
}

func buildPublishedRoster(run *db.RosterRun, assignments []db.RosterAssignment, summaries []db.RosterSummary) (*sheetsclient.PublishedRoster, error) {
	start, err := model.ParseDay(run.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("roster run %s has invalid period start: %w", run.ID, err)
	}
	end, err := model.ParseDay(run.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("roster run %s has invalid period end: %w", run.ID, err)
	}

	rows := make([]sheetsclient.PublishedRow, len(assignments))
	for i, assignment := range assignments {
		day, err := model.ParseDay(assignment.Day)
		if err != nil {
			return nil, fmt.Errorf("assignment %s has invalid day: %w", assignment.ID, err)
		}
		rows[i] = sheetsclient.PublishedRow{
			Date:     day,
			Shift:    assignment.Shift,
			Employee: assignment.Employee,
		}
	}

	summaryRows := make([]sheetsclient.PublishedSummary, len(summaries))
	for i, summary := range summaries {
		summaryRows[i] = sheetsclient.PublishedSummary{
			Employee:       summary.Employee,
			StartingPoints: summary.StartingPoints,
			PointsEarned:   float64(summary.EarnedTenths) / 10,
			TotalPoints:    float64(summary.TotalTenths) / 10,
		}
	}

	return &sheetsclient.PublishedRoster{
		PeriodStart: start,
		PeriodEnd:   end,
		Rows:        rows,
		Summary:     summaryRows,
	}, nil
}
