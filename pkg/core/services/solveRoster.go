package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// SolveRosterStore defines the database operations needed to solve and save
// a roster
type SolveRosterStore interface {
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	InsertRosterRun(ctx context.Context, run *db.RosterRun, assignments []db.RosterAssignment, summaries []db.RosterSummary) error
}

// SolveRosterOptions control a single roster solve
type SolveRosterOptions struct {
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	DryRun    bool   // solve and report without saving the run
}

// SolveRosterResult carries the outcome of a solve. When the model cannot be
// satisfied, Solved is false and Errors explains why; nothing is saved.
type SolveRosterResult struct {
	RunID       string
	PeriodStart string
	PeriodEnd   string
	Scheme      model.Scheme
	Solved      bool
	Status      string
	Rows        []model.RosterRow
	Summary     []model.SummaryRow
	Spread      float64
	Errors      []string
	Persisted   bool
}

// SolveRoster builds a duty roster for the configured scheme over the given
// period and saves it as a roster run. The employee directory must have been
// imported first.
func SolveRoster(
	ctx context.Context,
	database SolveRosterStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts SolveRosterOptions,
) (*SolveRosterResult, error) {
	logger.Debug("Starting solveRoster",
		zap.String("start", opts.StartDate),
		zap.String("end", opts.EndDate),
		zap.Bool("dry_run", opts.DryRun))

	start, err := model.ParseDay(opts.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := model.ParseDay(opts.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s", opts.EndDate, opts.StartDate)
	}

	logger.Debug("Fetching employees")
	records, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no employees found, import the directory first")
	}

	employees, err := employeesFromRecords(records)
	if err != nil {
		return nil, err
	}

	holidays, err := resolveConfiguredHolidays(cfg, start, end)
	if err != nil {
		return nil, err
	}

	scheme := model.Scheme(cfg.ShiftScheme)
	input := roster.Input{
		Employees:     employees,
		Dates:         calendar.Days(start, end),
		Holidays:      holidays,
		Scheme:        scheme,
		ImmunityYears: cfg.ImmunityYears,
		SolveBudget:   time.Duration(cfg.SolveBudgetSeconds) * time.Second,
	}

	logger.Info("Solving roster",
		zap.String("start", opts.StartDate),
		zap.String("end", opts.EndDate),
		zap.String("scheme", string(scheme)),
		zap.Int("employees", len(employees)),
		zap.Int("days", len(input.Dates)),
		zap.Int("holidays", len(holidays)))

	res, err := roster.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &SolveRosterResult{
		PeriodStart: start.Format(model.DateLayout),
		PeriodEnd:   end.Format(model.DateLayout),
		Scheme:      scheme,
		Solved:      res.Solved,
		Status:      res.Status.String(),
		Rows:        res.Rows,
		Summary:     res.Summary,
		Spread:      res.Spread,
		Errors:      res.Errors,
	}

	if !res.Solved {
		logger.Warn("Roster not solved",
			zap.String("status", res.Status.String()),
			zap.Strings("errors", res.Errors))
		return result, nil
	}

	logger.Info("Roster solved",
		zap.String("status", res.Status.String()),
		zap.Int("assignments", len(res.Rows)),
		zap.Float64("points_spread", res.Spread))

	if opts.DryRun {
		logger.Info("Dry run requested, roster run not saved")
		return result, nil
	}

	run, assignments, summaries := buildRunRecords(result)
	if err := database.InsertRosterRun(ctx, run, assignments, summaries); err != nil {
		return nil, fmt.Errorf("failed to save roster run: %w", err)
	}

	result.RunID = run.ID
	result.Persisted = true
	logger.Info("Roster run saved",
		zap.String("run_id", run.ID),
		zap.Int("assignments", len(assignments)))

	return result, nil
}

// buildRunRecords converts a solved result into its stored form. Point
// balances are stored as integer tenths so no precision is lost.
func buildRunRecords(result *SolveRosterResult) (*db.RosterRun, []db.RosterAssignment, []db.RosterSummary) {
	run := &db.RosterRun{
		ID:          uuid.New().String(),
		PeriodStart: result.PeriodStart,
		PeriodEnd:   result.PeriodEnd,
		Scheme:      string(result.Scheme),
		Status:      result.Status,
	}

	assignments := make([]db.RosterAssignment, len(result.Rows))
	for i, row := range result.Rows {
		assignments[i] = db.RosterAssignment{
			ID:       uuid.New().String(),
			RunID:    run.ID,
			Day:      row.Date.Format(model.DateLayout),
			Shift:    string(row.Shift),
			Employee: row.Employee,
		}
	}

	summaries := make([]db.RosterSummary, len(result.Summary))
	for i, summary := range result.Summary {
		earnedTenths := int(math.Round(summary.PointsEarned * 10))
		summaries[i] = db.RosterSummary{
			RunID:          run.ID,
			Employee:       summary.Employee,
			StartingPoints: summary.StartingPoints,
			EarnedTenths:   earnedTenths,
			TotalTenths:    summary.StartingPoints*10 + earnedTenths,
		}
	}

	return run, assignments, summaries
}

func resolveConfiguredHolidays(cfg *config.Config, from, to time.Time) ([]time.Time, error) {
	explicit := make([]time.Time, 0, len(cfg.HolidayDates))
	for _, raw := range cfg.HolidayDates {
		day, err := model.ParseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q in config: %w", raw, err)
		}
		explicit = append(explicit, day)
	}

	rules := make([]string, len(cfg.HolidayRules))
	for i, rule := range cfg.HolidayRules {
		rules[i] = rule.RRule
	}

	holidays, err := calendar.ResolveHolidays(explicit, rules, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve holidays: %w", err)
	}
	return holidays, nil
}
