package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// mockRecordStore implements a test double for RecordPointsStore
type mockRecordStore struct {
	mockRunStore
	employees       []db.Employee
	getEmployeesErr error
	updateErr       error

	updates []db.EmployeePointsUpdate
}

func (m *mockRecordStore) GetEmployees(ctx context.Context) ([]db.Employee, error) {
	if m.getEmployeesErr != nil {
		return nil, m.getEmployeesErr
	}
	return m.employees, nil
}

func (m *mockRecordStore) UpdateEmployeePoints(ctx context.Context, updates []db.EmployeePointsUpdate) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = updates
	return nil
}

// mockDirectoryPoints implements a test double for DirectoryPointsClient
type mockDirectoryPoints struct {
	updates []sheetsclient.PointsUpdate
	missing []string
	err     error
}

func (m *mockDirectoryPoints) UpdateDirectoryPoints(cfg *config.Config, updates []sheetsclient.PointsUpdate) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.updates = updates
	return m.missing, nil
}

func recordFixture() *mockRecordStore {
	return &mockRecordStore{
		mockRunStore: mockRunStore{
			runs: []db.RosterRun{
				{
					ID:          "run-1",
					PeriodStart: "2026-12-21",
					PeriodEnd:   "2026-12-27",
					Scheme:      "full-day",
					Status:      "optimal",
					CreatedAt:   "2026-12-18T09:00:00Z",
				},
			},
			assignments: map[string][]db.RosterAssignment{
				"run-1": {
					{ID: "a-1", RunID: "run-1", Day: "2026-12-23", Shift: "WEEKDAY_PM", Employee: "Alice Adams"},
					{ID: "a-2", RunID: "run-1", Day: "2026-12-24", Shift: "WEEKDAY_PM", Employee: "Bob Breck"},
					{ID: "a-3", RunID: "run-1", Day: "2026-12-25", Shift: "HOLIDAY_FULL", Employee: "Alice Adams"},
				},
			},
			summaries: map[string][]db.RosterSummary{
				"run-1": {
					{RunID: "run-1", Employee: "Alice Adams", StartingPoints: 3, EarnedTenths: 25, TotalTenths: 55},
					{RunID: "run-1", Employee: "Bob Breck", StartingPoints: 2, EarnedTenths: 10, TotalTenths: 30},
					{RunID: "run-1", Employee: "Ghost Gwen", StartingPoints: 0, EarnedTenths: 0, TotalTenths: 0},
				},
			},
		},
		employees: []db.Employee{
			{ID: "emp-1", Name: "Alice Adams", Team: "Platform", Role: "Standard", YTDPoints: 3},
			{ID: "emp-2", Name: "Bob Breck", Team: "Support", Role: "Standard", YTDPoints: 2},
		},
	}
}

func TestRecordPoints_UpdatesBalances(t *testing.T) {
	store := recordFixture()

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "run-1", false)
	require.NoError(t, err)

	assert.Equal(t, "run-1", result.RunID)
	assert.False(t, result.SheetSynced)
	assert.Equal(t, []string{"Ghost Gwen"}, result.SkippedUnknown)

	require.Len(t, store.updates, 2)

	alice := store.updates[0]
	assert.Equal(t, "emp-1", alice.ID)
	assert.Equal(t, 6, alice.YTDPoints, "55 tenths round up to 6 points")
	assert.Equal(t, "2026-12-25", alice.LastHolidayWorked)

	bob := store.updates[1]
	assert.Equal(t, "emp-2", bob.ID)
	assert.Equal(t, 3, bob.YTDPoints)
	assert.Empty(t, bob.LastHolidayWorked, "no holiday shift in the run")

	require.Len(t, result.Updated, 2)
	assert.Equal(t, 3, result.Updated[0].PreviousPoints)
	assert.Equal(t, 6, result.Updated[0].NewPoints)
	assert.True(t, result.Updated[0].Rounded)
	assert.False(t, result.Updated[1].Rounded)
}

func TestRecordPoints_DefaultsToLatestRun(t *testing.T) {
	store := recordFixture()
	store.runs = append(store.runs, db.RosterRun{
		ID:        "run-0",
		Status:    "optimal",
		CreatedAt: "2026-11-01T09:00:00Z",
	})

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "", false)
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.RunID)
}

func TestRecordPoints_SyncSheet(t *testing.T) {
	store := recordFixture()
	directory := &mockDirectoryPoints{missing: []string{"Bob Breck"}}

	result, err := RecordPoints(context.Background(), store, directory, testConfig(), zap.NewNop(), "run-1", true)
	require.NoError(t, err)

	assert.True(t, result.SheetSynced)
	assert.Equal(t, []string{"Bob Breck"}, result.MissingFromSheet)

	require.Len(t, directory.updates, 2)
	assert.Equal(t, "Alice Adams", directory.updates[0].Name)
	assert.Equal(t, 6, directory.updates[0].YTDPoints)
	assert.Equal(t, "2026-12-25", directory.updates[0].LastHolidayWorked)
}

func TestRecordPoints_SyncSheetError(t *testing.T) {
	store := recordFixture()
	directory := &mockDirectoryPoints{err: assert.AnError}

	result, err := RecordPoints(context.Background(), store, directory, testConfig(), zap.NewNop(), "run-1", true)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to sync points")
}

func TestRecordPoints_SyncWithoutClient(t *testing.T) {
	store := recordFixture()

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "run-1", true)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "directory client required")
}

func TestRecordPoints_NoSummaries(t *testing.T) {
	store := recordFixture()
	store.summaries = nil

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "run-1", false)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "has no summaries")
}

func TestRecordPoints_NoMatchingEmployees(t *testing.T) {
	store := recordFixture()
	store.employees = nil

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "run-1", false)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no matching employees")
}

func TestRecordPoints_UpdateError(t *testing.T) {
	store := recordFixture()
	store.updateErr = assert.AnError

	result, err := RecordPoints(context.Background(), store, nil, testConfig(), zap.NewNop(), "run-1", false)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to update employee points")
}

func TestLatestHolidayWorked(t *testing.T) {
	assignments := []db.RosterAssignment{
		{Day: "2026-12-25", Shift: "HOLIDAY_FULL", Employee: "Alice Adams"},
		{Day: "2026-12-28", Shift: "HOLIDAY_FULL", Employee: "Alice Adams"},
		{Day: "2026-12-26", Shift: "WEEKEND_FULL", Employee: "Bob Breck"},
		{Day: "2026-12-25", Shift: "HOLIDAY_AM", Employee: "Carol Chu"},
	}

	latest := latestHolidayWorked(assignments)
	assert.Equal(t, "2026-12-28", latest["Alice Adams"])
	assert.Equal(t, "2026-12-25", latest["Carol Chu"])
	assert.NotContains(t, latest, "Bob Breck")
}
