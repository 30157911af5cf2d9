package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// mockListStore implements a test double for ListEmployeesStore
type mockListStore struct {
	employees []db.Employee
	err       error
}

func (m *mockListStore) GetEmployees(ctx context.Context) ([]db.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.employees, nil
}

func TestListEmployees_Statuses(t *testing.T) {
	store := &mockListStore{
		employees: []db.Employee{
			{
				ID:                "emp-1",
				Name:              "Alice Adams",
				Team:              "Platform",
				Role:              "Standard",
				YTDPoints:         6,
				LastHolidayWorked: "2025-12-25",
				Blackouts:         []string{"2026-09-01", "2026-09-02"},
				HolidayBids:       []string{"2026-12-25"},
			},
			{
				ID:   "emp-2",
				Name: "Bob Breck",
				Team: "Support",
				Role: "Weekend-Only",
			},
		},
	}

	statuses, err := ListEmployees(context.Background(), store, zap.NewNop(), date(2026, time.August, 26), 0)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	alice := statuses[0]
	assert.Equal(t, "Alice Adams", alice.Name)
	assert.Equal(t, model.RoleStandard, alice.Role)
	assert.Equal(t, 6, alice.YTDPoints)
	assert.Equal(t, 2, alice.Blackouts)
	assert.Equal(t, 1, alice.HolidayBids)
	assert.Equal(t, "Immune until 2027-12-25", alice.HolidayStatus)

	bob := statuses[1]
	assert.Equal(t, "Available", bob.HolidayStatus)
	assert.Equal(t, 0, bob.Blackouts)
}

func TestListEmployees_ImmunityExpired(t *testing.T) {
	store := &mockListStore{
		employees: []db.Employee{
			{ID: "emp-1", Name: "Alice Adams", Team: "Platform", Role: "Standard", LastHolidayWorked: "2024-01-01"},
		},
	}

	statuses, err := ListEmployees(context.Background(), store, zap.NewNop(), date(2026, time.August, 26), 0)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Available", statuses[0].HolidayStatus)
}

func TestListEmployees_CustomImmunityWindow(t *testing.T) {
	store := &mockListStore{
		employees: []db.Employee{
			{ID: "emp-1", Name: "Alice Adams", Team: "Platform", Role: "Standard", LastHolidayWorked: "2024-01-01"},
		},
	}

	statuses, err := ListEmployees(context.Background(), store, zap.NewNop(), date(2026, time.August, 26), 3)
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "Immune until 2027-01-01", statuses[0].HolidayStatus)
}

func TestListEmployees_BadRecord(t *testing.T) {
	store := &mockListStore{
		employees: []db.Employee{{ID: "emp-1", Name: "Alice Adams", Role: "Manager"}},
	}

	statuses, err := ListEmployees(context.Background(), store, zap.NewNop(), date(2026, time.August, 26), 0)
	assert.Error(t, err)
	assert.Nil(t, statuses)
}

func TestListEmployees_StoreError(t *testing.T) {
	store := &mockListStore{err: assert.AnError}

	statuses, err := ListEmployees(context.Background(), store, zap.NewNop(), date(2026, time.August, 26), 0)
	assert.Error(t, err)
	assert.Nil(t, statuses)
}
