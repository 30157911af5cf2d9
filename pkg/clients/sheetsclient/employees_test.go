package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func directoryHeader() []interface{} {
	return []interface{}{"Name", "Team", "Role", "YTD Points", "Blackout Dates", "Holiday Bids", "Last Holiday Worked"}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseEmployeesValidRows(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"Alice Adams", "Platform", "Standard", "12", "2026-03-02, 2026-03-03", "2026-12-25", "2025-12-25"},
		{"Bob Breck", "Support", "No-Evening", "0", "", "", ""},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, employees, 2)

	alice := employees[0]
	assert.Equal(t, "Alice Adams", alice.Name)
	assert.Equal(t, "Platform", alice.Team)
	assert.Equal(t, model.RoleStandard, alice.Role)
	assert.Equal(t, 12, alice.YTDPoints)
	assert.True(t, alice.Blackouts.Has(date(2026, time.March, 2)))
	assert.True(t, alice.Blackouts.Has(date(2026, time.March, 3)))
	assert.False(t, alice.Blackouts.Has(date(2026, time.March, 4)))
	assert.True(t, alice.HolidayBids.Has(date(2026, time.December, 25)))
	require.NotNil(t, alice.LastHolidayWorked)
	assert.Equal(t, date(2025, time.December, 25), *alice.LastHolidayWorked)

	bob := employees[1]
	assert.Equal(t, model.RoleNoEvening, bob.Role)
	assert.Equal(t, 0, bob.YTDPoints)
	assert.Nil(t, bob.Blackouts)
	assert.Nil(t, bob.HolidayBids)
	assert.Nil(t, bob.LastHolidayWorked)
}

func TestParseEmployeesSkipsRowsMissingNameOrTeam(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"", "Platform", "Standard", "1", "", "", ""},
		{"Carol Chu", "", "Standard", "2", "", "", ""},
		{"Dan Deeds", "Support", "Standard", "3", "", "", ""},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Dan Deeds", employees[0].Name)

	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "row 2")
	assert.Contains(t, warnings[0], "missing name")
	assert.Contains(t, warnings[1], "row 3")
	assert.Contains(t, warnings[1], "Carol Chu")
}

func TestParseEmployeesUnknownRoleDefaultsToStandard(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"Eve Early", "Platform", "Night Manager", "0", "", "", ""},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, model.RoleStandard, employees[0].Role)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown role")
	assert.Contains(t, warnings[0], "Night Manager")
}

func TestParseEmployeesDuplicateKeepsFirst(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"Fay Field", "Platform", "Standard", "4", "", "", ""},
		{"Fay Field", "Support", "Weekend-Only", "9", "", "", ""},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Platform", employees[0].Team)
	assert.Equal(t, 4, employees[0].YTDPoints)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "duplicate employee Fay Field")
}

func TestParseEmployeesWarnsOnBadDatesAndPoints(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"Gus Grant", "Platform", "Standard", "lots", "2026-03-02; not-a-date", "", "yesterday"},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	require.Len(t, employees, 1)

	gus := employees[0]
	assert.Equal(t, 0, gus.YTDPoints)
	assert.True(t, gus.Blackouts.Has(date(2026, time.March, 2)))
	assert.Len(t, gus.Blackouts, 1)
	assert.Nil(t, gus.LastHolidayWorked)

	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "invalid YTD points")
	assert.Contains(t, warnings[1], "invalid blackout date")
	assert.Contains(t, warnings[2], "invalid last holiday worked")
}

func TestParseEmployeesNumericPointsCell(t *testing.T) {
	values := [][]interface{}{
		directoryHeader(),
		{"Hana Holt", "Platform", "Standard", float64(7), "", "", ""},
	}

	employees, warnings, err := parseEmployees(values)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, employees, 1)
	assert.Equal(t, 7, employees[0].YTDPoints)
}

func TestParseEmployeesMissingHeaderField(t *testing.T) {
	values := [][]interface{}{
		{"Name", "Team", "Role", "YTD Points", "Blackout Dates", "Holiday Bids"},
		{"Ivy Ito", "Platform", "Standard", "0", "", ""},
	}

	_, _, err := parseEmployees(values)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Last Holiday Worked")
}

func TestParseEmployeesEmptySheet(t *testing.T) {
	_, _, err := parseEmployees(nil)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  model.Role
		known bool
	}{
		{
			name:  "standard",
			raw:   "Standard",
			want:  model.RoleStandard,
			known: true,
		},
		{
			name:  "empty defaults to standard",
			raw:   "",
			want:  model.RoleStandard,
			known: true,
		},
		{
			name:  "no evening with space",
			raw:   "No Evening",
			known: true,
			want:  model.RoleNoEvening,
		},
		{
			name:  "weekend only upper snake",
			raw:   "WEEKEND_ONLY",
			want:  model.RoleWeekendOnly,
			known: true,
		},
		{
			name:  "unknown role",
			raw:   "Night Manager",
			want:  model.RoleStandard,
			known: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := parseRole(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestSplitDates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma separated",
			raw:  "2026-01-01, 2026-01-02",
			want: []string{"2026-01-01", "2026-01-02"},
		},
		{
			name: "mixed separators",
			raw:  "2026-01-01;2026-01-02\n2026-01-03",
			want: []string{"2026-01-01", "2026-01-02", "2026-01-03"},
		},
		{
			name: "empty tokens dropped",
			raw:  " , ;\n2026-01-01,",
			want: []string{"2026-01-01"},
		},
		{
			name: "empty cell",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDates(tt.raw))
		})
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{index: 0, want: "A"},
		{index: 3, want: "D"},
		{index: 25, want: "Z"},
		{index: 26, want: "AA"},
		{index: 51, want: "AZ"},
		{index: 52, want: "BA"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, columnLetter(tt.index))
		})
	}
}
