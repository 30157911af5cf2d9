package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabTitle(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			name:  "one week",
			start: date(2026, time.March, 2),
			end:   date(2026, time.March, 8),
			want:  "Mon Mar 02 2026 - Sun Mar 08 2026",
		},
		{
			name:  "single day",
			start: date(2026, time.December, 25),
			end:   date(2026, time.December, 25),
			want:  "Fri Dec 25 2026 - Fri Dec 25 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tabTitle(tt.start, tt.end))
		})
	}
}

func TestBuildRosterValues(t *testing.T) {
	published := &PublishedRoster{
		PeriodStart: date(2026, time.March, 2),
		PeriodEnd:   date(2026, time.March, 3),
		Rows: []PublishedRow{
			{Date: date(2026, time.March, 2), Shift: "WEEKDAY_PM", Employee: "Alice Adams"},
			{Date: date(2026, time.March, 3), Shift: "WEEKDAY_PM", Employee: "Bob Breck"},
		},
		Summary: []PublishedSummary{
			{Employee: "Alice Adams", StartingPoints: 3, PointsEarned: 1.0, TotalPoints: 4.0},
			{Employee: "Bob Breck", StartingPoints: 0, PointsEarned: 1.0, TotalPoints: 1.0},
		},
	}

	values := buildRosterValues(published)
	require.Len(t, values, 7)

	assert.Equal(t, []interface{}{"Date", "Day", "Shift", "Employee"}, values[0])
	assert.Equal(t, []interface{}{"2026-03-02", "Monday", "WEEKDAY_PM", "Alice Adams"}, values[1])
	assert.Equal(t, []interface{}{"2026-03-03", "Tuesday", "WEEKDAY_PM", "Bob Breck"}, values[2])

	assert.Empty(t, values[3])
	assert.Equal(t, []interface{}{"Employee", "Starting Points", "Points Earned", "Total Points"}, values[4])
	assert.Equal(t, []interface{}{"Alice Adams", 3, 1.0, 4.0}, values[5])
	assert.Equal(t, []interface{}{"Bob Breck", 0, 1.0, 1.0}, values[6])
}
