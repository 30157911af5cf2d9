package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify_HolidayBeatsWeekend(t *testing.T) {
	// Sat Jan 1 2022 is both a weekend day and a configured holiday
	c := New(model.SchemeSplit, []time.Time{date(2022, time.January, 1)})

	assert.Equal(t, model.DayHoliday, c.Classify(date(2022, time.January, 1)))
	assert.True(t, c.IsHoliday(date(2022, time.January, 1)))
}

func TestClassify_WeekendAndWeekday(t *testing.T) {
	c := New(model.SchemeSplit, nil)

	assert.Equal(t, model.DayWeekend, c.Classify(date(2026, time.March, 7)))  // Saturday
	assert.Equal(t, model.DayWeekend, c.Classify(date(2026, time.March, 8)))  // Sunday
	assert.Equal(t, model.DayWeekday, c.Classify(date(2026, time.March, 4)))  // Wednesday
	assert.False(t, c.IsHoliday(date(2026, time.March, 4)))
}

func TestShiftsFor_SplitScheme(t *testing.T) {
	holiday := date(2026, time.January, 1) // Thursday
	c := New(model.SchemeSplit, []time.Time{holiday})

	assert.Equal(t,
		[]model.Shift{model.ShiftWeekdayAM, model.ShiftWeekdayPM},
		c.ShiftsFor(date(2026, time.March, 4)))
	assert.Equal(t,
		[]model.Shift{model.ShiftWeekendAM, model.ShiftWeekendPM},
		c.ShiftsFor(date(2026, time.March, 7)))
	assert.Equal(t,
		[]model.Shift{model.ShiftHolidayAM, model.ShiftHolidayPM},
		c.ShiftsFor(holiday))
}

func TestShiftsFor_FullDayScheme(t *testing.T) {
	holiday := date(2026, time.January, 1)
	c := New(model.SchemeFullDay, []time.Time{holiday})

	assert.Equal(t, []model.Shift{model.ShiftWeekdayPM}, c.ShiftsFor(date(2026, time.March, 4)))
	assert.Equal(t, []model.Shift{model.ShiftWeekendFull}, c.ShiftsFor(date(2026, time.March, 7)))
	assert.Equal(t, []model.Shift{model.ShiftHolidayFull}, c.ShiftsFor(holiday))
}

func TestDays_InclusiveRange(t *testing.T) {
	days := Days(date(2026, time.March, 2), date(2026, time.March, 8))

	require.Len(t, days, 7)
	assert.Equal(t, date(2026, time.March, 2), days[0])
	assert.Equal(t, date(2026, time.March, 8), days[6])
}

func TestDays_SingleDay(t *testing.T) {
	days := Days(date(2026, time.March, 2), date(2026, time.March, 2))
	require.Len(t, days, 1)
}

func TestDays_ReversedRange(t *testing.T) {
	days := Days(date(2026, time.March, 8), date(2026, time.March, 2))
	assert.Empty(t, days)
}

func TestResolveHolidays_YearlyRule(t *testing.T) {
	days, err := ResolveHolidays(nil,
		[]string{"FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		date(2025, time.December, 1), date(2027, time.February, 1))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, date(2026, time.January, 1), days[0])
	assert.Equal(t, date(2027, time.January, 1), days[1])
}

func TestResolveHolidays_WeeklyRule(t *testing.T) {
	days, err := ResolveHolidays(nil,
		[]string{"FREQ=WEEKLY;BYDAY=MO"},
		date(2026, time.March, 2), date(2026, time.March, 15))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, date(2026, time.March, 2), days[0])
	assert.Equal(t, date(2026, time.March, 9), days[1])
}

func TestResolveHolidays_ExplicitAndRuleDeduplicated(t *testing.T) {
	days, err := ResolveHolidays(
		[]time.Time{date(2026, time.January, 1), date(2026, time.April, 3)},
		[]string{"FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1"},
		date(2026, time.January, 1), date(2026, time.December, 31))
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, date(2026, time.January, 1), days[0])
	assert.Equal(t, date(2026, time.April, 3), days[1])
}

func TestResolveHolidays_InvalidRule(t *testing.T) {
	_, err := ResolveHolidays(nil, []string{"NOT_A_RULE"},
		date(2026, time.January, 1), date(2026, time.December, 31))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid holiday rule")
}
