package calendar

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Classifier maps calendar dates to their day class and to the shifts that
// must all be covered on them under the active scheme.
type Classifier struct {
	scheme   model.Scheme
	holidays model.DateSet
}

// New builds a classifier for the given scheme over the given holiday dates.
func New(scheme model.Scheme, holidays []time.Time) *Classifier {
	return &Classifier{
		scheme:   scheme,
		holidays: model.NewDateSet(holidays...),
	}
}

// Scheme returns the active shift scheme.
func (c *Classifier) Scheme() model.Scheme {
	return c.scheme
}

// IsHoliday reports whether day is a public holiday.
func (c *Classifier) IsHoliday(day time.Time) bool {
	return c.holidays.Has(day)
}

// Classify returns the rostering class of day. A public holiday outranks a
// weekend, which outranks a weekday.
func (c *Classifier) Classify(day time.Time) model.DayClass {
	switch {
	case c.holidays.Has(day):
		return model.DayHoliday
	case IsWeekend(day):
		return model.DayWeekend
	}
	return model.DayWeekday
}

// ShiftsFor returns the shifts requiring coverage on day, in a fixed order.
func (c *Classifier) ShiftsFor(day time.Time) []model.Shift {
	class := c.Classify(day)

	if c.scheme == model.SchemeFullDay {
		switch class {
		case model.DayHoliday:
			return []model.Shift{model.ShiftHolidayFull}
		case model.DayWeekend:
			return []model.Shift{model.ShiftWeekendFull}
		}
		return []model.Shift{model.ShiftWeekdayPM}
	}

	switch class {
	case model.DayHoliday:
		return []model.Shift{model.ShiftHolidayAM, model.ShiftHolidayPM}
	case model.DayWeekend:
		return []model.Shift{model.ShiftWeekendAM, model.ShiftWeekendPM}
	}
	return []model.Shift{model.ShiftWeekdayAM, model.ShiftWeekdayPM}
}

// IsWeekend reports whether day falls on a Saturday or Sunday.
func IsWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Days returns every date from from through to inclusive, normalized to
// midnight UTC. An empty slice is returned when to precedes from.
func Days(from, to time.Time) []time.Time {
	start := model.Day(from)
	end := model.Day(to)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
