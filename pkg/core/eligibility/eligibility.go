package eligibility

import (
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// DefaultImmunityYears is the holiday-duty immunity window following a
// worked holiday shift.
const DefaultImmunityYears = 2

// CanWork decides whether an employee may legally take a shift on a day.
// Checks run in order: blackout, holiday immunity, day/shift class match,
// role restriction. Pure; no side effects.
func CanWork(emp model.Employee, day time.Time, shift model.Shift, isHoliday bool, immunityYears int) bool {
	if emp.Blackouts.Has(day) {
		return false
	}

	if isHoliday && ImmuneOn(emp, day, immunityYears) {
		return false
	}

	if shift.Class() != dayClass(day, isHoliday) {
		return false
	}

	switch emp.Role {
	case model.RoleNoEvening:
		if shift.IncludesEvening() {
			return false
		}
	case model.RoleWeekendOnly:
		if shift.Class() == model.DayWeekday {
			return false
		}
	}

	return true
}

// ImmuneOn reports whether day still falls inside the employee's holiday
// immunity window.
func ImmuneOn(emp model.Employee, day time.Time, immunityYears int) bool {
	until, ok := ImmuneUntil(emp, immunityYears)
	if !ok {
		return false
	}
	return model.Day(day).Before(until)
}

// ImmuneUntil returns the first day the employee is again available for
// holiday duty, and whether any immunity applies at all. The boundary is
// the calendar anniversary of the last holiday worked; when that day does
// not exist in the target month (a leap day), it clamps to the month's
// last valid day.
func ImmuneUntil(emp model.Employee, immunityYears int) (time.Time, bool) {
	if emp.LastHolidayWorked == nil {
		return time.Time{}, false
	}
	if immunityYears <= 0 {
		immunityYears = DefaultImmunityYears
	}
	return anniversary(*emp.LastHolidayWorked, immunityYears), true
}

func anniversary(d time.Time, years int) time.Time {
	y, m, day := d.Date()
	if last := daysInMonth(y+years, m); day > last {
		day = last
	}
	return time.Date(y+years, m, day, 0, 0, 0, 0, time.UTC)
}

// daysInMonth counts the days in month m of year y. Day zero of the next
// month is the last day of m.
func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dayClass(day time.Time, isHoliday bool) model.DayClass {
	switch {
	case isHoliday:
		return model.DayHoliday
	case day.Weekday() == time.Saturday || day.Weekday() == time.Sunday:
		return model.DayWeekend
	}
	return model.DayWeekday
}
