package model

import "time"

// DateLayout is the wire format for calendar dates throughout the system.
const DateLayout = "2006-01-02"

// Role classifies which shifts an employee may be assigned.
type Role string

const (
	RoleStandard    Role = "Standard"
	RoleNoEvening   Role = "No-Evening"
	RoleWeekendOnly Role = "Weekend-Only"
)

func (r Role) IsValid() bool {
	return r == RoleStandard || r == RoleNoEvening || r == RoleWeekendOnly
}

// DayClass is the rostering category of a calendar date.
// A public holiday outranks a weekend, which outranks a weekday.
type DayClass string

const (
	DayWeekday DayClass = "weekday"
	DayWeekend DayClass = "weekend"
	DayHoliday DayClass = "holiday"
)

// Scheme selects the shift granularity a roster runs under.
type Scheme string

const (
	// SchemeSplit rosters separate morning and evening slots every day.
	SchemeSplit Scheme = "split"
	// SchemeFullDay rosters a single evening slot on weekdays and one
	// full-day slot on weekends and holidays.
	SchemeFullDay Scheme = "full-day"
)

func (s Scheme) IsValid() bool {
	return s == SchemeSplit || s == SchemeFullDay
}

// Shift identifies a duty slot within a day.
type Shift string

const (
	ShiftWeekdayAM   Shift = "WEEKDAY_AM"
	ShiftWeekdayPM   Shift = "WEEKDAY_PM"
	ShiftWeekendAM   Shift = "WEEKEND_AM"
	ShiftWeekendPM   Shift = "WEEKEND_PM"
	ShiftHolidayAM   Shift = "HOLIDAY_AM"
	ShiftHolidayPM   Shift = "HOLIDAY_PM"
	ShiftWeekendFull Shift = "WEEKEND_FULL"
	ShiftHolidayFull Shift = "HOLIDAY_FULL"
)

// Class returns the day class a shift belongs to. A shift may only be
// rostered on a date of the same class.
func (s Shift) Class() DayClass {
	switch s {
	case ShiftWeekdayAM, ShiftWeekdayPM:
		return DayWeekday
	case ShiftWeekendAM, ShiftWeekendPM, ShiftWeekendFull:
		return DayWeekend
	case ShiftHolidayAM, ShiftHolidayPM, ShiftHolidayFull:
		return DayHoliday
	}
	return DayWeekday
}

// IncludesEvening reports whether the shift covers the evening. Full-day
// shifts end the day the same way a PM shift does, so they count.
func (s Shift) IncludesEvening() bool {
	switch s {
	case ShiftWeekdayPM, ShiftWeekendPM, ShiftHolidayPM, ShiftWeekendFull, ShiftHolidayFull:
		return true
	}
	return false
}

func (s Shift) IsValid() bool {
	switch s {
	case ShiftWeekdayAM, ShiftWeekdayPM, ShiftWeekendAM, ShiftWeekendPM,
		ShiftHolidayAM, ShiftHolidayPM, ShiftWeekendFull, ShiftHolidayFull:
		return true
	}
	return false
}

// DateSet is a membership set of calendar dates keyed by DateLayout.
type DateSet map[string]bool

// NewDateSet builds a DateSet from the given days.
func NewDateSet(days ...time.Time) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s[d.Format(DateLayout)] = true
	}
	return s
}

// Has reports whether day is in the set. Safe on a nil set.
func (s DateSet) Has(day time.Time) bool {
	return s[day.Format(DateLayout)]
}

// Add inserts day into the set.
func (s DateSet) Add(day time.Time) {
	s[day.Format(DateLayout)] = true
}

// Day truncates a timestamp to its calendar date in UTC. All dates flowing
// through the roster engine are normalized with it.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a DateLayout string into a normalized date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Employee is a rosterable staff member.
type Employee struct {
	Name      string
	Team      string
	Role      Role
	YTDPoints int

	// Blackouts are dates of categorical unavailability.
	Blackouts DateSet

	// HolidayBids are dates the employee asked to work a holiday shift.
	HolidayBids DateSet

	// LastHolidayWorked drives time-boxed holiday immunity. Nil when the
	// employee has never worked a holiday shift.
	LastHolidayWorked *time.Time
}

// RosterRow is one solved duty assignment.
type RosterRow struct {
	Date     time.Time
	DayName  string
	Employee string
	Shift    Shift
}

// SummaryRow reports one employee's points movement over a rostered period.
type SummaryRow struct {
	Employee       string
	StartingPoints int
	PointsEarned   float64
	TotalPoints    float64
}
