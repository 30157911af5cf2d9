package roster

import "github.com/jakechorley/duty-roster/pkg/core/model"

// Shift weights are in tenths of a point so the weekend premium stays
// integral for the solver.
const (
	// WeightWeekday is the value of any weekday shift.
	WeightWeekday = 10
	// WeightWeekendHoliday is the value of any weekend or holiday shift.
	WeightWeekendHoliday = 15
	// PointScale converts whole points to solver tenths.
	PointScale = 10
)

func shiftWeight(s model.Shift) int {
	if s.Class() == model.DayWeekday {
		return WeightWeekday
	}
	return WeightWeekendHoliday
}
