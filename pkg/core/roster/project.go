package roster

import (
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/solver"
)

// project converts a solved model into roster rows ordered by day and shift,
// plus a points summary in the order the employees were supplied.
func (b *builder) project(res *solver.Result) ([]model.RosterRow, []model.SummaryRow) {
	earned := make([]int, len(b.in.Employees))

	var rows []model.RosterRow
	for _, date := range b.in.Dates {
		for _, shift := range b.cal.ShiftsFor(date) {
			for _, i := range b.bySlot[slotKey{date: dateKey(date), shift: shift}] {
				if !res.BoolValue(b.vars[i].v) {
					continue
				}
				sv := b.vars[i]
				rows = append(rows, model.RosterRow{
					Date:     date,
					DayName:  date.Weekday().String(),
					Employee: b.in.Employees[sv.emp].Name,
					Shift:    shift,
				})
				earned[sv.emp] += shiftWeight(shift)
			}
		}
	}

	summary := make([]model.SummaryRow, 0, len(b.in.Employees))
	for e, emp := range b.in.Employees {
		pts := float64(earned[e]) / PointScale
		summary = append(summary, model.SummaryRow{
			Employee:       emp.Name,
			StartingPoints: emp.YTDPoints,
			PointsEarned:   pts,
			TotalPoints:    float64(emp.YTDPoints) + pts,
		})
	}
	return rows, summary
}
