package roster

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/eligibility"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/solver"
)

// slotVar ties a solver variable to the assignment it stands for.
type slotVar struct {
	emp   int
	date  time.Time
	shift model.Shift
	v     solver.Var
}

type empDateKey struct {
	emp  int
	date string
}

type slotKey struct {
	date  string
	shift model.Shift
}

// builder accumulates the constraint model for one rostering period.
type builder struct {
	in  *Input
	cal *calendar.Classifier
	m   *solver.Model

	vars []slotVar
	// byEmpDate groups variable indices per employee per day for the
	// one-shift-a-day and rest constraints; eveningByEmpDate holds the
	// subset whose shift runs into the evening.
	byEmpDate        map[empDateKey][]int
	eveningByEmpDate map[empDateKey][]int
	bySlot           map[slotKey][]int

	errs []string
}

func newBuilder(in *Input, cal *calendar.Classifier) *builder {
	return &builder{
		in:               in,
		cal:              cal,
		m:                solver.NewModel(),
		byEmpDate:        make(map[empDateKey][]int),
		eveningByEmpDate: make(map[empDateKey][]int),
		bySlot:           make(map[slotKey][]int),
	}
}

// build assembles the full model. When any slot has no eligible employee it
// records one error per unfillable slot and adds no further constraints.
func (b *builder) build() {
	b.addSlots()
	if len(b.errs) > 0 {
		return
	}
	b.addOneShiftPerDay()
	b.addRest()
	b.addHolidayBids()
	b.addFairnessObjective()
}

// addSlots creates one boolean per eligible (employee, day, shift) triple
// and requires each slot to be filled exactly once.
func (b *builder) addSlots() {
	for _, date := range b.in.Dates {
		isHoliday := b.cal.IsHoliday(date)
		day := dateKey(date)
		for _, shift := range b.cal.ShiftsFor(date) {
			var terms []solver.Term
			for e := range b.in.Employees {
				if !eligibility.CanWork(b.in.Employees[e], date, shift, isHoliday, b.in.ImmunityYears) {
					continue
				}
				v := b.m.NewBool(fmt.Sprintf("assign_%d_%s_%s", e, day, shift))
				idx := len(b.vars)
				b.vars = append(b.vars, slotVar{emp: e, date: date, shift: shift, v: v})
				terms = append(terms, solver.Term{Var: v, Coef: 1})

				edKey := empDateKey{emp: e, date: day}
				b.byEmpDate[edKey] = append(b.byEmpDate[edKey], idx)
				if shift.IncludesEvening() {
					b.eveningByEmpDate[edKey] = append(b.eveningByEmpDate[edKey], idx)
				}
				sKey := slotKey{date: day, shift: shift}
				b.bySlot[sKey] = append(b.bySlot[sKey], idx)
			}
			if len(terms) == 0 {
				b.errs = append(b.errs, fmt.Sprintf("impossible to fill %s (%s): no eligible employees", day, shift))
				continue
			}
			b.m.AddSumEquals(terms, 1)
		}
	}
}

func (b *builder) addOneShiftPerDay() {
	for e := range b.in.Employees {
		for _, date := range b.in.Dates {
			idxs := b.byEmpDate[empDateKey{emp: e, date: dateKey(date)}]
			if len(idxs) < 2 {
				continue
			}
			terms := make([]solver.Term, 0, len(idxs))
			for _, i := range idxs {
				terms = append(terms, solver.Term{Var: b.vars[i].v, Coef: 1})
			}
			b.m.AddSumAtMost(terms, 1)
		}
	}
}

// addRest forbids working the day after an evening shift. It only binds
// pairs of days that are actually calendar-consecutive, so gaps in the
// rostered dates impose nothing.
func (b *builder) addRest() {
	for i := 0; i+1 < len(b.in.Dates); i++ {
		day, next := b.in.Dates[i], b.in.Dates[i+1]
		if !next.Equal(day.AddDate(0, 0, 1)) {
			continue
		}
		for e := range b.in.Employees {
			evenings := b.eveningByEmpDate[empDateKey{emp: e, date: dateKey(day)}]
			if len(evenings) == 0 {
				continue
			}
			nextIdxs := b.byEmpDate[empDateKey{emp: e, date: dateKey(next)}]
			if len(nextIdxs) == 0 {
				continue
			}
			for _, ev := range evenings {
				terms := make([]solver.Term, 0, len(nextIdxs)+1)
				terms = append(terms, solver.Term{Var: b.vars[ev].v, Coef: 1})
				for _, ni := range nextIdxs {
					terms = append(terms, solver.Term{Var: b.vars[ni].v, Coef: 1})
				}
				b.m.AddSumAtMost(terms, 1)
			}
		}
	}
}

// addHolidayBids reserves each holiday slot for its bidders whenever at
// least one bidder is eligible for it. Slots nobody bid on fill normally.
func (b *builder) addHolidayBids() {
	for _, date := range b.in.Dates {
		if !b.cal.IsHoliday(date) {
			continue
		}
		for _, shift := range b.cal.ShiftsFor(date) {
			idxs := b.bySlot[slotKey{date: dateKey(date), shift: shift}]
			var terms []solver.Term
			for _, i := range idxs {
				if b.in.Employees[b.vars[i].emp].HolidayBids.Has(date) {
					terms = append(terms, solver.Term{Var: b.vars[i].v, Coef: 1})
				}
			}
			if len(terms) == 0 {
				continue
			}
			b.m.AddSumEquals(terms, 1)
		}
	}
}

func dateKey(t time.Time) string {
	return t.Format(model.DateLayout)
}
