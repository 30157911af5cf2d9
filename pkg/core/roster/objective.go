package roster

import "github.com/jakechorley/duty-roster/pkg/solver"

// addFairnessObjective minimizes the spread between the highest and lowest
// projected points balance. Each employee's balance is their year-to-date
// points plus the weights of the shifts assigned to them, all in tenths.
// Employees with no eligible slots still anchor the bounds with their
// starting balance.
func (b *builder) addFairnessObjective() {
	weighted := make([][]solver.Term, len(b.in.Employees))
	for _, sv := range b.vars {
		weighted[sv.emp] = append(weighted[sv.emp], solver.Term{Var: sv.v, Coef: shiftWeight(sv.shift)})
	}

	maxTotal := 0
	for e := range b.in.Employees {
		total := b.in.Employees[e].YTDPoints * PointScale
		for _, t := range weighted[e] {
			total += t.Coef
		}
		if total > maxTotal {
			maxTotal = total
		}
	}

	upper := b.m.NewInt("points_upper", 0, maxTotal)
	lower := b.m.NewInt("points_lower", 0, maxTotal)

	for e := range b.in.Employees {
		base := b.in.Employees[e].YTDPoints * PointScale

		// upper >= base + Σ w*x
		up := make([]solver.Term, 0, len(weighted[e])+1)
		up = append(up, solver.Term{Var: upper, Coef: 1})
		for _, t := range weighted[e] {
			up = append(up, solver.Term{Var: t.Var, Coef: -t.Coef})
		}
		b.m.AddSumAtLeast(up, base)

		// lower <= base + Σ w*x
		low := make([]solver.Term, 0, len(weighted[e])+1)
		low = append(low, solver.Term{Var: lower, Coef: 1})
		for _, t := range weighted[e] {
			low = append(low, solver.Term{Var: t.Var, Coef: -t.Coef})
		}
		b.m.AddSumAtMost(low, base)
	}

	b.m.Minimize([]solver.Term{{Var: upper, Coef: 1}, {Var: lower, Coef: -1}})
}
