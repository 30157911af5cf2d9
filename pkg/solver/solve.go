package solver

import (
	"context"
	"time"
)

// The deadline and context are only polled every budgetCheckInterval
// search nodes to keep the hot path cheap.
const budgetCheckInterval = 256

// Solve searches for an assignment satisfying every constraint, minimizing
// the objective if one was set. It returns when the search space is
// exhausted, the budget expires, or ctx is cancelled. A non-positive budget
// means no wall-clock limit.
func (m *Model) Solve(ctx context.Context, budget time.Duration) *Result {
	for i := range m.lo {
		if m.lo[i] > m.hi[i] {
			return &Result{Status: StatusInfeasible}
		}
	}

	s := &searcher{m: m, ctx: ctx}
	if budget > 0 {
		s.deadline = time.Now().Add(budget)
	}

	lo := make([]int, len(m.lo))
	hi := make([]int, len(m.hi))
	copy(lo, m.lo)
	copy(hi, m.hi)
	s.dfs(lo, hi)

	switch {
	case s.hasBest && !s.budgetHit:
		return &Result{Status: StatusOptimal, Objective: s.bestObj, values: s.best}
	case s.hasBest:
		return &Result{Status: StatusFeasible, Objective: s.bestObj, values: s.best}
	case s.budgetHit:
		return &Result{Status: StatusTimeout}
	}
	return &Result{Status: StatusInfeasible}
}

type searcher struct {
	m        *Model
	ctx      context.Context
	deadline time.Time

	nodes     int
	halt      bool
	budgetHit bool

	hasBest bool
	bestObj int
	best    []int
}

func (s *searcher) dfs(lo, hi []int) {
	if s.halted() {
		return
	}
	if !s.propagate(lo, hi) {
		return
	}

	v := pickVar(lo, hi)
	if v < 0 {
		s.record(lo)
		return
	}

	if lo[v] == 0 && hi[v] == 1 {
		// Boolean: trying 1 first satisfies coverage constraints early.
		s.branch(lo, hi, v, 1, 1)
		if s.halt {
			return
		}
		s.branch(lo, hi, v, 0, 0)
		return
	}

	// Integer: split the domain at its midpoint. Explore the half favoured
	// by the objective first so incumbents tighten the cutoff quickly.
	mid := lo[v] + (hi[v]-lo[v])/2
	if s.objCoef(v) < 0 {
		s.branch(lo, hi, v, mid+1, hi[v])
		if s.halt {
			return
		}
		s.branch(lo, hi, v, lo[v], mid)
		return
	}
	s.branch(lo, hi, v, lo[v], mid)
	if s.halt {
		return
	}
	s.branch(lo, hi, v, mid+1, hi[v])
}

func (s *searcher) branch(lo, hi []int, v Var, newLo, newHi int) {
	childLo := make([]int, len(lo))
	childHi := make([]int, len(hi))
	copy(childLo, lo)
	copy(childHi, hi)
	childLo[v] = newLo
	childHi[v] = newHi
	s.dfs(childLo, childHi)
}

// pickVar returns the unfixed variable with the smallest domain, or -1 when
// every variable is fixed.
func pickVar(lo, hi []int) Var {
	best := Var(-1)
	bestSpan := 0
	for i := range lo {
		span := hi[i] - lo[i]
		if span == 0 {
			continue
		}
		if best < 0 || span < bestSpan {
			best = Var(i)
			bestSpan = span
		}
	}
	return best
}

// propagate tightens variable bounds against every constraint until a
// fixpoint. It returns false when some constraint cannot be satisfied.
func (s *searcher) propagate(lo, hi []int) bool {
	for {
		changed := false
		for i := range s.m.cons {
			c := &s.m.cons[i]
			ch, ok := tighten(lo, hi, c.terms, c.lo, c.hi)
			if !ok {
				return false
			}
			changed = changed || ch
		}
		if s.m.minimize && s.hasBest {
			// Only assignments strictly better than the incumbent are
			// worth visiting.
			ch, ok := tighten(lo, hi, s.m.obj, noLower, s.bestObj-1)
			if !ok {
				return false
			}
			changed = changed || ch
		}
		if !changed {
			return true
		}
	}
}

// tighten narrows the bounds of each variable in terms so that Σ terms can
// still land in [cLo, cHi]. It reports whether any bound moved and whether
// the constraint remains satisfiable.
func tighten(lo, hi []int, terms []Term, cLo, cHi int) (bool, bool) {
	minAct, maxAct := 0, 0
	for _, t := range terms {
		if t.Coef >= 0 {
			minAct += t.Coef * lo[t.Var]
			maxAct += t.Coef * hi[t.Var]
		} else {
			minAct += t.Coef * hi[t.Var]
			maxAct += t.Coef * lo[t.Var]
		}
	}
	if minAct > cHi || maxAct < cLo {
		return false, false
	}

	changed := false
	for _, t := range terms {
		if t.Coef == 0 {
			continue
		}
		v := t.Var
		var termMin, termMax int
		if t.Coef > 0 {
			termMin, termMax = t.Coef*lo[v], t.Coef*hi[v]
		} else {
			termMin, termMax = t.Coef*hi[v], t.Coef*lo[v]
		}

		if cHi < noUpper {
			// t.Coef*x <= cHi - (minimum the rest contributes)
			bound := cHi - (minAct - termMin)
			if t.Coef > 0 {
				if nh := floorDiv(bound, t.Coef); nh < hi[v] {
					hi[v] = nh
					changed = true
				}
			} else {
				if nl := ceilDiv(bound, t.Coef); nl > lo[v] {
					lo[v] = nl
					changed = true
				}
			}
		}
		if cLo > noLower {
			// t.Coef*x >= cLo - (maximum the rest contributes)
			bound := cLo - (maxAct - termMax)
			if t.Coef > 0 {
				if nl := ceilDiv(bound, t.Coef); nl > lo[v] {
					lo[v] = nl
					changed = true
				}
			} else {
				if nh := floorDiv(bound, t.Coef); nh < hi[v] {
					hi[v] = nh
					changed = true
				}
			}
		}
		if lo[v] > hi[v] {
			return false, false
		}
	}
	return changed, true
}

// record stores a fully fixed assignment if it beats the incumbent. Without
// an objective the first assignment ends the search.
func (s *searcher) record(values []int) {
	obj := 0
	for _, t := range s.m.obj {
		obj += t.Coef * values[t.Var]
	}
	if !s.hasBest || obj < s.bestObj {
		s.best = make([]int, len(values))
		copy(s.best, values)
		s.bestObj = obj
		s.hasBest = true
	}
	if !s.m.minimize {
		s.halt = true
	}
}

func (s *searcher) objCoef(v Var) int {
	for _, t := range s.m.obj {
		if t.Var == v {
			return t.Coef
		}
	}
	return 0
}

func (s *searcher) halted() bool {
	if s.halt {
		return true
	}
	s.nodes++
	if s.nodes%budgetCheckInterval == 0 {
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			s.halt = true
			s.budgetHit = true
		} else if s.ctx != nil && s.ctx.Err() != nil {
			s.halt = true
			s.budgetHit = true
		}
	}
	return s.halt
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
