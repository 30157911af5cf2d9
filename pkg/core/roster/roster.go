// Package roster turns a set of employees and days into a fair duty roster.
// It builds a boolean assignment model over eligible (employee, day, shift)
// triples, constrains coverage, daily load, post-evening rest and holiday
// bids, and asks the solver for the assignment with the smallest points
// spread.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/calendar"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Generate builds the constraint model for the period and solves it. A nil
// error with Result.Solved false means the period itself admits no roster;
// the Errors field says why. A non-nil error means the input was unusable.
func Generate(ctx context.Context, in Input) (*Result, error) {
	if len(in.Employees) == 0 {
		return nil, errors.New("no employees to roster")
	}
	if len(in.Dates) == 0 {
		return nil, errors.New("no dates to roster")
	}
	if !in.Scheme.IsValid() {
		return nil, fmt.Errorf("unknown shift scheme %q", in.Scheme)
	}
	seen := make(map[string]bool, len(in.Employees))
	for _, emp := range in.Employees {
		if emp.Name == "" {
			return nil, errors.New("employee with empty name")
		}
		if seen[emp.Name] {
			return nil, fmt.Errorf("duplicate employee name %q", emp.Name)
		}
		seen[emp.Name] = true
	}

	in.Dates = normalizeDates(in.Dates)
	cal := calendar.New(in.Scheme, in.Holidays)

	b := newBuilder(&in, cal)
	b.build()
	if len(b.errs) > 0 {
		return &Result{Errors: b.errs}, nil
	}

	budget := in.SolveBudget
	if budget <= 0 {
		budget = DefaultSolveBudget
	}
	res := b.m.Solve(ctx, budget)
	if !res.Status.Solved() {
		return &Result{Status: res.Status, Errors: []string{InfeasibleMessage}}, nil
	}

	rows, summary := b.project(res)
	return &Result{
		Solved:  true,
		Status:  res.Status,
		Rows:    rows,
		Summary: summary,
		Spread:  float64(res.Objective) / PointScale,
	}, nil
}

// normalizeDates midnights, dedupes and sorts the requested days.
func normalizeDates(dates []time.Time) []time.Time {
	out := make([]time.Time, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		day := model.Day(d)
		key := day.Format(model.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
