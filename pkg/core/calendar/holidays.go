package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// ResolveHolidays expands a holiday calendar over a window. Explicit dates
// are kept as given; RRULE recurrences are evaluated between from and to
// inclusive. The result is deduplicated and sorted.
//
// Recurrence rules should carry their own BYMONTH/BYMONTHDAY (or BYDAY)
// parts, e.g. "FREQ=YEARLY;BYMONTH=1;BYMONTHDAY=1" for New Year's Day.
func ResolveHolidays(explicit []time.Time, rules []string, from, to time.Time) ([]time.Time, error) {
	seen := model.DateSet{}
	var days []time.Time

	add := func(d time.Time) {
		d = model.Day(d)
		if seen.Has(d) {
			return
		}
		seen.Add(d)
		days = append(days, d)
	}

	for _, d := range explicit {
		add(d)
	}

	start := model.Day(from)
	end := model.Day(to)

	for i, raw := range rules {
		rule, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday rule %d (%q): %w", i, raw, err)
		}

		rule.DTStart(start)
		for _, occurrence := range rule.Between(start, end, true) {
			add(occurrence)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}
