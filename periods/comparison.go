package periods

import (
	"github.com/warp/period-engine/calendar"
)

// globalOrder is the priority used to pick the comparison unit.
var globalOrder = []calendar.Unit{calendar.Month, calendar.Quarter, calendar.Day, calendar.Week}

// ComparisonParams returns the offset that moves a selection onto its
// comparison period, together with the selection to build ranges from.
//
// A comparison option with a fixed offset ("previous_year") returns it as is.
// Otherwise the offset steps back by the whole span of the selection in the
// finest selected unit:
//
//	-1 + unitsPerYear*(yearMin-yearMax) + optionMin - optionMax
//
// so that the comparison period ends right before the selection starts.
// When months are selected together with quarters, the quarters are expanded
// into their months first.
func (e *Engine) ComparisonParams(ref calendar.Instant, ids []string, comparisonID string) (calendar.Duration, Selection, error) {
	cmp, err := e.catalogue.Comparison(comparisonID)
	if err != nil {
		return calendar.Duration{}, nil, err
	}
	sel, err := e.SelectedOptions(ref, ids)
	if err != nil {
		return calendar.Duration{}, nil, err
	}
	if cmp.Offset != nil {
		return *cmp.Offset, sel, nil
	}

	global := globalGranularity(sel)
	factor := PerYear[global]
	yearMin, yearMax := span(sel[calendar.Year], calendar.Year)

	var optionMin, optionMax int
	if sel.has(calendar.Quarter) {
		if global == calendar.Month {
			sel.expandQuarters()
		} else {
			optionMin, optionMax = span(sel[calendar.Quarter], calendar.Quarter)
		}
	}
	if sel.has(calendar.Month) {
		optionMin, optionMax = span(sel[calendar.Month], calendar.Month)
	}

	n := -1 + factor*(yearMin-yearMax) + optionMin - optionMax
	return calendar.DurationOf(global, n), sel, nil
}

func globalGranularity(sel Selection) calendar.Unit {
	for _, u := range globalOrder {
		if sel.has(u) {
			return u
		}
	}
	return calendar.Year
}

// span returns the min and max pinned value of u, or 0, 0 for no picks.
func span(picks []Pick, u calendar.Unit) (min, max int) {
	for i, p := range picks {
		v := p.Fields.Get(u)
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
		}
	}
	return min, max
}

// expandQuarters merges the months of every selected quarter into the month
// bucket and drops the quarter bucket.
func (s Selection) expandQuarters() {
	seen := make(map[int]bool)
	for _, p := range s[calendar.Month] {
		seen[p.Fields.Month] = true
	}
	for _, q := range s[calendar.Quarter] {
		for _, m := range CoveredMonths(q.Fields.Quarter) {
			if seen[m] {
				continue
			}
			seen[m] = true
			s[calendar.Month] = append(s[calendar.Month], Pick{
				Granularity: calendar.Month,
				Fields:      calendar.Fields{Month: m},
			})
		}
	}
	delete(s, calendar.Quarter)
}
