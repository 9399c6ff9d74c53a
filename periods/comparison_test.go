package periods_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/periods"
)

func TestComparisonParams_Offsets(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name        string
		ids         []string
		comparison  string
		offset      calendar.Duration
		description string
	}{
		{"single month", []string{"this_year", "this_month"}, "previous_period",
			calendar.Duration{Months: -1}, "November 2024"},
		{"fixed previous year", []string{"this_year", "this_month"}, "previous_year",
			calendar.Duration{Years: -1}, "December 2023"},
		{"two quarters", []string{"this_year", "third_quarter", "fourth_quarter"}, "previous_period",
			calendar.Duration{Quarters: -2}, "Q1 2024/Q2 2024"},
		{"quarter expanded into months", []string{"this_year", "this_month", "first_quarter"}, "previous_period",
			calendar.Duration{Months: -12}, "January 2023/February 2023/March 2023/December 2023"},
		{"two years", []string{"this_year", "last_year"}, "previous_period",
			calendar.Duration{Years: -2}, "2021/2022"},
		{"one year", []string{"this_year"}, "previous_period",
			calendar.Duration{Years: -1}, "2023"},
		{"day", []string{"this_year", "this_day"}, "previous_period",
			calendar.Duration{Days: -1}, "01 Dec 2024"},
		{"left day window", []string{"this_year", "last_7_days"}, "previous_period",
			calendar.Duration{Days: -1}, "From Date 24 Nov 2024 Until 01 Dec 2024"},
		{"week", []string{"this_year", "this_week"}, "previous_period",
			calendar.Duration{Weeks: -1}, "Week: 48 - 2024"},
		{"months across years", []string{"this_year", "last_year", "this_month"}, "previous_period",
			calendar.Duration{Months: -13}, "November 2022/November 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, _, err := engine.ComparisonParams(ref, tt.ids, tt.comparison)
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)

			res, err := engine.ConstructDomain(ref, "date", periods.FieldDate, tt.ids, tt.comparison)
			require.NoError(t, err)
			assert.Equal(t, tt.description, res.Description)
		})
	}
}

func TestComparisonParams_ExpandsQuartersOnlyAtMonthGranularity(t *testing.T) {
	engine := newEngine(t)

	// GIVEN: December plus Q1 and Q4, where Q4 already covers December
	_, sel, err := engine.ComparisonParams(ref, []string{"this_year", "this_month", "fourth_quarter", "first_quarter"}, "previous_period")
	require.NoError(t, err)

	// THEN: the quarter bucket is gone and December is not duplicated
	assert.Empty(t, sel[calendar.Quarter])
	months := make([]int, 0)
	for _, p := range sel[calendar.Month] {
		months = append(months, p.Fields.Month)
	}
	assert.ElementsMatch(t, []int{12, 10, 11, 1, 2, 3}, months)

	// AND: quarters alone keep their bucket
	_, sel, err = engine.ComparisonParams(ref, []string{"this_year", "fourth_quarter"}, "previous_period")
	require.NoError(t, err)
	assert.Len(t, sel[calendar.Quarter], 1)
}

func TestComparisonParams_MonthIsIdempotent(t *testing.T) {
	engine := newEngine(t)

	for year := 2022; year <= 2025; year++ {
		for m := time.January; m <= time.December; m++ {
			r := calendar.New(year, m, 15)
			want := r.Minus(calendar.Duration{Months: 1})

			// First comparison: the month right before.
			res, err := engine.ConstructDomain(r, "date", periods.FieldDate, []string{"this_year", "this_month"}, "previous_period")
			require.NoError(t, err)
			require.Len(t, res.Ranges, 1)
			assert.Equal(t, want.StartOf(calendar.Month), res.Ranges[0].Bounds.Start, "%s", r)

			// Applying it again from the compared period steps one more month.
			next := res.Ranges[0].Bounds.Start
			res, err = engine.ConstructDomain(next, "date", periods.FieldDate, []string{"this_year", "this_month"}, "previous_period")
			require.NoError(t, err)
			assert.Equal(t, want.Minus(calendar.Duration{Months: 1}).StartOf(calendar.Month), res.Ranges[0].Bounds.Start, "%s", next)
		}
	}
}

func TestComparisonParams_DecemberFromJanuary(t *testing.T) {
	engine := newEngine(t)

	res, err := engine.ConstructDomain(calendar.New(2025, time.January, 15), "date", periods.FieldDate,
		[]string{"this_year", "this_month"}, "previous_period")
	require.NoError(t, err)

	assert.Equal(t, "December 2024", res.Description)
	assert.Equal(t, bounds("date", "2024-12-01", "2024-12-31"), res.Domain.List())
}

func TestComparisonParams_UnknownIDs(t *testing.T) {
	engine := newEngine(t)

	_, _, err := engine.ComparisonParams(ref, []string{"this_year"}, "previous_decade")
	assert.ErrorIs(t, err, periods.ErrUnknownComparison)

	_, _, err = engine.ComparisonParams(ref, []string{"nope"}, "previous_period")
	assert.ErrorIs(t, err, periods.ErrUnknownOption)
}
