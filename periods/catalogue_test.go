package periods_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/periods"
)

func optionIDs(c *periods.Catalogue) []string {
	var ids []string
	for _, o := range c.Options() {
		ids = append(ids, o.OptionID())
	}
	return ids
}

func TestCatalogue_Order(t *testing.T) {
	c, err := periods.NewCatalogue(periods.CatalogueConfig{MonthsBack: 3, YearsBack: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"this_month", "last_month", "antepenultimate_month",
		"fourth_quarter", "third_quarter", "second_quarter", "first_quarter",
		"this_year", "last_year", "antepenultimate_year",
		"this_day", "this_yesterday", "this_week", "last_week",
		"last_7_days", "last_30_days", "last_365_days",
	}, optionIDs(c))
}

func TestCatalogue_DefaultWindows(t *testing.T) {
	c := periods.DefaultCatalogue()
	ids := optionIDs(c)

	assert.Len(t, ids, 12+4+3+7)
	assert.Contains(t, ids, "month_minus_11")
	assert.NotContains(t, ids, "month_minus_12")

	o, err := c.Lookup("month_minus_4")
	require.NoError(t, err)
	assert.Equal(t, calendar.Month, o.Granularity())
	assert.Equal(t, 1, o.Group())

	o, err = c.Lookup("last_365_days")
	require.NoError(t, err)
	assert.Equal(t, 4, o.Group())
}

func TestCatalogue_Comparisons(t *testing.T) {
	c := periods.DefaultCatalogue()

	cmps := c.Comparisons()
	require.Len(t, cmps, 2)
	assert.Equal(t, "previous_period", cmps[0].ID)
	assert.Nil(t, cmps[0].Offset)
	assert.Equal(t, &calendar.Duration{Years: -1}, cmps[1].Offset)
}

func TestCatalogue_Quarters(t *testing.T) {
	o, err := periods.DefaultCatalogue().Lookup("third_quarter")
	require.NoError(t, err)

	q, ok := o.(periods.QuarterOption)
	require.True(t, ok)
	assert.Equal(t, "Q3", q.Description())
	assert.Equal(t, []int{7, 8, 9}, q.CoveredMonths())
}

func TestCatalogue_Extra(t *testing.T) {
	cfg := periods.DefaultCatalogueConfig()
	cfg.Extra = []periods.CustomOption{{
		ID: "last_90_days", GroupNumber: 4, Description: "Last 90 days", Unit: calendar.Day,
		Subtract: periods.Subtract{Left: calendar.Duration{Days: 90}},
	}}

	c, err := periods.NewCatalogue(cfg)
	require.NoError(t, err)

	ids := optionIDs(c)
	assert.Equal(t, "last_90_days", ids[len(ids)-1])
}

func TestCatalogueConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  periods.CatalogueConfig
		ok   bool
	}{
		{"default", periods.DefaultCatalogueConfig(), true},
		{"thirteen months fit three years", periods.CatalogueConfig{MonthsBack: 13, YearsBack: 3}, true},
		{"no months", periods.CatalogueConfig{MonthsBack: 0, YearsBack: 3}, false},
		{"one year", periods.CatalogueConfig{MonthsBack: 1, YearsBack: 1}, false},
		{"months outrun years", periods.CatalogueConfig{MonthsBack: 24, YearsBack: 2}, false},
		{"extra without id", periods.CatalogueConfig{MonthsBack: 3, YearsBack: 3,
			Extra: []periods.CustomOption{{Unit: calendar.Day}}}, false},
		{"extra at month granularity", periods.CatalogueConfig{MonthsBack: 3, YearsBack: 3,
			Extra: []periods.CustomOption{{ID: "x", Unit: calendar.Month}}}, false},
		{"extra left window in weeks", periods.CatalogueConfig{MonthsBack: 3, YearsBack: 3,
			Extra: []periods.CustomOption{{ID: "last_2_weeks", Unit: calendar.Day,
				Subtract: periods.Subtract{Left: calendar.Duration{Weeks: 2}}}}}, true},
		{"extra left window in months", periods.CatalogueConfig{MonthsBack: 3, YearsBack: 3,
			Extra: []periods.CustomOption{{ID: "last_3_months", Unit: calendar.Day,
				Subtract: periods.Subtract{Left: calendar.Duration{Months: 3}}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, periods.ErrInvalidCatalogue)
			}
		})
	}
}

func TestNewCatalogue_RejectsDuplicateID(t *testing.T) {
	cfg := periods.DefaultCatalogueConfig()
	cfg.Extra = []periods.CustomOption{{ID: "this_day", Unit: calendar.Day}}

	_, err := periods.NewCatalogue(cfg)
	assert.ErrorIs(t, err, periods.ErrInvalidCatalogue)
}

func TestSelectedOptions_GroupsByGranularity(t *testing.T) {
	engine := newEngine(t)

	sel, err := engine.SelectedOptions(ref, []string{"last_month", "this_year", "second_quarter", "this_yesterday", "last_week"})
	require.NoError(t, err)

	assert.Equal(t, calendar.Fields{Month: 11}, sel[calendar.Month][0].Fields)
	assert.Equal(t, calendar.Fields{Year: 2024}, sel[calendar.Year][0].Fields)
	assert.Equal(t, calendar.Fields{Quarter: 2}, sel[calendar.Quarter][0].Fields)
	assert.Equal(t, calendar.Fields{Month: 12, Day: 1}, sel[calendar.Day][0].Fields)

	week := sel[calendar.Week][0]
	assert.Equal(t, calendar.Fields{Week: 49}, week.Fields)
	assert.Equal(t, calendar.Duration{Weeks: 1}, week.Subtract.Global)
}

func TestSelectedOptions_EmptyHasYearBucket(t *testing.T) {
	engine := newEngine(t)

	sel, err := engine.SelectedOptions(ref, nil)
	require.NoError(t, err)

	years, ok := sel[calendar.Year]
	assert.True(t, ok)
	assert.Empty(t, years)
}
