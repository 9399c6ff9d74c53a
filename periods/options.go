package periods

import (
	"strconv"
	"time"

	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/i18n"
)

// =============================================================================
// GRANULARITY
// =============================================================================

// PerYear is the number of each unit in a year, used to express a span of
// years in the comparison unit.
var PerYear = map[calendar.Unit]int{
	calendar.Day:     365,
	calendar.Week:    52,
	calendar.Month:   12,
	calendar.Quarter: 4,
	calendar.Year:    1,
}

// =============================================================================
// OPTION VARIANTS
// =============================================================================

// Option is a catalogue entry. The set of variants is closed: MonthOption,
// QuarterOption, YearOption and CustomOption.
type Option interface {
	OptionID() string
	Group() int
	Granularity() calendar.Unit

	// pin resolves the calendar fields the option selects around ref.
	pin(ref calendar.Instant) Pick
	// label renders the option for a picker, plus the year it implies.
	label(ref calendar.Instant, tr i18n.Translator) (string, int)
}

// Subtract holds offsets removed while building a range. Global moves the
// whole resolved date; Left moves only the left bound.
type Subtract struct {
	Global calendar.Duration `json:"global" yaml:"global,omitempty"`
	Left   calendar.Duration `json:"left" yaml:"left,omitempty"`
}

func (s Subtract) IsZero() bool { return s.Global.IsZero() && s.Left.IsZero() }

// MonthOption selects the month found Offset away from the reference.
type MonthOption struct {
	ID          string
	GroupNumber int
	Offset      calendar.Duration
}

func (o MonthOption) OptionID() string           { return o.ID }
func (o MonthOption) Group() int                 { return o.GroupNumber }
func (o MonthOption) Granularity() calendar.Unit { return calendar.Month }

func (o MonthOption) pin(ref calendar.Instant) Pick {
	shifted := ref.Plus(o.Offset)
	return Pick{Granularity: calendar.Month, Fields: calendar.Fields{Month: int(shifted.Month())}}
}

func (o MonthOption) label(ref calendar.Instant, tr i18n.Translator) (string, int) {
	shifted := ref.Plus(o.Offset)
	return tr.T(monthName(shifted.Month())), shifted.Year()
}

// QuarterOption selects a fixed calendar quarter.
type QuarterOption struct {
	ID          string
	GroupNumber int
	Quarter     int
}

func (o QuarterOption) OptionID() string           { return o.ID }
func (o QuarterOption) Group() int                 { return o.GroupNumber }
func (o QuarterOption) Granularity() calendar.Unit { return calendar.Quarter }

// Description is the untranslated quarter label, "Q1" to "Q4".
func (o QuarterOption) Description() string { return QuarterLabel(o.Quarter) }

// CoveredMonths lists the three months of the quarter.
func (o QuarterOption) CoveredMonths() []int { return CoveredMonths(o.Quarter) }

func (o QuarterOption) pin(calendar.Instant) Pick {
	return Pick{Granularity: calendar.Quarter, Fields: calendar.Fields{Quarter: o.Quarter}}
}

func (o QuarterOption) label(ref calendar.Instant, tr i18n.Translator) (string, int) {
	return tr.T(o.Description()), ref.Year()
}

// YearOption selects the year found Offset away from the reference.
type YearOption struct {
	ID          string
	GroupNumber int
	Offset      calendar.Duration
}

func (o YearOption) OptionID() string           { return o.ID }
func (o YearOption) Group() int                 { return o.GroupNumber }
func (o YearOption) Granularity() calendar.Unit { return calendar.Year }

func (o YearOption) pin(ref calendar.Instant) Pick {
	return Pick{Granularity: calendar.Year, Fields: calendar.Fields{Year: ref.Plus(o.Offset).Year()}}
}

func (o YearOption) label(ref calendar.Instant, _ i18n.Translator) (string, int) {
	y := ref.Plus(o.Offset).Year()
	return strconv.Itoa(y), y
}

// CustomOption is a day or week period relative to the reference, with
// optional subtract offsets ("Last week", "Last 7 days").
type CustomOption struct {
	ID          string
	GroupNumber int
	Description string
	Unit        calendar.Unit
	Offset      calendar.Duration
	Subtract    Subtract
}

func (o CustomOption) OptionID() string           { return o.ID }
func (o CustomOption) Group() int                 { return o.GroupNumber }
func (o CustomOption) Granularity() calendar.Unit { return o.Unit }

// Day picks pin the whole calendar day (month and day of month) so that an
// offset crossing a month boundary keeps its month.
func (o CustomOption) pin(ref calendar.Instant) Pick {
	shifted := ref.Plus(o.Offset)
	var f calendar.Fields
	switch o.Unit {
	case calendar.Day:
		f = calendar.Fields{Month: int(shifted.Month()), Day: shifted.Day()}
	case calendar.Week:
		f = calendar.Fields{Week: shifted.WeekNumber()}
	case calendar.Month:
		f = calendar.Fields{Month: int(shifted.Month())}
	case calendar.Year:
		f = calendar.Fields{Year: shifted.Year()}
	}
	return Pick{Granularity: o.Unit, Fields: f, Subtract: o.Subtract}
}

func (o CustomOption) label(ref calendar.Instant, tr i18n.Translator) (string, int) {
	return tr.T(o.Description), ref.Plus(o.Offset).Minus(o.Subtract.Global).Year()
}

// ComparisonOption derives the period a selection is compared against.
// A nil Offset means the offset is computed from the selection.
type ComparisonOption struct {
	ID          string
	Description string
	Offset      *calendar.Duration
}

// =============================================================================
// QUARTERS
// =============================================================================

// QuarterLabel returns the untranslated label of quarter q.
func QuarterLabel(q int) string { return "Q" + strconv.Itoa(q) }

// CoveredMonths returns the months of quarter q in calendar order.
func CoveredMonths(q int) []int {
	first := int(calendar.FirstMonthOfQuarter(q))
	return []int{first, first + 1, first + 2}
}

// =============================================================================
// DEFAULT TABLES
// =============================================================================

var monthIDs = []string{"this_month", "last_month", "antepenultimate_month"}

var yearIDs = []string{"this_year", "last_year", "antepenultimate_year"}

var quarterIDs = map[int]string{
	1: "first_quarter",
	2: "second_quarter",
	3: "third_quarter",
	4: "fourth_quarter",
}

func monthOptions(n int) []Option {
	opts := make([]Option, 0, n)
	for i := 0; i < n; i++ {
		opts = append(opts, MonthOption{
			ID:          windowID(monthIDs, "month_minus_", i),
			GroupNumber: 1,
			Offset:      calendar.Duration{Months: -i},
		})
	}
	return opts
}

func quarterOptions() []Option {
	opts := make([]Option, 0, 4)
	for q := 4; q >= 1; q-- {
		opts = append(opts, QuarterOption{ID: quarterIDs[q], GroupNumber: 1, Quarter: q})
	}
	return opts
}

func yearOptions(n int) []Option {
	opts := make([]Option, 0, n)
	for i := 0; i < n; i++ {
		opts = append(opts, YearOption{
			ID:          windowID(yearIDs, "year_minus_", i),
			GroupNumber: 2,
			Offset:      calendar.Duration{Years: -i},
		})
	}
	return opts
}

func windowID(named []string, prefix string, i int) string {
	if i < len(named) {
		return named[i]
	}
	return prefix + strconv.Itoa(i)
}

// lastDaysLabels are the canned labels for left-only day windows.
var lastDaysLabels = map[int]string{
	7:   "Last 7 days",
	30:  "Last 30 days",
	365: "Last 365 days",
}

func customOptions() []Option {
	lastDays := func(n int) CustomOption {
		return CustomOption{
			ID:          "last_" + strconv.Itoa(n) + "_days",
			GroupNumber: 4,
			Description: lastDaysLabels[n],
			Unit:        calendar.Day,
			Subtract:    Subtract{Left: calendar.Duration{Days: n}},
		}
	}

	return []Option{
		CustomOption{ID: "this_day", GroupNumber: 3, Description: "Today", Unit: calendar.Day},
		CustomOption{ID: "this_yesterday", GroupNumber: 3, Description: "Yesterday", Unit: calendar.Day,
			Offset: calendar.Duration{Days: -1}},
		CustomOption{ID: "this_week", GroupNumber: 3, Description: "This week", Unit: calendar.Week},
		CustomOption{ID: "last_week", GroupNumber: 3, Description: "Last week", Unit: calendar.Week,
			Subtract: Subtract{Global: calendar.Duration{Weeks: 1}}},
		lastDays(7),
		lastDays(30),
		lastDays(365),
	}
}

func comparisonOptions() []ComparisonOption {
	return []ComparisonOption{
		{ID: "previous_period", Description: "Previous Period"},
		{ID: "previous_year", Description: "Previous Year", Offset: &calendar.Duration{Years: -1}},
	}
}

// monthName returns the untranslated full month name.
func monthName(m time.Month) string { return m.String() }

// shortMonthName returns the untranslated abbreviated month name.
func shortMonthName(m time.Month) string { return m.String()[:3] }
