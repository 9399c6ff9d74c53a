package periods

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/domain"
	"github.com/warp/period-engine/i18n"
)

// FieldType is the storage kind of the filtered field.
type FieldType string

const (
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
)

// ParseFieldType validates a field type name.
func ParseFieldType(s string) (FieldType, error) {
	switch FieldType(s) {
	case FieldDate, FieldDateTime:
		return FieldType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFieldType, s)
}

func (t FieldType) serialize(i calendar.Instant) string {
	if t == FieldDateTime {
		return calendar.SerializeDateTime(i)
	}
	return calendar.SerializeDate(i)
}

// RangeParams are the inputs of one range.
type RangeParams struct {
	Reference    calendar.Instant
	FieldName    string
	FieldType    FieldType
	Granularity  calendar.Unit
	Fields       calendar.Fields
	Offset       calendar.Duration
	Subtract     Subtract
	ComparisonID string
}

// Range is one closed period: its filter, its label and its bounds.
type Range struct {
	Domain      domain.Expr     `json:"domain"`
	Description string          `json:"description"`
	Bounds      calendar.Bounds `json:"-"`
}

// ConstructRange builds the bounds, filter and label of a single period.
//
// The resolved date is the reference with Fields pinned, shifted by Offset
// and moved back by Subtract.Global. The range then spans from the start of
// the granularity unit containing (date - Subtract.Left) to the end of the
// unit containing date.
func (e *Engine) ConstructRange(p RangeParams) (Range, error) {
	if _, err := ParseFieldType(string(p.FieldType)); err != nil {
		return Range{}, err
	}

	date := p.Reference.Set(p.Fields.ResolveQuarter()).Plus(p.Offset).Minus(p.Subtract.Global)
	left := date.Minus(p.Subtract.Left).StartOf(p.Granularity)
	right := date.EndOf(p.Granularity)

	expr := domain.And(
		domain.Leaf(p.FieldName, domain.Gte, p.FieldType.serialize(left)),
		domain.Leaf(p.FieldName, domain.Lte, p.FieldType.serialize(right)),
	)

	return Range{
		Domain:      expr,
		Description: e.describe(p, date, left),
		Bounds:      calendar.Bounds{Start: left, End: right},
	}, nil
}

// describe assembles the label fragments of a range in reading order.
func (e *Engine) describe(p RangeParams, date, left calendar.Instant) string {
	tr := e.localizer
	comparing := p.ComparisonID != ""

	var parts []string
	if p.Granularity != calendar.Day && p.Granularity != calendar.Week {
		parts = append(parts, strconv.Itoa(date.Year()))
	}
	add := func(fragment string) {
		if tr.Direction() == i18n.RTL {
			parts = append(parts, fragment)
		} else {
			parts = append([]string{fragment}, parts...)
		}
	}

	switch p.Granularity {
	case calendar.Day:
		leftDays := p.Subtract.Left.Weeks*7 + p.Subtract.Left.Days
		switch {
		case comparing && leftDays != 0:
			add(fmt.Sprintf("%s %s %s %s", tr.T("From Date"), formatDay(left, tr), tr.T("Until"), formatDay(date, tr)))
		case leftDays != 0:
			add(lastDaysLabel(leftDays, tr))
		case !comparing && date.SameDay(p.Reference):
			add(tr.T("Today"))
		case !comparing && date.SameDay(p.Reference.Minus(calendar.Duration{Days: 1})):
			add(tr.T("Yesterday"))
		default:
			add(formatDay(date, tr))
		}
	case calendar.Week:
		switch {
		case comparing:
			add(fmt.Sprintf("%s: %d - %d", tr.T("Week"), date.WeekNumber(), date.Year()))
		case date.SameWeek(p.Reference):
			add(tr.T("This week"))
		case date.SameWeek(p.Reference.Minus(calendar.Duration{Weeks: 1})):
			add(tr.T("Last week"))
		default:
			add(fmt.Sprintf("%s: %d - %d", tr.T("Week"), date.WeekNumber(), date.Year()))
		}
	case calendar.Month:
		add(tr.T(monthName(date.Month())))
	case calendar.Quarter:
		add(tr.T(QuarterLabel(date.Quarter())))
	}

	return strings.Join(parts, " ")
}

func lastDaysLabel(n int, tr i18n.Translator) string {
	if label, ok := lastDaysLabels[n]; ok {
		return tr.T(label)
	}
	return tr.T("Last %d days", n)
}

// formatDay renders "02 Jan 2006" with a translated month abbreviation.
func formatDay(i calendar.Instant, tr i18n.Translator) string {
	return fmt.Sprintf("%02d %s %d", i.Day(), tr.T(shortMonthName(i.Month())), i.Year())
}
