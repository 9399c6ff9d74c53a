package periods

import (
	"strings"

	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/domain"
)

// Result is the union of the ranges built for one selection.
type Result struct {
	Domain      domain.Expr `json:"domain"`
	Description string      `json:"description"`
	Ranges      []Range     `json:"ranges"`
}

// ConstructDomain builds the filter for the selected option ids.
//
// Every selected year is combined with every selected quarter, month, day
// and week option, one range per pair; a year selected alone yields one
// full-year range. The ranges are joined with OR and their labels with "/".
// With a comparison id, every range is shifted onto the comparison period.
//
// An empty selection returns an empty Result and no error.
func (e *Engine) ConstructDomain(ref calendar.Instant, field string, fieldType FieldType, ids []string, comparisonID string) (Result, error) {
	if _, err := ParseFieldType(string(fieldType)); err != nil {
		return Result{}, err
	}

	var (
		offset calendar.Duration
		sel    Selection
		err    error
	)
	if comparisonID != "" {
		offset, sel, err = e.ComparisonParams(ref, ids, comparisonID)
	} else {
		sel, err = e.SelectedOptions(ref, ids)
	}
	if err != nil {
		return Result{}, err
	}

	years := append([]Pick(nil), sel[calendar.Year]...)
	others := sel.others()
	sortPicks(years)
	sortPicks(others)

	params := func(year Pick) RangeParams {
		return RangeParams{
			Reference:    ref,
			FieldName:    field,
			FieldType:    fieldType,
			Granularity:  year.Granularity,
			Fields:       year.Fields,
			Offset:       offset,
			Subtract:     year.Subtract,
			ComparisonID: comparisonID,
		}
	}

	var ranges []Range
	for _, year := range years {
		if len(others) == 0 {
			r, err := e.ConstructRange(params(year))
			if err != nil {
				return Result{}, err
			}
			ranges = append(ranges, r)
			continue
		}
		for _, other := range others {
			p := params(year)
			p.Granularity = other.Granularity
			p.Fields = year.Fields.Merge(other.Fields)
			p.Subtract = other.Subtract
			r, err := e.ConstructRange(p)
			if err != nil {
				return Result{}, err
			}
			ranges = append(ranges, r)
		}
	}

	return combineRanges(ranges), nil
}

func combineRanges(ranges []Range) Result {
	exprs := make([]domain.Expr, 0, len(ranges))
	labels := make([]string, 0, len(ranges))
	for _, r := range ranges {
		exprs = append(exprs, r.Domain)
		labels = append(labels, r.Description)
	}
	return Result{
		Domain:      domain.Or(exprs...),
		Description: strings.Join(labels, "/"),
		Ranges:      ranges,
	}
}
