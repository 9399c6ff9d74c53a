package periods

import (
	"github.com/warp/period-engine/calendar"
)

// PeriodOption is a catalogue entry rendered for a picker.
type PeriodOption struct {
	ID            string `json:"id"`
	GroupNumber   int    `json:"groupNumber"`
	Description   string `json:"description"`
	DefaultYearID string `json:"defaultYearId"`
}

// PeriodOptions renders every catalogue option around ref, in catalogue
// order. DefaultYearID is the year option covering the year the option falls
// in; ErrNoDefaultYear means the year window is too small for the catalogue.
func (e *Engine) PeriodOptions(ref calendar.Instant) ([]PeriodOption, error) {
	yearIDs := make(map[int]string)
	for _, o := range e.catalogue.options {
		if y, ok := o.(YearOption); ok {
			year := ref.Plus(y.Offset).Year()
			if _, seen := yearIDs[year]; !seen {
				yearIDs[year] = y.ID
			}
		}
	}

	out := make([]PeriodOption, 0, len(e.catalogue.options))
	for _, o := range e.catalogue.options {
		description, year := o.label(ref, e.localizer)
		id, ok := yearIDs[year]
		if !ok {
			return nil, &NoDefaultYearError{OptionID: o.OptionID(), Year: year}
		}
		out = append(out, PeriodOption{
			ID:            o.OptionID(),
			GroupNumber:   o.Group(),
			Description:   description,
			DefaultYearID: id,
		})
	}
	return out, nil
}
