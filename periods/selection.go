package periods

import (
	"sort"

	"github.com/warp/period-engine/calendar"
)

// Pick is one resolved option: the granularity it selects, the calendar
// fields it pins, and the subtract offsets it carries.
type Pick struct {
	Granularity calendar.Unit   `json:"granularity"`
	Fields      calendar.Fields `json:"fields"`
	Subtract    Subtract        `json:"subtract"`
}

// Value is the resolved field value used to order picks.
func (p Pick) Value() int {
	if p.Granularity == calendar.Day {
		return p.Fields.Month*100 + p.Fields.Day
	}
	return p.Fields.Get(p.Granularity)
}

// Selection groups picks by granularity. The year bucket always exists.
type Selection map[calendar.Unit][]Pick

func newSelection() Selection {
	return Selection{calendar.Year: []Pick{}}
}

func (s Selection) has(u calendar.Unit) bool { return len(s[u]) > 0 }

// others concatenates the quarter, month, day and week buckets.
func (s Selection) others() []Pick {
	var out []Pick
	for _, u := range []calendar.Unit{calendar.Quarter, calendar.Month, calendar.Day, calendar.Week} {
		out = append(out, s[u]...)
	}
	return out
}

// SelectedOptions resolves each selected id into a pick and groups the picks
// by granularity, preserving selection order within a bucket.
func (e *Engine) SelectedOptions(ref calendar.Instant, ids []string) (Selection, error) {
	sel := newSelection()
	for _, id := range ids {
		opt, err := e.catalogue.Lookup(id)
		if err != nil {
			return nil, err
		}
		p := opt.pin(ref)
		sel[p.Granularity] = append(sel[p.Granularity], p)
	}
	return sel, nil
}

// sortPicks orders picks by resolved value, keeping ties in place.
func sortPicks(picks []Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].Value() < picks[j].Value()
	})
}
