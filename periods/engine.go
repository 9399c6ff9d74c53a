/*
Package periods resolves relative period options into date filter domains.

PURPOSE:
  Turns option ids ("this_month", "second_quarter", "last_7_days", ...) and a
  reference instant into calendar-aligned bounds, a boolean filter domain
  over a date or datetime field, and a localized description. It also
  derives the "previous" period of a selection for period-over-period
  comparison.

LAYERS (leaf to root):
  1. Catalogue          (catalogue.go, options.go) - static option table
  2. SelectedOptions    (selection.go)  - ids -> per-granularity pinned fields
  3. ComparisonParams   (comparison.go) - selection -> comparison offset
  4. ConstructRange / ConstructDomain (ranges.go, construct.go)
  5. PeriodOptions      (lister.go)     - options rendered for a picker

CONCURRENCY:
  An Engine is immutable. Every operation is a pure function of its
  arguments, so one Engine can serve concurrent callers without locks.

USAGE:
  engine := periods.NewEngine(periods.DefaultCatalogue(), nil)
  ref := calendar.New(2024, time.December, 2)
  res, err := engine.ConstructDomain(ref, "date", periods.FieldDate,
      []string{"this_year", "fourth_quarter"}, "")
  // res.Description == "Q4 2024"

SEE ALSO:
  - calendar: Instant arithmetic
  - domain: filter expression
  - i18n: labels and text direction
*/
package periods

import (
	"github.com/warp/period-engine/i18n"
)

// Engine bundles the catalogue and the localizer used for labels.
type Engine struct {
	catalogue *Catalogue
	localizer i18n.Localizer
}

// NewEngine creates an engine. A nil localizer means English.
func NewEngine(catalogue *Catalogue, localizer i18n.Localizer) *Engine {
	if localizer == nil {
		localizer = i18n.NewCatalog().Default()
	}
	return &Engine{catalogue: catalogue, localizer: localizer}
}

// WithLocalizer returns a copy of the engine producing labels in another locale.
func (e *Engine) WithLocalizer(localizer i18n.Localizer) *Engine {
	return NewEngine(e.catalogue, localizer)
}

// Catalogue returns the option catalogue the engine resolves ids against.
func (e *Engine) Catalogue() *Catalogue { return e.catalogue }

// Localizer returns the translator used for range labels.
func (e *Engine) Localizer() i18n.Localizer { return e.localizer }
