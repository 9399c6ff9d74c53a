package periods

import (
	"fmt"

	"github.com/warp/period-engine/calendar"
)

// CatalogueConfig sizes the month and year windows and adds extra custom
// options after the built-in ones.
type CatalogueConfig struct {
	MonthsBack int
	YearsBack  int
	Extra      []CustomOption
}

// DefaultCatalogueConfig is twelve month pickers and three year pickers.
func DefaultCatalogueConfig() CatalogueConfig {
	return CatalogueConfig{MonthsBack: 12, YearsBack: 3}
}

// Validate checks that every month picker and the built-in day and week
// options land inside the year window.
func (c CatalogueConfig) Validate() error {
	if c.MonthsBack < 1 {
		return fmt.Errorf("%w: months back must be at least 1, got %d", ErrInvalidCatalogue, c.MonthsBack)
	}
	if c.YearsBack < 2 {
		return fmt.Errorf("%w: years back must be at least 2, got %d", ErrInvalidCatalogue, c.YearsBack)
	}
	// From January, month picker n reaches back ceil(n/12) years.
	if reach := (c.MonthsBack - 1 + 11) / 12; reach > c.YearsBack-1 {
		return fmt.Errorf("%w: %d month pickers need %d year pickers, got %d",
			ErrInvalidCatalogue, c.MonthsBack, reach+1, c.YearsBack)
	}
	for _, o := range c.Extra {
		if o.ID == "" {
			return fmt.Errorf("%w: custom option without id", ErrInvalidCatalogue)
		}
		if o.Unit != calendar.Day && o.Unit != calendar.Week {
			return fmt.Errorf("%w: custom option %q must be day or week, got %q", ErrInvalidCatalogue, o.ID, o.Unit)
		}
		if !o.Subtract.Left.FixedLength() {
			return fmt.Errorf("%w: custom option %q: left subtract must be in weeks or days, got %s",
				ErrInvalidCatalogue, o.ID, o.Subtract.Left)
		}
	}
	return nil
}

// Catalogue is the read-only table of period and comparison options.
type Catalogue struct {
	options       []Option
	byID          map[string]Option
	comparisons   map[string]ComparisonOption
	comparisonIDs []string
}

// NewCatalogue merges month, quarter, year, custom and extra options, in
// that order.
func NewCatalogue(cfg CatalogueConfig) (*Catalogue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var all []Option
	all = append(all, monthOptions(cfg.MonthsBack)...)
	all = append(all, quarterOptions()...)
	all = append(all, yearOptions(cfg.YearsBack)...)
	all = append(all, customOptions()...)
	for _, o := range cfg.Extra {
		all = append(all, o)
	}

	c := &Catalogue{
		byID:        make(map[string]Option, len(all)),
		comparisons: make(map[string]ComparisonOption),
	}
	for _, o := range all {
		if _, dup := c.byID[o.OptionID()]; dup {
			return nil, fmt.Errorf("%w: duplicate option id %q", ErrInvalidCatalogue, o.OptionID())
		}
		c.byID[o.OptionID()] = o
		c.options = append(c.options, o)
	}
	for _, o := range comparisonOptions() {
		c.comparisons[o.ID] = o
		c.comparisonIDs = append(c.comparisonIDs, o.ID)
	}
	return c, nil
}

// DefaultCatalogue builds the catalogue from DefaultCatalogueConfig.
func DefaultCatalogue() *Catalogue {
	c, err := NewCatalogue(DefaultCatalogueConfig())
	if err != nil {
		panic(err) // default config is static
	}
	return c
}

// Options returns the options in catalogue order.
func (c *Catalogue) Options() []Option {
	return append([]Option(nil), c.options...)
}

// Lookup returns the option with the given id.
func (c *Catalogue) Lookup(id string) (Option, error) {
	o, ok := c.byID[id]
	if !ok {
		return nil, &UnknownOptionError{ID: id}
	}
	return o, nil
}

// Comparison returns the comparison option with the given id.
func (c *Catalogue) Comparison(id string) (ComparisonOption, error) {
	o, ok := c.comparisons[id]
	if !ok {
		return ComparisonOption{}, &UnknownOptionError{ID: id, Comparison: true}
	}
	return o, nil
}

// Comparisons returns the comparison options in catalogue order.
func (c *Catalogue) Comparisons() []ComparisonOption {
	out := make([]ComparisonOption, 0, len(c.comparisonIDs))
	for _, id := range c.comparisonIDs {
		out = append(out, c.comparisons[id])
	}
	return out
}
