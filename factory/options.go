/*
Package factory provides JSON to Go period option conversion.

PURPOSE:
  Converts JSON (or YAML) option definitions into periods.CustomOption values
  appended to the built-in catalogue. Deployments can add windows such as
  "Last 90 days" or "Same day last week" without code changes.

JSON SCHEMA:
  {
    "id": "last_90_days",
    "group": 4,
    "description": "Last 90 days",
    "granularity": "day",
    "offset": {"days": 0},
    "subtract": {
      "global": {"weeks": 0},
      "left": {"days": 90}
    }
  }

DEFAULTS:
  - group: 4 when a left subtract is set, 3 otherwise
  - description: the id

USAGE:
  f := factory.NewOptionFactory()
  opts, err := f.ParseOptions(`[{"id": "last_90_days", "granularity": "day",
      "subtract": {"left": {"days": 90}}}]`)

  cfg := periods.DefaultCatalogueConfig()
  cfg.Extra = opts
  catalogue, err := periods.NewCatalogue(cfg)

SEE ALSO:
  - periods/options.go: CustomOption
  - config: options listed under engine.options
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/warp/period-engine/calendar"
	"github.com/warp/period-engine/periods"
)

// ErrInvalidOption is returned for option definitions that cannot be built.
var ErrInvalidOption = errors.New("invalid option definition")

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// OptionJSON is the JSON and YAML representation of a custom option.
type OptionJSON struct {
	ID          string            `json:"id" yaml:"id"`
	Group       int               `json:"group,omitempty" yaml:"group,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Granularity string            `json:"granularity" yaml:"granularity"`
	Offset      calendar.Duration `json:"offset" yaml:"offset,omitempty"`
	Subtract    *SubtractJSON     `json:"subtract,omitempty" yaml:"subtract,omitempty"`
}

// SubtractJSON represents the global and left-only subtract offsets.
type SubtractJSON struct {
	Global calendar.Duration `json:"global" yaml:"global,omitempty"`
	Left   calendar.Duration `json:"left" yaml:"left,omitempty"`
}

// =============================================================================
// OPTION FACTORY
// =============================================================================

// OptionFactory converts option definitions to catalogue entries.
type OptionFactory struct{}

// NewOptionFactory creates a new option factory.
func NewOptionFactory() *OptionFactory {
	return &OptionFactory{}
}

// ParseOptions parses a JSON array of option definitions.
func (f *OptionFactory) ParseOptions(jsonStr string) ([]periods.CustomOption, error) {
	var defs []OptionJSON
	if err := json.Unmarshal([]byte(jsonStr), &defs); err != nil {
		return nil, fmt.Errorf("failed to parse options JSON: %w", err)
	}
	return f.BuildOptions(defs)
}

// BuildOptions converts every definition, stopping at the first invalid one.
func (f *OptionFactory) BuildOptions(defs []OptionJSON) ([]periods.CustomOption, error) {
	opts := make([]periods.CustomOption, 0, len(defs))
	for i, oj := range defs {
		o, err := f.FromJSON(oj)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", i, err)
		}
		opts = append(opts, o)
	}
	return opts, nil
}

// FromJSON converts OptionJSON to a periods.CustomOption.
func (f *OptionFactory) FromJSON(oj OptionJSON) (periods.CustomOption, error) {
	if oj.ID == "" {
		return periods.CustomOption{}, fmt.Errorf("%w: missing id", ErrInvalidOption)
	}
	unit, err := parseGranularity(oj.Granularity)
	if err != nil {
		return periods.CustomOption{}, fmt.Errorf("%w: %q: %v", ErrInvalidOption, oj.ID, err)
	}

	o := periods.CustomOption{
		ID:          oj.ID,
		GroupNumber: oj.Group,
		Description: oj.Description,
		Unit:        unit,
		Offset:      oj.Offset,
	}
	if oj.Subtract != nil {
		if !oj.Subtract.Left.FixedLength() {
			return periods.CustomOption{}, fmt.Errorf("%w: %q: left subtract must be in weeks or days, got %s",
				ErrInvalidOption, oj.ID, oj.Subtract.Left)
		}
		o.Subtract = periods.Subtract{Global: oj.Subtract.Global, Left: oj.Subtract.Left}
	}

	if o.Description == "" {
		o.Description = o.ID
	}
	if o.GroupNumber == 0 {
		o.GroupNumber = 3
		if !o.Subtract.Left.IsZero() {
			o.GroupNumber = 4
		}
	}
	return o, nil
}

// ToJSON converts a CustomOption back to its definition.
func (f *OptionFactory) ToJSON(o periods.CustomOption) OptionJSON {
	oj := OptionJSON{
		ID:          o.ID,
		Group:       o.GroupNumber,
		Description: o.Description,
		Granularity: string(o.Unit),
		Offset:      o.Offset,
	}
	if !o.Subtract.IsZero() {
		oj.Subtract = &SubtractJSON{Global: o.Subtract.Global, Left: o.Subtract.Left}
	}
	return oj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseGranularity(s string) (calendar.Unit, error) {
	switch calendar.Unit(s) {
	case calendar.Day:
		return calendar.Day, nil
	case calendar.Week:
		return calendar.Week, nil
	case "":
		return "", errors.New("missing granularity")
	default:
		return "", fmt.Errorf("granularity must be day or week, got %q", s)
	}
}

// =============================================================================
// PRESET OPTIONS
// =============================================================================

// LastDaysJSON returns the definition of a trailing window of n days ending
// on the reference day.
func LastDaysJSON(n int) string {
	return fmt.Sprintf(`{
		"id": "last_%d_days",
		"group": 4,
		"description": "Last %d days",
		"granularity": "day",
		"subtract": {"left": {"days": %d}}
	}`, n, n, n)
}

// SameDayLastWeekJSON returns the definition of the reference weekday one
// week earlier.
func SameDayLastWeekJSON() string {
	return `{
		"id": "same_day_last_week",
		"group": 3,
		"description": "Same day last week",
		"granularity": "day",
		"offset": {"weeks": -1}
	}`
}
