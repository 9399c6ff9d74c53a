package periods

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownOption is returned when a selected id is not in the catalogue.
	// The catalogue is closed, so this signals a caller or configuration bug.
	ErrUnknownOption = errors.New("unknown period option")

	// ErrUnknownComparison is returned for an unknown comparison option id.
	ErrUnknownComparison = errors.New("unknown comparison option")

	// ErrNoDefaultYear is returned by the option lister when an option implies
	// a year outside the configured year window.
	ErrNoDefaultYear = errors.New("no year option matches default year")

	// ErrInvalidFieldType is returned when the filtered field is neither a
	// date nor a datetime.
	ErrInvalidFieldType = errors.New("invalid field type")

	// ErrInvalidCatalogue is returned when catalogue settings are inconsistent.
	ErrInvalidCatalogue = errors.New("invalid period catalogue")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnknownOptionError names the id that failed to resolve.
type UnknownOptionError struct {
	ID         string
	Comparison bool
}

func (e *UnknownOptionError) Error() string {
	if e.Comparison {
		return fmt.Sprintf("unknown comparison option %q", e.ID)
	}
	return fmt.Sprintf("unknown period option %q", e.ID)
}

func (e *UnknownOptionError) Unwrap() error {
	if e.Comparison {
		return ErrUnknownComparison
	}
	return ErrUnknownOption
}

// NoDefaultYearError names the option whose implied year has no year option.
type NoDefaultYearError struct {
	OptionID string
	Year     int
}

func (e *NoDefaultYearError) Error() string {
	return fmt.Sprintf("option %q implies year %d which has no year option", e.OptionID, e.Year)
}

func (e *NoDefaultYearError) Unwrap() error {
	return ErrNoDefaultYear
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownOption) ||
		errors.Is(err, ErrUnknownComparison) ||
		errors.Is(err, ErrInvalidFieldType)
}
