package calendar

import (
	"fmt"
	"strings"
)

// Duration is a calendar offset, one integer per unit.
type Duration struct {
	Years    int `json:"years,omitempty" yaml:"years,omitempty"`
	Quarters int `json:"quarters,omitempty" yaml:"quarters,omitempty"`
	Months   int `json:"months,omitempty" yaml:"months,omitempty"`
	Weeks    int `json:"weeks,omitempty" yaml:"weeks,omitempty"`
	Days     int `json:"days,omitempty" yaml:"days,omitempty"`
}

// DurationOf builds a single-unit duration. Unknown units fall back to quarters.
func DurationOf(u Unit, n int) Duration {
	switch u {
	case Year:
		return Duration{Years: n}
	case Month:
		return Duration{Months: n}
	case Week:
		return Duration{Weeks: n}
	case Day:
		return Duration{Days: n}
	default:
		return Duration{Quarters: n}
	}
}

func (d Duration) IsZero() bool { return d == Duration{} }

// FixedLength reports whether d only counts weeks and days.
func (d Duration) FixedLength() bool { return d.Years == 0 && d.Quarters == 0 && d.Months == 0 }

func (d Duration) Neg() Duration {
	return Duration{Years: -d.Years, Quarters: -d.Quarters, Months: -d.Months, Weeks: -d.Weeks, Days: -d.Days}
}

func (d Duration) String() string {
	var parts []string
	add := func(n int, unit string) {
		if n != 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, unit))
		}
	}
	add(d.Years, "years")
	add(d.Quarters, "quarters")
	add(d.Months, "months")
	add(d.Weeks, "weeks")
	add(d.Days, "days")
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}

// Fields are calendar field values to pin on an instant. Zero means unpinned.
type Fields struct {
	Year    int `json:"year,omitempty"`
	Quarter int `json:"quarter,omitempty"`
	Month   int `json:"month,omitempty"`
	Day     int `json:"day,omitempty"`
	Week    int `json:"week,omitempty"`
}

// Merge returns f overlaid with every pinned field of other.
func (f Fields) Merge(other Fields) Fields {
	if other.Year != 0 {
		f.Year = other.Year
	}
	if other.Quarter != 0 {
		f.Quarter = other.Quarter
	}
	if other.Month != 0 {
		f.Month = other.Month
	}
	if other.Day != 0 {
		f.Day = other.Day
	}
	if other.Week != 0 {
		f.Week = other.Week
	}
	return f
}

// ResolveQuarter replaces a pinned quarter with its first covered month.
func (f Fields) ResolveQuarter() Fields {
	if f.Quarter != 0 {
		f.Month = int(FirstMonthOfQuarter(f.Quarter))
		f.Quarter = 0
	}
	return f
}

// Get returns the pinned value for u.
func (f Fields) Get(u Unit) int {
	switch u {
	case Year:
		return f.Year
	case Quarter:
		return f.Quarter
	case Month:
		return f.Month
	case Week:
		return f.Week
	case Day:
		return f.Day
	}
	return 0
}
