/*
Package calendar provides the immutable calendar instant used by the period engine.

PURPOSE:
  Wraps time.Time with the handful of calendar operations the period engine
  needs: pin calendar fields (Set), shift by calendar durations (Plus/Minus),
  and truncate to unit boundaries (StartOf/EndOf). Every operation returns a
  new Instant; the receiver is never modified.

UNITS:
  day, week (ISO, Monday first), month, quarter, year.

MONTH ARITHMETIC:
  Month-based shifts clamp the day to the target month length:
    2024-03-31 + {Months: -1} = 2024-02-29   (not 2024-03-02)

TIME ZONES:
  The location of the wrapped time.Time is kept by every operation. No
  conversion happens except in SerializeDateTime, which writes UTC.

SEE ALSO:
  - duration.go: Duration and Fields
  - bounds.go: closed [Start, End] interval
*/
package calendar

import (
	"fmt"
	"time"
)

// Unit is a calendar unit a period is aligned to.
type Unit string

const (
	Day     Unit = "day"
	Week    Unit = "week"
	Month   Unit = "month"
	Quarter Unit = "quarter"
	Year    Unit = "year"
)

// Valid reports whether u is one of the known units.
func (u Unit) Valid() bool {
	switch u {
	case Day, Week, Month, Quarter, Year:
		return true
	}
	return false
}

// Instant is an immutable point in time with calendar helpers.
type Instant struct {
	Time time.Time
}

// Constructors
func New(year int, month time.Month, day int) Instant {
	return Instant{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func FromTime(t time.Time) Instant { return Instant{Time: t} }

func Now() Instant { return Instant{Time: time.Now()} }

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (Instant, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Instant{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Instant{Time: t}, nil
}

// Properties
func (i Instant) Year() int         { return i.Time.Year() }
func (i Instant) Month() time.Month { return i.Time.Month() }
func (i Instant) Day() int          { return i.Time.Day() }
func (i Instant) Quarter() int      { return (int(i.Time.Month())-1)/3 + 1 }
func (i Instant) IsZero() bool      { return i.Time.IsZero() }

func (i Instant) Location() *time.Location { return i.Time.Location() }

// WeekNumber returns the ISO 8601 week number.
func (i Instant) WeekNumber() int {
	_, w := i.Time.ISOWeek()
	return w
}

// WeekYear returns the ISO 8601 week-numbering year.
func (i Instant) WeekYear() int {
	y, _ := i.Time.ISOWeek()
	return y
}

// Weekday returns the ISO weekday, Monday = 1 ... Sunday = 7.
func (i Instant) Weekday() int { return isoWeekday(i.Time) }

// Get reads the calendar field matching u.
func (i Instant) Get(u Unit) int {
	switch u {
	case Year:
		return i.Year()
	case Quarter:
		return i.Quarter()
	case Month:
		return int(i.Month())
	case Week:
		return i.WeekNumber()
	case Day:
		return i.Day()
	}
	return 0
}

// Comparison
func (i Instant) Before(other Instant) bool { return i.Time.Before(other.Time) }
func (i Instant) After(other Instant) bool  { return i.Time.After(other.Time) }
func (i Instant) Equal(other Instant) bool  { return i.Time.Equal(other.Time) }

// SameDay reports whether both instants fall on the same calendar date.
func (i Instant) SameDay(other Instant) bool {
	y1, m1, d1 := i.Time.Date()
	y2, m2, d2 := other.Time.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SameWeek reports whether both instants fall in the same ISO week.
func (i Instant) SameWeek(other Instant) bool {
	y1, w1 := i.Time.ISOWeek()
	y2, w2 := other.Time.ISOWeek()
	return y1 == y2 && w1 == w2
}

// =============================================================================
// ARITHMETIC
// =============================================================================

// Plus shifts the instant by d. Years, quarters and months move together as
// one month shift with the day clamped to the target month; weeks and days
// are then added as calendar days.
func (i Instant) Plus(d Duration) Instant {
	t := i.Time
	if months := d.Years*12 + d.Quarters*3 + d.Months; months != 0 {
		t = addMonths(t, months)
	}
	if days := d.Weeks*7 + d.Days; days != 0 {
		t = t.AddDate(0, 0, days)
	}
	return Instant{Time: t}
}

// Minus shifts the instant back by d.
func (i Instant) Minus(d Duration) Instant { return i.Plus(d.Neg()) }

// Set pins calendar fields. A pinned Week moves to that ISO week keeping
// the weekday, and takes precedence over Month and Day. With a Year pinned
// too, the week-year moves by as many years as the calendar year does, so
// week 1 of next year stays in this year's selection; week 53 falls back to
// the last week of a 52-week year. Quarter is not a settable field: callers
// translate it with Fields.ResolveQuarter first. The day is clamped to the
// resulting month.
func (i Instant) Set(f Fields) Instant {
	t := i.Time
	hh, mm, ss := t.Clock()
	ns, loc := t.Nanosecond(), t.Location()

	if f.Week != 0 {
		wy, _ := t.ISOWeek()
		if f.Year != 0 {
			wy += f.Year - t.Year()
		}
		w := f.Week
		if last := isoWeeksIn(wy, loc); w > last {
			w = last
		}
		start := isoWeekStart(wy, w, loc)
		day := start.AddDate(0, 0, isoWeekday(t)-1)
		y, m, d := day.Date()
		return Instant{Time: time.Date(y, m, d, hh, mm, ss, ns, loc)}
	}

	y, m, d := t.Date()
	if f.Year != 0 {
		y = f.Year
	}
	if f.Month != 0 {
		m = time.Month(f.Month)
	}
	if f.Day != 0 {
		d = f.Day
	}
	if max := DaysIn(y, m); d > max {
		d = max
	}
	return Instant{Time: time.Date(y, m, d, hh, mm, ss, ns, loc)}
}

// StartOf truncates to the first instant of the unit containing i.
func (i Instant) StartOf(u Unit) Instant {
	y, m, d := i.Time.Date()
	loc := i.Time.Location()
	switch u {
	case Day:
		return Instant{Time: time.Date(y, m, d, 0, 0, 0, 0, loc)}
	case Week:
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)
		return Instant{Time: day.AddDate(0, 0, 1-isoWeekday(day))}
	case Month:
		return Instant{Time: time.Date(y, m, 1, 0, 0, 0, 0, loc)}
	case Quarter:
		return Instant{Time: time.Date(y, FirstMonthOfQuarter(i.Quarter()), 1, 0, 0, 0, 0, loc)}
	case Year:
		return Instant{Time: time.Date(y, time.January, 1, 0, 0, 0, 0, loc)}
	}
	return i
}

// EndOf returns the last instant of the unit containing i.
func (i Instant) EndOf(u Unit) Instant {
	start := i.StartOf(u).Time
	var next time.Time
	switch u {
	case Day:
		next = start.AddDate(0, 0, 1)
	case Week:
		next = start.AddDate(0, 0, 7)
	case Month:
		next = start.AddDate(0, 1, 0)
	case Quarter:
		next = start.AddDate(0, 3, 0)
	case Year:
		next = start.AddDate(1, 0, 0)
	default:
		return i
	}
	return Instant{Time: next.Add(-time.Nanosecond)}
}

// =============================================================================
// FORMATTING
// =============================================================================

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Format formats with a Go layout.
func (i Instant) Format(layout string) string { return i.Time.Format(layout) }

func (i Instant) String() string { return i.Time.Format(DateLayout) }

// SerializeDate writes the date-only storage form (YYYY-MM-DD).
func SerializeDate(i Instant) string { return i.Time.Format(DateLayout) }

// SerializeDateTime writes the datetime storage form in UTC.
func SerializeDateTime(i Instant) string { return i.Time.UTC().Format(DateTimeLayout) }

// =============================================================================
// UTILITIES
// =============================================================================

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstMonthOfQuarter returns the first month covered by quarter q (1-4).
func FirstMonthOfQuarter(q int) time.Month { return time.Month((q-1)*3 + 1) }

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	if max := DaysIn(ty, tm); d > max {
		d = max
	}
	return time.Date(ty, tm, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// isoWeekStart returns the Monday of ISO week w in week-year wy.
func isoWeekStart(wy, w int, loc *time.Location) time.Time {
	jan4 := time.Date(wy, time.January, 4, 0, 0, 0, 0, loc)
	monday := jan4.AddDate(0, 0, 1-isoWeekday(jan4))
	return monday.AddDate(0, 0, (w-1)*7)
}

// isoWeeksIn returns the number of ISO weeks in week-year wy, 52 or 53.
func isoWeeksIn(wy int, loc *time.Location) int {
	_, w := time.Date(wy, time.December, 28, 0, 0, 0, 0, loc).ISOWeek()
	return w
}
