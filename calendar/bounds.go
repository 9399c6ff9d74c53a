package calendar

// Bounds is a closed interval [Start, End] of instants.
type Bounds struct {
	Start Instant
	End   Instant
}

// Contains returns true if the instant is within [Start, End].
func (b Bounds) Contains(i Instant) bool {
	return !i.Before(b.Start) && !i.After(b.End)
}

// Valid reports whether Start is not after End.
func (b Bounds) Valid() bool { return !b.Start.After(b.End) }

// String returns a string representation of the bounds.
func (b Bounds) String() string {
	return "[" + b.Start.String() + ", " + b.End.String() + "]"
}
