package buffer

import "fmt"

// Range is a span between two points. Start is inclusive, End exclusive.
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a Range from two points.
func NewRange(start, end Point) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if Start does not come after End.
func (r Range) IsValid() bool {
	return !r.Start.After(r.End)
}

// Contains returns true if p lies within [Start, End).
func (r Range) Contains(p Point) bool {
	return !p.Before(r.Start) && p.Before(r.End)
}
