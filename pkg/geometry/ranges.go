package geometry

import (
	"fmt"
	"math"
)

// Range is a closed pair of floats. Start and Stop are not required to be ordered.
type Range struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
}

// NewRange creates a new Range.
func NewRange(start, stop float64) Range {
	return Range{Start: start, Stop: stop}
}

// Sorted returns the range with Start <= Stop.
func (r Range) Sorted() Range {
	if r.Start > r.Stop {
		return Range{Start: r.Stop, Stop: r.Start}
	}
	return r
}

// Len returns the absolute extent of the range.
func (r Range) Len() float64 {
	return math.Abs(r.Stop - r.Start)
}

// Slice is a possibly open-ended range. A nil bound means "unbounded".
type Slice struct {
	Start *float64
	Stop  *float64
}

// NewSlice creates a Slice with both bounds present.
func NewSlice(start, stop float64) Slice {
	return Slice{Start: &start, Stop: &stop}
}

// Range converts the slice to a closed Range. Both bounds must be present.
func (s Slice) Range() (Range, error) {
	if s.Start == nil {
		return Range{}, fmt.Errorf("start: %w", ErrMissingBound)
	}
	if s.Stop == nil {
		return Range{}, fmt.Errorf("stop: %w", ErrMissingBound)
	}
	return Range{Start: *s.Start, Stop: *s.Stop}, nil
}

// IntRange is a pair of integers. Whether Stop is inclusive depends on the producer.
type IntRange struct {
	Start int `json:"start"`
	Stop  int `json:"stop"`
}

// Sorted returns the range with Start <= Stop.
func (r IntRange) Sorted() IntRange {
	if r.Start > r.Stop {
		return IntRange{Start: r.Stop, Stop: r.Start}
	}
	return r
}

// Box is a 2D selection made of a Y range and an X range.
type Box struct {
	Y Range `json:"y"`
	X Range `json:"x"`
}

// Sorted returns the box with both axes ordered ascending.
func (b Box) Sorted() Box {
	return Box{Y: b.Y.Sorted(), X: b.X.Sorted()}
}

// Rect returns the box as a rectangle in (X, Y) image coordinates.
func (b Box) Rect() Rect {
	s := b.Sorted()
	return Rect{X: s.X.Start, Y: s.Y.Start, Width: s.X.Len(), Height: s.Y.Len()}
}

// Slices returns integer half-open ranges usable for array slicing.
// Start is rounded up and Stop is truncated.
func (b Box) Slices() (y, x IntRange) {
	toInt := func(r Range) IntRange {
		return IntRange{Start: int(math.Ceil(r.Start)), Stop: int(r.Stop)}
	}
	return toInt(b.Y), toInt(b.X)
}
