package geometry

import (
	"errors"
	"testing"
)

func TestRangeSorted(t *testing.T) {
	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{"ascending", Range{1, 4}, Range{1, 4}},
		{"descending", Range{9, 2}, Range{2, 9}},
		{"degenerate", Range{3, 3}, Range{3, 3}},
		{"negative", Range{-1, -5}, Range{-5, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Sorted(); got != tt.want {
				t.Errorf("Sorted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSliceRange(t *testing.T) {
	r, err := NewSlice(5, 2).Range()
	if err != nil {
		t.Fatalf("Range() error = %v", err)
	}
	if r != (Range{5, 2}) {
		t.Errorf("Range() = %v, want {5 2}", r)
	}

	stop := 3.0
	if _, err := (Slice{Stop: &stop}).Range(); !errors.Is(err, ErrMissingBound) {
		t.Errorf("missing start: err = %v, want ErrMissingBound", err)
	}
	start := 1.0
	if _, err := (Slice{Start: &start}).Range(); !errors.Is(err, ErrMissingBound) {
		t.Errorf("missing stop: err = %v, want ErrMissingBound", err)
	}
}

func TestBoxSlices(t *testing.T) {
	b := Box{Y: Range{1.2, 10.8}, X: Range{0, 4}}
	y, x := b.Slices()
	if y != (IntRange{2, 10}) {
		t.Errorf("y = %v, want {2 10}", y)
	}
	if x != (IntRange{0, 4}) {
		t.Errorf("x = %v, want {0 4}", x)
	}
}

func TestBoxRect(t *testing.T) {
	r := Box{Y: Range{8, 2}, X: Range{1, 5}}.Rect()
	want := Rect{X: 1, Y: 2, Width: 4, Height: 6}
	if r != want {
		t.Errorf("Rect() = %v, want %v", r, want)
	}
}

func TestManhattan(t *testing.T) {
	tests := []struct {
		a, b Point2D
		want float64
	}{
		{Point2D{10, 10}, Point2D{11, 10}, 1},
		{Point2D{10, 10}, Point2D{20, 10}, 10},
		{Point2D{10, 10}, Point2D{9, 11}, 2},
	}
	for _, tt := range tests {
		if got := tt.a.Manhattan(tt.b); got != tt.want {
			t.Errorf("%v.Manhattan(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPointInPolygon(t *testing.T) {
	square := Rect{X: 0, Y: 0, Width: 10, Height: 10}.Corners()
	if !PointInPolygon(Point2D{5, 5}, square) {
		t.Error("center should be inside")
	}
	if PointInPolygon(Point2D{15, 5}, square) {
		t.Error("outside point reported inside")
	}
}

func TestNearPolyline(t *testing.T) {
	line := []Point2D{{0, 0}, {10, 0}}
	if !NearPolyline(Point2D{5, 0.5}, line, 1) {
		t.Error("point near segment should match")
	}
	if NearPolyline(Point2D{5, 3}, line, 1) {
		t.Error("far point should not match")
	}
}
