package viewer

import "power-widgets/pkg/geometry"

// InteractionBox is the host overlay used to preview box and point selections.
// Points holds zero, one or two world positions.
type InteractionBox struct {
	Points []geometry.Point2D
	Show   bool
}

// Box returns the rectangle spanned by the points.
func (b *InteractionBox) Box() (geometry.Rect, bool) {
	if len(b.Points) == 0 {
		return geometry.Rect{}, false
	}
	return geometry.BoundingBox(b.Points), true
}

// Overlays groups the viewer's overlays.
type Overlays struct {
	InteractionBox InteractionBox
}

// Cursor styles.
const (
	CursorStandard = "standard"
	CursorCross    = "cross"
)

// Cursor is the canvas pointer appearance.
type Cursor struct {
	Style string
}
