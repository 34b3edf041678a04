package viewer

import (
	"fmt"
	"sort"

	"power-widgets/internal/event"
	"power-widgets/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// ShapeType is the geometric kind of a shape.
type ShapeType string

const (
	ShapeLine      ShapeType = "line"
	ShapePath      ShapeType = "path"
	ShapeRectangle ShapeType = "rectangle"
	ShapePolygon   ShapeType = "polygon"
	ShapeEllipse   ShapeType = "ellipse"
)

// ShapeTypes lists every shape type.
func ShapeTypes() []ShapeType {
	return []ShapeType{ShapeLine, ShapePath, ShapeRectangle, ShapePolygon, ShapeEllipse}
}

// ShapesMode is the editing mode of a shapes layer.
type ShapesMode string

const (
	ModePanZoom      ShapesMode = "pan_zoom"
	ModeSelect       ShapesMode = "select"
	ModeAddLine      ShapesMode = "add_line"
	ModeAddPath      ShapesMode = "add_path"
	ModeAddRectangle ShapesMode = "add_rectangle"
	ModeAddPolygon   ShapesMode = "add_polygon"
	ModeAddEllipse   ShapesMode = "add_ellipse"
)

// ShapeType returns the shape created by an add mode.
func (m ShapesMode) ShapeType() (ShapeType, bool) {
	switch m {
	case ModeAddLine:
		return ShapeLine, true
	case ModeAddPath:
		return ShapePath, true
	case ModeAddRectangle:
		return ShapeRectangle, true
	case ModeAddPolygon:
		return ShapePolygon, true
	case ModeAddEllipse:
		return ShapeEllipse, true
	}
	return "", false
}

// Shape is one shape. Data holds one vertex per row; the last two columns are (y, x).
type Shape struct {
	Type ShapeType
	Data *mat.Dense
}

// Vertices returns the last two columns as points.
func (s Shape) Vertices() []geometry.Point2D {
	if s.Data == nil {
		return nil
	}
	rows, cols := s.Data.Dims()
	if cols < 2 {
		return nil
	}
	pts := make([]geometry.Point2D, rows)
	for i := range pts {
		pts[i] = geometry.Point2D{X: s.Data.At(i, cols-1), Y: s.Data.At(i, cols-2)}
	}
	return pts
}

// contains reports whether p hits the shape.
func (s Shape) contains(p geometry.Point2D) bool {
	verts := s.Vertices()
	switch s.Type {
	case ShapeLine, ShapePath:
		return geometry.NearPolyline(p, verts, 1.0)
	case ShapeEllipse:
		box := geometry.BoundingBox(verts)
		ring := geometry.GenerateEllipsePoints(box.Center(), box.Width/2, box.Height/2, 32)
		return geometry.PointInPolygon(p, ring)
	default:
		return geometry.PointInPolygon(p, verts)
	}
}

// ShapesLayer holds vector shapes and supports interactive drawing.
type ShapesLayer struct {
	layerBase
	ndim     int
	shapes   []Shape
	mode     ShapesMode
	selected map[int]struct{}
	drawing  *drawState

	// MouseDragCallbacks run after the layer's own mode handling.
	MouseDragCallbacks CallbackList

	Events struct {
		Data      event.Emitter // data: nil
		Mode      event.Emitter // data: ShapesMode
		Selection event.Emitter // data: []int
	}
}

// NewShapesLayer creates an empty shapes layer.
func NewShapesLayer(name string, ndim int) *ShapesLayer {
	if ndim < 2 {
		ndim = 2
	}
	return &ShapesLayer{
		layerBase: newLayerBase(name),
		ndim:      ndim,
		mode:      ModePanZoom,
		selected:  make(map[int]struct{}),
	}
}

func (l *ShapesLayer) Kind() Kind { return KindShapes }

// Ndim returns the dimensionality of the vertex data.
func (l *ShapesLayer) Ndim() int {
	return l.ndim
}

// NShapes returns the number of shapes.
func (l *ShapesLayer) NShapes() int {
	return len(l.shapes)
}

// Shape returns a copy of shape i.
func (l *ShapesLayer) Shape(i int) (Shape, error) {
	if i < 0 || i >= len(l.shapes) {
		return Shape{}, fmt.Errorf("shape %d: %w", i, ErrShapeIndex)
	}
	s := l.shapes[i]
	return Shape{Type: s.Type, Data: mat.DenseCopyOf(s.Data)}, nil
}

// ShapeTypes returns the type of every shape in order.
func (l *ShapesLayer) ShapeTypes() []ShapeType {
	out := make([]ShapeType, len(l.shapes))
	for i, s := range l.shapes {
		out[i] = s.Type
	}
	return out
}

// AddShape appends a shape and returns its index.
func (l *ShapesLayer) AddShape(t ShapeType, data *mat.Dense) int {
	l.shapes = append(l.shapes, Shape{Type: t, Data: mat.DenseCopyOf(data)})
	l.Events.Data.Emit(nil)
	return len(l.shapes) - 1
}

// SetShapeData replaces the vertices of shape i.
func (l *ShapesLayer) SetShapeData(i int, data *mat.Dense) error {
	if i < 0 || i >= len(l.shapes) {
		return fmt.Errorf("shape %d: %w", i, ErrShapeIndex)
	}
	l.shapes[i].Data = mat.DenseCopyOf(data)
	l.Events.Data.Emit(nil)
	return nil
}

// RemoveShape deletes shape i.
func (l *ShapesLayer) RemoveShape(i int) error {
	if i < 0 || i >= len(l.shapes) {
		return fmt.Errorf("shape %d: %w", i, ErrShapeIndex)
	}
	l.shapes = append(l.shapes[:i], l.shapes[i+1:]...)
	selected := make(map[int]struct{}, len(l.selected))
	for j := range l.selected {
		switch {
		case j < i:
			selected[j] = struct{}{}
		case j > i:
			selected[j-1] = struct{}{}
		}
	}
	l.selected = selected
	l.Events.Data.Emit(nil)
	return nil
}

// Mode returns the editing mode.
func (l *ShapesLayer) Mode() ShapesMode {
	return l.mode
}

// SetMode changes the editing mode. Listeners run only on an actual change.
func (l *ShapesLayer) SetMode(mode ShapesMode) {
	if mode == l.mode {
		return
	}
	l.mode = mode
	l.drawing = nil
	l.Events.Mode.Emit(mode)
}

// SelectedData returns the selected shape indices in ascending order.
func (l *ShapesLayer) SelectedData() []int {
	out := make([]int, 0, len(l.selected))
	for i := range l.selected {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SetSelectedData replaces the shape selection. Out-of-range indices are ignored.
func (l *ShapesLayer) SetSelectedData(indices ...int) {
	l.selected = make(map[int]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(l.shapes) {
			l.selected[i] = struct{}{}
		}
	}
	l.Events.Selection.Emit(l.SelectedData())
}

// Value returns the index of the topmost shape under position.
func (l *ShapesLayer) Value(position []float64, world bool) (float64, bool) {
	if len(position) < 2 {
		return 0, false
	}
	if i, ok := l.shapeAt(pointOf(position)); ok {
		return float64(i), true
	}
	return 0, false
}

func (l *ShapesLayer) shapeAt(p geometry.Point2D) (int, bool) {
	for i := len(l.shapes) - 1; i >= 0; i-- {
		if l.shapes[i].contains(p) {
			return i, true
		}
	}
	return 0, false
}

func pointOf(position []float64) geometry.Point2D {
	n := len(position)
	return geometry.Point2D{X: position[n-1], Y: position[n-2]}
}
