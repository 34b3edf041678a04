package viewer

import (
	"power-widgets/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// minVertexSpacing is the world distance between freehand path/polygon vertices.
const minVertexSpacing = 1.0

// drawState is the shape being created or moved by the current press.
type drawState struct {
	index   int
	creates bool
	start   geometry.Point2D
	last    geometry.Point2D
	leading []float64
	points  []geometry.Point2D
}

// handleBuiltin applies the layer's own mode behavior to a mouse event.
func (l *ShapesLayer) handleBuiltin(ev MouseEvent) {
	p := ev.World()
	switch ev.Type {
	case MousePress:
		l.press(ev, p)
	case MouseMove:
		l.move(p)
	case MouseRelease:
		l.move(p)
		l.release()
	}
}

func (l *ShapesLayer) press(ev MouseEvent, p geometry.Point2D) {
	l.drawing = nil
	if t, ok := l.mode.ShapeType(); ok {
		d := &drawState{creates: true, start: p, last: p, leading: l.leading(ev.Position)}
		switch t {
		case ShapePath, ShapePolygon:
			d.points = []geometry.Point2D{p}
		case ShapeLine:
			d.points = []geometry.Point2D{p, p}
		default:
			d.points = geometry.Rect{X: p.X, Y: p.Y}.Corners()
		}
		l.drawing = d
		d.index = l.AddShape(t, l.toData(d.points, d.leading))
		l.SetSelectedData(d.index)
		return
	}
	if l.mode != ModeSelect {
		return
	}
	i, ok := l.shapeAt(p)
	if !ok {
		l.SetSelectedData()
		return
	}
	l.SetSelectedData(i)
	l.drawing = &drawState{index: i, start: p, last: p}
}

func (l *ShapesLayer) move(p geometry.Point2D) {
	d := l.drawing
	if d == nil || d.index >= len(l.shapes) {
		return
	}
	if !d.creates {
		delta := p.Sub(d.last)
		d.last = p
		data := mat.DenseCopyOf(l.shapes[d.index].Data)
		rows, cols := data.Dims()
		for r := 0; r < rows; r++ {
			data.Set(r, cols-1, data.At(r, cols-1)+delta.X)
			data.Set(r, cols-2, data.At(r, cols-2)+delta.Y)
		}
		_ = l.SetShapeData(d.index, data)
		return
	}

	d.last = p
	switch l.shapes[d.index].Type {
	case ShapeLine:
		d.points[1] = p
	case ShapePath, ShapePolygon:
		if p.Distance(d.points[len(d.points)-1]) < minVertexSpacing {
			return
		}
		d.points = append(d.points, p)
	default:
		box := geometry.BoundingBox([]geometry.Point2D{d.start, p})
		d.points = box.Corners()
	}
	_ = l.SetShapeData(d.index, l.toData(d.points, d.leading))
}

func (l *ShapesLayer) release() {
	d := l.drawing
	l.drawing = nil
	if d == nil || !d.creates || d.index >= len(l.shapes) {
		return
	}
	minVerts := 0
	switch l.shapes[d.index].Type {
	case ShapePath:
		minVerts = 2
	case ShapePolygon:
		minVerts = 3
	}
	if len(d.points) < minVerts {
		_ = l.RemoveShape(d.index)
	}
}

// leading returns the non-displayed coordinates of a world position.
func (l *ShapesLayer) leading(position []float64) []float64 {
	lead := make([]float64, l.ndim-2)
	if n := len(position); n >= l.ndim {
		copy(lead, position[n-l.ndim:n-2])
	}
	return lead
}

// toData builds an (n, ndim) vertex matrix.
func (l *ShapesLayer) toData(points []geometry.Point2D, leading []float64) *mat.Dense {
	data := mat.NewDense(len(points), l.ndim, nil)
	for r, p := range points {
		for c, v := range leading {
			data.Set(r, c, v)
		}
		data.Set(r, l.ndim-2, p.Y)
		data.Set(r, l.ndim-1, p.X)
	}
	return data
}
