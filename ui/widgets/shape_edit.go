package widgets

import (
	"fmt"
	"log"

	"power-widgets/internal/event"
	"power-widgets/internal/interact"
	"power-widgets/internal/viewer"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/mat"
)

// TemporalLayerName is the name of the shapes layer an editor draws on.
const TemporalLayerName = "Temporal Layer"

// shapeKind describes what differs between the shape editors.
type shapeKind struct {
	name    string
	mode    viewer.ShapesMode
	initial int
	// exact is the required vertex count, or 0 when min applies.
	exact int
	min   int
}

func (k shapeKind) validate(data *mat.Dense) error {
	if data == nil {
		return fmt.Errorf("%s: no data: %w", k.name, ErrInvalidShape)
	}
	r, c := data.Dims()
	if c != 2 {
		return fmt.Errorf("%s: data must have 2 columns, got %d: %w", k.name, c, ErrInvalidShape)
	}
	if k.exact > 0 && r != k.exact {
		return fmt.Errorf("%s: data must be a (%d, 2) array, got (%d, 2): %w", k.name, k.exact, r, ErrInvalidShape)
	}
	if r < k.min {
		return fmt.Errorf("%s: data needs at least %d vertices, got %d: %w", k.name, k.min, r, ErrInvalidShape)
	}
	return nil
}

var (
	lineKind      = shapeKind{name: "line", mode: viewer.ModeAddLine, initial: 2, exact: 2}
	pathKind      = shapeKind{name: "path", mode: viewer.ModeAddPath, initial: 2, min: 2}
	rectangleKind = shapeKind{name: "rectangle", mode: viewer.ModeAddRectangle, initial: 4, exact: 4}
	polygonKind   = shapeKind{name: "polygon", mode: viewer.ModeAddPolygon, initial: 3, min: 3}
	ellipseKind   = shapeKind{name: "ellipse", mode: viewer.ModeAddEllipse, initial: 4, exact: 4}
)

// ShapeDataEdit holds the vertex array of one shape, drawn on a temporary
// shapes layer. Rows are vertices in (Y, X) order.
type ShapeDataEdit struct {
	toggle
	kind  shapeKind
	opts  Options
	table *toolkit.Table
	value *mat.Dense

	tracker *interact.Tracker
	viewer  *viewer.Viewer
	layer   viewer.LayerID

	// Changed fires with the new *mat.Dense.
	Changed event.Emitter
}

// NewLineDataEdit creates an editor for a 2-vertex line.
func NewLineDataEdit(opts ...Option) *ShapeDataEdit { return newShapeDataEdit(lineKind, opts) }

// NewPathDataEdit creates an editor for an open path.
func NewPathDataEdit(opts ...Option) *ShapeDataEdit { return newShapeDataEdit(pathKind, opts) }

// NewRectangleDataEdit creates an editor for a rectangle given by its 4 corners.
func NewRectangleDataEdit(opts ...Option) *ShapeDataEdit { return newShapeDataEdit(rectangleKind, opts) }

// NewPolygonDataEdit creates an editor for a closed polygon.
func NewPolygonDataEdit(opts ...Option) *ShapeDataEdit { return newShapeDataEdit(polygonKind, opts) }

// NewEllipseDataEdit creates an editor for an ellipse given by its bounding corners.
func NewEllipseDataEdit(opts ...Option) *ShapeDataEdit { return newShapeDataEdit(ellipseKind, opts) }

func newShapeDataEdit(kind shapeKind, opts []Option) *ShapeDataEdit {
	e := &ShapeDataEdit{
		kind:  kind,
		opts:  buildOptions(opts),
		value: mat.NewDense(kind.initial, 2, nil),
	}
	e.table = toolkit.NewTable([]string{"Y", "X"}, e.value)
	e.toggle = newToggle(kind.name+"DataEdit", e.opts, hookFuncs{activate: e.activate, deactivate: e.deactivate}, "Draw", "Drawing")
	e.tracker = interact.NewTracker(e.ctrl, shapeGesture{e})
	return e
}

// ShapeType returns the kind of shape edited.
func (e *ShapeDataEdit) ShapeType() viewer.ShapeType {
	t, _ := e.kind.mode.ShapeType()
	return t
}

// Value returns a copy of the vertex array.
func (e *ShapeDataEdit) Value() *mat.Dense {
	return mat.DenseCopyOf(e.value)
}

// SetValue validates and stores a vertex array.
func (e *ShapeDataEdit) SetValue(data *mat.Dense) error {
	if err := e.kind.validate(data); err != nil {
		return err
	}
	if mat.Equal(data, e.value) {
		return nil
	}
	e.value = mat.DenseCopyOf(data)
	e.table.SetValue(e.value)
	e.Changed.Emit(e.Value())
	return nil
}

// Layer returns the temporary shapes layer while drawing.
func (e *ShapeDataEdit) Layer() (*viewer.ShapesLayer, bool) {
	if e.viewer == nil {
		return nil, false
	}
	l, ok := e.viewer.Layers.Get(e.layer)
	if !ok {
		return nil, false
	}
	sl, ok := l.(*viewer.ShapesLayer)
	return sl, ok
}

// CanvasObject implements toolkit.Widget.
func (e *ShapeDataEdit) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(e.table.CanvasObject(), e.button.CanvasObject())
}

func (e *ShapeDataEdit) activate(s *interact.Session) error {
	v, err := e.opts.host()
	if err != nil {
		return err
	}
	prevSelection := v.Layers.Selection().Layers()
	l := v.AddShapes(TemporalLayerName)
	e.viewer = v
	e.layer = l.ID()
	s.Defer(func() {
		e.viewer = nil
		e.layer = 0
	})
	s.Defer(func() {
		ids := make([]viewer.LayerID, 0, len(prevSelection))
		for _, pl := range prevSelection {
			ids = append(ids, pl.ID())
		}
		v.Layers.Selection().Set(ids...)
	})
	s.Defer(func() {
		if err := v.Layers.Remove(l.ID()); err != nil {
			log.Printf("%s: %v", e.ctrl.Name(), err)
		}
	})

	e.forceLayerMode()
	dataConn := l.Events.Data.Connect(func(any) { e.dataChanged() })
	modeConn := l.Events.Mode.Connect(func(any) { e.forceLayerMode() })
	s.Defer(func() {
		dataConn.Disconnect()
		modeConn.Disconnect()
	})
	e.tracker.Attach(&l.MouseDragCallbacks, s)
	return nil
}

// deactivate commits the first shape drawn, if any.
func (e *ShapeDataEdit) deactivate(interact.EndReason) {
	l, ok := e.Layer()
	if !ok || l.NShapes() == 0 {
		return
	}
	s, err := l.Shape(0)
	if err != nil {
		return
	}
	if err := e.SetValue(s.Data); err != nil {
		log.Printf("%s: shape not committed: %v", e.ctrl.Name(), err)
	}
}

// forceLayerMode keeps the layer in the add mode until a shape exists, then
// selects that shape so its vertices can be adjusted.
func (e *ShapeDataEdit) forceLayerMode() {
	l, ok := e.Layer()
	if !ok {
		return
	}
	if l.NShapes() == 1 {
		l.SetMode(viewer.ModeSelect)
		l.SetSelectedData(0)
		return
	}
	l.SetMode(e.kind.mode)
}

func (e *ShapeDataEdit) dataChanged() {
	if l, ok := e.Layer(); ok && l.NShapes() > 1 {
		e.ctrl.Finish()
	}
}

// preview stores the first shape as the value when it is already valid.
func (e *ShapeDataEdit) preview(l *viewer.ShapesLayer) {
	if l.NShapes() == 0 {
		return
	}
	s, err := l.Shape(0)
	if err != nil || e.kind.validate(s.Data) != nil {
		return
	}
	e.SetValue(s.Data)
}

// shapeGesture follows the user editing the temporary layer.
type shapeGesture struct{ e *ShapeDataEdit }

func (g shapeGesture) Press(*interact.Gesture) bool {
	l, ok := g.e.Layer()
	if !ok {
		return false
	}
	if l.NShapes() > 0 && len(l.SelectedData()) == 0 {
		// The user clicked away from the shape.
		g.e.ctrl.Finish()
		return false
	}
	return true
}

func (g shapeGesture) Move(*interact.Gesture) {
	if l, ok := g.e.Layer(); ok {
		g.e.preview(l)
	}
}

func (g shapeGesture) Release(*interact.Gesture) interact.Outcome {
	l, ok := g.e.Layer()
	if !ok {
		return interact.Commit
	}
	g.e.forceLayerMode()
	l.SetSelectedData(0)
	g.e.preview(l)
	return interact.Rearm
}
