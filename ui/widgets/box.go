package widgets

import (
	"fmt"

	"power-widgets/internal/event"
	"power-widgets/internal/interact"
	"power-widgets/internal/viewer"
	"power-widgets/pkg/geometry"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

const coordLimit = 1e6

// BoxSelector edits a (Y, X) range pair and can fill it from a rectangle
// dragged on the viewer.
type BoxSelector struct {
	toggle
	opts   Options
	yrange *toolkit.TupleEdit
	xrange *toolkit.TupleEdit

	tracker *interact.Tracker
	freezer interact.Freezer
	viewer  *viewer.Viewer
	// committed is the value before the session, restored on abort.
	committed geometry.Box
	quiet     bool

	// Changed fires with the new geometry.Box.
	Changed event.Emitter
}

// NewBoxSelector creates an idle box selector.
func NewBoxSelector(opts ...Option) *BoxSelector {
	b := &BoxSelector{
		opts:   buildOptions(opts),
		yrange: toolkit.NewTupleEdit("Y", 0, 0, -coordLimit, coordLimit),
		xrange: toolkit.NewTupleEdit("X", 0, 0, -coordLimit, coordLimit),
	}
	b.toggle = newToggle("BoxSelector", b.opts, hookFuncs{activate: b.activate, deactivate: b.deactivate}, "Select", "Selecting")
	b.tracker = interact.NewTracker(b.ctrl, boxGesture{b})
	b.yrange.Changed.Connect(b.forward)
	b.xrange.Changed.Connect(b.forward)
	return b
}

// Ordered reports whether both ranges are kept ascending.
func (b *BoxSelector) Ordered() bool {
	return b.opts.Ordered
}

// Value returns the (Y, X) ranges.
func (b *BoxSelector) Value() geometry.Box {
	y, x := b.yrange.Value(), b.xrange.Value()
	return geometry.Box{
		Y: geometry.NewRange(y[0], y[1]),
		X: geometry.NewRange(x[0], x[1]),
	}
}

// SetValue stores box, sorting each axis when the selector is ordered.
func (b *BoxSelector) SetValue(box geometry.Box) {
	if b.opts.Ordered {
		box = box.Sorted()
	}
	prev := b.Value()
	b.quiet = true
	b.yrange.SetValue(box.Y.Start, box.Y.Stop)
	b.xrange.SetValue(box.X.Start, box.X.Stop)
	b.quiet = false
	if v := b.Value(); v != prev {
		b.Changed.Emit(v)
	}
}

func (b *BoxSelector) forward(any) {
	if !b.quiet {
		b.Changed.Emit(b.Value())
	}
}

// SetSlices stores two possibly open-ended ranges. Both bounds of each are required.
func (b *BoxSelector) SetSlices(y, x geometry.Slice) error {
	yr, err := y.Range()
	if err != nil {
		return fmt.Errorf("Y slice %w", err)
	}
	xr, err := x.Range()
	if err != nil {
		return fmt.Errorf("X slice %w", err)
	}
	b.SetValue(geometry.Box{Y: yr, X: xr})
	return nil
}

// Slices returns the value as integer ranges for array slicing. Layer
// transforms are not applied.
func (b *BoxSelector) Slices() (y, x geometry.IntRange) {
	return b.Value().Slices()
}

// CanvasObject implements toolkit.Widget.
func (b *BoxSelector) CanvasObject() fyne.CanvasObject {
	ranges := container.NewVBox(b.xrange.CanvasObject(), b.yrange.CanvasObject())
	return container.NewHBox(ranges, b.button.CanvasObject())
}

func (b *BoxSelector) activate(s *interact.Session) error {
	v, err := b.opts.host()
	if err != nil {
		return err
	}
	b.viewer = v
	b.committed = b.Value()
	s.Defer(func() { b.viewer = nil })

	b.freezer.FreezeFor(s, v)
	box := &v.Overlays.InteractionBox
	box.Points = nil
	box.Show = true
	v.Cursor.Style = viewer.CursorCross
	s.Defer(func() { v.Cursor.Style = viewer.CursorStandard })
	b.tracker.Attach(&v.MouseDragCallbacks, s)
	return nil
}

func (b *BoxSelector) deactivate(reason interact.EndReason) {
	v := b.viewer
	if v == nil {
		return
	}
	box := &v.Overlays.InteractionBox
	if reason == interact.EndAbort {
		box.Points = nil
		box.Show = false
		b.SetValue(b.committed)
		return
	}
	if len(box.Points) == 2 {
		b.SetValue(pointsToBox(box.Points[0], box.Points[1]))
	}
}

func pointsToBox(p0, p1 geometry.Point2D) geometry.Box {
	return geometry.Box{
		Y: geometry.NewRange(p0.Y, p1.Y),
		X: geometry.NewRange(p0.X, p1.X),
	}
}

// boxGesture previews the rectangle between the press and the pointer.
type boxGesture struct{ b *BoxSelector }

func (g boxGesture) Press(*interact.Gesture) bool { return true }

func (g boxGesture) Move(gs *interact.Gesture) {
	v := g.b.viewer
	p0, p1 := gs.StartWorld(), gs.World()
	v.Overlays.InteractionBox.Points = []geometry.Point2D{p0, p1}
	g.b.SetValue(pointsToBox(p0, p1))
}

func (g boxGesture) Release(*interact.Gesture) interact.Outcome {
	return interact.Commit
}
