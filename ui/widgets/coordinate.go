package widgets

import (
	"power-widgets/internal/event"
	"power-widgets/internal/interact"
	"power-widgets/internal/viewer"
	"power-widgets/pkg/geometry"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// CoordinateSelector edits a (Y, X) point and can fill it from a click on the viewer.
type CoordinateSelector struct {
	toggle
	opts Options
	ypos *toolkit.FloatSpinBox
	xpos *toolkit.FloatSpinBox

	tracker *interact.Tracker
	freezer interact.Freezer
	viewer  *viewer.Viewer

	sample    float64
	hasSample bool
	quiet     bool

	// Changed fires with the new [2]float64 in (Y, X) order.
	Changed event.Emitter
}

// NewCoordinateSelector creates an idle coordinate selector.
func NewCoordinateSelector(opts ...Option) *CoordinateSelector {
	c := &CoordinateSelector{
		opts: buildOptions(opts),
		ypos: toolkit.NewFloatSpinBox("Y", 0, -coordLimit, coordLimit),
		xpos: toolkit.NewFloatSpinBox("X", 0, -coordLimit, coordLimit),
	}
	c.toggle = newToggle("CoordinateSelector", c.opts, hookFuncs{activate: c.activate}, "Select", "...")
	c.tracker = interact.NewTracker(c.ctrl, clickGesture{pick: c.pick})
	forward := func(any) {
		if !c.quiet {
			c.Changed.Emit(c.Value())
		}
	}
	c.ypos.Changed.Connect(forward)
	c.xpos.Changed.Connect(forward)
	return c
}

// Value returns the coordinate in (Y, X) order.
func (c *CoordinateSelector) Value() [2]float64 {
	return [2]float64{c.ypos.Value(), c.xpos.Value()}
}

// SetValue stores the coordinate.
func (c *CoordinateSelector) SetValue(y, x float64) {
	prev := c.Value()
	c.quiet = true
	c.ypos.SetValue(y)
	c.xpos.SetValue(x)
	c.quiet = false
	if v := c.Value(); v != prev {
		c.Changed.Emit(v)
	}
}

// Sample returns the layer value found under the last clicked point.
func (c *CoordinateSelector) Sample() (float64, bool) {
	return c.sample, c.hasSample
}

// CanvasObject implements toolkit.Widget.
func (c *CoordinateSelector) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(c.xpos.CanvasObject(), c.ypos.CanvasObject(), c.button.CanvasObject())
}

func (c *CoordinateSelector) activate(s *interact.Session) error {
	v, err := c.opts.host()
	if err != nil {
		return err
	}
	c.viewer = v
	s.Defer(func() { c.viewer = nil })
	v.Overlays.InteractionBox.Show = false
	c.freezer.FreezeFor(s, v)
	c.tracker.Attach(&v.MouseDragCallbacks, s)
	return nil
}

func (c *CoordinateSelector) pick(g *interact.Gesture) bool {
	p := g.StartWorld()
	c.SetValue(p.Y, p.X)
	c.sample, _, c.hasSample = c.viewer.Layers.ValueAt(g.StartPosition)
	showPoint(c.viewer, p)
	return true
}

func showPoint(v *viewer.Viewer, p geometry.Point2D) {
	v.Overlays.InteractionBox.Points = []geometry.Point2D{p}
	v.Overlays.InteractionBox.Show = true
}

// clickGesture commits on a click and ignores drags. pick reports whether
// the click found something; a click that finds nothing cancels the session.
type clickGesture struct {
	pick func(g *interact.Gesture) bool
}

func (clickGesture) Press(*interact.Gesture) bool { return true }

func (clickGesture) Move(*interact.Gesture) {}

func (cg clickGesture) Release(g *interact.Gesture) interact.Outcome {
	if !g.IsClick() {
		return interact.Rearm
	}
	if !cg.pick(g) {
		return interact.Cancel
	}
	return interact.Commit
}
