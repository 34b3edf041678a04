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

// ZStepSpinBox is an integer spin box that can read the current step of the
// viewer's last used dimension.
type ZStepSpinBox struct {
	opts   Options
	spin   *toolkit.SpinBox
	button *toolkit.PushButton

	// Changed fires with the new int.
	Changed event.Emitter
}

// NewZStepSpinBox creates a z-step reader.
func NewZStepSpinBox(opts ...Option) *ZStepSpinBox {
	z := &ZStepSpinBox{
		opts:   buildOptions(opts),
		spin:   toolkit.NewSpinBox("", 0, 0, int(coordLimit)),
		button: toolkit.NewPushButton("Read slider"),
	}
	z.spin.Changed.Connect(func(data any) { z.Changed.Emit(data) })
	z.button.Changed.Connect(func(any) { logErr("ZStepSpinBox", z.Read()) })
	return z
}

// Value returns the step.
func (z *ZStepSpinBox) Value() int {
	return z.spin.Value()
}

// SetValue stores a step.
func (z *ZStepSpinBox) SetValue(step int) {
	z.spin.SetValue(step)
}

// Button returns the read button.
func (z *ZStepSpinBox) Button() *toolkit.PushButton {
	return z.button
}

// Read stores the current step of the viewer's last used dimension.
func (z *ZStepSpinBox) Read() error {
	v, err := z.opts.host()
	if err != nil {
		return err
	}
	if n := v.Dims.NDim(); n < 3 {
		return fmt.Errorf("viewer has %d dimensions: %w", n, ErrDimensionality)
	}
	z.spin.SetValue(v.Dims.CurrentStep()[v.Dims.LastUsed()])
	return nil
}

// CanvasObject implements toolkit.Widget.
func (z *ZStepSpinBox) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(z.spin.CanvasObject(), z.button.CanvasObject())
}

// ZRangeEdit is a pair of steps that can follow the viewer's dims slider.
// Unlike slicing ranges, Stop is inclusive.
type ZRangeEdit struct {
	toggle
	opts  Options
	edit  *toolkit.IntTupleEdit
	steps []int
	start int
	began bool

	// Changed fires with the new geometry.IntRange.
	Changed event.Emitter
}

// NewZRangeEdit creates an idle z-range tracker.
func NewZRangeEdit(opts ...Option) *ZRangeEdit {
	z := &ZRangeEdit{
		opts: buildOptions(opts),
		edit: toolkit.NewIntTupleEdit("", 0, 0, 0, int(coordLimit)),
	}
	z.toggle = newToggle("ZRangeEdit", z.opts, hookFuncs{activate: z.activate}, "Track slider", "Finish tracking")
	z.ctrl.SetExclusive(false)
	z.edit.Changed.Connect(func(any) { z.Changed.Emit(z.Value()) })
	return z
}

// Ordered reports whether Start <= Stop is enforced.
func (z *ZRangeEdit) Ordered() bool {
	return z.opts.Ordered
}

// Value returns the range.
func (z *ZRangeEdit) Value() geometry.IntRange {
	v := z.edit.Value()
	return geometry.IntRange{Start: v[0], Stop: v[1]}
}

// SetValue stores r, sorted when the edit is ordered.
func (z *ZRangeEdit) SetValue(r geometry.IntRange) {
	if z.opts.Ordered {
		r = r.Sorted()
	}
	z.edit.SetValue(r.Start, r.Stop)
}

// CanvasObject implements toolkit.Widget.
func (z *ZRangeEdit) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(z.edit.CanvasObject(), z.button.CanvasObject())
}

func (z *ZRangeEdit) activate(s *interact.Session) error {
	v, err := z.opts.host()
	if err != nil {
		return err
	}
	z.steps = v.Dims.CurrentStep()
	z.began = false
	stepConn := v.Dims.Events.CurrentStep.Connect(func(any) { z.stepChanged(v) })
	ndimConn := v.Dims.Events.NDim.Connect(func(data any) {
		z.ctrl.Abort(fmt.Sprintf("dimensionality changed to %v", data))
	})
	s.Defer(func() {
		stepConn.Disconnect()
		ndimConn.Disconnect()
	})
	return nil
}

// stepChanged writes (start, current) for the last used dimension. The start
// is the step that dimension had when tracking began.
func (z *ZRangeEdit) stepChanged(v *viewer.Viewer) {
	idx := v.Dims.LastUsed()
	if !z.began {
		if idx < len(z.steps) {
			z.start = z.steps[idx]
		}
		z.began = true
	}
	z.SetValue(geometry.IntRange{Start: z.start, Stop: v.Dims.CurrentStep()[idx]})
}
