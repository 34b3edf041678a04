package toolkit

import (
	"power-widgets/internal/event"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TupleEdit edits a pair of floats.
type TupleEdit struct {
	Label  string
	first  *FloatSpinBox
	second *FloatSpinBox

	// Changed fires with a [2]float64 whenever either element changes.
	Changed event.Emitter
}

// NewTupleEdit creates a float pair editor with both elements clamped to [min, max].
func NewTupleEdit(label string, a, b, min, max float64) *TupleEdit {
	t := &TupleEdit{
		Label:  label,
		first:  NewFloatSpinBox("", a, min, max),
		second: NewFloatSpinBox("", b, min, max),
	}
	t.first.Changed.Connect(func(any) { t.Changed.Emit(t.Value()) })
	t.second.Changed.Connect(func(any) { t.Changed.Emit(t.Value()) })
	return t
}

// Value returns both elements.
func (t *TupleEdit) Value() [2]float64 {
	return [2]float64{t.first.Value(), t.second.Value()}
}

// SetValue stores both elements and notifies at most once.
func (t *TupleEdit) SetValue(a, b float64) {
	c1 := t.first.setQuiet(a)
	c2 := t.second.setQuiet(b)
	if c1 || c2 {
		t.Changed.Emit(t.Value())
	}
}

// CanvasObject implements Widget.
func (t *TupleEdit) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel(t.Label),
		t.first.CanvasObject(),
		t.second.CanvasObject(),
	)
}

// IntTupleEdit edits a pair of integers.
type IntTupleEdit struct {
	Label  string
	first  *SpinBox
	second *SpinBox

	// Changed fires with a [2]int whenever either element changes.
	Changed event.Emitter
}

// NewIntTupleEdit creates an integer pair editor with both elements clamped to [min, max].
func NewIntTupleEdit(label string, a, b, min, max int) *IntTupleEdit {
	t := &IntTupleEdit{
		Label:  label,
		first:  NewSpinBox("", a, min, max),
		second: NewSpinBox("", b, min, max),
	}
	t.first.Changed.Connect(func(any) { t.Changed.Emit(t.Value()) })
	t.second.Changed.Connect(func(any) { t.Changed.Emit(t.Value()) })
	return t
}

// Value returns both elements.
func (t *IntTupleEdit) Value() [2]int {
	return [2]int{t.first.Value(), t.second.Value()}
}

// SetValue stores both elements and notifies at most once.
func (t *IntTupleEdit) SetValue(a, b int) {
	c1 := t.first.setQuiet(a)
	c2 := t.second.setQuiet(b)
	if c1 || c2 {
		t.Changed.Emit(t.Value())
	}
}

// CanvasObject implements Widget.
func (t *IntTupleEdit) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewLabel(t.Label),
		t.first.CanvasObject(),
		t.second.CanvasObject(),
	)
}
