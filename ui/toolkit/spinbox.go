package toolkit

import (
	"math"
	"strconv"

	"power-widgets/internal/event"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// FloatSpinBox edits a bounded float.
type FloatSpinBox struct {
	Label    string
	min, max float64
	value    float64

	// Changed fires with the new float64 value.
	Changed event.Emitter

	native  *widget.Entry
	syncing bool
}

// NewFloatSpinBox creates a float editor clamped to [min, max].
func NewFloatSpinBox(label string, value, min, max float64) *FloatSpinBox {
	s := &FloatSpinBox{Label: label, min: min, max: max}
	s.value = s.clamp(value)
	return s
}

// Value returns the current value.
func (s *FloatSpinBox) Value() float64 {
	return s.value
}

// SetValue clamps and stores v, notifying listeners on change.
func (s *FloatSpinBox) SetValue(v float64) {
	if !s.setQuiet(v) {
		return
	}
	s.Changed.Emit(s.value)
}

// setQuiet stores v without notifying. Used by composite widgets that emit once.
func (s *FloatSpinBox) setQuiet(v float64) bool {
	v = s.clamp(v)
	if v == s.value {
		return false
	}
	s.value = v
	s.sync()
	return true
}

func (s *FloatSpinBox) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.min
	}
	return math.Max(s.min, math.Min(s.max, v))
}

func (s *FloatSpinBox) sync() {
	if s.native == nil {
		return
	}
	s.syncing = true
	s.native.SetText(strconv.FormatFloat(s.value, 'g', -1, 64))
	s.syncing = false
}

// CanvasObject implements Widget.
func (s *FloatSpinBox) CanvasObject() fyne.CanvasObject {
	if s.native == nil {
		s.native = widget.NewEntry()
		s.native.SetText(strconv.FormatFloat(s.value, 'g', -1, 64))
		s.native.OnChanged = func(text string) {
			if s.syncing {
				return
			}
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				s.SetValue(v)
			}
		}
	}
	return s.native
}

// SpinBox edits a bounded integer.
type SpinBox struct {
	Label    string
	min, max int
	value    int

	// Changed fires with the new int value.
	Changed event.Emitter

	native  *widget.Entry
	syncing bool
}

// NewSpinBox creates an integer editor clamped to [min, max].
func NewSpinBox(label string, value, min, max int) *SpinBox {
	s := &SpinBox{Label: label, min: min, max: max}
	s.value = s.clamp(value)
	return s
}

// Value returns the current value.
func (s *SpinBox) Value() int {
	return s.value
}

// SetValue clamps and stores v, notifying listeners on change.
func (s *SpinBox) SetValue(v int) {
	if !s.setQuiet(v) {
		return
	}
	s.Changed.Emit(s.value)
}

func (s *SpinBox) setQuiet(v int) bool {
	v = s.clamp(v)
	if v == s.value {
		return false
	}
	s.value = v
	if s.native != nil {
		s.syncing = true
		s.native.SetText(strconv.Itoa(v))
		s.syncing = false
	}
	return true
}

func (s *SpinBox) clamp(v int) int {
	return max(s.min, min(s.max, v))
}

// CanvasObject implements Widget.
func (s *SpinBox) CanvasObject() fyne.CanvasObject {
	if s.native == nil {
		s.native = widget.NewEntry()
		s.native.SetText(strconv.Itoa(s.value))
		s.native.OnChanged = func(text string) {
			if s.syncing {
				return
			}
			if v, err := strconv.Atoi(text); err == nil {
				s.SetValue(v)
			}
		}
	}
	return s.native
}
