package toolkit

import (
	"power-widgets/internal/event"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Choice is one selectable entry.
type Choice[T comparable] struct {
	Label string
	Value T
}

// ComboBox selects one value from choices computed on demand.
type ComboBox[T comparable] struct {
	choicesFunc func() []Choice[T]
	choices     []Choice[T]
	current     int // index into choices, -1 when nothing is selected

	// Changed fires with the new value of type T.
	Changed event.Emitter

	native  *widget.Select
	syncing bool
}

// NewComboBox creates a combo box and populates it from choices.
func NewComboBox[T comparable](choices func() []Choice[T]) *ComboBox[T] {
	c := &ComboBox[T]{choicesFunc: choices, current: -1}
	c.ResetChoices()
	return c
}

// ResetChoices re-evaluates the choices, keeping the current value when it is
// still available and otherwise falling back to the first choice.
func (c *ComboBox[T]) ResetChoices() {
	prev, had := c.Value()
	var next []Choice[T]
	if c.choicesFunc != nil {
		next = c.choicesFunc()
	}
	c.choices = next
	c.current = -1
	if had {
		for i, ch := range next {
			if ch.Value == prev {
				c.current = i
			}
		}
	}
	if c.current < 0 && len(next) > 0 {
		c.current = 0
	}
	c.sync()
	if v, ok := c.Value(); ok && (!had || v != prev) {
		c.Changed.Emit(v)
	}
}

// Choices returns the current choices.
func (c *ComboBox[T]) Choices() []Choice[T] {
	return append([]Choice[T](nil), c.choices...)
}

// Value returns the selected value.
func (c *ComboBox[T]) Value() (T, bool) {
	if c.current < 0 || c.current >= len(c.choices) {
		var zero T
		return zero, false
	}
	return c.choices[c.current].Value, true
}

// SetValue selects v. It reports false when v is not among the choices.
func (c *ComboBox[T]) SetValue(v T) bool {
	for i, ch := range c.choices {
		if ch.Value == v {
			if i != c.current {
				c.current = i
				c.sync()
				c.Changed.Emit(v)
			}
			return true
		}
	}
	return false
}

func (c *ComboBox[T]) labels() []string {
	out := make([]string, len(c.choices))
	for i, ch := range c.choices {
		out[i] = ch.Label
	}
	return out
}

func (c *ComboBox[T]) sync() {
	if c.native == nil {
		return
	}
	c.syncing = true
	c.native.Options = c.labels()
	if c.current >= 0 {
		c.native.SetSelected(c.choices[c.current].Label)
	} else {
		c.native.ClearSelected()
	}
	c.native.Refresh()
	c.syncing = false
}

// CanvasObject implements Widget.
func (c *ComboBox[T]) CanvasObject() fyne.CanvasObject {
	if c.native == nil {
		c.native = widget.NewSelect(c.labels(), func(label string) {
			if c.syncing {
				return
			}
			for _, ch := range c.choices {
				if ch.Label == label {
					c.SetValue(ch.Value)
					return
				}
			}
		})
		c.sync()
	}
	return c.native
}

// Select chooses any number of values from choices computed on demand.
type Select[T comparable] struct {
	choicesFunc func() []Choice[T]
	choices     []Choice[T]
	selected    map[int]struct{}

	// Changed fires with the new []T value.
	Changed event.Emitter

	native  *widget.CheckGroup
	syncing bool
}

// NewSelect creates a multi-select widget.
func NewSelect[T comparable](choices func() []Choice[T]) *Select[T] {
	s := &Select[T]{choicesFunc: choices, selected: make(map[int]struct{})}
	s.ResetChoices()
	return s
}

// ResetChoices re-evaluates the choices and keeps the values still available.
func (s *Select[T]) ResetChoices() {
	prev := s.Value()
	if s.choicesFunc != nil {
		s.choices = s.choicesFunc()
	} else {
		s.choices = nil
	}
	s.selected = make(map[int]struct{})
	for i, ch := range s.choices {
		for _, v := range prev {
			if ch.Value == v {
				s.selected[i] = struct{}{}
			}
		}
	}
	s.sync()
	if len(s.selected) != len(prev) {
		s.Changed.Emit(s.Value())
	}
}

// Choices returns the current choices.
func (s *Select[T]) Choices() []Choice[T] {
	return append([]Choice[T](nil), s.choices...)
}

// Value returns the selected values in choice order.
func (s *Select[T]) Value() []T {
	var out []T
	for i, ch := range s.choices {
		if _, ok := s.selected[i]; ok {
			out = append(out, ch.Value)
		}
	}
	return out
}

// SetValue selects exactly the given values. Unknown values are ignored.
func (s *Select[T]) SetValue(values ...T) {
	s.selected = make(map[int]struct{})
	for i, ch := range s.choices {
		for _, v := range values {
			if ch.Value == v {
				s.selected[i] = struct{}{}
			}
		}
	}
	s.sync()
	s.Changed.Emit(s.Value())
}

func (s *Select[T]) sync() {
	if s.native == nil {
		return
	}
	s.syncing = true
	labels := make([]string, len(s.choices))
	var sel []string
	for i, ch := range s.choices {
		labels[i] = ch.Label
		if _, ok := s.selected[i]; ok {
			sel = append(sel, ch.Label)
		}
	}
	s.native.Options = labels
	s.native.SetSelected(sel)
	s.native.Refresh()
	s.syncing = false
}

// CanvasObject implements Widget.
func (s *Select[T]) CanvasObject() fyne.CanvasObject {
	if s.native == nil {
		s.native = widget.NewCheckGroup(nil, func(labels []string) {
			if s.syncing {
				return
			}
			var values []T
			for _, ch := range s.choices {
				for _, l := range labels {
					if ch.Label == l {
						values = append(values, ch.Value)
					}
				}
			}
			s.SetValue(values...)
		})
		s.sync()
	}
	return s.native
}
