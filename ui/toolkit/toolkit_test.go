package toolkit

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/gonum/mat"
)

func TestFloatSpinBoxClamp(t *testing.T) {
	s := NewFloatSpinBox("X", 0, -10, 10)
	var got []float64
	s.Changed.Connect(func(data any) { got = append(got, data.(float64)) })

	s.SetValue(25)
	s.SetValue(25)
	s.SetValue(-3)

	if len(got) != 2 || got[0] != 10 || got[1] != -3 {
		t.Errorf("changed values = %v, want [10 -3]", got)
	}
}

func TestTupleEditEmitsOnce(t *testing.T) {
	te := NewTupleEdit("Y", 0, 0, -100, 100)
	calls := 0
	te.Changed.Connect(func(any) { calls++ })

	te.SetValue(1, 2)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	te.SetValue(1, 2)
	if calls != 1 {
		t.Errorf("calls = %d after no-op, want 1", calls)
	}
	if v := te.Value(); v != [2]float64{1, 2} {
		t.Errorf("Value() = %v", v)
	}
}

func TestComboBoxResetChoices(t *testing.T) {
	choices := []Choice[int]{{"a", 1}, {"b", 2}}
	c := NewComboBox(func() []Choice[int] { return choices })

	if v, ok := c.Value(); !ok || v != 1 {
		t.Fatalf("initial Value() = %v, %v; want 1", v, ok)
	}
	if !c.SetValue(2) {
		t.Fatal("SetValue(2) = false")
	}
	if c.SetValue(3) {
		t.Error("SetValue of unknown value should fail")
	}

	choices = []Choice[int]{{"c", 3}, {"b", 2}}
	c.ResetChoices()
	if v, _ := c.Value(); v != 2 {
		t.Errorf("Value() after reset = %v, want 2 kept", v)
	}

	choices = nil
	c.ResetChoices()
	if _, ok := c.Value(); ok {
		t.Error("empty choices should clear the value")
	}
}

func TestSelectValue(t *testing.T) {
	s := NewSelect(func() []Choice[string] {
		return []Choice[string]{{"0: line", "0"}, {"1: path", "1"}, {"2: line", "2"}}
	})
	s.SetValue("2", "0", "9")
	got := s.Value()
	if len(got) != 2 || got[0] != "0" || got[1] != "2" {
		t.Errorf("Value() = %v, want [0 2]", got)
	}
}

func TestTableCopiesData(t *testing.T) {
	data := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	tb := NewTable([]string{"Y", "X"}, data)
	data.Set(0, 0, 99)
	if tb.Value().At(0, 0) != 1 {
		t.Error("table should hold a copy of its data")
	}
}

func TestPushButtonNative(t *testing.T) {
	test.NewApp()

	b := NewPushButton("Select")
	clicks := 0
	b.Changed.Connect(func(any) { clicks++ })

	native := b.CanvasObject().(*widget.Button)
	test.Tap(native)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}

	b.SetText("Selecting")
	if native.Text != "Selecting" {
		t.Errorf("native text = %q, want Selecting", native.Text)
	}
}

func TestSpinBoxNativeEntry(t *testing.T) {
	test.NewApp()

	s := NewSpinBox("index", 0, 0, 100)
	entry := s.CanvasObject().(*widget.Entry)
	entry.SetText("42")
	if s.Value() != 42 {
		t.Errorf("Value() = %d after typing, want 42", s.Value())
	}

	s.SetValue(7)
	if entry.Text != "7" {
		t.Errorf("entry text = %q, want 7", entry.Text)
	}
}
