package widgets

import (
	"errors"
	"testing"

	"power-widgets/internal/viewer"
	"power-widgets/ui/prefs"

	"gonum.org/v1/gonum/mat"
)

func shapesViewer(t *testing.T) (*viewer.Viewer, *viewer.ShapesLayer) {
	t.Helper()
	v := viewer.New(2)
	l := v.AddShapes("rois")
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, []float64{0, 0, 5, 5}))
	l.AddShape(viewer.ShapeRectangle, mat.NewDense(4, 2, []float64{0, 0, 0, 4, 4, 4, 4, 0}))
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, []float64{1, 1, 2, 2}))
	return v, l
}

func TestShapeComboBoxFilter(t *testing.T) {
	v, l := shapesViewer(t)
	c := NewShapeComboBox(WithViewer(v), WithFilter(viewer.ShapeLine))
	choices := c.Choices()
	if len(choices) != 2 || choices[0].Label != "0: line" || choices[1].Value != 2 {
		t.Fatalf("choices = %+v", choices)
	}
	if err := c.SetValue(l.ID(), 2); err != nil {
		t.Fatal(err)
	}
	if sel := l.SelectedData(); len(sel) != 1 || sel[0] != 2 {
		t.Errorf("layer selection = %v", sel)
	}
	data, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	if data.At(1, 0) != 2 {
		t.Errorf("value = %v", mat.Formatted(data))
	}
	if err := c.SetValue(l.ID(), 1); !errors.Is(err, viewer.ErrShapeIndex) {
		t.Errorf("filtered shape accepted: %v", err)
	}
}

func TestShapeComboBoxFollowsLayerData(t *testing.T) {
	v, l := shapesViewer(t)
	c := NewShapeComboBox(WithViewer(v))
	if len(c.Choices()) != 3 {
		t.Fatalf("choices = %d", len(c.Choices()))
	}
	l.AddShape(viewer.ShapeEllipse, mat.NewDense(4, 2, nil))
	if len(c.Choices()) != 4 {
		t.Errorf("choices after add = %d, want 4", len(c.Choices()))
	}

	other := v.AddShapes("other")
	c.ResetChoices()
	if err := c.SetValue(other.ID(), 0); err == nil {
		t.Error("empty layer accepted a shape index")
	}
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, nil))
	if len(c.Choices()) != 0 {
		t.Error("old layer still connected")
	}
}

func TestShapeComboBoxFocusesDims(t *testing.T) {
	v := viewer.New(3)
	l := viewer.NewShapesLayer("stack", 3)
	v.AddLayer(l)
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 3, []float64{0, 0, 0, 0, 1, 1}))
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 3, []float64{4, 0, 0, 6, 1, 1}))
	c := NewShapeComboBox(WithViewer(v))
	if err := c.SetValue(l.ID(), 1); err != nil {
		t.Fatal(err)
	}
	if step := v.Dims.CurrentStep()[0]; step != 5 {
		t.Errorf("dims step = %d, want 5", step)
	}
}

func TestShapeSelect(t *testing.T) {
	v, l := shapesViewer(t)
	s := NewShapeSelect(WithViewer(v))
	if err := s.SetValue(l.ID(), 0, 2); err != nil {
		t.Fatal(err)
	}
	data, err := s.Value()
	if err != nil || len(data) != 2 {
		t.Fatalf("Value() = %d arrays, err %v", len(data), err)
	}
	if len(l.SelectedData()) != 0 {
		t.Error("multi-selection should not focus a shape")
	}
	s.SetValue(l.ID(), 1)
	if sel := l.SelectedData(); len(sel) != 1 || sel[0] != 1 {
		t.Errorf("single selection not focused: %v", sel)
	}
}

func TestColumnChoice(t *testing.T) {
	v := viewer.New(2)
	plain := v.AddShapes("plain")
	measured := v.AddShapes("measured")
	f := measured.Features()
	f.AddColumn("area", []float64{3, 5, 8})
	f.AddColumn("perimeter", []float64{7, 9, 12})

	c := NewColumnChoice(WithViewer(v))
	if err := c.SetValue(plain.ID(), "area"); err == nil {
		t.Error("layer without features accepted")
	}
	if err := c.SetValue(measured.ID(), "perimeter"); err != nil {
		t.Fatal(err)
	}
	col, err := c.Value()
	if err != nil {
		t.Fatal(err)
	}
	if col.Len() != 3 || col.AtVec(2) != 12 {
		t.Errorf("column = %v", mat.Formatted(col))
	}
}

func TestOptionsFromPrefs(t *testing.T) {
	p := prefs.LoadFrom(t.TempDir() + "/preferences.json")
	p.SetBool(PrefOrdered, false)
	p.SetBool(PrefIncludeBackground, true)
	o := buildOptions(OptionsFromPrefs(p))
	if o.Ordered || !o.IncludeBackground {
		t.Errorf("options = %+v", o)
	}
	if !o.Idempotent || len(o.Filter) != 5 {
		t.Error("defaults lost")
	}
}

func TestRegistry(t *testing.T) {
	if got := len(TypeNames()); got != 24 {
		t.Errorf("registered types = %d, want 24", got)
	}
	if _, err := New("Volume"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("err = %v", err)
	}

	v, _ := shapesViewer(t)
	w, err := New(OneOfRectangles, WithViewer(v))
	if err != nil {
		t.Fatal(err)
	}
	c, ok := w.(*ShapeComboBox)
	if !ok {
		t.Fatalf("OneOfRectangles built %T", w)
	}
	if choices := c.Choices(); len(choices) != 1 || choices[0].Value != 1 {
		t.Errorf("choices = %+v", choices)
	}

	w, _ = New(ZRange, WithOrdered(false))
	if z := w.(*ZRangeEdit); z.Ordered() {
		t.Error("caller options should override defaults")
	}
	if w, _ := New(PolygonData); w.(*ShapeDataEdit).ShapeType() != viewer.ShapePolygon {
		t.Error("PolygonData built the wrong editor")
	}
}
