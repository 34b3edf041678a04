package widgets

import (
	"errors"
	"testing"

	"power-widgets/internal/interact"
	"power-widgets/internal/viewer"

	"gonum.org/v1/gonum/mat"
)

func countTemporal(v *viewer.Viewer) int {
	n := 0
	for _, l := range v.Layers.All() {
		if l.Name() == TemporalLayerName {
			n++
		}
	}
	return n
}

func TestShapeEditorValidation(t *testing.T) {
	tests := []struct {
		name string
		edit *ShapeDataEdit
		rows int
		ok   bool
	}{
		{"line 2", NewLineDataEdit(), 2, true},
		{"line 3", NewLineDataEdit(), 3, false},
		{"path 1", NewPathDataEdit(), 1, false},
		{"path 5", NewPathDataEdit(), 5, true},
		{"polygon 2", NewPolygonDataEdit(), 2, false},
		{"polygon 3", NewPolygonDataEdit(), 3, true},
		{"rectangle 4", NewRectangleDataEdit(), 4, true},
		{"ellipse 3", NewEllipseDataEdit(), 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.edit.SetValue(mat.NewDense(tt.rows, 2, nil))
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidShape) {
				t.Errorf("err does not wrap ErrInvalidShape: %v", err)
			}
		})
	}
	if err := NewLineDataEdit().SetValue(mat.NewDense(2, 3, nil)); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("3 columns accepted: %v", err)
	}
}

func TestRectangleEditorDraw(t *testing.T) {
	v := viewer.New(2)
	img := v.AddShapes("annotations")
	e := NewRectangleDataEdit(WithViewer(v))

	e.Button().Click()
	if e.Button().Text() != "Drawing" {
		t.Errorf("caption = %q", e.Button().Text())
	}
	l, ok := e.Layer()
	if !ok || l.Mode() != viewer.ModeAddRectangle || countTemporal(v) != 1 {
		t.Fatal("temporary layer not prepared")
	}

	v.Drag([2]float64{10, 20}, [2]float64{12, 25}, [2]float64{15, 30})
	if e.Mode() != interact.Selecting {
		t.Fatal("drawing the first shape should keep the editor open")
	}
	if l.Mode() != viewer.ModeSelect {
		t.Errorf("layer mode = %s, want select", l.Mode())
	}
	if sel := l.SelectedData(); len(sel) != 1 || sel[0] != 0 {
		t.Errorf("selection = %v", sel)
	}

	// A second shape forces completion with the first one.
	l.AddShape(viewer.ShapeRectangle, mat.NewDense(4, 2, nil))
	if e.Mode() != interact.Idle || e.Button().Text() != "Draw" {
		t.Fatalf("mode %v caption %q", e.Mode(), e.Button().Text())
	}
	if countTemporal(v) != 0 {
		t.Error("temporary layer not removed")
	}
	got := e.Value()
	if r, _ := got.Dims(); r != 4 {
		t.Fatalf("value rows = %d", r)
	}
	if got.At(0, 0) != 10 || got.At(0, 1) != 20 || got.At(2, 0) != 15 || got.At(2, 1) != 30 {
		t.Errorf("value = %v", mat.Formatted(got))
	}
	if active := v.Layers.Selection().Active(); active == nil || active.ID() != img.ID() {
		t.Error("previous layer selection not restored")
	}

	e.SetMode(interact.Selecting)
	if countTemporal(v) != 1 {
		t.Errorf("reactivation created %d temporary layers", countTemporal(v))
	}
	e.SetMode(interact.Idle)
	if countTemporal(v) != 0 {
		t.Error("temporary layer leaked")
	}
}

func TestEditorFinishesWhenSelectionLost(t *testing.T) {
	v := viewer.New(2)
	e := NewLineDataEdit(WithViewer(v))
	e.SetMode(interact.Selecting)
	v.Drag([2]float64{0, 0}, [2]float64{5, 5}, [2]float64{10, 10})
	if e.Mode() != interact.Selecting {
		t.Fatal("editor closed after first line")
	}

	// Pressing away from the line in select mode clears the selection.
	v.Drag([2]float64{40, 0}, [2]float64{40, 0})
	if e.Mode() != interact.Idle {
		t.Fatal("lost selection did not finish the editor")
	}
	want := mat.NewDense(2, 2, []float64{0, 0, 10, 10})
	if !mat.Equal(e.Value(), want) {
		t.Errorf("value = %v", mat.Formatted(e.Value()))
	}
}

func TestEditorModeIsForced(t *testing.T) {
	v := viewer.New(2)
	e := NewPolygonDataEdit(WithViewer(v))
	e.SetMode(interact.Selecting)
	defer e.SetMode(interact.Idle)
	l, _ := e.Layer()
	l.SetMode(viewer.ModePanZoom)
	if l.Mode() != viewer.ModeAddPolygon {
		t.Errorf("mode = %s, want add_polygon", l.Mode())
	}
}

func TestEditorCancelWithoutShape(t *testing.T) {
	v := viewer.New(2)
	e := NewEllipseDataEdit(WithViewer(v))
	before := e.Value()
	e.Button().Click()
	e.Button().Click()
	if e.Mode() != interact.Idle || countTemporal(v) != 0 {
		t.Fatal("cancel did not clean up")
	}
	if !mat.Equal(before, e.Value()) {
		t.Error("value changed without a shape")
	}
}
