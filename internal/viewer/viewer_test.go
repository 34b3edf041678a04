package viewer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	pwimage "power-widgets/internal/image"

	"gonum.org/v1/gonum/mat"
)

// recorder is a gesture that records the event types it receives.
type recorder struct {
	types []MouseEventType
	stop  bool
}

func (r *recorder) Handle(ev MouseEvent) bool {
	r.types = append(r.types, ev.Type)
	return !r.stop
}

func TestDragCallbackReceivesSequence(t *testing.T) {
	v := New(2)
	rec := &recorder{}
	presses := 0
	v.MouseDragCallbacks.Append(func(ev MouseEvent) Gesture {
		presses++
		return rec
	})

	v.Drag([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})

	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
	want := []MouseEventType{MouseMove, MouseMove, MouseRelease}
	if len(rec.types) != len(want) {
		t.Fatalf("events = %v, want %v", rec.types, want)
	}
	for i := range want {
		if rec.types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, rec.types[i], want[i])
		}
	}
}

func TestGestureEndsEarly(t *testing.T) {
	v := New(2)
	rec := &recorder{stop: true}
	v.MouseDragCallbacks.Append(func(MouseEvent) Gesture { return rec })

	v.Drag([2]float64{0, 0}, [2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})

	if len(rec.types) != 1 {
		t.Errorf("events after stop = %v, want one", rec.types)
	}
}

func TestRemovedCallbackStopsReceiving(t *testing.T) {
	v := New(2)
	rec := &recorder{}
	var h CallbackHandle
	h = v.MouseDragCallbacks.Append(func(MouseEvent) Gesture { return rec })

	v.DispatchMouse(NewMouseEvent(MousePress, 0, 0))
	h.Remove()
	v.DispatchMouse(NewMouseEvent(MouseMove, 1, 1))
	v.DispatchMouse(NewMouseEvent(MouseRelease, 1, 1))

	if len(rec.types) != 0 {
		t.Errorf("removed callback received %v", rec.types)
	}
	if v.MouseDragCallbacks.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.MouseDragCallbacks.Len())
	}
	if h.Remove() {
		t.Error("second Remove() = true, want false")
	}
}

func TestCallbackRemovedByEarlierCallback(t *testing.T) {
	v := New(2)
	called := false
	var second CallbackHandle
	v.MouseDragCallbacks.Append(func(MouseEvent) Gesture {
		second.Remove()
		return nil
	})
	second = v.MouseDragCallbacks.Append(func(MouseEvent) Gesture {
		called = true
		return nil
	})
	v.DispatchMouse(NewMouseEvent(MousePress, 0, 0))
	if called {
		t.Error("callback removed during press should not run")
	}
}

func TestLayerListOrderAndSelection(t *testing.T) {
	v := New(2)
	a := NewLabelsLayer("a", mat.NewDense(2, 2, nil))
	b := NewLabelsLayer("b", mat.NewDense(2, 2, nil))
	v.AddLayer(a)
	v.AddLayer(b)

	top := v.Layers.TopDown()
	if top[0].ID() != b.ID() || top[1].ID() != a.ID() {
		t.Error("TopDown() should list the last added layer first")
	}
	if v.Layers.Selection().Active() != Layer(b) {
		t.Error("last added layer should be active")
	}

	if err := v.Layers.Remove(b.ID()); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if v.Layers.Selection().Active() != nil {
		t.Error("removing the active layer should clear it")
	}
	if err := v.Layers.Remove(b.ID()); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("second Remove() error = %v, want ErrLayerNotFound", err)
	}
}

func TestValueAtTopDown(t *testing.T) {
	v := New(2)
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(1, 2, color.Gray{Y: 7})
	v.AddLayer(NewImageLayer("image", pwimage.FromImage(img)))

	val, l, ok := v.Layers.ValueAt([]float64{2, 1})
	if !ok || val != 7 || l.Kind() != KindImage {
		t.Errorf("ValueAt = %v, %v, %v; want 7 from image", val, l, ok)
	}

	labels := NewLabelsLayer("labels", mat.NewDense(4, 4, nil))
	labels.Data().Set(2, 1, 3)
	v.AddLayer(labels)
	if val, _, _ := v.Layers.ValueAt([]float64{2, 1}); val != 3 {
		t.Errorf("ValueAt = %v, want 3 from top labels layer", val)
	}
	labels.SetVisible(false)
	if val, _, _ := v.Layers.ValueAt([]float64{2, 1}); val != 7 {
		t.Errorf("ValueAt = %v, want 7 when labels hidden", val)
	}
}

func TestLabelsLayer(t *testing.T) {
	data := mat.NewDense(2, 3, []float64{
		0, 2, 2,
		5, 0, 2,
	})
	l := NewLabelsLayer("labels", data)

	got := l.Labels()
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("Labels() = %v, want [2 5]", got)
	}

	mask := l.Mask(2)
	want := mat.NewDense(2, 3, []float64{0, 1, 1, 0, 0, 1})
	if !mat.Equal(mask, want) {
		t.Errorf("Mask(2) = %v, want %v", mat.Formatted(mask), mat.Formatted(want))
	}

	if _, ok := l.Value([]float64{5, 0}, true); ok {
		t.Error("Value outside data should report false")
	}
}

func TestDimsEvents(t *testing.T) {
	d := newDims(3)
	var steps [][]int
	d.Events.CurrentStep.Connect(func(data any) { steps = append(steps, data.([]int)) })
	var ndims []int
	d.Events.NDim.Connect(func(data any) { ndims = append(ndims, data.(int)) })

	if err := d.SetCurrentStep(0, 4); err != nil {
		t.Fatal(err)
	}
	_ = d.SetCurrentStep(0, 4)
	if len(steps) != 1 || steps[0][0] != 4 {
		t.Errorf("step events = %v, want one with 4", steps)
	}
	if d.LastUsed() != 0 {
		t.Errorf("LastUsed() = %d, want 0", d.LastUsed())
	}
	if err := d.SetCurrentStep(3, 1); err == nil {
		t.Error("SetCurrentStep on missing axis should fail")
	}

	d.SetNDim(2)
	if len(ndims) != 1 || ndims[0] != 2 || d.NDim() != 2 {
		t.Errorf("ndim events = %v, NDim() = %d", ndims, d.NDim())
	}
}

func TestShapesDrawRectangle(t *testing.T) {
	v := New(2)
	l := v.AddShapes("shapes")
	l.SetMode(ModeAddRectangle)

	v.Drag([2]float64{10, 20}, [2]float64{12, 25}, [2]float64{15, 30})

	if l.NShapes() != 1 {
		t.Fatalf("NShapes() = %d, want 1", l.NShapes())
	}
	s, _ := l.Shape(0)
	if s.Type != ShapeRectangle {
		t.Errorf("Type = %s, want rectangle", s.Type)
	}
	rows, cols := s.Data.Dims()
	if rows != 4 || cols != 2 {
		t.Fatalf("data dims = %dx%d, want 4x2", rows, cols)
	}
	if s.Data.At(0, 0) != 10 || s.Data.At(0, 1) != 20 || s.Data.At(2, 0) != 15 || s.Data.At(2, 1) != 30 {
		t.Errorf("unexpected rectangle data %v", mat.Formatted(s.Data))
	}
}

func TestShapesDrawShortPolygonDiscarded(t *testing.T) {
	v := New(2)
	l := v.AddShapes("shapes")
	l.SetMode(ModeAddPolygon)
	v.Drag([2]float64{0, 0}, [2]float64{0, 5})
	if l.NShapes() != 0 {
		t.Errorf("NShapes() = %d, want 0 for a two-vertex polygon", l.NShapes())
	}
}

func TestShapesSelectMode(t *testing.T) {
	v := New(2)
	l := v.AddShapes("shapes")
	l.AddShape(ShapeRectangle, mat.NewDense(4, 2, []float64{0, 0, 0, 10, 10, 10, 10, 0}))
	l.SetMode(ModeSelect)

	v.Drag([2]float64{5, 5}, [2]float64{6, 7}, [2]float64{6, 7})
	if got := l.SelectedData(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("SelectedData() = %v, want [0]", got)
	}
	s, _ := l.Shape(0)
	if s.Data.At(0, 0) != 1 || s.Data.At(0, 1) != 2 {
		t.Errorf("shape not translated: %v", mat.Formatted(s.Data))
	}

	v.Drag([2]float64{50, 50}, [2]float64{50, 50})
	if len(l.SelectedData()) != 0 {
		t.Error("pressing outside every shape should clear the selection")
	}
}

func TestFrozenShapesLayerDoesNotDraw(t *testing.T) {
	v := New(2)
	l := v.AddShapes("shapes")
	l.SetMode(ModeAddLine)
	l.SetInteractive(false)
	v.Drag([2]float64{0, 0}, [2]float64{5, 5})
	if l.NShapes() != 0 {
		t.Error("non-interactive layer should not draw")
	}
}

func TestFeatures(t *testing.T) {
	f := NewFeatures()
	if err := f.AddColumn("area", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddColumn("bad", []float64{1}); err == nil {
		t.Error("mismatched column length should fail")
	}
	col, ok := f.Column("area")
	if !ok || col.Len() != 3 || col.AtVec(2) != 3 {
		t.Errorf("Column(area) = %v, %v", col, ok)
	}
	if cols := f.Columns(); len(cols) != 1 || cols[0] != "area" {
		t.Errorf("Columns() = %v", cols)
	}
}

func TestCurrentViewer(t *testing.T) {
	SetCurrent(nil)
	if _, err := Current(); !errors.Is(err, ErrNoViewer) {
		t.Errorf("Current() error = %v, want ErrNoViewer", err)
	}
	v := New(2)
	SetCurrent(v)
	defer SetCurrent(nil)
	if got, err := Current(); err != nil || got != v {
		t.Errorf("Current() = %v, %v", got, err)
	}
}
