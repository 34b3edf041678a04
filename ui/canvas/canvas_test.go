package canvas

import (
	"image/color"
	"testing"

	"power-widgets/internal/viewer"
	"power-widgets/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"gonum.org/v1/gonum/mat"
)

var black = color.RGBA{A: 255}

type recorder struct {
	events *[]viewer.MouseEvent
}

func (r recorder) Handle(ev viewer.MouseEvent) bool {
	*r.events = append(*r.events, ev)
	return true
}

func record(v *viewer.Viewer) *[]viewer.MouseEvent {
	var events []viewer.MouseEvent
	v.MouseDragCallbacks.Append(func(ev viewer.MouseEvent) viewer.Gesture {
		events = append(events, ev)
		return recorder{&events}
	})
	return &events
}

func primary(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestRenderInteractionBox(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	v.Overlays.InteractionBox = viewer.InteractionBox{
		Points: []geometry.Point2D{{X: 2, Y: 2}, {X: 10, Y: 6}},
		Show:   true,
	}
	vc := NewViewerCanvas(v)

	out := vc.render(16, 16)
	if got := out.RGBAAt(2, 2); got != vc.style.Box {
		t.Errorf("box corner = %v, want %v", got, vc.style.Box)
	}
	if got := out.RGBAAt(5, 4); got != black {
		t.Errorf("box interior = %v, want background", got)
	}

	v.Overlays.InteractionBox.Show = false
	if got := vc.render(16, 16).RGBAAt(2, 2); got != black {
		t.Errorf("hidden box drawn: %v", got)
	}
}

func TestRenderPointMarker(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	v.Overlays.InteractionBox = viewer.InteractionBox{
		Points: []geometry.Point2D{{X: 8, Y: 8}},
		Show:   true,
	}
	vc := NewViewerCanvas(v)

	out := vc.render(16, 16)
	for _, p := range [][2]int{{8, 8}, {2, 8}, {8, 14}} {
		if got := out.RGBAAt(p[0], p[1]); got != vc.style.Box {
			t.Errorf("marker pixel %v = %v, want %v", p, got, vc.style.Box)
		}
	}
}

func TestRenderLabels(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	data := mat.NewDense(4, 4, nil)
	data.Set(1, 2, 3)
	v := viewer.New(2)
	l := viewer.NewLabelsLayer("cells", data)
	v.AddLayer(l)
	vc := NewViewerCanvas(v)

	out := vc.render(4, 4)
	if got := out.RGBAAt(2, 1); got == black {
		t.Error("label pixel not colored")
	}
	if got := out.RGBAAt(0, 0); got != black {
		t.Errorf("background pixel = %v, want black", got)
	}

	l.SetVisible(false)
	if got := vc.render(4, 4).RGBAAt(2, 1); got != black {
		t.Errorf("hidden layer drawn: %v", got)
	}
}

func TestRenderShapes(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	l := v.AddShapes("rois")
	l.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, []float64{4, 1, 4, 12}))
	vc := NewViewerCanvas(v)

	if got := vc.render(16, 16).RGBAAt(6, 4); got != vc.style.Shape {
		t.Errorf("line pixel = %v, want %v", got, vc.style.Shape)
	}
	l.SetSelectedData(0)
	if got := vc.render(16, 16).RGBAAt(6, 4); got != vc.style.Selected {
		t.Errorf("selected line pixel = %v, want %v", got, vc.style.Selected)
	}
}

func TestOnSlice(t *testing.T) {
	data := mat.NewDense(2, 3, []float64{5, 0, 0, 5, 1, 1})
	tests := []struct {
		name  string
		steps []int
		want  bool
	}{
		{"same slice", []int{5, 0, 0}, true},
		{"other slice", []int{4, 0, 0}, false},
		{"extra leading axis", []int{9, 5, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := onSlice(data, tt.steps); got != tt.want {
				t.Errorf("onSlice(%v) = %v, want %v", tt.steps, got, tt.want)
			}
		})
	}
}

func TestPointerEventsReachViewer(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(3)
	if err := v.Dims.SetCurrentStep(0, 4); err != nil {
		t.Fatal(err)
	}
	events := record(v)
	vc := NewViewerCanvas(v)
	vc.SetZoom(2)

	pc := vc.content
	pc.MouseDown(primary(10, 6))
	pc.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 6)},
		Dragged:    fyne.NewDelta(10, 0),
	})
	pc.DragEnd()
	pc.MouseUp(primary(20, 6))

	want := []struct {
		typ viewer.MouseEventType
		pos []float64
	}{
		{viewer.MousePress, []float64{4, 3, 5}},
		{viewer.MouseMove, []float64{4, 3, 10}},
		{viewer.MouseRelease, []float64{4, 3, 10}},
	}
	got := *events
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Type != w.typ {
			t.Errorf("event %d type = %s, want %s", i, got[i].Type, w.typ)
		}
		for j := range w.pos {
			if got[i].Position[j] != w.pos[j] {
				t.Errorf("event %d position = %v, want %v", i, got[i].Position, w.pos)
				break
			}
		}
	}
}

func TestSecondaryButtonIgnored(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	events := record(v)
	vc := NewViewerCanvas(v)

	vc.content.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(1, 1)},
		Button:     desktop.MouseButtonSecondary,
	})
	if len(*events) != 0 {
		t.Errorf("secondary press dispatched %d events", len(*events))
	}
}

func TestDragWithoutMouseDown(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	events := record(v)
	vc := NewViewerCanvas(v)

	vc.content.Dragged(&fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(7, 3)},
		Dragged:    fyne.NewDelta(4, 1),
	})
	vc.content.DragEnd()

	got := *events
	if len(got) != 3 || got[0].Type != viewer.MousePress {
		t.Fatalf("events = %v, want press, move, release", got)
	}
	if y, x := got[0].YX(); y != 2 || x != 3 {
		t.Errorf("synthesized press at (%v, %v), want (2, 3)", y, x)
	}
}

func TestCursorFollowsViewer(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	v := viewer.New(2)
	vc := NewViewerCanvas(v)
	if vc.content.Cursor() != desktop.DefaultCursor {
		t.Error("idle cursor should be the default")
	}
	v.Cursor.Style = viewer.CursorCross
	if vc.content.Cursor() != desktop.CrosshairCursor {
		t.Error("selecting cursor should be a crosshair")
	}
}

func TestZoomClamp(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	vc := NewViewerCanvas(viewer.New(2))
	var reported float64
	vc.OnZoomChange(func(z float64) { reported = z })

	vc.SetZoom(100)
	if vc.Zoom() != maxZoom || reported != maxZoom {
		t.Errorf("zoom = %v (reported %v), want %v", vc.Zoom(), reported, maxZoom)
	}
	vc.SetZoom(0)
	if vc.Zoom() != minZoom {
		t.Errorf("zoom = %v, want %v", vc.Zoom(), minZoom)
	}
	vc.SetZoom(4)
	if x, y := vc.CanvasToImage(8, 12); x != 2 || y != 3 {
		t.Errorf("CanvasToImage = (%v, %v), want (2, 3)", x, y)
	}
}
