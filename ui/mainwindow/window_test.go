package mainwindow

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"power-widgets/internal/viewer"
	"power-widgets/ui/prefs"
	"power-widgets/ui/widgets"

	"fyne.io/fyne/v2/test"
	"gonum.org/v1/gonum/mat"
)

func TestSeedDemo(t *testing.T) {
	v := viewer.New(3)
	SeedDemo(v)

	if n := v.Layers.Len(); n != 3 {
		t.Fatalf("layers = %d, want 3", n)
	}
	cells := v.Layers.OfKind(viewer.KindLabels)[0].(*viewer.LabelsLayer)
	if got := cells.Labels(); len(got) != len(demoBlobs) {
		t.Errorf("labels = %v, want %d blobs", got, len(demoBlobs))
	}
	if rows := cells.Features().Rows(); rows != len(demoBlobs) {
		t.Errorf("feature rows = %d, want %d", rows, len(demoBlobs))
	}
	shapes := v.Layers.OfKind(viewer.KindShapes)[0].(*viewer.ShapesLayer)
	if got := shapes.ShapeTypes(); len(got) != len(viewer.ShapeTypes()) {
		t.Errorf("shape types = %v, want one of each", got)
	}
}

func newWindow(t *testing.T) (*MainWindow, *viewer.Viewer, *prefs.Prefs) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	v := viewer.New(3)
	SeedDemo(v)
	p := prefs.LoadFrom(filepath.Join(t.TempDir(), "preferences.json"))
	return New(a, v, p), v, p
}

func TestWindowHostsEveryWidget(t *testing.T) {
	mw, _, _ := newWindow(t)

	for _, name := range widgets.TypeNames() {
		if _, ok := mw.Widget(name); !ok {
			t.Errorf("widget %s missing from panel", name)
		}
	}
	w, _ := mw.Widget(widgets.OneOfShapes)
	if got := len(w.(*widgets.ShapeComboBox).Choices()); got != 5 {
		t.Errorf("OneOfShapes choices = %d, want 5", got)
	}
}

func TestWindowFollowsLayerList(t *testing.T) {
	mw, v, _ := newWindow(t)

	extra := v.AddShapes("extra")
	extra.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, []float64{0, 0, 5, 5}))
	w, _ := mw.Widget(widgets.OneOfShapes)
	combo := w.(*widgets.ShapeComboBox)
	if err := combo.SetValue(extra.ID(), 0); err != nil {
		t.Errorf("new layer not offered after insert: %v", err)
	}
}

func TestSliderFollowsDims(t *testing.T) {
	mw, v, _ := newWindow(t)

	if err := v.Dims.SetCurrentStep(0, 7); err != nil {
		t.Fatal(err)
	}
	if mw.zSlider.Value != 7 {
		t.Errorf("slider = %v, want 7", mw.zSlider.Value)
	}
	mw.zSlider.OnChanged(3)
	if got := v.Dims.CurrentStep()[0]; got != 3 {
		t.Errorf("dims step = %d, want 3", got)
	}
}

func TestLoadImage(t *testing.T) {
	mw, v, p := newWindow(t)

	path := filepath.Join(t.TempDir(), "dot.png")
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(1, 2, color.Gray{Y: 200})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	before := v.Layers.Len()
	if err := mw.LoadImage(path); err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if v.Layers.Len() != before+1 {
		t.Errorf("layers = %d, want %d", v.Layers.Len(), before+1)
	}
	if p.String(prefKeyLastImage) != path {
		t.Errorf("last image pref = %q, want %q", p.String(prefKeyLastImage), path)
	}

	if err := mw.LoadImage(filepath.Join(t.TempDir(), "notes.txt")); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestSavePreferences(t *testing.T) {
	mw, _, p := newWindow(t)

	mw.SavePreferences()
	if _, err := os.Stat(p.Path()); err != nil {
		t.Fatalf("preferences not written: %v", err)
	}
	if w := prefs.LoadFrom(p.Path()).FloatWithFallback(prefKeyWidth, -1); w <= 0 {
		t.Errorf("saved width = %v, want positive", w)
	}
}
