package widgets

import (
	"fmt"

	"power-widgets/internal/event"
	"power-widgets/internal/interact"
	"power-widgets/internal/viewer"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/mat"
)

// LabelComboBox selects one labeled region of a labels layer, either from
// the combo box and index or by clicking the region on the viewer.
type LabelComboBox struct {
	toggle
	opts   Options
	layers *toolkit.ComboBox[viewer.LayerID]
	index  *toolkit.SpinBox
	sep    *toolkit.Label

	tracker *interact.Tracker
	freezer interact.Freezer
	viewer  *viewer.Viewer

	// Changed fires with the selected label as an int.
	Changed event.Emitter
}

// NewLabelComboBox creates an idle label picker.
func NewLabelComboBox(opts ...Option) *LabelComboBox {
	lc := &LabelComboBox{
		opts:  buildOptions(opts),
		index: toolkit.NewSpinBox("", 0, 0, int(coordLimit)),
		sep:   toolkit.NewLabel("=="),
	}
	lc.layers = toolkit.NewComboBox(lc.layerChoices)
	lc.toggle = newToggle("LabelComboBox", lc.opts, hookFuncs{activate: lc.activate}, "Select", "...")
	lc.tracker = interact.NewTracker(lc.ctrl, clickGesture{pick: lc.pick})
	lc.index.Changed.Connect(func(any) { lc.indexChanged() })
	lc.layers.Changed.Connect(func(any) { lc.Changed.Emit(lc.index.Value()) })
	return lc
}

func (lc *LabelComboBox) layerChoices() []toolkit.Choice[viewer.LayerID] {
	v, err := lc.opts.host()
	if err != nil {
		return nil
	}
	var out []toolkit.Choice[viewer.LayerID]
	for _, l := range v.Layers.OfKind(viewer.KindLabels) {
		out = append(out, toolkit.Choice[viewer.LayerID]{Label: l.Name(), Value: l.ID()})
	}
	return out
}

// ResetChoices re-reads the labels layers from the viewer.
func (lc *LabelComboBox) ResetChoices() {
	lc.layers.ResetChoices()
}

// Layer returns the chosen labels layer.
func (lc *LabelComboBox) Layer() (*viewer.LabelsLayer, error) {
	id, ok := lc.layers.Value()
	if !ok {
		return nil, ErrNoLayer
	}
	v, err := lc.opts.host()
	if err != nil {
		return nil, err
	}
	l, ok := v.Layers.Get(id)
	if !ok {
		return nil, fmt.Errorf("labels layer %d: %w", id, viewer.ErrLayerNotFound)
	}
	ll, ok := l.(*viewer.LabelsLayer)
	if !ok {
		return nil, fmt.Errorf("layer %q is not a labels layer: %w", l.Name(), ErrNoLayer)
	}
	return ll, nil
}

// Label returns the chosen label.
func (lc *LabelComboBox) Label() int {
	return lc.index.Value()
}

// Value returns the mask of the chosen label: 1 where the layer equals it, 0 elsewhere.
func (lc *LabelComboBox) Value() (*mat.Dense, error) {
	l, err := lc.Layer()
	if err != nil {
		return nil, err
	}
	return l.Mask(lc.index.Value()), nil
}

// SetValue chooses a labels layer and a label.
func (lc *LabelComboBox) SetValue(id viewer.LayerID, label int) error {
	if !lc.layers.SetValue(id) {
		lc.layers.ResetChoices()
		if !lc.layers.SetValue(id) {
			return fmt.Errorf("labels layer %d: %w", id, viewer.ErrLayerNotFound)
		}
	}
	lc.index.SetValue(label)
	return nil
}

func (lc *LabelComboBox) indexChanged() {
	idx := lc.index.Value()
	if l, err := lc.Layer(); err == nil {
		l.SetSelectedLabel(idx)
	}
	lc.Changed.Emit(idx)
}

// CanvasObject implements toolkit.Widget.
func (lc *LabelComboBox) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(
		lc.layers.CanvasObject(),
		lc.sep.CanvasObject(),
		lc.index.CanvasObject(),
		lc.button.CanvasObject(),
	)
}

func (lc *LabelComboBox) activate(s *interact.Session) error {
	v, err := lc.opts.host()
	if err != nil {
		return err
	}
	lc.viewer = v
	s.Defer(func() { lc.viewer = nil })
	v.Overlays.InteractionBox.Show = false
	lc.freezer.FreezeFor(s, v)
	lc.tracker.Attach(&v.MouseDragCallbacks, s)
	return nil
}

// pickLabel walks visible labels layers from the top and returns the first
// label found at position. Background is skipped unless includeBackground.
func pickLabel(v *viewer.Viewer, position []float64, includeBackground bool) (viewer.LayerID, int, bool) {
	for _, l := range v.Layers.TopDown() {
		if !l.Visible() || l.Kind() != viewer.KindLabels {
			continue
		}
		val, ok := l.Value(position, true)
		if !ok {
			continue
		}
		if val != 0 || includeBackground {
			return l.ID(), int(val), true
		}
	}
	return 0, 0, false
}

func (lc *LabelComboBox) pick(g *interact.Gesture) bool {
	id, label, ok := pickLabel(lc.viewer, g.StartPosition, lc.opts.IncludeBackground)
	if !ok {
		return false
	}
	if err := lc.SetValue(id, label); err != nil {
		return false
	}
	showPoint(lc.viewer, g.StartWorld())
	return true
}
