// Package viewer provides the in-memory image viewer that hosts selection widgets:
// a layer stack, dims sliders, overlays and the mouse-drag callback pipeline.
package viewer

import (
	"sync"

	"power-widgets/internal/event"
)

// Viewer is a host for layers and interactive widgets. All methods must be
// called from the UI goroutine.
type Viewer struct {
	Layers   *LayerList
	Dims     *Dims
	Overlays Overlays
	Cursor   Cursor

	// MouseDragCallbacks run on every press, before the active layer's handling.
	MouseDragCallbacks CallbackList

	// Redraw fires after state changes the canvas should show.
	Redraw event.Emitter

	viewerDrag dragState
	layerDrag  dragState
	target     LayerID
}

// New creates an empty viewer with ndim dimensions.
func New(ndim int) *Viewer {
	return &Viewer{
		Layers: newLayerList(),
		Dims:   newDims(ndim),
		Cursor: Cursor{Style: CursorStandard},
	}
}

// AddLayer appends a layer and makes it the only selected layer.
func (v *Viewer) AddLayer(layer Layer) {
	v.Layers.Add(layer)
	v.Layers.Selection().Set(layer.ID())
}

// AddShapes creates an empty 2D shapes layer on top of the stack and selects it.
func (v *Viewer) AddShapes(name string) *ShapesLayer {
	l := NewShapesLayer(name, 2)
	v.AddLayer(l)
	return l
}

// DispatchMouse delivers one pointer event to viewer callbacks and then to the
// active layer if it is interactive.
func (v *Viewer) DispatchMouse(ev MouseEvent) {
	switch ev.Type {
	case MousePress:
		v.viewerDrag.reset()
		v.layerDrag.reset()
		v.target = 0
		v.viewerDrag.press(&v.MouseDragCallbacks, ev)
		if l, ok := v.Layers.Selection().Active().(*ShapesLayer); ok && l.Interactive() {
			v.target = l.ID()
			l.handleBuiltin(ev)
			if v.targetLayer() == l {
				v.layerDrag.press(&l.MouseDragCallbacks, ev)
			}
		}
	case MouseMove, MouseRelease:
		v.viewerDrag.deliver(ev)
		if l := v.targetLayer(); l != nil {
			l.handleBuiltin(ev)
			v.layerDrag.deliver(ev)
		}
		if ev.Type == MouseRelease {
			v.layerDrag.reset()
			v.target = 0
		}
	}
	v.Redraw.Emit(nil)
}

// Drag is a convenience that dispatches a press, the moves and a release.
// Pixel and world positions are both taken from the points given in (y, x).
func (v *Viewer) Drag(points ...[2]float64) {
	for i, p := range points {
		t := MouseMove
		switch i {
		case 0:
			t = MousePress
		case len(points) - 1:
			t = MouseRelease
		}
		v.DispatchMouse(NewMouseEvent(t, p[0], p[1]))
	}
}

// NewMouseEvent builds an event whose pixel and world positions coincide.
func NewMouseEvent(t MouseEventType, y, x float64) MouseEvent {
	ev := MouseEvent{Type: t, Position: []float64{y, x}}
	ev.Pos.X, ev.Pos.Y = x, y
	return ev
}

func (v *Viewer) targetLayer() *ShapesLayer {
	if v.target == 0 {
		return nil
	}
	l, ok := v.Layers.Get(v.target)
	if !ok {
		return nil
	}
	sl, _ := l.(*ShapesLayer)
	return sl
}

var current struct {
	mu sync.RWMutex
	v  *Viewer
}

// SetCurrent makes v the process-wide current viewer. Passing nil clears it.
func SetCurrent(v *Viewer) {
	current.mu.Lock()
	current.v = v
	current.mu.Unlock()
}

// Current returns the process-wide current viewer.
func Current() (*Viewer, error) {
	current.mu.RLock()
	defer current.mu.RUnlock()
	if current.v == nil {
		return nil, ErrNoViewer
	}
	return current.v, nil
}
