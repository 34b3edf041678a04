package viewer

import (
	"fmt"
	"sync/atomic"

	"power-widgets/internal/event"
)

// LayerID identifies a layer for its whole lifetime. Widgets hold ids rather
// than layer pointers and look layers up in the live list.
type LayerID uint64

var lastLayerID atomic.Uint64

func nextLayerID() LayerID {
	return LayerID(lastLayerID.Add(1))
}

// Kind is the type of data a layer holds.
type Kind int

const (
	KindImage Kind = iota
	KindLabels
	KindShapes
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindLabels:
		return "labels"
	case KindShapes:
		return "shapes"
	default:
		return "unknown"
	}
}

// Layer is a single data layer shown by the viewer.
type Layer interface {
	ID() LayerID
	Name() string
	Kind() Kind
	Visible() bool
	SetVisible(visible bool)
	// Interactive reports whether the layer handles pointer input.
	Interactive() bool
	SetInteractive(interactive bool)
	// Value samples the layer at a position. With world=false the position is
	// taken as data coordinates. Layers carry no transform, so both are equal.
	Value(position []float64, world bool) (float64, bool)
	// Features returns the per-item feature table, never nil.
	Features() *Features
}

// layerBase holds the state shared by all layer kinds.
type layerBase struct {
	id          LayerID
	name        string
	visible     bool
	interactive bool
	features    *Features
}

func newLayerBase(name string) layerBase {
	return layerBase{
		id:          nextLayerID(),
		name:        name,
		visible:     true,
		interactive: true,
		features:    NewFeatures(),
	}
}

func (l *layerBase) ID() LayerID                     { return l.id }
func (l *layerBase) Name() string                    { return l.name }
func (l *layerBase) Visible() bool                   { return l.visible }
func (l *layerBase) SetVisible(visible bool)         { l.visible = visible }
func (l *layerBase) Interactive() bool               { return l.interactive }
func (l *layerBase) SetInteractive(interactive bool) { l.interactive = interactive }
func (l *layerBase) Features() *Features             { return l.features }

// LayerList is the ordered layer stack. The last layer is drawn on top.
type LayerList struct {
	layers    []Layer
	selection Selection

	Events struct {
		Inserted event.Emitter // data: Layer
		Removed  event.Emitter // data: Layer
	}
}

func newLayerList() *LayerList {
	ll := &LayerList{}
	ll.selection.list = ll
	return ll
}

// Add appends a layer to the top of the stack.
func (ll *LayerList) Add(layer Layer) {
	ll.layers = append(ll.layers, layer)
	ll.Events.Inserted.Emit(layer)
}

// Remove removes the layer with the given id.
func (ll *LayerList) Remove(id LayerID) error {
	for i, l := range ll.layers {
		if l.ID() == id {
			ll.layers = append(ll.layers[:i], ll.layers[i+1:]...)
			ll.selection.drop(id)
			ll.Events.Removed.Emit(l)
			return nil
		}
	}
	return fmt.Errorf("remove %d: %w", id, ErrLayerNotFound)
}

// Get returns the layer with the given id.
func (ll *LayerList) Get(id LayerID) (Layer, bool) {
	for _, l := range ll.layers {
		if l.ID() == id {
			return l, true
		}
	}
	return nil, false
}

// ByName returns the first layer with the given name.
func (ll *LayerList) ByName(name string) (Layer, bool) {
	for _, l := range ll.layers {
		if l.Name() == name {
			return l, true
		}
	}
	return nil, false
}

// All returns the layers bottom to top.
func (ll *LayerList) All() []Layer {
	out := make([]Layer, len(ll.layers))
	copy(out, ll.layers)
	return out
}

// TopDown returns the layers top to bottom.
func (ll *LayerList) TopDown() []Layer {
	out := make([]Layer, 0, len(ll.layers))
	for i := len(ll.layers) - 1; i >= 0; i-- {
		out = append(out, ll.layers[i])
	}
	return out
}

// OfKind returns the layers of one kind, bottom to top.
func (ll *LayerList) OfKind(kind Kind) []Layer {
	var out []Layer
	for _, l := range ll.layers {
		if l.Kind() == kind {
			out = append(out, l)
		}
	}
	return out
}

// Len returns the number of layers.
func (ll *LayerList) Len() int {
	return len(ll.layers)
}

// Selection returns the layer selection.
func (ll *LayerList) Selection() *Selection {
	return &ll.selection
}

// ValueAt returns the first sample found walking visible layers top to bottom.
func (ll *LayerList) ValueAt(position []float64) (float64, Layer, bool) {
	for _, l := range ll.TopDown() {
		if !l.Visible() {
			continue
		}
		if v, ok := l.Value(position, true); ok {
			return v, l, true
		}
	}
	return 0, nil, false
}

// Selection is the set of selected layers plus the active one.
type Selection struct {
	list   *LayerList
	ids    map[LayerID]struct{}
	active LayerID

	Changed event.Emitter
}

// Set replaces the selection. The last id becomes the active layer.
func (s *Selection) Set(ids ...LayerID) {
	s.ids = make(map[LayerID]struct{}, len(ids))
	s.active = 0
	for _, id := range ids {
		if _, ok := s.list.Get(id); !ok {
			continue
		}
		s.ids[id] = struct{}{}
		s.active = id
	}
	s.Changed.Emit(nil)
}

// Contains reports whether the layer is selected.
func (s *Selection) Contains(id LayerID) bool {
	_, ok := s.ids[id]
	return ok
}

// Layers returns the selected layers in stack order.
func (s *Selection) Layers() []Layer {
	var out []Layer
	for _, l := range s.list.layers {
		if _, ok := s.ids[l.ID()]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Active returns the active layer, or nil.
func (s *Selection) Active() Layer {
	if s.active == 0 {
		return nil
	}
	l, _ := s.list.Get(s.active)
	return l
}

func (s *Selection) drop(id LayerID) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	if s.active == id {
		s.active = 0
	}
	s.Changed.Emit(nil)
}
