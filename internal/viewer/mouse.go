package viewer

import (
	"sync"

	"power-widgets/pkg/geometry"
)

// MouseEventType is the kind of a mouse event.
type MouseEventType string

const (
	MousePress   MouseEventType = "mouse_press"
	MouseMove    MouseEventType = "mouse_move"
	MouseRelease MouseEventType = "mouse_release"
)

// MouseEvent is a pointer event delivered by the host.
type MouseEvent struct {
	Type MouseEventType
	// Pos is the pointer location in canvas pixels.
	Pos geometry.Point2D
	// Position is the world coordinate. The last two entries are (y, x).
	Position []float64
}

// YX returns the last two world coordinates.
func (e MouseEvent) YX() (y, x float64) {
	n := len(e.Position)
	switch {
	case n >= 2:
		return e.Position[n-2], e.Position[n-1]
	case n == 1:
		return 0, e.Position[0]
	}
	return 0, 0
}

// World returns the 2D world position with X and Y filled from Position.
func (e MouseEvent) World() geometry.Point2D {
	y, x := e.YX()
	return geometry.Point2D{X: x, Y: y}
}

// Gesture consumes the events that follow the press which created it.
type Gesture interface {
	// Handle consumes one move or release event. Returning false ends the
	// gesture before the release.
	Handle(ev MouseEvent) bool
}

// DragCallback is invoked on a mouse press. A non-nil Gesture receives the
// rest of the press-move-release sequence.
type DragCallback func(ev MouseEvent) Gesture

type callbackEntry struct {
	id uint64
	fn DragCallback
}

// CallbackHandle identifies one registered drag callback.
type CallbackHandle struct {
	id   uint64
	list *CallbackList
}

// Remove unregisters the callback. Removing twice is harmless.
func (h CallbackHandle) Remove() bool {
	if h.list == nil {
		return false
	}
	return h.list.Remove(h)
}

// Registered reports whether the callback is still in its list.
func (h CallbackHandle) Registered() bool {
	return h.list != nil && h.list.has(h.id)
}

// CallbackList is an ordered list of drag callbacks with identity-based removal.
type CallbackList struct {
	mu      sync.Mutex
	entries []callbackEntry
	nextID  uint64
}

// Append adds a callback to the end of the list.
func (l *CallbackList) Append(fn DragCallback) CallbackHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries = append(l.entries, callbackEntry{id: l.nextID, fn: fn})
	return CallbackHandle{id: l.nextID, list: l}
}

// Remove removes the callback identified by h.
func (l *CallbackList) Remove(h CallbackHandle) bool {
	if h.list != l {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].id == h.id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = callbackEntry{}
			l.entries = l.entries[:len(l.entries)-1]
			return true
		}
	}
	return false
}

// Len returns the number of registered callbacks.
func (l *CallbackList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *CallbackList) has(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

func (l *CallbackList) snapshot() []callbackEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]callbackEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// activeGesture is a gesture bound to the callback that produced it.
type activeGesture struct {
	g      Gesture
	handle CallbackHandle
}

// dragState tracks the gestures of the press currently held down.
type dragState struct {
	gestures []activeGesture
}

// press invokes every callback in list order and keeps the returned gestures.
func (d *dragState) press(list *CallbackList, ev MouseEvent) {
	for _, e := range list.snapshot() {
		h := CallbackHandle{id: e.id, list: list}
		// An earlier callback may have removed this one.
		if !h.Registered() {
			continue
		}
		if g := e.fn(ev); g != nil {
			d.gestures = append(d.gestures, activeGesture{g: g, handle: h})
		}
	}
}

// deliver forwards a move or release to every live gesture.
func (d *dragState) deliver(ev MouseEvent) {
	gestures := d.gestures
	kept := gestures[:0:0]
	for _, ag := range gestures {
		if !ag.handle.Registered() {
			continue
		}
		if ag.g.Handle(ev) && ev.Type != MouseRelease {
			kept = append(kept, ag)
		}
	}
	if ev.Type == MouseRelease {
		d.gestures = nil
		return
	}
	d.gestures = kept
}

func (d *dragState) reset() {
	d.gestures = nil
}
