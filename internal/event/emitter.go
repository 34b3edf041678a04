// Package event provides synchronous notification emitters.
package event

import "sync"

// Listener is called when an event is emitted.
type Listener func(data any)

// Connection identifies one connected listener. The zero value is never a live connection.
type Connection struct {
	id      uint64
	emitter *Emitter
}

// Connected reports whether the connection refers to a listener.
func (c Connection) Connected() bool {
	return c.emitter != nil && c.emitter.has(c.id)
}

// Disconnect removes the listener. Disconnecting twice is harmless.
func (c Connection) Disconnect() bool {
	if c.emitter == nil {
		return false
	}
	return c.emitter.Disconnect(c)
}

type entry struct {
	id uint64
	fn Listener
}

// Emitter delivers events to listeners in connection order on the caller's goroutine.
type Emitter struct {
	mu        sync.RWMutex
	listeners []entry
	nextID    uint64
}

// Connect registers a listener and returns its connection handle.
func (e *Emitter) Connect(fn Listener) Connection {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.listeners = append(e.listeners, entry{id: e.nextID, fn: fn})
	return Connection{id: e.nextID, emitter: e}
}

// Disconnect removes the listener identified by c.
func (e *Emitter) Disconnect(c Connection) bool {
	if c.emitter != e {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.listeners {
		if e.listeners[i].id == c.id {
			copy(e.listeners[i:], e.listeners[i+1:])
			e.listeners[len(e.listeners)-1] = entry{}
			e.listeners = e.listeners[:len(e.listeners)-1]
			return true
		}
	}
	return false
}

// DisconnectAll removes every listener.
func (e *Emitter) DisconnectAll() {
	e.mu.Lock()
	e.listeners = nil
	e.mu.Unlock()
}

// Emit triggers all listeners. A listener connected during Emit is first
// called on the next Emit; one disconnected during Emit is not called again.
func (e *Emitter) Emit(data any) {
	e.mu.RLock()
	listeners := make([]entry, len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, l := range listeners {
		if !e.has(l.id) {
			continue
		}
		l.fn(data)
	}
}

// Len returns the number of connected listeners.
func (e *Emitter) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

func (e *Emitter) has(id uint64) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, l := range e.listeners {
		if l.id == id {
			return true
		}
	}
	return false
}
