package interact

import "log"

// Session collects the cleanup steps of one selection session. Close runs
// them once, last registered first, and keeps going when a step panics.
type Session struct {
	cleanups []func()
	closed   bool
}

// Defer registers a cleanup step. Steps deferred after Close run immediately.
func (s *Session) Defer(fn func()) {
	if s.closed {
		runCleanup(fn)
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Close runs all cleanup steps. Calling Close again does nothing.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		runCleanup(s.cleanups[i])
	}
	s.cleanups = nil
}

// Closed reports whether Close has run.
func (s *Session) Closed() bool {
	return s.closed
}

func runCleanup(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Session: cleanup step failed: %v", r)
		}
	}()
	fn()
}
