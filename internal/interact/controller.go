// Package interact implements the two-state interactivity controller shared by
// every selection widget, along with the session, freeze and gesture helpers
// that keep the viewer consistent while a widget owns pointer input.
package interact

import (
	"fmt"
	"log"
)

// EndReason says why a session returned to Idle.
type EndReason int

const (
	// EndCommit is a normal completion, such as a drag release.
	EndCommit EndReason = iota
	// EndCancel is an external request, such as clicking the toggle button again.
	EndCancel
	// EndAbort is a forced return after a fault or an invalid gesture.
	EndAbort
)

func (r EndReason) String() string {
	switch r {
	case EndCommit:
		return "commit"
	case EndCancel:
		return "cancel"
	case EndAbort:
		return "abort"
	}
	return fmt.Sprintf("EndReason(%d)", int(r))
}

// Hooks are the widget-specific halves of a mode transition.
type Hooks interface {
	// Activate acquires what the session needs. Cleanup steps registered with
	// s run however the session ends, including when Activate fails.
	Activate(s *Session) error
	// Deactivate commits or discards the session's result. The session's
	// cleanup runs after it returns.
	Deactivate(reason EndReason)
}

// Captioner shows the controller's state, usually a push button.
type Captioner interface {
	SetText(text string)
}

// Controller owns the Mode of one widget and runs its Hooks on transitions.
type Controller struct {
	name     string
	hooks    Hooks
	caption  Captioner
	idleText string
	busyText string

	mode       Mode
	session    *Session
	idempotent bool
	exclusive  bool
}

// NewController returns an idle controller. Setting the current mode again is
// a no-op unless SetIdempotent(false) is called.
func NewController(name string, hooks Hooks, caption Captioner, idleText, busyText string) *Controller {
	c := &Controller{
		name:       name,
		hooks:      hooks,
		caption:    caption,
		idleText:   idleText,
		busyText:   busyText,
		idempotent: true,
		exclusive:  true,
	}
	c.setCaption(idleText)
	return c
}

// Name returns the name used in logs and busy errors.
func (c *Controller) Name() string {
	return c.name
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Selecting reports whether a session is open.
func (c *Controller) Selecting() bool {
	return c.mode == Selecting
}

// SetIdempotent controls whether setting the current mode again re-runs the hooks.
func (c *Controller) SetIdempotent(on bool) {
	c.idempotent = on
}

// SetExclusive controls whether sessions claim the process-wide selector slot.
// Widgets that never touch pointer input or layers can opt out.
func (c *Controller) SetExclusive(on bool) {
	c.exclusive = on
}

// SetMode moves the controller to m. Moving to Idle ends an open session with
// EndCancel. An out-of-range m panics with *InvalidModeError.
func (c *Controller) SetMode(m Mode) error {
	switch m {
	case Selecting:
		return c.start()
	case Idle:
		c.end(EndCancel)
		return nil
	}
	panic(&InvalidModeError{Mode: m})
}

// Switch toggles the mode. It is the toggle button's click handler.
func (c *Controller) Switch() error {
	return c.SetMode(c.mode.Switched())
}

// Finish ends an open session with EndCommit.
func (c *Controller) Finish() {
	if c.mode == Selecting {
		c.end(EndCommit)
	}
}

// Abort ends an open session with EndAbort and logs the cause.
func (c *Controller) Abort(cause any) {
	if c.mode != Selecting {
		return
	}
	log.Printf("%s: selection aborted: %v", c.name, cause)
	c.end(EndAbort)
}

// Session returns the open session, or nil when idle.
func (c *Controller) Session() *Session {
	return c.session
}

func (c *Controller) start() error {
	if c.mode == Selecting {
		if c.idempotent {
			return nil
		}
		// Re-arm: drop the old session's registrations before acquiring new ones.
		s := c.session
		c.session = nil
		c.mode = Idle
		s.Close()
	}
	s := &Session{}
	if c.exclusive {
		if err := claim(c); err != nil {
			return err
		}
		s.Defer(func() { release(c) })
	}
	c.mode = Selecting
	c.session = s
	c.setCaption(c.busyText)

	ok := false
	defer func() {
		if !ok {
			c.fail(s)
		}
	}()
	if err := c.hooks.Activate(s); err != nil {
		return fmt.Errorf("%s: activate: %w", c.name, err)
	}
	ok = true
	return nil
}

// fail unwinds a session whose activation did not complete.
func (c *Controller) fail(s *Session) {
	if c.session == s {
		c.session = nil
		c.mode = Idle
	}
	s.Close()
	c.setCaption(c.idleText)
}

func (c *Controller) end(reason EndReason) {
	if c.mode == Idle {
		if !c.idempotent && reason == EndCancel {
			c.hooks.Deactivate(reason)
		}
		return
	}
	s := c.session
	c.session = nil
	c.mode = Idle
	defer func() {
		s.Close()
		c.setCaption(c.idleText)
	}()
	if reason == EndAbort {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("%s: deactivate after abort failed: %v", c.name, r)
			}
		}()
	}
	c.hooks.Deactivate(reason)
}

func (c *Controller) setCaption(text string) {
	if c.caption != nil {
		c.caption.SetText(text)
	}
}
