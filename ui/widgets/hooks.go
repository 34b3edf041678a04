package widgets

import (
	"log"

	"power-widgets/internal/interact"
	"power-widgets/ui/toolkit"
)

// hookFuncs adapts two closures to interact.Hooks so widgets keep their
// activation logic unexported.
type hookFuncs struct {
	activate   func(s *interact.Session) error
	deactivate func(reason interact.EndReason)
}

func (h hookFuncs) Activate(s *interact.Session) error {
	return h.activate(s)
}

func (h hookFuncs) Deactivate(reason interact.EndReason) {
	if h.deactivate != nil {
		h.deactivate(reason)
	}
}

// toggle is the button and controller pair every interactive widget owns.
type toggle struct {
	button *toolkit.PushButton
	ctrl   *interact.Controller
}

func newToggle(name string, o Options, h hookFuncs, idleText, busyText string) toggle {
	btn := toolkit.NewPushButton(idleText)
	ctrl := interact.NewController(name, h, btn, idleText, busyText)
	ctrl.SetIdempotent(o.Idempotent)
	btn.Changed.Connect(func(any) { logErr(name, ctrl.Switch()) })
	return toggle{button: btn, ctrl: ctrl}
}

// Mode returns the interactivity mode.
func (t toggle) Mode() interact.Mode {
	return t.ctrl.Mode()
}

// SetMode starts or ends a selection session.
func (t toggle) SetMode(m interact.Mode) error {
	return t.ctrl.SetMode(m)
}

// Button returns the toggle button.
func (t toggle) Button() *toolkit.PushButton {
	return t.button
}

// Controller returns the widget's interactivity controller.
func (t toggle) Controller() *interact.Controller {
	return t.ctrl
}

func logErr(name string, err error) {
	if err != nil {
		log.Printf("%s: %v", name, err)
	}
}
