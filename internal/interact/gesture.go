package interact

import (
	"fmt"
	"log"

	"power-widgets/internal/viewer"
	"power-widgets/pkg/geometry"
)

// ClickThreshold is the pixel displacement, summed over both axes, below
// which a press-release pair counts as a click.
const ClickThreshold = 2.0

// IsClick reports whether a press at p0 released at p1 is a click.
func IsClick(p0, p1 geometry.Point2D) bool {
	return p0.Manhattan(p1) < ClickThreshold
}

// Phase is the position of a gesture in the press-move-release protocol.
type Phase int

const (
	PhaseArmed Phase = iota
	PhaseDragging
	PhaseCommitted
	PhaseRearmed
	PhaseAborted
)

func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	case PhaseCommitted:
		return "committed"
	case PhaseRearmed:
		return "rearmed"
	case PhaseAborted:
		return "aborted"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Outcome is what a widget decides at release.
type Outcome int

const (
	// Commit ends the session normally.
	Commit Outcome = iota
	// Rearm keeps the session open for another gesture.
	Rearm
	// Cancel ends the session without a result.
	Cancel
)

// Gesture is the state of one press-move-release sequence.
type Gesture struct {
	Phase Phase
	// Start and Last are pointer positions in canvas pixels.
	Start geometry.Point2D
	Last  geometry.Point2D
	// StartPosition and Position are world coordinates.
	StartPosition []float64
	Position      []float64
	Moves         int
}

// IsClick reports whether the pointer stayed within ClickThreshold of the press.
func (g *Gesture) IsClick() bool {
	return IsClick(g.Start, g.Last)
}

// StartWorld returns the press position in world (x, y).
func (g *Gesture) StartWorld() geometry.Point2D {
	return viewer.MouseEvent{Position: g.StartPosition}.World()
}

// World returns the latest position in world (x, y).
func (g *Gesture) World() geometry.Point2D {
	return viewer.MouseEvent{Position: g.Position}.World()
}

// Steps are a widget's reactions to the events of one gesture.
type Steps interface {
	// Press returns false to ignore the gesture.
	Press(g *Gesture) bool
	Move(g *Gesture)
	Release(g *Gesture) Outcome
}

// Tracker feeds viewer drag events to Steps while its controller is selecting.
// A panic in any step aborts the session instead of reaching the host.
type Tracker struct {
	ctrl  *Controller
	steps Steps
	last  *Gesture
}

// NewTracker binds steps to ctrl.
func NewTracker(ctrl *Controller, steps Steps) *Tracker {
	return &Tracker{ctrl: ctrl, steps: steps}
}

// Attach registers the tracker on list for the length of s.
func (t *Tracker) Attach(list *viewer.CallbackList, s *Session) viewer.CallbackHandle {
	h := list.Append(t.onPress)
	s.Defer(func() { h.Remove() })
	return h
}

// Last returns the most recent gesture, or nil.
func (t *Tracker) Last() *Gesture {
	return t.last
}

func (t *Tracker) onPress(ev viewer.MouseEvent) viewer.Gesture {
	if !t.ctrl.Selecting() {
		return nil
	}
	g := &Gesture{
		Phase:         PhaseArmed,
		Start:         ev.Pos,
		Last:          ev.Pos,
		StartPosition: clonePosition(ev.Position),
		Position:      clonePosition(ev.Position),
	}
	t.last = g
	accepted := false
	if !t.guard(g, func() { accepted = t.steps.Press(g) }) || !accepted {
		return nil
	}
	if !t.ctrl.Selecting() {
		return nil
	}
	return &run{t: t, g: g}
}

// run adapts one Gesture to viewer.Gesture.
type run struct {
	t *Tracker
	g *Gesture
}

func (r *run) Handle(ev viewer.MouseEvent) bool {
	t, g := r.t, r.g
	if !t.ctrl.Selecting() {
		return false
	}
	g.Last = ev.Pos
	g.Position = clonePosition(ev.Position)
	switch ev.Type {
	case viewer.MouseMove:
		g.Phase = PhaseDragging
		g.Moves++
		return t.guard(g, func() { t.steps.Move(g) })
	case viewer.MouseRelease:
		var out Outcome
		if !t.guard(g, func() { out = t.steps.Release(g) }) {
			return false
		}
		switch out {
		case Commit:
			g.Phase = PhaseCommitted
			t.guard(g, t.ctrl.Finish)
		case Rearm:
			g.Phase = PhaseRearmed
		case Cancel:
			g.Phase = PhaseAborted
			t.ctrl.end(EndCancel)
		}
	}
	return false
}

// guard runs fn and converts a panic into an aborted session.
func (t *Tracker) guard(g *Gesture, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			g.Phase = PhaseAborted
			log.Printf("%s: gesture failed: %v", t.ctrl.Name(), r)
			t.ctrl.Abort(r)
		}
	}()
	fn()
	return true
}

func clonePosition(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
