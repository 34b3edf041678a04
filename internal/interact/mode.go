package interact

import "fmt"

// Mode is the interactivity state of a selection widget.
type Mode int

const (
	Idle Mode = iota
	Selecting
)

// Valid reports whether m is Idle or Selecting.
func (m Mode) Valid() bool {
	return m == Idle || m == Selecting
}

// Switched returns the other mode.
func (m Mode) Switched() Mode {
	switch m {
	case Idle:
		return Selecting
	case Selecting:
		return Idle
	}
	panic(&InvalidModeError{Mode: m})
}

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Selecting:
		return "selecting"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "idle" or "selecting" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "idle":
		return Idle, nil
	case "selecting":
		return Selecting, nil
	}
	return Idle, fmt.Errorf("%q: %w", s, ErrInvalidMode)
}
