package interact

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when a mode name or value is not Idle or Selecting.
	ErrInvalidMode = errors.New("invalid interactivity mode")

	// ErrSelectorBusy is returned when another widget already owns the viewer's pointer input.
	ErrSelectorBusy = errors.New("another selector is active")
)

// InvalidModeError reports an out-of-range Mode. It indicates a programming
// error and is raised with panic by Controller.SetMode.
type InvalidModeError struct {
	Mode Mode
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("unreachable mode %d", int(e.Mode))
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}
