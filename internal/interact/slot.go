package interact

import (
	"fmt"
	"sync"
)

// The active slot holds the one controller allowed to be selecting at a time.
// Selection widgets share the viewer's layers and overlays, so two sessions
// would corrupt each other's frozen state.
var active struct {
	mu    sync.Mutex
	owner *Controller
}

func claim(c *Controller) error {
	active.mu.Lock()
	defer active.mu.Unlock()
	if active.owner != nil && active.owner != c {
		return fmt.Errorf("%s: %w (%s)", c.name, ErrSelectorBusy, active.owner.name)
	}
	active.owner = c
	return nil
}

func release(c *Controller) {
	active.mu.Lock()
	defer active.mu.Unlock()
	if active.owner == c {
		active.owner = nil
	}
}

// ActiveName returns the name of the selecting controller, or "".
func ActiveName() string {
	active.mu.Lock()
	defer active.mu.Unlock()
	if active.owner == nil {
		return ""
	}
	return active.owner.name
}
