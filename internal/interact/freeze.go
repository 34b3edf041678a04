package interact

import "power-widgets/internal/viewer"

type layerState struct {
	id          viewer.LayerID
	interactive bool
}

// Freezer disables pointer handling on the viewer's selected layers for the
// length of a selection session and restores it afterwards.
type Freezer struct {
	viewer *viewer.Viewer
	states []layerState
}

// Freeze snapshots and disables every selected layer. Shapes layers are also
// put in pan/zoom mode, since a layer in an add mode keeps drawing otherwise.
func (f *Freezer) Freeze(v *viewer.Viewer) {
	if f.viewer != nil {
		f.Unfreeze()
	}
	f.viewer = v
	for _, l := range v.Layers.Selection().Layers() {
		f.states = append(f.states, layerState{id: l.ID(), interactive: l.Interactive()})
		l.SetInteractive(false)
		if sl, ok := l.(*viewer.ShapesLayer); ok {
			sl.SetMode(viewer.ModePanZoom)
		}
	}
}

// Unfreeze restores every snapshotted layer that still exists and clears the snapshot.
func (f *Freezer) Unfreeze() {
	if f.viewer != nil {
		for _, st := range f.states {
			if l, ok := f.viewer.Layers.Get(st.id); ok {
				l.SetInteractive(st.interactive)
			}
		}
	}
	f.states = nil
	f.viewer = nil
}

// Frozen returns the number of layers currently held.
func (f *Freezer) Frozen() int {
	return len(f.states)
}

// Viewer returns the viewer being held, or nil.
func (f *Freezer) Viewer() *viewer.Viewer {
	return f.viewer
}

// FreezeFor freezes v and registers the matching Unfreeze with the session.
func (f *Freezer) FreezeFor(s *Session, v *viewer.Viewer) {
	f.Freeze(v)
	s.Defer(f.Unfreeze)
}
