package viewer

import "errors"

var (
	// ErrNoViewer is returned when no current viewer has been set.
	ErrNoViewer = errors.New("no current viewer")

	// ErrLayerNotFound is returned when a layer id is not in the layer list.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrShapeIndex is returned for an out-of-range shape index.
	ErrShapeIndex = errors.New("shape index out of range")
)
