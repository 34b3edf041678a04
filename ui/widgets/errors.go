package widgets

import "errors"

var (
	// ErrDimensionality is returned when the viewer has too few dimensions for a z read.
	ErrDimensionality = errors.New("viewer must have at least 3 dimensions")

	// ErrInvalidShape is returned when vertex data does not fit the editor's shape.
	ErrInvalidShape = errors.New("invalid shape data")

	// ErrNoLayer is returned when a widget has no layer selected.
	ErrNoLayer = errors.New("no layer selected")

	// ErrUnknownType is returned by New for an unregistered type name.
	ErrUnknownType = errors.New("unknown widget type")
)
