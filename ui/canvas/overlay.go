package canvas

import (
	"image/color"

	"power-widgets/pkg/colorutil"
)

// Style holds the colors used to draw layers and the interaction box.
type Style struct {
	Background   color.RGBA
	Shape        color.RGBA
	Selected     color.RGBA
	Box          color.RGBA
	LabelOpacity float64
	// Thickness is the stroke width of shape outlines in pixels.
	Thickness int
	// MarkerSize is the arm length of the single-point marker in pixels.
	MarkerSize int
}

// DefaultStyle returns the style used by new canvases.
func DefaultStyle() Style {
	return Style{
		Background:   colorutil.Black,
		Shape:        colorutil.Cyan,
		Selected:     colorutil.Yellow,
		Box:          colorutil.Magenta,
		LabelOpacity: 0.6,
		Thickness:    2,
		MarkerSize:   6,
	}
}
