package viewer

import (
	"math"

	pwimage "power-widgets/internal/image"
)

// ImageLayer displays a raster image.
type ImageLayer struct {
	layerBase
	Raster   *pwimage.Raster
	Opacity  float64
	Blending pwimage.BlendMode
}

// NewImageLayer creates an image layer.
func NewImageLayer(name string, raster *pwimage.Raster) *ImageLayer {
	return &ImageLayer{layerBase: newLayerBase(name), Raster: raster, Opacity: 1.0}
}

func (l *ImageLayer) Kind() Kind { return KindImage }

// Value returns the gray level of the pixel containing position.
func (l *ImageLayer) Value(position []float64, world bool) (float64, bool) {
	if l.Raster == nil {
		return 0, false
	}
	row, col, ok := pixelIndex(position)
	if !ok {
		return 0, false
	}
	return l.Raster.Intensity(col, row)
}

// pixelIndex converts the last two coordinates of position to a (row, col) index.
func pixelIndex(position []float64) (row, col int, ok bool) {
	n := len(position)
	if n < 2 {
		return 0, 0, false
	}
	y, x := position[n-2], position[n-1]
	if math.IsNaN(y) || math.IsNaN(x) || y < 0 || x < 0 {
		return 0, 0, false
	}
	return int(y), int(x), true
}
