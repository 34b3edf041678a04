// Package image provides image loading and pixel sampling for image layers.
package image

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/tiff"
)

// Raster is decoded image data together with its source path.
type Raster struct {
	Path  string      // Original file path, empty for in-memory data
	Image image.Image // Decoded image data
}

// FromImage wraps in-memory image data.
func FromImage(img image.Image) *Raster {
	return &Raster{Image: img}
}

// Load decodes an image file.
func Load(path string) (*Raster, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("unsupported image format: %s", filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return &Raster{Path: path, Image: img}, nil
}

// Width returns the image width in pixels.
func (r *Raster) Width() int {
	if r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (r *Raster) Height() int {
	if r.Image == nil {
		return 0
	}
	return r.Image.Bounds().Dy()
}

// PixelAt returns the color at the specified pixel, relative to the image origin.
func (r *Raster) PixelAt(x, y int) (color.Color, bool) {
	if r.Image == nil {
		return nil, false
	}
	bounds := r.Image.Bounds()
	px, py := x+bounds.Min.X, y+bounds.Min.Y
	if px < bounds.Min.X || px >= bounds.Max.X || py < bounds.Min.Y || py >= bounds.Max.Y {
		return nil, false
	}
	return r.Image.At(px, py), true
}

// Intensity returns the 8-bit gray level at the specified pixel.
func (r *Raster) Intensity(x, y int) (float64, bool) {
	c, ok := r.PixelAt(x, y)
	if !ok {
		return 0, false
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	return float64(g.Y), true
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter string for use in file dialogs.
func FileFilter() string {
	return "Image Files (*.tiff, *.tif, *.png, *.jpg, *.jpeg)"
}
