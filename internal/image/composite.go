package image

import (
	"image"
	"image/color"
	"math"
)

// BlendMode specifies how a layer is composited over the layers below it.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDifference
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	case BlendDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}

// Draw scales src by zoom and blends it onto dst. Pixel (x, y) of dst shows
// source pixel (x/zoom, y/zoom) relative to the source origin.
func Draw(dst *image.RGBA, src image.Image, zoom, opacity float64, mode BlendMode) {
	if src == nil || zoom <= 0 || opacity <= 0 {
		return
	}
	srcBounds := src.Bounds()
	dstBounds := dst.Bounds()

	maxX := int(math.Ceil(float64(srcBounds.Dx()) * zoom))
	maxY := int(math.Ceil(float64(srcBounds.Dy()) * zoom))
	if maxX > dstBounds.Max.X {
		maxX = dstBounds.Max.X
	}
	if maxY > dstBounds.Max.Y {
		maxY = dstBounds.Max.Y
	}

	for y := dstBounds.Min.Y; y < maxY; y++ {
		srcY := int(float64(y)/zoom) + srcBounds.Min.Y
		if srcY >= srcBounds.Max.Y {
			continue
		}
		for x := dstBounds.Min.X; x < maxX; x++ {
			srcX := int(float64(x)/zoom) + srcBounds.Min.X
			if srcX >= srcBounds.Max.X {
				continue
			}
			dst.Set(x, y, blend(dst.At(x, y), src.At(srcX, srcY), mode, opacity))
		}
	}
}

// blend performs the blend operation between two colors.
func blend(dst, src color.Color, mode BlendMode, opacity float64) color.Color {
	sr, sg, sb, sa := src.RGBA()
	dr, dg, db, da := dst.RGBA()

	// Convert to 0-1 range
	sf := [4]float64{float64(sr) / 65535.0, float64(sg) / 65535.0, float64(sb) / 65535.0, float64(sa) / 65535.0}
	df := [4]float64{float64(dr) / 65535.0, float64(dg) / 65535.0, float64(db) / 65535.0, float64(da) / 65535.0}

	// Un-premultiply the source so modes operate on straight color.
	if sf[3] > 0 {
		for i := 0; i < 3; i++ {
			sf[i] /= sf[3]
		}
	}

	var rf [3]float64

	switch mode {
	case BlendMultiply:
		for i := 0; i < 3; i++ {
			rf[i] = sf[i] * df[i]
		}

	case BlendScreen:
		for i := 0; i < 3; i++ {
			rf[i] = 1 - (1-sf[i])*(1-df[i])
		}

	case BlendOverlay:
		for i := 0; i < 3; i++ {
			if df[i] < 0.5 {
				rf[i] = 2 * sf[i] * df[i]
			} else {
				rf[i] = 1 - 2*(1-sf[i])*(1-df[i])
			}
		}

	case BlendDifference:
		for i := 0; i < 3; i++ {
			rf[i] = math.Abs(sf[i] - df[i])
		}

	default:
		rf[0], rf[1], rf[2] = sf[0], sf[1], sf[2]
	}

	// Apply opacity and alpha blending
	alpha := sf[3] * opacity
	finalR := rf[0]*alpha + df[0]*(1-alpha)
	finalG := rf[1]*alpha + df[1]*(1-alpha)
	finalB := rf[2]*alpha + df[2]*(1-alpha)
	finalA := alpha + df[3]*(1-alpha)

	return color.RGBA{
		R: uint8(math.Round(clamp(finalR, 0, 1) * 255)),
		G: uint8(math.Round(clamp(finalG, 0, 1) * 255)),
		B: uint8(math.Round(clamp(finalB, 0, 1) * 255)),
		A: uint8(math.Round(clamp(finalA, 0, 1) * 255)),
	}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
