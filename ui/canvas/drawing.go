package canvas

import (
	"image"
	"image/color"
	"math"

	pwimage "power-widgets/internal/image"
	"power-widgets/internal/viewer"
	"power-widgets/pkg/colorutil"
	"power-widgets/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// ellipseSegments is the number of vertices used to outline an ellipse.
const ellipseSegments = 48

// drawLayer composites one visible layer onto the output.
func (vc *ViewerCanvas) drawLayer(output *image.RGBA, layer viewer.Layer, steps []int) {
	switch l := layer.(type) {
	case *viewer.ImageLayer:
		if l.Raster != nil {
			pwimage.Draw(output, l.Raster.Image, vc.zoom, l.Opacity, l.Blending)
		}
	case *viewer.LabelsLayer:
		if img := labelImage(l.Data()); img != nil {
			pwimage.Draw(output, img, vc.zoom, vc.style.LabelOpacity, pwimage.BlendNormal)
		}
	case *viewer.ShapesLayer:
		vc.drawShapes(output, l, steps)
	}
}

// labelImage colors each label of data. Background stays transparent.
func labelImage(data *mat.Dense) *image.RGBA {
	if data == nil {
		return nil
	}
	rows, cols := data.Dims()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if v := data.At(y, x); v != 0 {
				img.SetRGBA(x, y, colorutil.LabelColor(int(v)))
			}
		}
	}
	return img
}

// drawShapes outlines every shape of l that lies on the current slice.
func (vc *ViewerCanvas) drawShapes(output *image.RGBA, l *viewer.ShapesLayer, steps []int) {
	selected := make(map[int]bool)
	for _, i := range l.SelectedData() {
		selected[i] = true
	}
	for i := 0; i < l.NShapes(); i++ {
		s, err := l.Shape(i)
		if err != nil || !onSlice(s.Data, steps) {
			continue
		}
		col := vc.style.Shape
		if selected[i] {
			col = vc.style.Selected
		}
		verts := s.Vertices()
		switch s.Type {
		case viewer.ShapeLine, viewer.ShapePath:
			vc.drawPolyline(output, verts, false, col)
		case viewer.ShapeEllipse:
			box := geometry.BoundingBox(verts)
			ring := geometry.GenerateEllipsePoints(box.Center(), box.Width/2, box.Height/2, ellipseSegments)
			vc.drawPolyline(output, ring, true, col)
		default:
			vc.drawPolyline(output, verts, true, col)
		}
	}
}

// onSlice reports whether the leading coordinates of data match the dims
// steps. Columns are aligned to the trailing dimensions.
func onSlice(data *mat.Dense, steps []int) bool {
	if data == nil {
		return false
	}
	rows, cols := data.Dims()
	if rows == 0 {
		return false
	}
	offset := len(steps) - cols
	for c := 0; c < cols-2; c++ {
		axis := c + offset
		if axis < 0 || axis >= len(steps) {
			continue
		}
		if int(math.Round(data.At(0, c))) != steps[axis] {
			return false
		}
	}
	return true
}

// drawInteractionBox draws the box overlay: a dashed rectangle for two
// distinct points, a crosshair marker for a single point.
func (vc *ViewerCanvas) drawInteractionBox(output *image.RGBA, box *viewer.InteractionBox) {
	if !box.Show {
		return
	}
	r, ok := box.Box()
	if !ok {
		return
	}
	x1, y1 := vc.ImageToCanvas(r.X, r.Y)
	if r.Width == 0 && r.Height == 0 {
		vc.drawMarker(output, int(x1), int(y1), vc.style.Box)
		return
	}
	x2, y2 := vc.ImageToCanvas(r.X+r.Width, r.Y+r.Height)
	vc.drawDashedRect(output, int(x1), int(y1), int(x2), int(y2), vc.style.Box)
}

// drawPolyline connects points given in image coordinates.
func (vc *ViewerCanvas) drawPolyline(output *image.RGBA, points []geometry.Point2D, closed bool, col color.RGBA) {
	n := len(points)
	if n == 0 {
		return
	}
	if n == 1 {
		x, y := vc.ImageToCanvas(points[0].X, points[0].Y)
		vc.drawLine(output, int(x), int(y), int(x), int(y), col, vc.style.Thickness)
		return
	}
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		p1, p2 := points[i], points[(i+1)%n]
		x1, y1 := vc.ImageToCanvas(p1.X, p1.Y)
		x2, y2 := vc.ImageToCanvas(p2.X, p2.Y)
		vc.drawLine(output, int(x1), int(y1), int(x2), int(y2), col, vc.style.Thickness)
	}
}

// drawDashedRect draws a rectangle outline with a dash pattern.
func (vc *ViewerCanvas) drawDashedRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := output.Bounds()
	set := func(x, y int) {
		if (x+y)%4 < 2 && image.Pt(x, y).In(bounds) {
			output.Set(x, y, col)
		}
	}

	for x := x1; x <= x2; x++ {
		set(x, y1)
		set(x, y2)
	}
	for y := y1; y <= y2; y++ {
		set(x1, y)
		set(x2, y)
	}
}

// drawMarker draws crosshairs centered on (cx, cy).
func (vc *ViewerCanvas) drawMarker(output *image.RGBA, cx, cy int, col color.RGBA) {
	size := vc.style.MarkerSize
	vc.drawLine(output, cx-size, cy, cx+size, cy, col, 1)
	vc.drawLine(output, cx, cy-size, cx, cy+size, col, 1)
}

// drawLine draws a line between two points using Bresenham's algorithm.
func (vc *ViewerCanvas) drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		// Draw thick point
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				px, py := x1+s, y1+t
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}
