package mainwindow

import (
	"image"
	"image/color"
	"log"

	pwimage "power-widgets/internal/image"
	"power-widgets/internal/viewer"

	"gonum.org/v1/gonum/mat"
)

const demoSize = 128

type blob struct {
	cy, cx, r float64
	label     int
}

var demoBlobs = []blob{
	{cy: 32, cx: 32, r: 14, label: 1},
	{cy: 40, cx: 90, r: 18, label: 2},
	{cy: 96, cx: 60, r: 22, label: 3},
}

// SeedDemo fills v with a gradient image, a labels layer with a feature
// table and a shapes layer holding one shape of each type.
func SeedDemo(v *viewer.Viewer) {
	img := image.NewGray(image.Rect(0, 0, demoSize, demoSize))
	for y := 0; y < demoSize; y++ {
		for x := 0; x < demoSize; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) * 255 / (2*demoSize - 2))})
		}
	}
	v.AddLayer(viewer.NewImageLayer("gradient", pwimage.FromImage(img)))

	labels := mat.NewDense(demoSize, demoSize, nil)
	areas := make([]float64, len(demoBlobs))
	ids := make([]float64, len(demoBlobs))
	for i, b := range demoBlobs {
		ids[i] = float64(b.label)
		for y := 0; y < demoSize; y++ {
			for x := 0; x < demoSize; x++ {
				dy, dx := float64(y)-b.cy, float64(x)-b.cx
				if dy*dy+dx*dx <= b.r*b.r {
					labels.Set(y, x, float64(b.label))
					areas[i]++
				}
			}
		}
	}
	cells := viewer.NewLabelsLayer("cells", labels)
	columns := []struct {
		name   string
		values []float64
	}{
		{"label", ids},
		{"area", areas},
	}
	for _, c := range columns {
		if err := cells.Features().AddColumn(c.name, c.values); err != nil {
			log.Printf("Demo: feature column %s: %v", c.name, err)
		}
	}
	v.AddLayer(cells)

	shapes := v.AddShapes("annotations")
	shapes.AddShape(viewer.ShapeRectangle, mat.NewDense(4, 2, []float64{
		8, 70, 8, 120, 28, 120, 28, 70,
	}))
	shapes.AddShape(viewer.ShapeLine, mat.NewDense(2, 2, []float64{
		70, 10, 120, 40,
	}))
	shapes.AddShape(viewer.ShapeEllipse, mat.NewDense(4, 2, []float64{
		60, 96, 60, 124, 80, 124, 80, 96,
	}))
	shapes.AddShape(viewer.ShapePolygon, mat.NewDense(3, 2, []float64{
		100, 100, 124, 120, 124, 84,
	}))
	shapes.AddShape(viewer.ShapePath, mat.NewDense(4, 2, []float64{
		4, 4, 12, 20, 4, 36, 12, 52,
	}))
}
