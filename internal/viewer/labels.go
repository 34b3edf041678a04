package viewer

import (
	"sort"

	"power-widgets/internal/event"

	"gonum.org/v1/gonum/mat"
)

// LabelsLayer is an integer label image. Zero is background.
type LabelsLayer struct {
	layerBase
	data          *mat.Dense
	selectedLabel int

	Events struct {
		SelectedLabel event.Emitter // data: int
	}
}

// NewLabelsLayer creates a labels layer. The matrix is used, not copied.
func NewLabelsLayer(name string, data *mat.Dense) *LabelsLayer {
	return &LabelsLayer{layerBase: newLayerBase(name), data: data, selectedLabel: 1}
}

func (l *LabelsLayer) Kind() Kind { return KindLabels }

// Data returns the label matrix.
func (l *LabelsLayer) Data() *mat.Dense {
	return l.data
}

// Value returns the label at position.
func (l *LabelsLayer) Value(position []float64, world bool) (float64, bool) {
	if l.data == nil {
		return 0, false
	}
	row, col, ok := pixelIndex(position)
	if !ok {
		return 0, false
	}
	rows, cols := l.data.Dims()
	if row >= rows || col >= cols {
		return 0, false
	}
	return l.data.At(row, col), true
}

// SelectedLabel returns the label used for painting.
func (l *LabelsLayer) SelectedLabel() int {
	return l.selectedLabel
}

// SetSelectedLabel changes the painting label.
func (l *LabelsLayer) SetSelectedLabel(label int) {
	if label == l.selectedLabel {
		return
	}
	l.selectedLabel = label
	l.Events.SelectedLabel.Emit(label)
}

// Labels returns the distinct non-zero labels in ascending order.
func (l *LabelsLayer) Labels() []int {
	if l.data == nil {
		return nil
	}
	seen := make(map[int]struct{})
	raw := l.data.RawMatrix()
	for r := 0; r < raw.Rows; r++ {
		for _, v := range raw.Data[r*raw.Stride : r*raw.Stride+raw.Cols] {
			if v != 0 {
				seen[int(v)] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Mask returns a 0/1 matrix marking the pixels equal to label.
func (l *LabelsLayer) Mask(label int) *mat.Dense {
	if l.data == nil {
		return nil
	}
	rows, cols := l.data.Dims()
	mask := mat.NewDense(rows, cols, nil)
	target := float64(label)
	mask.Apply(func(i, j int, v float64) float64 {
		if v == target {
			return 1
		}
		return 0
	}, l.data)
	return mask
}
