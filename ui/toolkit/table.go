package toolkit

import (
	"strconv"

	"power-widgets/internal/event"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/gonum/mat"
)

// Table shows a read-only numeric matrix with named columns.
type Table struct {
	Columns []string
	data    *mat.Dense

	// Changed fires with the new *mat.Dense.
	Changed event.Emitter

	native *widget.Table
}

// NewTable creates a table showing a copy of data.
func NewTable(columns []string, data *mat.Dense) *Table {
	t := &Table{Columns: columns}
	if data != nil {
		t.data = mat.DenseCopyOf(data)
	}
	return t
}

// Value returns a copy of the data.
func (t *Table) Value() *mat.Dense {
	if t.data == nil {
		return nil
	}
	return mat.DenseCopyOf(t.data)
}

// SetValue replaces the data.
func (t *Table) SetValue(data *mat.Dense) {
	if data == nil {
		t.data = nil
	} else {
		t.data = mat.DenseCopyOf(data)
	}
	if t.native != nil {
		t.native.Refresh()
	}
	t.Changed.Emit(t.Value())
}

func (t *Table) dims() (int, int) {
	if t.data == nil {
		return 1, len(t.Columns)
	}
	rows, cols := t.data.Dims()
	return rows + 1, cols
}

// CanvasObject implements Widget.
func (t *Table) CanvasObject() fyne.CanvasObject {
	if t.native == nil {
		t.native = widget.NewTable(
			t.dims,
			func() fyne.CanvasObject { return widget.NewLabel("0000.00") },
			func(id widget.TableCellID, obj fyne.CanvasObject) {
				label := obj.(*widget.Label)
				if id.Row == 0 {
					if id.Col < len(t.Columns) {
						label.SetText(t.Columns[id.Col])
					}
					return
				}
				if t.data == nil {
					label.SetText("")
					return
				}
				label.SetText(strconv.FormatFloat(t.data.At(id.Row-1, id.Col), 'f', 2, 64))
			},
		)
	}
	return t.native
}
