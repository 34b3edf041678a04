package widgets

import (
	"fmt"

	"power-widgets/internal/event"
	"power-widgets/internal/viewer"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/mat"
)

// ColumnChoice chooses one column of a layer's feature table.
type ColumnChoice struct {
	opts    Options
	tables  *toolkit.ComboBox[viewer.LayerID]
	columns *toolkit.ComboBox[string]
	left    *toolkit.Label
	right   *toolkit.Label

	// Changed fires with the column name.
	Changed event.Emitter
}

// NewColumnChoice creates a feature column chooser.
func NewColumnChoice(opts ...Option) *ColumnChoice {
	c := &ColumnChoice{
		opts:  buildOptions(opts),
		left:  toolkit.NewLabel(`.features["`),
		right: toolkit.NewLabel(`"]`),
	}
	c.tables = toolkit.NewComboBox(c.tableChoices)
	c.columns = toolkit.NewComboBox(c.columnChoices)
	c.tables.Changed.Connect(func(any) { c.columns.ResetChoices() })
	c.columns.Changed.Connect(func(data any) { c.Changed.Emit(data) })
	return c
}

// tableChoices lists the layers with a non-empty feature table.
func (c *ColumnChoice) tableChoices() []toolkit.Choice[viewer.LayerID] {
	v, err := c.opts.host()
	if err != nil {
		return nil
	}
	var out []toolkit.Choice[viewer.LayerID]
	for _, l := range v.Layers.All() {
		if l.Features().Empty() {
			continue
		}
		out = append(out, toolkit.Choice[viewer.LayerID]{Label: l.Name(), Value: l.ID()})
	}
	return out
}

func (c *ColumnChoice) columnChoices() []toolkit.Choice[string] {
	f, err := c.Features()
	if err != nil {
		return nil
	}
	var out []toolkit.Choice[string]
	for _, name := range f.Columns() {
		out = append(out, toolkit.Choice[string]{Label: name, Value: name})
	}
	return out
}

// ResetChoices re-reads the feature tables and their columns.
func (c *ColumnChoice) ResetChoices() {
	c.tables.ResetChoices()
	c.columns.ResetChoices()
}

// Features returns the chosen layer's feature table.
func (c *ColumnChoice) Features() (*viewer.Features, error) {
	id, ok := c.tables.Value()
	if !ok {
		return nil, ErrNoLayer
	}
	v, err := c.opts.host()
	if err != nil {
		return nil, err
	}
	l, ok := v.Layers.Get(id)
	if !ok {
		return nil, fmt.Errorf("features of layer %d: %w", id, viewer.ErrLayerNotFound)
	}
	return l.Features(), nil
}

// Column returns the chosen column name.
func (c *ColumnChoice) Column() (string, bool) {
	return c.columns.Value()
}

// Value returns the chosen column.
func (c *ColumnChoice) Value() (*mat.VecDense, error) {
	f, err := c.Features()
	if err != nil {
		return nil, err
	}
	name, ok := c.columns.Value()
	if !ok {
		return nil, fmt.Errorf("no column chosen: %w", ErrNoLayer)
	}
	col, ok := f.Column(name)
	if !ok {
		return nil, fmt.Errorf("column %q is empty", name)
	}
	return col, nil
}

// SetValue chooses a layer and one of its columns.
func (c *ColumnChoice) SetValue(id viewer.LayerID, column string) error {
	if !c.tables.SetValue(id) {
		c.tables.ResetChoices()
		if !c.tables.SetValue(id) {
			return fmt.Errorf("features of layer %d: %w", id, viewer.ErrLayerNotFound)
		}
	}
	if !c.columns.SetValue(column) {
		return fmt.Errorf("column %q not found", column)
	}
	return nil
}

// CanvasObject implements toolkit.Widget.
func (c *ColumnChoice) CanvasObject() fyne.CanvasObject {
	return container.NewHBox(
		c.tables.CanvasObject(),
		c.left.CanvasObject(),
		c.columns.CanvasObject(),
		c.right.CanvasObject(),
	)
}
