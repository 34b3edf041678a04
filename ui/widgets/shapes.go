package widgets

import (
	"fmt"
	"math"

	"power-widgets/internal/event"
	"power-widgets/internal/viewer"
	"power-widgets/ui/toolkit"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// shapeSource is the shapes-layer combo box shared by ShapeComboBox and
// ShapeSelect. It keeps one data connection on the chosen layer.
type shapeSource struct {
	opts   Options
	layers *toolkit.ComboBox[viewer.LayerID]
	conn   event.Connection
	onData func()
}

func newShapeSource(opts Options, onData func()) *shapeSource {
	s := &shapeSource{opts: opts, onData: onData}
	s.layers = toolkit.NewComboBox(s.layerChoices)
	s.layers.Changed.Connect(func(any) { s.rebind() })
	return s
}

func (s *shapeSource) layerChoices() []toolkit.Choice[viewer.LayerID] {
	v, err := s.opts.host()
	if err != nil {
		return nil
	}
	var out []toolkit.Choice[viewer.LayerID]
	for _, l := range v.Layers.OfKind(viewer.KindShapes) {
		out = append(out, toolkit.Choice[viewer.LayerID]{Label: l.Name(), Value: l.ID()})
	}
	return out
}

func (s *shapeSource) layer() (*viewer.ShapesLayer, error) {
	id, ok := s.layers.Value()
	if !ok {
		return nil, ErrNoLayer
	}
	v, err := s.opts.host()
	if err != nil {
		return nil, err
	}
	l, ok := v.Layers.Get(id)
	if !ok {
		return nil, fmt.Errorf("shapes layer %d: %w", id, viewer.ErrLayerNotFound)
	}
	sl, ok := l.(*viewer.ShapesLayer)
	if !ok {
		return nil, fmt.Errorf("layer %q is not a shapes layer: %w", l.Name(), ErrNoLayer)
	}
	return sl, nil
}

// rebind moves the data connection to the chosen layer.
func (s *shapeSource) rebind() {
	s.conn.Disconnect()
	s.conn = event.Connection{}
	if l, err := s.layer(); err == nil {
		s.conn = l.Events.Data.Connect(func(any) { s.onData() })
	}
	s.onData()
}

func (s *shapeSource) shapeChoices() []toolkit.Choice[int] {
	l, err := s.layer()
	if err != nil {
		return nil
	}
	var out []toolkit.Choice[int]
	for i, t := range l.ShapeTypes() {
		if s.opts.allows(t) {
			out = append(out, toolkit.Choice[int]{Label: fmt.Sprintf("%d: %s", i, t), Value: i})
		}
	}
	return out
}

func (s *shapeSource) data(i int) (*mat.Dense, error) {
	l, err := s.layer()
	if err != nil {
		return nil, err
	}
	sh, err := l.Shape(i)
	if err != nil {
		return nil, err
	}
	return sh.Data, nil
}

// focus selects shape i on its layer and moves the leading dims sliders to
// the mean of its leading coordinates.
func (s *shapeSource) focus(i int) {
	l, err := s.layer()
	if err != nil {
		return
	}
	l.SetSelectedData(i)
	sh, err := l.Shape(i)
	if err != nil {
		return
	}
	_, ndim := sh.Data.Dims()
	if ndim <= 2 {
		return
	}
	v, err := s.opts.host()
	if err != nil {
		return
	}
	offset := v.Dims.NDim() - ndim
	for axis := 0; axis < ndim-2; axis++ {
		center := stat.Mean(mat.Col(nil, axis, sh.Data), nil)
		if axis+offset < 0 {
			continue
		}
		_ = v.Dims.SetCurrentStep(axis+offset, int(math.Round(center)))
	}
}

func (s *shapeSource) setLayer(id viewer.LayerID) error {
	if s.layers.SetValue(id) {
		return nil
	}
	s.layers.ResetChoices()
	if !s.layers.SetValue(id) {
		return fmt.Errorf("shapes layer %d: %w", id, viewer.ErrLayerNotFound)
	}
	return nil
}

// ShapeComboBox chooses one shape of a shapes layer.
type ShapeComboBox struct {
	src    *shapeSource
	shapes *toolkit.ComboBox[int]

	// Changed fires with the chosen shape index.
	Changed event.Emitter
}

// NewShapeComboBox creates a chooser. WithFilter limits the shape types offered.
func NewShapeComboBox(opts ...Option) *ShapeComboBox {
	c := &ShapeComboBox{}
	c.src = newShapeSource(buildOptions(opts), func() { c.shapes.ResetChoices() })
	c.shapes = toolkit.NewComboBox(c.src.shapeChoices)
	c.src.rebind()
	c.shapes.Changed.Connect(func(data any) {
		i := data.(int)
		c.src.focus(i)
		c.Changed.Emit(i)
	})
	return c
}

// ResetChoices re-reads the shapes layers and their shapes.
func (c *ShapeComboBox) ResetChoices() {
	c.src.layers.ResetChoices()
	c.shapes.ResetChoices()
}

// Layer returns the chosen shapes layer.
func (c *ShapeComboBox) Layer() (*viewer.ShapesLayer, error) {
	return c.src.layer()
}

// Index returns the chosen shape index.
func (c *ShapeComboBox) Index() (int, bool) {
	return c.shapes.Value()
}

// Value returns the vertex array of the chosen shape.
func (c *ShapeComboBox) Value() (*mat.Dense, error) {
	i, ok := c.shapes.Value()
	if !ok {
		return nil, fmt.Errorf("no shape chosen: %w", ErrNoLayer)
	}
	return c.src.data(i)
}

// SetValue chooses a layer and one of its shapes.
func (c *ShapeComboBox) SetValue(id viewer.LayerID, index int) error {
	if err := c.src.setLayer(id); err != nil {
		return err
	}
	if !c.shapes.SetValue(index) {
		return fmt.Errorf("shape %d: %w", index, viewer.ErrShapeIndex)
	}
	return nil
}

// Choices returns the shapes offered.
func (c *ShapeComboBox) Choices() []toolkit.Choice[int] {
	return c.shapes.Choices()
}

// CanvasObject implements toolkit.Widget.
func (c *ShapeComboBox) CanvasObject() fyne.CanvasObject {
	return container.NewVBox(c.src.layers.CanvasObject(), c.shapes.CanvasObject())
}

// ShapeSelect chooses any number of shapes of a shapes layer.
type ShapeSelect struct {
	src    *shapeSource
	shapes *toolkit.Select[int]

	// Changed fires with the chosen indices as []int.
	Changed event.Emitter
}

// NewShapeSelect creates a multi-shape chooser.
func NewShapeSelect(opts ...Option) *ShapeSelect {
	c := &ShapeSelect{}
	c.src = newShapeSource(buildOptions(opts), func() { c.shapes.ResetChoices() })
	c.shapes = toolkit.NewSelect(c.src.shapeChoices)
	c.src.rebind()
	c.shapes.Changed.Connect(func(data any) {
		indices := data.([]int)
		if len(indices) == 1 {
			c.src.focus(indices[0])
		}
		c.Changed.Emit(indices)
	})
	return c
}

// ResetChoices re-reads the shapes layers and their shapes.
func (c *ShapeSelect) ResetChoices() {
	c.src.layers.ResetChoices()
	c.shapes.ResetChoices()
}

// Layer returns the chosen shapes layer.
func (c *ShapeSelect) Layer() (*viewer.ShapesLayer, error) {
	return c.src.layer()
}

// Indices returns the chosen shape indices.
func (c *ShapeSelect) Indices() []int {
	return c.shapes.Value()
}

// Value returns the vertex arrays of the chosen shapes.
func (c *ShapeSelect) Value() ([]*mat.Dense, error) {
	var out []*mat.Dense
	for _, i := range c.shapes.Value() {
		d, err := c.src.data(i)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// SetValue chooses a layer and some of its shapes.
func (c *ShapeSelect) SetValue(id viewer.LayerID, indices ...int) error {
	if err := c.src.setLayer(id); err != nil {
		return err
	}
	c.shapes.SetValue(indices...)
	return nil
}

// Choices returns the shapes offered.
func (c *ShapeSelect) Choices() []toolkit.Choice[int] {
	return c.shapes.Choices()
}

// CanvasObject implements toolkit.Widget.
func (c *ShapeSelect) CanvasObject() fyne.CanvasObject {
	return container.NewVBox(c.src.layers.CanvasObject(), c.shapes.CanvasObject())
}
