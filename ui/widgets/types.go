package widgets

import (
	"fmt"
	"sort"

	"power-widgets/internal/viewer"
	"power-widgets/ui/toolkit"
)

// TypeName is a domain type alias that maps to a widget.
type TypeName string

const (
	BoxSelection     TypeName = "BoxSelection"
	BoxSlices        TypeName = "BoxSlices"
	Coordinate       TypeName = "Coordinate"
	OneOfShapes      TypeName = "OneOfShapes"
	OneOfLines       TypeName = "OneOfLines"
	OneOfRectangles  TypeName = "OneOfRectangles"
	OneOfEllipses    TypeName = "OneOfEllipses"
	OneOfPaths       TypeName = "OneOfPaths"
	OneOfPolygons    TypeName = "OneOfPolygons"
	SomeOfShapes     TypeName = "SomeOfShapes"
	SomeOfLines      TypeName = "SomeOfLines"
	SomeOfRectangles TypeName = "SomeOfRectangles"
	SomeOfEllipses   TypeName = "SomeOfEllipses"
	SomeOfPaths      TypeName = "SomeOfPaths"
	SomeOfPolygons   TypeName = "SomeOfPolygons"
	OneOfLabels      TypeName = "OneOfLabels"
	FeatureColumn    TypeName = "FeatureColumn"
	LineData         TypeName = "LineData"
	PathData         TypeName = "PathData"
	RectangleData    TypeName = "RectangleData"
	PolygonData      TypeName = "PolygonData"
	EllipseData      TypeName = "EllipseData"
	ZStep            TypeName = "ZStep"
	ZRange           TypeName = "ZRange"
)

// Constructor builds a widget from options.
type Constructor func(opts ...Option) toolkit.Widget

// Registration is the widget and default options for one type name.
type Registration struct {
	Widget   string
	New      Constructor
	Defaults []Option
}

func boxWidget(opts ...Option) toolkit.Widget { return NewBoxSelector(opts...) }
func coordinate(opts ...Option) toolkit.Widget { return NewCoordinateSelector(opts...) }
func shapeCombo(opts ...Option) toolkit.Widget { return NewShapeComboBox(opts...) }
func shapeSelect(opts ...Option) toolkit.Widget { return NewShapeSelect(opts...) }
func labelCombo(opts ...Option) toolkit.Widget { return NewLabelComboBox(opts...) }
func column(opts ...Option) toolkit.Widget { return NewColumnChoice(opts...) }
func zstep(opts ...Option) toolkit.Widget { return NewZStepSpinBox(opts...) }
func zrange(opts ...Option) toolkit.Widget { return NewZRangeEdit(opts...) }

func shapeEdit(kind shapeKind) Constructor {
	return func(opts ...Option) toolkit.Widget { return newShapeDataEdit(kind, opts) }
}

var registry = map[TypeName]Registration{
	BoxSelection: {Widget: "BoxSelector", New: boxWidget},
	BoxSlices:    {Widget: "BoxSelector", New: boxWidget, Defaults: []Option{WithOrdered(true)}},
	Coordinate:   {Widget: "CoordinateSelector", New: coordinate},

	OneOfShapes:     {Widget: "ShapeComboBox", New: shapeCombo},
	OneOfLines:      {Widget: "ShapeComboBox", New: shapeCombo, Defaults: []Option{WithFilter(viewer.ShapeLine)}},
	OneOfRectangles: {Widget: "ShapeComboBox", New: shapeCombo, Defaults: []Option{WithFilter(viewer.ShapeRectangle)}},
	OneOfEllipses:   {Widget: "ShapeComboBox", New: shapeCombo, Defaults: []Option{WithFilter(viewer.ShapeEllipse)}},
	OneOfPaths:      {Widget: "ShapeComboBox", New: shapeCombo, Defaults: []Option{WithFilter(viewer.ShapePath)}},
	OneOfPolygons:   {Widget: "ShapeComboBox", New: shapeCombo, Defaults: []Option{WithFilter(viewer.ShapePolygon)}},

	SomeOfShapes:     {Widget: "ShapeSelect", New: shapeSelect},
	SomeOfLines:      {Widget: "ShapeSelect", New: shapeSelect, Defaults: []Option{WithFilter(viewer.ShapeLine)}},
	SomeOfRectangles: {Widget: "ShapeSelect", New: shapeSelect, Defaults: []Option{WithFilter(viewer.ShapeRectangle)}},
	SomeOfEllipses:   {Widget: "ShapeSelect", New: shapeSelect, Defaults: []Option{WithFilter(viewer.ShapeEllipse)}},
	SomeOfPaths:      {Widget: "ShapeSelect", New: shapeSelect, Defaults: []Option{WithFilter(viewer.ShapePath)}},
	SomeOfPolygons:   {Widget: "ShapeSelect", New: shapeSelect, Defaults: []Option{WithFilter(viewer.ShapePolygon)}},

	OneOfLabels:   {Widget: "LabelComboBox", New: labelCombo},
	FeatureColumn: {Widget: "ColumnChoice", New: column},

	LineData:      {Widget: "LineDataEdit", New: shapeEdit(lineKind)},
	PathData:      {Widget: "PathDataEdit", New: shapeEdit(pathKind)},
	RectangleData: {Widget: "RectangleDataEdit", New: shapeEdit(rectangleKind)},
	PolygonData:   {Widget: "PolygonDataEdit", New: shapeEdit(polygonKind)},
	EllipseData:   {Widget: "EllipseDataEdit", New: shapeEdit(ellipseKind)},

	ZStep:  {Widget: "ZStepSpinBox", New: zstep},
	ZRange: {Widget: "ZRangeEdit", New: zrange, Defaults: []Option{WithOrdered(true)}},
}

// Lookup returns the registration of name.
func Lookup(name TypeName) (Registration, error) {
	r, ok := registry[name]
	if !ok {
		return Registration{}, fmt.Errorf("%q: %w", name, ErrUnknownType)
	}
	return r, nil
}

// New builds the widget registered for name. Options given here are applied
// after the registration's defaults.
func New(name TypeName, opts ...Option) (toolkit.Widget, error) {
	r, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	all := append(append([]Option(nil), r.Defaults...), opts...)
	return r.New(all...), nil
}

// TypeNames returns every registered name in sorted order.
func TypeNames() []TypeName {
	out := make([]TypeName, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
