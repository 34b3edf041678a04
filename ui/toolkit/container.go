package toolkit

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Label shows static text.
type Label struct {
	text   string
	native *widget.Label
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// Text returns the label text.
func (l *Label) Text() string {
	return l.text
}

// SetText changes the label text.
func (l *Label) SetText(text string) {
	l.text = text
	if l.native != nil {
		l.native.SetText(text)
	}
}

// CanvasObject implements Widget.
func (l *Label) CanvasObject() fyne.CanvasObject {
	if l.native == nil {
		l.native = widget.NewLabel(l.text)
	}
	return l.native
}

// Layout is the direction children are stacked in.
type Layout int

const (
	Vertical Layout = iota
	Horizontal
)

// Container arranges child widgets.
type Container struct {
	Layout   Layout
	children []Widget
	labels   []string
}

// NewContainer creates a container holding children.
func NewContainer(layout Layout, children ...Widget) *Container {
	c := &Container{Layout: layout}
	for _, w := range children {
		c.Append("", w)
	}
	return c
}

// Append adds a child with an optional caption shown before it.
func (c *Container) Append(label string, w Widget) {
	c.children = append(c.children, w)
	c.labels = append(c.labels, label)
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

// CanvasObject implements Widget.
func (c *Container) CanvasObject() fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(c.children))
	for i, w := range c.children {
		obj := w.CanvasObject()
		if c.labels[i] != "" {
			obj = container.NewHBox(widget.NewLabel(c.labels[i]), obj)
		}
		objs = append(objs, obj)
	}
	if c.Layout == Horizontal {
		return container.NewHBox(objs...)
	}
	return container.NewVBox(objs...)
}
