package toolkit

import (
	"power-widgets/internal/event"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// PushButton is a clickable button with a mutable caption.
type PushButton struct {
	text string

	// Changed fires on every click with the caption as data.
	Changed event.Emitter

	native *widget.Button
}

// NewPushButton creates a button.
func NewPushButton(text string) *PushButton {
	return &PushButton{text: text}
}

// Text returns the caption.
func (b *PushButton) Text() string {
	return b.text
}

// SetText changes the caption.
func (b *PushButton) SetText(text string) {
	b.text = text
	if b.native != nil {
		b.native.SetText(text)
	}
}

// Click simulates a user click.
func (b *PushButton) Click() {
	b.Changed.Emit(b.text)
}

// CanvasObject implements Widget.
func (b *PushButton) CanvasObject() fyne.CanvasObject {
	if b.native == nil {
		b.native = widget.NewButton(b.text, b.Click)
	}
	return b.native
}
