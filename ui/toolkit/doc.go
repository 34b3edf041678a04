// Package toolkit provides the value widgets the selection widgets are built
// from. Each widget keeps its value in Go, notifies listeners synchronously
// through its Changed emitter, and builds its fyne representation on demand,
// so widgets can be driven and tested without a running fyne app.
package toolkit

import "fyne.io/fyne/v2"

// Widget is anything that can be placed in a fyne layout.
type Widget interface {
	CanvasObject() fyne.CanvasObject
}
