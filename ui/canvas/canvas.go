// Package canvas renders a viewer's layers and feeds pointer input back to it.
package canvas

import (
	"image"
	"image/draw"

	"power-widgets/internal/event"
	"power-widgets/internal/viewer"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

var emptySize = fyne.NewSize(400, 300)

// ViewerCanvas displays a viewer and turns pointer input into viewer mouse events.
type ViewerCanvas struct {
	widget.BaseWidget

	viewer *viewer.Viewer
	style  Style
	conns  []event.Connection

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Container
	scroll  *zoomScroll
	content *pointerContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Last rendered output for sampling
	lastOutput *image.RGBA

	onZoomChange func(zoom float64)
}

// zoomScroll is a widget that wraps a scroll container but intercepts wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ViewerCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ViewerCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	zs.canvas.scrolled(ev)
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerContent wraps the raster and receives the pointer events. A press
// is delivered on mouse down, moves on drag and the release on whichever of
// mouse up or drag end arrives first.
type pointerContent struct {
	widget.BaseWidget
	canvas  *ViewerCanvas
	raster  *fynecanvas.Raster
	pressed bool
	last    fyne.Position
}

var (
	_ desktop.Mouseable  = (*pointerContent)(nil)
	_ desktop.Cursorable = (*pointerContent)(nil)
	_ fyne.Draggable     = (*pointerContent)(nil)
	_ fyne.Scrollable    = (*pointerContent)(nil)
)

func newPointerContent(vc *ViewerCanvas, raster *fynecanvas.Raster) *pointerContent {
	pc := &pointerContent{canvas: vc, raster: raster}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *pointerContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.raster)
}

func (pc *pointerContent) MinSize() fyne.Size {
	return pc.raster.MinSize()
}

func (pc *pointerContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.press(ev.Position)
}

func (pc *pointerContent) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.release(ev.Position)
}

func (pc *pointerContent) Dragged(ev *fyne.DragEvent) {
	if !pc.pressed {
		// Touch drivers deliver no mouse down before the first drag.
		pc.press(ev.Position.Subtract(ev.Dragged))
	}
	pc.last = ev.Position
	pc.canvas.dispatch(viewer.MouseMove, ev.Position)
}

func (pc *pointerContent) DragEnd() {
	pc.release(pc.last)
}

func (pc *pointerContent) Scrolled(ev *fyne.ScrollEvent) {
	pc.canvas.scrolled(ev)
}

// Cursor follows the viewer's cursor style.
func (pc *pointerContent) Cursor() desktop.Cursor {
	if pc.canvas.viewer.Cursor.Style == viewer.CursorCross {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (pc *pointerContent) press(pos fyne.Position) {
	pc.pressed = true
	pc.last = pos
	pc.canvas.dispatch(viewer.MousePress, pos)
}

func (pc *pointerContent) release(pos fyne.Position) {
	if !pc.pressed {
		return
	}
	pc.pressed = false
	pc.canvas.dispatch(viewer.MouseRelease, pos)
}

// NewViewerCanvas creates a canvas showing v. It redraws whenever the viewer
// reports a change, the layer stack changes or a dims slider moves.
func NewViewerCanvas(v *viewer.Viewer) *ViewerCanvas {
	vc := &ViewerCanvas{
		viewer:  v,
		style:   DefaultStyle(),
		zoom:    1.0,
		imgSize: emptySize,
	}

	vc.raster = fynecanvas.NewRaster(vc.draw)
	vc.raster.ScaleMode = fynecanvas.ImageScalePixels
	vc.raster.SetMinSize(vc.imgSize)

	vc.content = newPointerContent(vc, vc.raster)
	vc.scroll = newZoomScroll(vc.content, vc)

	refresh := func(any) { vc.updateContentSize() }
	vc.conns = []event.Connection{
		v.Redraw.Connect(refresh),
		v.Layers.Events.Inserted.Connect(refresh),
		v.Layers.Events.Removed.Connect(refresh),
		v.Dims.Events.CurrentStep.Connect(refresh),
	}

	vc.ExtendBaseWidget(vc)
	return vc
}

// Detach stops following the viewer's change events.
func (vc *ViewerCanvas) Detach() {
	for _, c := range vc.conns {
		c.Disconnect()
	}
	vc.conns = nil
}

// Viewer returns the displayed viewer.
func (vc *ViewerCanvas) Viewer() *viewer.Viewer {
	return vc.viewer
}

// SetStyle replaces the drawing colors.
func (vc *ViewerCanvas) SetStyle(s Style) {
	vc.style = s
	vc.Refresh()
}

// Container returns the canvas container for embedding in layouts.
func (vc *ViewerCanvas) Container() fyne.CanvasObject {
	return vc.scroll
}

// SetZoom sets the zoom level.
func (vc *ViewerCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	vc.zoom = zoom
	vc.updateContentSize()

	if vc.onZoomChange != nil {
		vc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (vc *ViewerCanvas) Zoom() float64 {
	return vc.zoom
}

// ZoomIn increases the zoom level.
func (vc *ViewerCanvas) ZoomIn() {
	vc.SetZoom(vc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (vc *ViewerCanvas) ZoomOut() {
	vc.SetZoom(vc.zoom / zoomStep)
}

func (vc *ViewerCanvas) scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		vc.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		vc.ZoomOut()
	}
}

// FitToWindow adjusts zoom to fit the layers in the visible area.
func (vc *ViewerCanvas) FitToWindow() {
	bounds := vc.layerBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := vc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	vc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (vc *ViewerCanvas) SetFitToWindow(fit bool) {
	vc.fitToWindow = fit
	if fit {
		vc.FitToWindow()
	}
}

// FitsToWindow returns the current fit-to-window state.
func (vc *ViewerCanvas) FitsToWindow() bool {
	return vc.fitToWindow
}

// CheckResize checks if the scroll container was resized and auto-fits if enabled.
func (vc *ViewerCanvas) CheckResize(size fyne.Size) {
	if !vc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != vc.lastScrollSize {
		vc.lastScrollSize = size
		vc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (vc *ViewerCanvas) OnZoomChange(callback func(zoom float64)) {
	vc.onZoomChange = callback
}

// RenderedOutput returns the last rendered canvas output.
func (vc *ViewerCanvas) RenderedOutput() *image.RGBA {
	return vc.lastOutput
}

// Refresh refreshes the canvas display.
func (vc *ViewerCanvas) Refresh() {
	vc.raster.Refresh()
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (vc *ViewerCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	return imgX * vc.zoom, imgY * vc.zoom
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (vc *ViewerCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	return canvasX / vc.zoom, canvasY / vc.zoom
}

// dispatch sends a pointer event at a content position to the viewer. The
// leading world coordinates come from the dims sliders.
func (vc *ViewerCanvas) dispatch(t viewer.MouseEventType, pos fyne.Position) {
	x, y := vc.CanvasToImage(float64(pos.X), float64(pos.Y))
	ev := viewer.MouseEvent{Type: t, Position: vc.worldPosition(y, x)}
	ev.Pos.X, ev.Pos.Y = float64(pos.X), float64(pos.Y)
	vc.viewer.DispatchMouse(ev)
}

func (vc *ViewerCanvas) worldPosition(y, x float64) []float64 {
	steps := vc.viewer.Dims.CurrentStep()
	pos := make([]float64, len(steps))
	for i := 0; i < len(steps)-2; i++ {
		pos[i] = float64(steps[i])
	}
	pos[len(pos)-2], pos[len(pos)-1] = y, x
	return pos
}

// layerBounds returns the extent of the image and labels layers in pixels.
func (vc *ViewerCanvas) layerBounds() image.Rectangle {
	var maxWidth, maxHeight int
	grow := func(w, h int) {
		if w > maxWidth {
			maxWidth = w
		}
		if h > maxHeight {
			maxHeight = h
		}
	}
	for _, layer := range vc.viewer.Layers.All() {
		switch l := layer.(type) {
		case *viewer.ImageLayer:
			if l.Raster != nil {
				grow(l.Raster.Width(), l.Raster.Height())
			}
		case *viewer.LabelsLayer:
			if l.Data() != nil {
				rows, cols := l.Data().Dims()
				grow(cols, rows)
			}
		}
	}
	return image.Rect(0, 0, maxWidth, maxHeight)
}

// updateContentSize updates the content size based on the layers and zoom.
func (vc *ViewerCanvas) updateContentSize() {
	bounds := vc.layerBounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		vc.imgSize = emptySize
	} else {
		width := float32(float64(bounds.Dx()) * vc.zoom)
		height := float32(float64(bounds.Dy()) * vc.zoom)
		vc.imgSize = fyne.NewSize(width, height)
	}

	vc.raster.SetMinSize(vc.imgSize)
	vc.raster.Resize(vc.imgSize)
	vc.content.Resize(vc.imgSize)
	vc.content.Refresh()
	vc.scroll.Refresh()
}

// draw is the raster drawing function.
func (vc *ViewerCanvas) draw(w, h int) image.Image {
	output := vc.render(w, h)
	vc.lastOutput = output
	return output
}

// render composites the visible layers bottom-up, then the interaction box.
func (vc *ViewerCanvas) render(w, h int) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(vc.style.Background), image.Point{}, draw.Src)

	steps := vc.viewer.Dims.CurrentStep()
	for _, layer := range vc.viewer.Layers.All() {
		if !layer.Visible() {
			continue
		}
		vc.drawLayer(output, layer, steps)
	}

	vc.drawInteractionBox(output, &vc.viewer.Overlays.InteractionBox)
	return output
}

// CreateRenderer implements fyne.Widget.
func (vc *ViewerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &viewerCanvasRenderer{canvas: vc}
}

type viewerCanvasRenderer struct {
	canvas *ViewerCanvas
}

func (r *viewerCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.scroll.Resize(size)
	r.canvas.CheckResize(size)
}

func (r *viewerCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *viewerCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *viewerCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *viewerCanvasRenderer) Destroy() {}
