// Package mainwindow provides the demo window: a viewer canvas next to a
// panel holding one instance of every registered selection widget.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	pwimage "power-widgets/internal/image"
	"power-widgets/internal/interact"
	"power-widgets/internal/version"
	"power-widgets/internal/viewer"
	"power-widgets/ui/canvas"
	"power-widgets/ui/prefs"
	"power-widgets/ui/toolkit"
	"power-widgets/ui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir   = "lastDirectory"
	prefKeyLastImage = "lastImage"
	prefKeyWidth     = "window.width"
	prefKeyHeight    = "window.height"

	// zDepth is the number of steps of the leading slider in the demo.
	zDepth = 16
)

// chooser is implemented by widgets whose choices follow the layer list.
type chooser interface {
	ResetChoices()
}

// MainWindow is the demo application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	prefs     *prefs.Prefs
	viewer    *viewer.Viewer
	canvas    *canvas.ViewerCanvas
	statusBar *widget.Label
	zSlider   *widget.Slider

	widgets map[widgets.TypeName]toolkit.Widget

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates the demo window for v.
func New(fyneApp fyne.App, v *viewer.Viewer, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Power Widgets")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		prefs:   p,
		viewer:  v,
		widgets: make(map[widgets.TypeName]toolkit.Widget),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreGeometry()

	return mw
}

// ViewerCanvas returns the canvas showing the viewer.
func (mw *MainWindow) ViewerCanvas() *canvas.ViewerCanvas {
	return mw.canvas
}

// Widget returns the panel's instance of a registered widget type.
func (mw *MainWindow) Widget(name widgets.TypeName) (toolkit.Widget, bool) {
	w, ok := mw.widgets[name]
	return w, ok
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewViewerCanvas(mw.viewer)
	mw.statusBar = widget.NewLabel("Ready")

	canvasArea := container.NewBorder(
		mw.createToolbar(),    // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(mw.createWidgetPanel(), canvasArea)
	split.SetOffset(0.3)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the zoom controls and, for volumes, the leading slider.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	bar := container.NewHBox(
		widget.NewLabel("Zoom:"),
		widget.NewButton("-", mw.onZoomOut),
		widget.NewButton("+", mw.onZoomIn),
		widget.NewButton("Fit", mw.onToggleFitToWindow),
		widget.NewButton("1:1", mw.onActualSize),
	)
	if mw.viewer.Dims.NDim() < 3 {
		return bar
	}

	mw.zSlider = widget.NewSlider(0, zDepth-1)
	mw.zSlider.Step = 1
	mw.zSlider.OnChanged = func(val float64) {
		if err := mw.viewer.Dims.SetCurrentStep(0, int(val)); err != nil {
			log.Printf("MainWindow: %v", err)
		}
	}
	return container.NewBorder(nil, nil, bar, nil,
		container.NewBorder(nil, nil, widget.NewLabel("Z:"), nil, mw.zSlider))
}

// createWidgetPanel builds one accordion item per registered widget type.
func (mw *MainWindow) createWidgetPanel() fyne.CanvasObject {
	opts := append(widgets.OptionsFromPrefs(mw.prefs), widgets.WithViewer(mw.viewer))

	accordion := widget.NewAccordion()
	for _, name := range widgets.TypeNames() {
		reg, err := widgets.Lookup(name)
		if err != nil {
			log.Printf("MainWindow: %v", err)
			continue
		}
		w, err := widgets.New(name, opts...)
		if err != nil {
			log.Printf("MainWindow: %v", err)
			continue
		}
		mw.widgets[name] = w
		title := fmt.Sprintf("%s (%s)", name, reg.Widget)
		accordion.Append(widget.NewAccordionItem(title, w.CanvasObject()))
	}
	return container.NewVScroll(accordion)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	widgetsMenu := fyne.NewMenu("Widgets",
		fyne.NewMenuItem("Reset Choices", mw.resetChoices),
		fyne.NewMenuItem("Toggle Ordered Ranges", mw.onToggleOrdered),
		fyne.NewMenuItem("Toggle Background Label", mw.onToggleBackground),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, widgetsMenu, helpMenu))
}

// setupEventHandlers keeps choices, slider and status in step with the viewer.
func (mw *MainWindow) setupEventHandlers() {
	mw.viewer.Layers.Events.Inserted.Connect(func(any) { mw.resetChoices() })
	mw.viewer.Layers.Events.Removed.Connect(func(any) { mw.resetChoices() })

	mw.viewer.Redraw.Connect(func(any) { mw.updateStatus() })

	if mw.zSlider != nil {
		mw.viewer.Dims.Events.CurrentStep.Connect(func(data any) {
			if steps, ok := data.([]int); ok && len(steps) > 0 {
				mw.zSlider.SetValue(float64(steps[0]))
			}
		})
	}

	mw.SetCloseIntercept(func() {
		mw.SavePreferences()
		mw.Close()
	})
}

// resetChoices refreshes every widget whose choices come from the layer list.
func (mw *MainWindow) resetChoices() {
	for _, w := range mw.widgets {
		if c, ok := w.(chooser); ok {
			c.ResetChoices()
		}
	}
}

// updateStatus shows which selector, if any, is collecting mouse input.
func (mw *MainWindow) updateStatus() {
	if name := interact.ActiveName(); name != "" {
		mw.statusBar.SetText("Selecting: " + name)
		return
	}
	mw.statusBar.SetText("Ready")
}

// restoreGeometry applies the saved window size and reopens the last image.
func (mw *MainWindow) restoreGeometry() {
	w := mw.prefs.FloatWithFallback(prefKeyWidth, 1200)
	h := mw.prefs.FloatWithFallback(prefKeyHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))

	if path := mw.prefs.String(prefKeyLastImage); path != "" {
		if err := mw.LoadImage(path); err != nil {
			log.Printf("MainWindow: restore %s: %v", path, err)
		}
	}
}

// SavePreferences stores the window size and writes the preferences file.
func (mw *MainWindow) SavePreferences() {
	size := mw.Window.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefKeyWidth, float64(size.Width))
		mw.prefs.SetFloat(prefKeyHeight, float64(size.Height))
	}
	if err := mw.prefs.Save(); err != nil {
		log.Printf("MainWindow: save preferences: %v", err)
	}
}

// LoadImage adds the image at path as a new image layer on top of the stack.
func (mw *MainWindow) LoadImage(path string) error {
	raster, err := pwimage.Load(path)
	if err != nil {
		return err
	}
	mw.viewer.AddLayer(viewer.NewImageLayer(filepath.Base(path), raster))
	mw.prefs.SetString(prefKeyLastImage, path)
	mw.canvas.FitToWindow()
	return nil
}

// lastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.SetString(prefKeyLastDir, filepath.Dir(path))
		if err := mw.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(pwimage.SupportedFormats()))
	if loc := mw.lastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onToggleOrdered() {
	ordered := !mw.prefs.Bool(widgets.PrefOrdered, true)
	mw.prefs.SetBool(widgets.PrefOrdered, ordered)
	mw.statusBar.SetText(fmt.Sprintf("Ordered ranges: %v (applies on restart)", ordered))
}

func (mw *MainWindow) onToggleBackground() {
	include := !mw.prefs.Bool(widgets.PrefIncludeBackground, false)
	mw.prefs.SetBool(widgets.PrefIncludeBackground, include)
	mw.statusBar.SetText(fmt.Sprintf("Pick background label: %v (applies on restart)", include))
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.FitsToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.FitsToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Power Widgets",
		fmt.Sprintf("Power Widgets v%s\n\n"+
			"Interactive selection widgets for image viewers.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
