// Package main provides the entry point for the Power Widgets demo application.
package main

import (
	"flag"
	"log"

	"power-widgets/internal/version"
	"power-widgets/internal/viewer"
	"power-widgets/ui/mainwindow"
	"power-widgets/ui/prefs"

	"fyne.io/fyne/v2/app"
)

const (
	appID    = "io.github.power-widgets"
	appTitle = "Power Widgets"
)

func main() {
	ndim := flag.Int("ndim", 3, "number of viewer dimensions")
	empty := flag.Bool("empty", false, "start without the demo layers")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	fyneApp := app.NewWithID(appID)
	fyneApp.Settings().SetTheme(&mainwindow.Theme{})

	v := viewer.New(*ndim)
	viewer.SetCurrent(v)
	if !*empty {
		mainwindow.SeedDemo(v)
	}

	win := mainwindow.New(fyneApp, v, prefs.Load())
	win.SetTitle(appTitle)

	// Handle command line arguments
	for _, path := range flag.Args() {
		if err := win.LoadImage(path); err != nil {
			log.Printf("Failed to load image %s: %v", path, err)
		}
	}

	win.ShowAndRun()
}
