package widgets

import (
	"power-widgets/internal/viewer"
	"power-widgets/ui/prefs"
)

// Preference keys read by OptionsFromPrefs.
const (
	PrefOrdered           = "widgets.ordered"
	PrefIncludeBackground = "labels.includeBackground"
)

// Options configure a widget.
type Options struct {
	// Viewer is the host. When nil the process-wide current viewer is used.
	Viewer *viewer.Viewer
	// Ordered keeps range endpoints ascending.
	Ordered bool
	// Filter limits the shape types offered by shape choosers.
	Filter []viewer.ShapeType
	// IncludeBackground lets the label picker return label 0.
	IncludeBackground bool
	// Idempotent makes setting the current mode a no-op.
	Idempotent bool
}

// Option changes one field of Options.
type Option func(*Options)

// WithViewer binds the widget to v instead of the current viewer.
func WithViewer(v *viewer.Viewer) Option {
	return func(o *Options) { o.Viewer = v }
}

// WithOrdered sets whether range endpoints are sorted.
func WithOrdered(ordered bool) Option {
	return func(o *Options) { o.Ordered = ordered }
}

// WithFilter limits shape choosers to the given types.
func WithFilter(types ...viewer.ShapeType) Option {
	return func(o *Options) { o.Filter = append([]viewer.ShapeType(nil), types...) }
}

// WithIncludeBackground lets the label picker select label 0.
func WithIncludeBackground(include bool) Option {
	return func(o *Options) { o.IncludeBackground = include }
}

// WithIdempotentMode sets whether re-setting the current mode re-runs the hooks.
func WithIdempotentMode(idempotent bool) Option {
	return func(o *Options) { o.Idempotent = idempotent }
}

// OptionsFromPrefs returns the widget defaults stored in p.
func OptionsFromPrefs(p *prefs.Prefs) []Option {
	return []Option{
		WithOrdered(p.Bool(PrefOrdered, true)),
		WithIncludeBackground(p.Bool(PrefIncludeBackground, false)),
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Ordered:    true,
		Filter:     viewer.ShapeTypes(),
		Idempotent: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// host returns the configured viewer or the current one.
func (o Options) host() (*viewer.Viewer, error) {
	if o.Viewer != nil {
		return o.Viewer, nil
	}
	return viewer.Current()
}

func (o Options) allows(t viewer.ShapeType) bool {
	for _, f := range o.Filter {
		if f == t {
			return true
		}
	}
	return false
}
