package capture

import (
	"math"
	"time"

	"github.com/ankek/domcapture/internal/surface"
)

// Literal defaults applied when neither the caller nor the environment
// supplies a value.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultImageTimeout    = 15 * time.Second
)

// Options is the caller supplied configuration. A nil field is absent and
// takes the environment or literal default; a non-nil field always wins.
type Options struct {
	Async                  *bool
	AllowTaint             *bool
	UseCORS                *bool
	BackgroundColor        *string
	Surface                *surface.Surface
	ForeignObjectRendering *bool
	ImageTimeoutMs         *int
	Logging                *bool
	Proxy                  *string
	RemoveContainer        *bool
	Scale                  *float64

	X      *float64
	Y      *float64
	Width  *int
	Height *int

	ScrollX      *float64
	ScrollY      *float64
	WindowWidth  *int
	WindowHeight *int

	// Deprecated: captures report through the returned Future. Setting this
	// only produces a diagnostic; the callback is never invoked.
	OnRendered func(*surface.Surface)
}

// loggingEnabled is true unless Logging is explicitly false.
func (o *Options) loggingEnabled() bool {
	if o == nil || o.Logging == nil {
		return true
	}
	return *o.Logging
}

// Rect is the capture rectangle in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  int
	Height int
}

// Viewport is the window size observed when the capture began.
type Viewport struct {
	Width  int
	Height int
}

// ScrollOffset is the window scroll position observed when the capture began.
type ScrollOffset struct {
	X float64
	Y float64
}

// Config is a fully resolved capture configuration. It is built once per
// capture and not modified after it is handed to the pipeline.
type Config struct {
	Async                  bool
	AllowTaint             bool
	UseCORS                bool
	BackgroundColor        string
	Surface                *surface.Surface
	ForeignObjectRendering bool
	ImageTimeout           time.Duration // 0 means no timeout
	Logging                bool
	Proxy                  string
	RemoveContainer        bool
	Scale                  float64
	Rect                   Rect
	Viewport               Viewport
	Scroll                 ScrollOffset
}

// ComputeDefaults builds the default configuration from an environment
// snapshot, the resolved capture rectangle and the output surface.
func ComputeDefaults(view View, rect Rect, surf *surface.Surface) Config {
	scale := view.DevicePixelRatio
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	return Config{
		Async:                  true,
		AllowTaint:             false,
		UseCORS:                false,
		BackgroundColor:        DefaultBackgroundColor,
		Surface:                surf,
		ForeignObjectRendering: false,
		ImageTimeout:           DefaultImageTimeout,
		Logging:                true,
		Proxy:                  "",
		RemoveContainer:        true,
		Scale:                  scale,
		Rect:                   rect,
		Viewport:               Viewport{Width: view.InnerWidth, Height: view.InnerHeight},
		Scroll:                 ScrollOffset{X: view.PageXOffset, Y: view.PageYOffset},
	}
}

// Merge overrides defaults with every field present in opts. The surface is
// not merged here: it is chosen by the surface factory before defaults are
// computed.
func Merge(defaults Config, opts *Options) Config {
	cfg := defaults
	if opts == nil {
		return cfg
	}

	setBool(&cfg.Async, opts.Async)
	setBool(&cfg.AllowTaint, opts.AllowTaint)
	setBool(&cfg.UseCORS, opts.UseCORS)
	setBool(&cfg.ForeignObjectRendering, opts.ForeignObjectRendering)
	setBool(&cfg.Logging, opts.Logging)
	setBool(&cfg.RemoveContainer, opts.RemoveContainer)

	if opts.BackgroundColor != nil {
		cfg.BackgroundColor = *opts.BackgroundColor
	}
	if opts.Proxy != nil {
		cfg.Proxy = *opts.Proxy
	}
	if opts.ImageTimeoutMs != nil {
		cfg.ImageTimeout = time.Duration(*opts.ImageTimeoutMs) * time.Millisecond
	}
	if opts.Scale != nil {
		cfg.Scale = *opts.Scale
	}

	setFloat(&cfg.Rect.X, opts.X)
	setFloat(&cfg.Rect.Y, opts.Y)
	setInt(&cfg.Rect.Width, opts.Width)
	setInt(&cfg.Rect.Height, opts.Height)

	setFloat(&cfg.Scroll.X, opts.ScrollX)
	setFloat(&cfg.Scroll.Y, opts.ScrollY)
	setInt(&cfg.Viewport.Width, opts.WindowWidth)
	setInt(&cfg.Viewport.Height, opts.WindowHeight)

	return cfg
}

// validate checks the ranges that caller overrides can break.
func (c Config) validate() error {
	switch {
	case c.Scale <= 0 || math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0):
		return &OptionError{Field: "scale", Reason: "must be a positive finite number"}
	case c.ImageTimeout < 0:
		return &OptionError{Field: "imageTimeout", Reason: "must not be negative"}
	case c.Rect.Width < 0:
		return &OptionError{Field: "width", Reason: "must not be negative"}
	case c.Rect.Height < 0:
		return &OptionError{Field: "height", Reason: "must not be negative"}
	case c.Viewport.Width < 0 || c.Viewport.Height < 0:
		return &OptionError{Field: "window size", Reason: "must not be negative"}
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Bool returns a pointer to v, for building Options literals.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
