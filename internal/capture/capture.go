// Package capture turns an on-page element into a rasterized surface. It owns
// the orchestration only: resolving options against a snapshot of the host
// environment, choosing the capture rectangle and handing the resolved
// configuration to a render pipeline that runs asynchronously.
//
// Painting, layout and resource loading belong to the Pipeline and the
// Environment supplied by the caller.
package capture

import (
	"context"

	"github.com/ankek/domcapture/internal/logging"
	"github.com/ankek/domcapture/internal/surface"
)

// Element is a renderable node in a host document.
type Element interface {
	TagName() string
}

// Document is the host document that owns an element. It is opaque to this
// package and only passed back to the Environment.
type Document any

// View is the window state of a document at the moment a capture begins.
type View struct {
	PageXOffset      float64
	PageYOffset      float64
	DevicePixelRatio float64
	InnerWidth       int
	InnerHeight      int
}

// Bounds is a box reported by the host. For elements it is relative to the
// viewport; for documents it is the full scrollable content size.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Environment answers layout questions about the host page.
type Environment interface {
	// OwnerDocument returns the document owning el, or false if el is detached.
	OwnerDocument(el Element) (Document, bool)
	DefaultView(doc Document) View
	BoundingBox(el Element) Bounds
	DocumentSize(doc Document) Bounds
}

// Logger is the diagnostic sink a capture writes to.
type Logger interface {
	Log(msg string, args ...any)
	Error(msg string, args ...any)
}

// Pipeline paints el into cfg.Surface and returns the finished surface.
type Pipeline interface {
	Render(ctx context.Context, el Element, cfg Config, log Logger) (*surface.Surface, error)
}

// PipelineFunc adapts a function to the Pipeline interface.
type PipelineFunc func(ctx context.Context, el Element, cfg Config, log Logger) (*surface.Surface, error)

// Render calls f.
func (f PipelineFunc) Render(ctx context.Context, el Element, cfg Config, log Logger) (*surface.Surface, error) {
	return f(ctx, el, cfg, log)
}

// SurfaceFactory returns the surface a capture paints into. It receives the
// caller supplied surface, which may be nil.
type SurfaceFactory func(existing *surface.Surface) *surface.Surface

// SinkFactory builds the diagnostic sink for one capture.
type SinkFactory func(enabled bool) Logger

// Capturer is the capture entry point. It holds no per-capture state and is
// safe for concurrent use.
type Capturer struct {
	env        Environment
	surfaces   SurfaceFactory
	sinks      SinkFactory
	dispatcher *Dispatcher
	version    string
	diagnostic bool
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithSurfaceFactory overrides how output surfaces are created.
func WithSurfaceFactory(f SurfaceFactory) Option {
	return func(c *Capturer) {
		if f != nil {
			c.surfaces = f
		}
	}
}

// WithSinkFactory overrides how diagnostic sinks are created.
func WithSinkFactory(f SinkFactory) Option {
	return func(c *Capturer) {
		if f != nil {
			c.sinks = f
		}
	}
}

// WithDiagnosticMode turns on failure logging before a failed capture is
// reported to the caller. The error the caller receives is the same either way.
func WithDiagnosticMode(enabled bool) Option {
	return func(c *Capturer) {
		c.diagnostic = enabled
	}
}

// WithVersion sets the version reported in the identity diagnostic.
func WithVersion(v string) Option {
	return func(c *Capturer) {
		if v != "" {
			c.version = v
		}
	}
}

// New creates a Capturer over env that hands resolved captures to pipeline.
func New(env Environment, pipeline Pipeline, opts ...Option) *Capturer {
	c := &Capturer{
		env:      env,
		surfaces: surface.Provide,
		sinks:    defaultSinks,
		version:  Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.dispatcher = NewDispatcher(pipeline, c.diagnostic)
	return c
}

func defaultSinks(enabled bool) Logger {
	return logging.New(logging.NewBase(logging.Options{}), enabled)
}

// Capture resolves the capture of el and dispatches it to the pipeline. All
// environment reads happen before Capture returns; the returned Future
// settles once the pipeline finishes.
//
// A nil opts is treated as an empty configuration.
func (c *Capturer) Capture(ctx context.Context, el Element, opts *Options) *Future {
	if opts == nil {
		opts = &Options{}
	}

	doc, ok := ownerDocument(c.env, el)
	if !ok {
		return Rejected(ErrNotInDocument)
	}

	sink := c.sinks(opts.loggingEnabled())
	if c.diagnostic && opts.OnRendered != nil {
		sink.Error("onrendered option is deprecated, capture returns a future with the surface as the value")
	}
	sink.Log("domcapture " + c.version)

	cfg, err := resolveInDocument(c.env, doc, el, opts, c.surfaces)
	if err != nil {
		if c.diagnostic {
			sink.Error(err.Error())
		}
		return Rejected(err)
	}

	return c.dispatcher.Dispatch(ctx, el, cfg, sink)
}

// CaptureAndWait runs Capture and blocks until the result is available or ctx
// is done.
func (c *Capturer) CaptureAndWait(ctx context.Context, el Element, opts *Options) (*surface.Surface, error) {
	return c.Capture(ctx, el, opts).Wait(ctx)
}

func ownerDocument(env Environment, el Element) (Document, bool) {
	if el == nil {
		return nil, false
	}
	doc, ok := env.OwnerDocument(el)
	if !ok || doc == nil {
		return nil, false
	}
	return doc, true
}
