package capture

import "github.com/ankek/domcapture/internal/surface"

// Resolve builds the configuration for capturing el without dispatching it.
// It fails with ErrNotInDocument when el has no owning document, before any
// other environment access.
func Resolve(env Environment, el Element, opts *Options, surfaces SurfaceFactory) (Config, error) {
	doc, ok := ownerDocument(env, el)
	if !ok {
		return Config{}, ErrNotInDocument
	}
	return resolveInDocument(env, doc, el, opts, surfaces)
}

// resolveInDocument reads the view exactly once; every value derived from
// the environment comes from that single snapshot.
func resolveInDocument(env Environment, doc Document, el Element, opts *Options, surfaces SurfaceFactory) (Config, error) {
	if opts == nil {
		opts = &Options{}
	}
	if surfaces == nil {
		surfaces = surface.Provide
	}

	view := env.DefaultView(doc)
	scroll := ScrollOffset{X: view.PageXOffset, Y: view.PageYOffset}
	rect := ResolveRect(env, ClassifyTarget(doc, el), scroll)

	cfg := Merge(ComputeDefaults(view, rect, surfaces(opts.Surface)), opts)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
