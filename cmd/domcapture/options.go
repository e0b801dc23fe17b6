package main

import (
	"github.com/spf13/cobra"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/config"
)

// addOptionFlags registers the capture option flags shared by capture and
// browse. Flag defaults are never applied: only flags given on the command
// line become options.
func addOptionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("scale", 0, "output pixels per CSS pixel (default: device pixel ratio)")
	f.String("background", "", "background color, empty string for transparent (default: #ffffff)")
	f.Float64("x", 0, "left edge of the capture rectangle")
	f.Float64("y", 0, "top edge of the capture rectangle")
	f.Int("width", 0, "capture width in CSS pixels")
	f.Int("height", 0, "capture height in CSS pixels")
	f.Float64("scroll-x", 0, "horizontal scroll offset")
	f.Float64("scroll-y", 0, "vertical scroll offset")
	f.Int("window-width", 0, "viewport width")
	f.Int("window-height", 0, "viewport height")
	f.Int("image-timeout", 0, "image load timeout in milliseconds, 0 disables it (default: 15000)")
	f.String("proxy", "", "proxy URL for cross-origin images")
	f.Bool("use-cors", false, "load cross-origin images with CORS")
	f.Bool("allow-taint", false, "allow cross-origin images to taint the output")
	f.Bool("logging", true, "write capture diagnostics")
	f.Bool("foreign-object", false, "render through SVG foreignObject")
	f.Bool("remove-container", true, "remove the temporary clone container")
	f.Bool("async", true, "allow asynchronous parsing and rendering")
}

// optionsFromFlags returns the options named on the command line. Flags
// that were not given stay nil.
func optionsFromFlags(cmd *cobra.Command) (*capture.Options, error) {
	f := cmd.Flags()
	opts := &capture.Options{}

	floats := map[string]**float64{
		"scale":    &opts.Scale,
		"x":        &opts.X,
		"y":        &opts.Y,
		"scroll-x": &opts.ScrollX,
		"scroll-y": &opts.ScrollY,
	}
	for name, dst := range floats {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetFloat64(name)
		if err != nil {
			return nil, err
		}
		*dst = capture.Float(v)
	}

	ints := map[string]**int{
		"width":         &opts.Width,
		"height":        &opts.Height,
		"window-width":  &opts.WindowWidth,
		"window-height": &opts.WindowHeight,
		"image-timeout": &opts.ImageTimeoutMs,
	}
	for name, dst := range ints {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetInt(name)
		if err != nil {
			return nil, err
		}
		*dst = capture.Int(v)
	}

	bools := map[string]**bool{
		"use-cors":         &opts.UseCORS,
		"allow-taint":      &opts.AllowTaint,
		"logging":          &opts.Logging,
		"foreign-object":   &opts.ForeignObjectRendering,
		"remove-container": &opts.RemoveContainer,
		"async":            &opts.Async,
	}
	for name, dst := range bools {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetBool(name)
		if err != nil {
			return nil, err
		}
		*dst = capture.Bool(v)
	}

	strs := map[string]**string{
		"background": &opts.BackgroundColor,
		"proxy":      &opts.Proxy,
	}
	for name, dst := range strs {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return nil, err
		}
		*dst = capture.String(v)
	}

	return opts, nil
}

// resolveOptions layers command line options over the configured profile.
func (a *app) resolveOptions(cmd *cobra.Command) (*capture.Options, error) {
	flagOpts, err := optionsFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	if a.cfg.Capture.Profile == "" {
		return flagOpts, nil
	}

	profile, err := config.LoadProfile(a.cfg.Capture.Profile)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded capture profile", "path", a.cfg.Capture.Profile)
	return config.Overlay(profile, flagOpts), nil
}
