package config

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/ankek/domcapture/internal/capture"
)

// profileField assigns one HCL attribute to the matching capture option
type profileField func(opts *capture.Options, val cty.Value) error

var profileFields = map[string]profileField{
	"async":                    boolField(func(o *capture.Options, v *bool) { o.Async = v }),
	"allow_taint":              boolField(func(o *capture.Options, v *bool) { o.AllowTaint = v }),
	"use_cors":                 boolField(func(o *capture.Options, v *bool) { o.UseCORS = v }),
	"foreign_object_rendering": boolField(func(o *capture.Options, v *bool) { o.ForeignObjectRendering = v }),
	"logging":                  boolField(func(o *capture.Options, v *bool) { o.Logging = v }),
	"remove_container":         boolField(func(o *capture.Options, v *bool) { o.RemoveContainer = v }),
	"background_color":         stringField(func(o *capture.Options, v *string) { o.BackgroundColor = v }),
	"proxy":                    stringField(func(o *capture.Options, v *string) { o.Proxy = v }),
	"image_timeout_ms":         intField(func(o *capture.Options, v *int) { o.ImageTimeoutMs = v }),
	"scale":                    floatField(func(o *capture.Options, v *float64) { o.Scale = v }),
	"x":                        floatField(func(o *capture.Options, v *float64) { o.X = v }),
	"y":                        floatField(func(o *capture.Options, v *float64) { o.Y = v }),
	"width":                    intField(func(o *capture.Options, v *int) { o.Width = v }),
	"height":                   intField(func(o *capture.Options, v *int) { o.Height = v }),
	"scroll_x":                 floatField(func(o *capture.Options, v *float64) { o.ScrollX = v }),
	"scroll_y":                 floatField(func(o *capture.Options, v *float64) { o.ScrollY = v }),
	"window_width":             intField(func(o *capture.Options, v *int) { o.WindowWidth = v }),
	"window_height":            intField(func(o *capture.Options, v *int) { o.WindowHeight = v }),
}

// ProfileAttributes returns the attribute names a profile may set.
func ProfileAttributes() []string {
	names := make([]string, 0, len(profileFields))
	for name := range profileFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadProfile parses an HCL capture profile. Only attributes written in the
// file are set on the returned options, so a profile overrides exactly what
// it names.
func LoadProfile(path string) (*capture.Options, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}
	return decodeProfile(file.Body)
}

// ParseProfile parses an HCL capture profile held in memory.
func ParseProfile(src []byte, filename string) (*capture.Options, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}
	return decodeProfile(file.Body)
}

func decodeProfile(body hcl.Body) (*capture.Options, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile: %s", diags.Error())
	}

	opts := &capture.Options{}
	for name, attr := range attrs {
		field, ok := profileFields[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown capture option %q", attr.Range.String(), name)
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%s: %s", attr.Range.String(), diags.Error())
		}
		if val.IsNull() {
			continue
		}
		if err := field(opts, val); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", attr.Range.String(), name, err)
		}
	}
	return opts, nil
}

func boolField(set func(*capture.Options, *bool)) profileField {
	return func(opts *capture.Options, val cty.Value) error {
		var b bool
		if err := gocty.FromCtyValue(val, &b); err != nil {
			return err
		}
		set(opts, &b)
		return nil
	}
}

func stringField(set func(*capture.Options, *string)) profileField {
	return func(opts *capture.Options, val cty.Value) error {
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return err
		}
		set(opts, &s)
		return nil
	}
}

func intField(set func(*capture.Options, *int)) profileField {
	return func(opts *capture.Options, val cty.Value) error {
		var i int
		if err := gocty.FromCtyValue(val, &i); err != nil {
			return err
		}
		set(opts, &i)
		return nil
	}
}

func floatField(set func(*capture.Options, *float64)) profileField {
	return func(opts *capture.Options, val cty.Value) error {
		var f float64
		if err := gocty.FromCtyValue(val, &f); err != nil {
			return err
		}
		set(opts, &f)
		return nil
	}
}

// Overlay returns a copy of base with every option set in top applied over
// it. Either may be nil.
func Overlay(base, top *capture.Options) *capture.Options {
	out := &capture.Options{}
	if base != nil {
		*out = *base
	}
	if top == nil {
		return out
	}

	overlayPtr(&out.Async, top.Async)
	overlayPtr(&out.AllowTaint, top.AllowTaint)
	overlayPtr(&out.UseCORS, top.UseCORS)
	overlayPtr(&out.BackgroundColor, top.BackgroundColor)
	overlayPtr(&out.ForeignObjectRendering, top.ForeignObjectRendering)
	overlayPtr(&out.ImageTimeoutMs, top.ImageTimeoutMs)
	overlayPtr(&out.Logging, top.Logging)
	overlayPtr(&out.Proxy, top.Proxy)
	overlayPtr(&out.RemoveContainer, top.RemoveContainer)
	overlayPtr(&out.Scale, top.Scale)
	overlayPtr(&out.X, top.X)
	overlayPtr(&out.Y, top.Y)
	overlayPtr(&out.Width, top.Width)
	overlayPtr(&out.Height, top.Height)
	overlayPtr(&out.ScrollX, top.ScrollX)
	overlayPtr(&out.ScrollY, top.ScrollY)
	overlayPtr(&out.WindowWidth, top.WindowWidth)
	overlayPtr(&out.WindowHeight, top.WindowHeight)
	if top.Surface != nil {
		out.Surface = top.Surface
	}
	if top.OnRendered != nil {
		out.OnRendered = top.OnRendered
	}
	return out
}

func overlayPtr[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
