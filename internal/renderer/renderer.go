// Package renderer provides a render pipeline that paints documents from the
// dom package onto a raster surface. It fills the capture background, paints
// element backgrounds in tree order and draws element text with a fixed
// bitmap face.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/dom"
	"github.com/ankek/domcapture/internal/surface"
)

// ErrForeignObjectUnsupported is returned when a capture asks for the
// foreign object strategy, which the painter does not implement.
var ErrForeignObjectUnsupported = errors.New("foreign object rendering is not supported by the painter")

// ErrDetached is returned when the target left its document before painting.
var ErrDetached = errors.New("element was detached from its document before rendering")

// Painter is a capture.Pipeline for *dom.Element targets.
type Painter struct {
	face font.Face
}

var _ capture.Pipeline = (*Painter)(nil)

// debugLogger is implemented by sinks with a verbose level
type debugLogger interface {
	Debug(msg string, args ...any)
}

// NewPainter creates a painter using the basic 7x13 face for text.
func NewPainter() *Painter {
	return &Painter{face: basicfont.Face7x13}
}

// Render paints the capture rectangle of cfg into cfg.Surface.
func (p *Painter) Render(ctx context.Context, el capture.Element, cfg capture.Config, log capture.Logger) (*surface.Surface, error) {
	target, ok := el.(*dom.Element)
	if !ok || target == nil {
		return nil, fmt.Errorf("painter cannot render element of type %T", el)
	}
	if cfg.ForeignObjectRendering {
		return nil, ErrForeignObjectUnsupported
	}
	doc := target.OwnerDocument()
	if doc == nil {
		return nil, ErrDetached
	}

	bg, err := ParseColor(cfg.BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}

	surf := surface.Provide(cfg.Surface)
	width := scaled(cfg.Rect.Width, cfg.Scale)
	height := scaled(cfg.Rect.Height, cfg.Scale)
	img := surf.Allocate(width, height)

	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// Document captures paint the whole tree, not only the body subtree.
	root := target
	if tag := target.TagName(); tag == "HTML" || tag == "BODY" {
		root = doc.Root
	}

	clip := dom.Box{
		X:      cfg.Rect.X,
		Y:      cfg.Rect.Y,
		Width:  float64(cfg.Rect.Width),
		Height: float64(cfg.Rect.Height),
	}

	painted := 0
	var walkErr error
	root.Walk(func(e *dom.Element) bool {
		if walkErr != nil {
			return false
		}
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		// children may overflow their parent, so keep walking either way
		if e.Box.Intersects(clip) && p.paintElement(img, e, clip, cfg.Scale) {
			painted++
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if d, ok := log.(debugLogger); ok && (cfg.UseCORS || cfg.AllowTaint || cfg.Proxy != "") {
		d.Debug("image options have no effect on painted boxes",
			"use_cors", cfg.UseCORS,
			"allow_taint", cfg.AllowTaint,
			"proxy", cfg.Proxy,
		)
	}
	log.Log("painted capture",
		"elements", painted,
		"width", width,
		"height", height,
		"scale", cfg.Scale,
		"image_timeout", cfg.ImageTimeout.String(),
	)
	return surf, nil
}

// paintElement paints the background and text of e. It reports whether
// anything was drawn.
func (p *Painter) paintElement(img *image.RGBA, e *dom.Element, clip dom.Box, scale float64) bool {
	r := toPixels(e.Box, clip, scale).Intersect(img.Bounds())
	if r.Empty() {
		return false
	}

	drawn := false
	if e.Background != "" {
		if c, err := ParseColor(e.Background); err == nil && c.A > 0 {
			draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
			drawn = true
		}
	}

	if text := strings.TrimSpace(e.Text); text != "" {
		col := color.Color(color.Black)
		if e.Color != "" {
			if c, err := ParseColor(e.Color); err == nil {
				col = c
			}
		}
		p.drawText(img, text, r, col)
		drawn = true
	}
	return drawn
}

// drawText draws text from the top-left corner of r, clipped to r
func (p *Painter) drawText(img *image.RGBA, text string, r image.Rectangle, col color.Color) {
	dst, ok := img.SubImage(r).(*image.RGBA)
	if !ok {
		return
	}
	ascent := p.face.Metrics().Ascent.Ceil()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: p.face,
		Dot:  fixed.Point26_6{X: fixed.I(r.Min.X + 2), Y: fixed.I(r.Min.Y + ascent)},
	}
	d.DrawString(text)
}

// toPixels maps a document box into surface pixels relative to clip.
func toPixels(b, clip dom.Box, scale float64) image.Rectangle {
	return image.Rect(
		int(math.Floor((b.X-clip.X)*scale)),
		int(math.Floor((b.Y-clip.Y)*scale)),
		int(math.Ceil((b.Right()-clip.X)*scale)),
		int(math.Ceil((b.Bottom()-clip.Y)*scale)),
	)
}

func scaled(v int, scale float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(float64(v) * scale))
}
