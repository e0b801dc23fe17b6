package browser

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"math"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/renderer"
	"github.com/ankek/domcapture/internal/surface"
)

// Pipeline renders captures as browser screenshots of the session's page.
// Screenshots share the tab's device metrics, so renders are serialized.
type Pipeline struct {
	session *Session
	mu      sync.Mutex
}

var _ capture.Pipeline = (*Pipeline)(nil)

// NewPipeline creates a screenshot pipeline for session.
func NewPipeline(session *Session) *Pipeline {
	return &Pipeline{session: session}
}

// Render screenshots cfg.Rect at cfg.Scale device pixels per CSS pixel.
func (p *Pipeline) Render(ctx context.Context, el capture.Element, cfg capture.Config, log capture.Logger) (*surface.Surface, error) {
	if cfg.Rect.Width == 0 || cfg.Rect.Height == 0 {
		// the protocol rejects empty clips
		return surface.Provide(cfg.Surface), nil
	}

	bg, err := backgroundOverride(cfg.BackgroundColor)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	var buf []byte
	err = p.session.run(ctx,
		emulation.SetDeviceMetricsOverride(int64(cfg.Viewport.Width), int64(cfg.Viewport.Height), cfg.Scale, false),
		emulation.SetDefaultBackgroundColorOverride().WithColor(bg),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(clipFor(cfg.Rect)).
				WithCaptureBeyondViewport(true).
				WithFromSurface(true).
				Do(ctx)
			return err
		}),
		emulation.SetDefaultBackgroundColorOverride(),
		emulation.ClearDeviceMetricsOverride(),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	shot, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	surf := surface.Provide(cfg.Surface)
	b := shot.Bounds()
	img := surf.Allocate(b.Dx(), b.Dy())
	draw.Draw(img, img.Bounds(), shot, b.Min, draw.Src)

	log.Log("captured screenshot", "width", b.Dx(), "height", b.Dy(), "scale", cfg.Scale)
	return surf, nil
}

// clipFor converts a capture rectangle into a screenshot clip in CSS pixels.
func clipFor(r capture.Rect) *page.Viewport {
	return &page.Viewport{
		X:      r.X,
		Y:      r.Y,
		Width:  float64(r.Width),
		Height: float64(r.Height),
		Scale:  1,
	}
}

// backgroundOverride converts a CSS color into the protocol's RGBA.
func backgroundOverride(value string) (*cdp.RGBA, error) {
	c, err := renderer.ParseColor(value)
	if err != nil {
		return nil, fmt.Errorf("invalid background color: %w", err)
	}
	return &cdp.RGBA{
		R: int64(c.R),
		G: int64(c.G),
		B: int64(c.B),
		A: math.Round(float64(c.A)/255*1000) / 1000,
	}, nil
}
