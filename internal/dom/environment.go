package dom

import (
	"math"

	"github.com/ankek/domcapture/internal/capture"
)

// Environment exposes documents built by this package to the capture
// orchestrator.
type Environment struct{}

var _ capture.Environment = Environment{}

// OwnerDocument returns the owning document of a *Element. Detached elements
// and foreign element types have none.
func (Environment) OwnerDocument(el capture.Element) (capture.Document, bool) {
	e, ok := el.(*Element)
	if !ok || e == nil || e.owner == nil {
		return nil, false
	}
	return e.owner, true
}

// DefaultView reports the window state of the document.
func (Environment) DefaultView(doc capture.Document) capture.View {
	d, ok := doc.(*Document)
	if !ok {
		return capture.View{}
	}
	return capture.View{
		PageXOffset:      d.Window.ScrollX,
		PageYOffset:      d.Window.ScrollY,
		DevicePixelRatio: d.Window.DevicePixelRatio,
		InnerWidth:       d.Window.InnerWidth,
		InnerHeight:      d.Window.InnerHeight,
	}
}

// BoundingBox returns the element's box relative to the viewport.
func (Environment) BoundingBox(el capture.Element) capture.Bounds {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return capture.Bounds{}
	}
	var scrollX, scrollY float64
	if e.owner != nil {
		scrollX, scrollY = e.owner.Window.ScrollX, e.owner.Window.ScrollY
	}
	return capture.Bounds{
		Left:   e.Box.X - scrollX,
		Top:    e.Box.Y - scrollY,
		Width:  e.Box.Width,
		Height: e.Box.Height,
	}
}

// DocumentSize returns the full scrollable size of the document: the largest
// of the root and body extents, their scroll sizes and the viewport.
func (Environment) DocumentSize(doc capture.Document) capture.Bounds {
	d, ok := doc.(*Document)
	if !ok {
		return capture.Bounds{}
	}

	width := float64(d.Window.InnerWidth)
	height := float64(d.Window.InnerHeight)
	for _, e := range []*Element{d.Root, d.Body()} {
		if e == nil {
			continue
		}
		width = math.Max(width, math.Max(e.Box.Right(), e.ScrollWidth))
		height = math.Max(height, math.Max(e.Box.Bottom(), e.ScrollHeight))
	}

	return capture.Bounds{Width: width, Height: height}
}
