package capture

import (
	"math"
	"strings"
)

// Target is the capture mode, decided once from the element's tag.
// It is either a DocumentTarget or an ElementTarget.
type Target interface {
	isTarget()
}

// DocumentTarget captures the full scrollable content of a document.
type DocumentTarget struct {
	Document Document
}

// ElementTarget captures the box of a single element.
type ElementTarget struct {
	Element Element
}

func (DocumentTarget) isTarget() {}
func (ElementTarget) isTarget()  {}

// ClassifyTarget selects document mode for the root html element and body,
// element mode for everything else.
func ClassifyTarget(doc Document, el Element) Target {
	tag := el.TagName()
	if strings.EqualFold(tag, "html") || strings.EqualFold(tag, "body") {
		return DocumentTarget{Document: doc}
	}
	return ElementTarget{Element: el}
}

// ResolveRect computes the capture rectangle for t in document coordinates.
// Width and height are rounded up so a fractional trailing row or column is
// never clipped.
func ResolveRect(env Environment, t Target, scroll ScrollOffset) Rect {
	var b Bounds
	switch t := t.(type) {
	case DocumentTarget:
		b = env.DocumentSize(t.Document)
	case ElementTarget:
		b = env.BoundingBox(t.Element)
		b.Left += scroll.X
		b.Top += scroll.Y
	}

	return Rect{
		X:      b.Left,
		Y:      b.Top,
		Width:  ceilExtent(b.Width),
		Height: ceilExtent(b.Height),
	}
}

func ceilExtent(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Ceil(v))
}
