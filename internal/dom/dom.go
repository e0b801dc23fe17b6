// Package dom is an in-memory model of a laid-out page: a tree of elements
// with their boxes in document coordinates and the window state around them.
// It answers the layout questions the capture orchestrator asks.
package dom

import (
	"strings"
)

// Window is the browsing context state of a document.
type Window struct {
	ScrollX          float64
	ScrollY          float64
	DevicePixelRatio float64
	InnerWidth       int
	InnerHeight      int
}

// Box is an element's border box in document coordinates.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the right edge of the box
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge of the box
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Intersects reports whether b and o overlap with a non-empty area.
func (b Box) Intersects(o Box) bool {
	return b.X < o.Right() && o.X < b.Right() && b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Element is a node in the document tree.
type Element struct {
	Tag          string
	ID           string
	Class        string
	Box          Box
	Background   string
	Color        string
	Text         string
	ScrollWidth  float64
	ScrollHeight float64
	Children     []*Element

	parent *Element
	owner  *Document
}

// TagName returns the upper-case tag name, as the DOM reports it.
func (e *Element) TagName() string {
	return strings.ToUpper(e.Tag)
}

// Parent returns the containing element, or nil for the root.
func (e *Element) Parent() *Element { return e.parent }

// OwnerDocument returns the document e belongs to, or nil when detached.
func (e *Element) OwnerDocument() *Document { return e.owner }

// HasClass reports whether name is one of e's space separated classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Class) {
		if c == name {
			return true
		}
	}
	return false
}

// Walk visits e and its descendants in tree order. Returning false from fn
// skips the children of the visited element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Detach removes e from its parent and clears the owner of its subtree.
func (e *Element) Detach() {
	if p := e.parent; p != nil {
		for i, c := range p.Children {
			if c == e {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	e.parent = nil
	e.Walk(func(n *Element) bool {
		n.owner = nil
		return true
	})
}

// Document is a laid-out page.
type Document struct {
	URL    string
	Window Window
	Root   *Element
}

// NewDocument links every element under root to the returned document.
func NewDocument(url string, window Window, root *Element) *Document {
	doc := &Document{URL: url, Window: window, Root: root}
	if root != nil {
		link(doc, nil, root)
	}
	return doc
}

func link(doc *Document, parent, e *Element) {
	e.parent = parent
	e.owner = doc
	for _, c := range e.Children {
		link(doc, e, c)
	}
}

// Body returns the first BODY child of the root element.
func (d *Document) Body() *Element {
	if d.Root == nil {
		return nil
	}
	for _, c := range d.Root.Children {
		if c.TagName() == "BODY" {
			return c
		}
	}
	return nil
}

// Walk visits every element of the document in tree order.
func (d *Document) Walk(fn func(*Element) bool) {
	if d.Root != nil {
		d.Root.Walk(fn)
	}
}

// ByID returns the first element with the given id.
func (d *Document) ByID(id string) *Element {
	var found *Element
	d.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// Query returns the first element matching a simple selector: "#id",
// ".class", a tag name, or a tag with id or class ("div#main", "p.note").
func (d *Document) Query(selector string) *Element {
	all := d.QueryAll(selector)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QueryAll returns every element matching selector in tree order.
func (d *Document) QueryAll(selector string) []*Element {
	m, ok := parseSelector(selector)
	if !ok {
		return nil
	}
	var out []*Element
	d.Walk(func(e *Element) bool {
		if m.matches(e) {
			out = append(out, e)
		}
		return true
	})
	return out
}

type matcher struct {
	tag   string
	id    string
	class string
}

func parseSelector(selector string) (matcher, bool) {
	s := strings.TrimSpace(selector)
	if s == "" || strings.ContainsAny(s, " >+~[]:,") {
		return matcher{}, false
	}

	var m matcher
	if i := strings.IndexAny(s, "#."); i >= 0 {
		m.tag = s[:i]
		rest := s[i:]
		if rest[0] == '#' {
			m.id = rest[1:]
		} else {
			m.class = rest[1:]
		}
	} else {
		m.tag = s
	}
	if m.tag == "" && m.id == "" && m.class == "" {
		return matcher{}, false
	}
	return m, true
}

func (m matcher) matches(e *Element) bool {
	if m.tag != "" && m.tag != "*" && !strings.EqualFold(m.tag, e.Tag) {
		return false
	}
	if m.id != "" && m.id != e.ID {
		return false
	}
	if m.class != "" && !e.HasClass(m.class) {
		return false
	}
	return true
}
