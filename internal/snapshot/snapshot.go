// Package snapshot reads serialized page layouts. A snapshot records the
// window state and the element tree with document-coordinate boxes, enough to
// resolve and paint a capture without a live browser.
//
// Snapshots are YAML; JSON snapshots decode as well.
package snapshot

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ankek/domcapture/internal/dom"
)

// Page is a serialized document.
type Page struct {
	URL    string `yaml:"url" json:"url"`
	Window Window `yaml:"window" json:"window"`
	Root   *Node  `yaml:"root" json:"root"`
}

// Window is the serialized window state.
type Window struct {
	ScrollX          float64 `yaml:"scroll_x" json:"scroll_x"`
	ScrollY          float64 `yaml:"scroll_y" json:"scroll_y"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio" json:"device_pixel_ratio"`
	InnerWidth       int     `yaml:"inner_width" json:"inner_width"`
	InnerHeight      int     `yaml:"inner_height" json:"inner_height"`
}

// Node is a serialized element. X and Y are document coordinates.
type Node struct {
	Tag          string  `yaml:"tag" json:"tag"`
	ID           string  `yaml:"id,omitempty" json:"id,omitempty"`
	Class        string  `yaml:"class,omitempty" json:"class,omitempty"`
	X            float64 `yaml:"x" json:"x"`
	Y            float64 `yaml:"y" json:"y"`
	Width        float64 `yaml:"width" json:"width"`
	Height       float64 `yaml:"height" json:"height"`
	Background   string  `yaml:"background,omitempty" json:"background,omitempty"`
	Color        string  `yaml:"color,omitempty" json:"color,omitempty"`
	Text         string  `yaml:"text,omitempty" json:"text,omitempty"`
	ScrollWidth  float64 `yaml:"scroll_width,omitempty" json:"scroll_width,omitempty"`
	ScrollHeight float64 `yaml:"scroll_height,omitempty" json:"scroll_height,omitempty"`
	Children     []*Node `yaml:"children,omitempty" json:"children,omitempty"`
}

// ErrNoRoot is returned for a snapshot without a root element.
var ErrNoRoot = errors.New("snapshot has no root element")

// Decode reads a YAML or JSON snapshot from r.
func Decode(r io.Reader) (*Page, error) {
	var page Page
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&page); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRoot
		}
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &page, nil
}

// Encode writes the snapshot to w as YAML.
func (p *Page) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return enc.Close()
}

// Build converts the snapshot into a linked document.
func (p *Page) Build() (*dom.Document, error) {
	if p.Root == nil {
		return nil, ErrNoRoot
	}
	if p.Window.InnerWidth < 0 || p.Window.InnerHeight < 0 {
		return nil, fmt.Errorf("window size must not be negative: %dx%d", p.Window.InnerWidth, p.Window.InnerHeight)
	}

	root, err := buildElement(p.Root, p.Root.Tag)
	if err != nil {
		return nil, err
	}

	window := dom.Window{
		ScrollX:          p.Window.ScrollX,
		ScrollY:          p.Window.ScrollY,
		DevicePixelRatio: p.Window.DevicePixelRatio,
		InnerWidth:       p.Window.InnerWidth,
		InnerHeight:      p.Window.InnerHeight,
	}
	return dom.NewDocument(p.URL, window, root), nil
}

func buildElement(n *Node, path string) (*dom.Element, error) {
	if n.Tag == "" {
		return nil, fmt.Errorf("element at %s has no tag", path)
	}
	if n.Width < 0 || n.Height < 0 {
		return nil, fmt.Errorf("element %s has a negative size: %gx%g", path, n.Width, n.Height)
	}

	e := &dom.Element{
		Tag:          n.Tag,
		ID:           n.ID,
		Class:        n.Class,
		Box:          dom.Box{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height},
		Background:   n.Background,
		Color:        n.Color,
		Text:         n.Text,
		ScrollWidth:  n.ScrollWidth,
		ScrollHeight: n.ScrollHeight,
	}
	for i, c := range n.Children {
		if c == nil {
			continue
		}
		child, err := buildElement(c, fmt.Sprintf("%s/%s[%d]", path, c.Tag, i))
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, child)
	}
	return e, nil
}
