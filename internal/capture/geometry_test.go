package capture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTarget(t *testing.T) {
	doc := defaultDocument()

	tests := []struct {
		tag      string
		document bool
	}{
		{tag: "HTML", document: true},
		{tag: "BODY", document: true},
		{tag: "html", document: true},
		{tag: "body", document: true},
		{tag: "DIV", document: false},
		{tag: "HEAD", document: false},
		{tag: "", document: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			el := &fakeElement{tag: tt.tag, doc: doc, box: Bounds{Width: 1, Height: 1}}
			target := ClassifyTarget(doc, el)
			_, isDocument := target.(DocumentTarget)
			assert.Equal(t, tt.document, isDocument)
		})
	}
}

func TestResolveRectDocumentModeIgnoresElementBox(t *testing.T) {
	env := newFakeEnv()
	doc := defaultDocument()
	body := &fakeElement{tag: "BODY", doc: doc, box: Bounds{Left: 5, Top: 5, Width: 10, Height: 10}}

	rect := ResolveRect(env, ClassifyTarget(doc, body), ScrollOffset{X: 40, Y: 900})

	assert.Equal(t, Rect{X: 0, Y: 0, Width: 1200, Height: 3400}, rect)
	assert.Equal(t, 0, env.count("BoundingBox"))
	assert.Equal(t, 1, env.count("DocumentSize"))
}

func TestResolveRectElementModeAddsScroll(t *testing.T) {
	env := newFakeEnv()
	doc := defaultDocument()
	el := &fakeElement{tag: "DIV", doc: doc, box: Bounds{Left: 10, Top: 20, Width: 99.4, Height: 50.1}}

	rect := ResolveRect(env, ClassifyTarget(doc, el), ScrollOffset{X: 3, Y: 100})

	assert.Equal(t, Rect{X: 13, Y: 120, Width: 100, Height: 51}, rect)
	assert.Equal(t, 0, env.count("DocumentSize"))
}

func TestResolveRectRoundsUp(t *testing.T) {
	tests := []struct {
		width, height float64
		wantW, wantH  int
	}{
		{width: 10.2, height: 5.0, wantW: 11, wantH: 5},
		{width: 0, height: 0, wantW: 0, wantH: 0},
		{width: 0.0001, height: 1.9999, wantW: 1, wantH: 2},
		{width: 100, height: 100, wantW: 100, wantH: 100},
		{width: -3, height: math.NaN(), wantW: 0, wantH: 0},
	}

	env := newFakeEnv()
	doc := defaultDocument()
	for _, tt := range tests {
		el := &fakeElement{tag: "SPAN", doc: doc, box: Bounds{Width: tt.width, Height: tt.height}}
		rect := ResolveRect(env, ElementTarget{Element: el}, ScrollOffset{})
		assert.Equal(t, tt.wantW, rect.Width, "width for %v", tt.width)
		assert.Equal(t, tt.wantH, rect.Height, "height for %v", tt.height)
	}
}

func TestResolveRectCeilProperty(t *testing.T) {
	env := newFakeEnv()
	doc := defaultDocument()
	for w := 0.0; w < 50; w += 0.37 {
		el := &fakeElement{tag: "P", doc: doc, box: Bounds{Width: w, Height: w * 2}}
		rect := ResolveRect(env, ElementTarget{Element: el}, ScrollOffset{})
		assert.Equal(t, int(math.Ceil(w)), rect.Width)
		assert.Equal(t, int(math.Ceil(w*2)), rect.Height)
	}
}
