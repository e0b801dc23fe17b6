package dom

import (
	"testing"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePage() *Document {
	root := &Element{
		Tag: "html",
		Box: Box{Width: 1200, Height: 900},
		Children: []*Element{
			{Tag: "head"},
			{
				Tag:          "body",
				Box:          Box{Width: 1200, Height: 3000},
				ScrollHeight: 3400,
				Children: []*Element{
					{Tag: "div", ID: "main", Class: "card wide", Box: Box{X: 10, Y: 220, Width: 99.4, Height: 50.1}},
					{Tag: "p", Class: "note", Box: Box{X: 0, Y: 400, Width: 50, Height: 20}},
					{Tag: "p", Box: Box{X: 0, Y: 500, Width: 50, Height: 20}},
				},
			},
		},
	}
	return NewDocument("https://example.test/", Window{ScrollY: 200, DevicePixelRatio: 2, InnerWidth: 1024, InnerHeight: 768}, root)
}

func TestNewDocumentLinksTree(t *testing.T) {
	doc := samplePage()
	main := doc.ByID("main")
	require.NotNil(t, main)

	assert.Same(t, doc, main.OwnerDocument())
	assert.Same(t, doc.Body(), main.Parent())
	assert.Nil(t, doc.Root.Parent())
}

func TestQuery(t *testing.T) {
	doc := samplePage()

	tests := []struct {
		selector string
		want     int
	}{
		{"#main", 1},
		{"div#main", 1},
		{"p#main", 0},
		{".card", 1},
		{".wide", 1},
		{"p", 2},
		{"P", 2},
		{"p.note", 1},
		{"body", 1},
		{"*", 6},
		{"", 0},
		{"body p", 0},
		{"#", 0},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			assert.Len(t, doc.QueryAll(tt.selector), tt.want)
		})
	}

	assert.Nil(t, doc.Query("#missing"))
	assert.Equal(t, "main", doc.Query(".card").ID)
}

func TestWalkSkipsChildren(t *testing.T) {
	doc := samplePage()
	var tags []string
	doc.Walk(func(e *Element) bool {
		tags = append(tags, e.TagName())
		return e.TagName() != "BODY"
	})
	assert.Equal(t, []string{"HTML", "HEAD", "BODY"}, tags)
}

func TestDetach(t *testing.T) {
	doc := samplePage()
	main := doc.ByID("main")
	main.Detach()

	assert.Nil(t, main.OwnerDocument())
	assert.Nil(t, main.Parent())
	assert.Nil(t, doc.ByID("main"))

	_, ok := Environment{}.OwnerDocument(main)
	assert.False(t, ok)
}

func TestBoxIntersects(t *testing.T) {
	a := Box{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Intersects(Box{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Intersects(Box{X: 10, Y: 0, Width: 5, Height: 5}))
	assert.False(t, a.Intersects(Box{X: 0, Y: 0, Width: 0, Height: 0}))
}

func TestEnvironment(t *testing.T) {
	env := Environment{}
	doc := samplePage()
	main := doc.ByID("main")

	owner, ok := env.OwnerDocument(main)
	require.True(t, ok)
	assert.Same(t, doc, owner)

	view := env.DefaultView(owner)
	assert.Equal(t, capture.View{PageYOffset: 200, DevicePixelRatio: 2, InnerWidth: 1024, InnerHeight: 768}, view)

	// bounding boxes are viewport relative
	assert.Equal(t, capture.Bounds{Left: 10, Top: 20, Width: 99.4, Height: 50.1}, env.BoundingBox(main))

	assert.Equal(t, capture.Bounds{Width: 1200, Height: 3400}, env.DocumentSize(owner))

	_, ok = env.OwnerDocument(&Element{Tag: "div"})
	assert.False(t, ok)
	var nilElement *Element
	_, ok = env.OwnerDocument(nilElement)
	assert.False(t, ok)
}

func TestDocumentSizeUsesViewportMinimum(t *testing.T) {
	doc := NewDocument("", Window{InnerWidth: 800, InnerHeight: 600}, &Element{
		Tag:      "html",
		Box:      Box{Width: 300, Height: 100},
		Children: []*Element{{Tag: "body", Box: Box{Width: 300, Height: 100}}},
	})
	assert.Equal(t, capture.Bounds{Width: 800, Height: 600}, Environment{}.DocumentSize(doc))
}

func TestCaptureAgainstDocument(t *testing.T) {
	doc := samplePage()

	cfg, err := capture.Resolve(Environment{}, doc.ByID("main"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, capture.Rect{X: 10, Y: 220, Width: 100, Height: 51}, cfg.Rect)
	assert.Equal(t, 2.0, cfg.Scale)

	cfg, err = capture.Resolve(Environment{}, doc.Body(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, capture.Rect{Width: 1200, Height: 3400}, cfg.Rect)
}
