package capture

import (
	"context"
	"sync"

	"github.com/ankek/domcapture/internal/surface"
)

type fakeDocument struct {
	view View
	size Bounds
}

type fakeElement struct {
	tag string
	box Bounds
	doc *fakeDocument
}

func (e *fakeElement) TagName() string { return e.tag }

// fakeEnv answers from fixed values and counts every accessor call.
type fakeEnv struct {
	mu    sync.Mutex
	calls map[string]int
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{calls: make(map[string]int)}
}

func (f *fakeEnv) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeEnv) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeEnv) OwnerDocument(el Element) (Document, bool) {
	f.record("OwnerDocument")
	e := el.(*fakeElement)
	if e.doc == nil {
		return nil, false
	}
	return e.doc, true
}

func (f *fakeEnv) DefaultView(doc Document) View {
	f.record("DefaultView")
	return doc.(*fakeDocument).view
}

func (f *fakeEnv) BoundingBox(el Element) Bounds {
	f.record("BoundingBox")
	return el.(*fakeElement).box
}

func (f *fakeEnv) DocumentSize(doc Document) Bounds {
	f.record("DocumentSize")
	return doc.(*fakeDocument).size
}

// fakePipeline records the configurations it receives.
type fakePipeline struct {
	mu      sync.Mutex
	configs []Config
	err     error
	block   chan struct{}
}

func (p *fakePipeline) Render(ctx context.Context, el Element, cfg Config, log Logger) (*surface.Surface, error) {
	p.mu.Lock()
	p.configs = append(p.configs, cfg)
	p.mu.Unlock()

	if p.block != nil {
		<-p.block
	}
	if p.err != nil {
		return nil, p.err
	}
	cfg.Surface.Allocate(cfg.Rect.Width, cfg.Rect.Height)
	return cfg.Surface, nil
}

func (p *fakePipeline) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.configs)
}

type recordingSink struct {
	mu      sync.Mutex
	enabled bool
	logs    []string
	errors  []string
}

func (s *recordingSink) Log(msg string, args ...any) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, msg)
}

func (s *recordingSink) Error(msg string, args ...any) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, msg)
}

func (s *recordingSink) errorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errors)
}

// sinkRecorder keeps every sink a Capturer creates.
type sinkRecorder struct {
	mu    sync.Mutex
	sinks []*recordingSink
}

func (r *sinkRecorder) factory(enabled bool) Logger {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &recordingSink{enabled: enabled}
	r.sinks = append(r.sinks, s)
	return s
}

func (r *sinkRecorder) last() *recordingSink {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sinks) == 0 {
		return nil
	}
	return r.sinks[len(r.sinks)-1]
}

func (r *sinkRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sinks)
}

func defaultDocument() *fakeDocument {
	return &fakeDocument{
		view: View{DevicePixelRatio: 2, InnerWidth: 1024, InnerHeight: 768},
		size: Bounds{Width: 1200, Height: 3400},
	}
}
