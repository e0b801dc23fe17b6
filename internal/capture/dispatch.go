package capture

import (
	"context"
	"fmt"

	"github.com/ankek/domcapture/internal/surface"
)

// Future is the eventual result of a capture.
type Future struct {
	done    chan struct{}
	surface *surface.Surface
	err     error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Rejected returns a Future that has already failed with err.
func Rejected(err error) *Future {
	f := newFuture()
	f.settle(nil, err)
	return f
}

func (f *Future) settle(s *surface.Surface, err error) {
	f.surface = s
	f.err = err
	close(f.done)
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the capture settles or ctx is done. Giving up on ctx does
// not stop the capture itself.
func (f *Future) Wait(ctx context.Context) (*surface.Surface, error) {
	select {
	case <-f.done:
		return f.surface, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result blocks until the capture settles.
func (f *Future) Result() (*surface.Surface, error) {
	<-f.done
	return f.surface, f.err
}

// Dispatcher hands resolved configurations to a render pipeline. It never
// alters a pipeline failure; in diagnostic mode it logs it first.
type Dispatcher struct {
	pipeline   Pipeline
	diagnostic bool
}

// NewDispatcher creates a dispatcher for pipeline.
func NewDispatcher(pipeline Pipeline, diagnostic bool) *Dispatcher {
	return &Dispatcher{pipeline: pipeline, diagnostic: diagnostic}
}

// Dispatch starts rendering el with cfg and returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, el Element, cfg Config, log Logger) *Future {
	f := newFuture()
	go func() {
		s, err := d.render(ctx, el, cfg, log)
		if err != nil {
			if d.diagnostic {
				log.Error(err.Error())
			}
			f.settle(nil, err)
			return
		}
		f.settle(s, nil)
	}()
	return f
}

func (d *Dispatcher) render(ctx context.Context, el Element, cfg Config, log Logger) (s *surface.Surface, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render pipeline panicked: %v", r)
		}
	}()
	return d.pipeline.Render(ctx, el, cfg, log)
}
