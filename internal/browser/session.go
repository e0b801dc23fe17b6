// Package browser hosts captures in a headless Chrome tab through the
// DevTools protocol. A Session snapshots the live page into the snapshot
// format, and Pipeline renders capture rectangles with native screenshots.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ankek/domcapture/internal/snapshot"
)

// Options configures the browser process.
type Options struct {
	ExecPath     string // empty uses the first Chrome found on PATH
	Headless     bool
	WindowWidth  int
	WindowHeight int
	Timeout      time.Duration // per operation; zero means none
}

// DefaultOptions returns headless defaults with a 1280x800 window.
func DefaultOptions() Options {
	return Options{
		Headless:     true,
		WindowWidth:  1280,
		WindowHeight: 800,
		Timeout:      60 * time.Second,
	}
}

// Session is a single browser tab.
type Session struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
}

// NewSession starts a browser and opens a tab. The browser lives until Close
// or until parent is cancelled.
func NewSession(parent context.Context, opts Options) (*Session, error) {
	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts, chromedp.Flag("headless", opts.Headless))
	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// An empty run launches the browser and attaches the tab.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &Session{
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		timeout:     opts.Timeout,
	}, nil
}

// Close shuts down the tab and the browser process.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// run executes actions in the tab, stopping early when ctx is done.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if s.timeout > 0 {
		runCtx, cancel = context.WithTimeout(s.ctx, s.timeout)
	} else {
		runCtx, cancel = context.WithCancel(s.ctx)
	}
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// Navigate loads url and waits for the body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Snapshot serializes the current page layout.
func (s *Session) Snapshot(ctx context.Context) (*snapshot.Page, error) {
	var page snapshot.Page
	if err := s.run(ctx, chromedp.Evaluate(snapshotScript, &page)); err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}
	if page.Root == nil {
		return nil, snapshot.ErrNoRoot
	}
	return &page, nil
}
