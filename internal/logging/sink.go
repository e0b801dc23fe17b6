package logging

import (
	"github.com/hashicorp/go-hclog"
)

// Sink receives the diagnostics of a single capture. A disabled sink drops
// everything. Sinks are fire-and-forget: callers never inspect a result.
type Sink struct {
	enabled bool
	logger  hclog.Logger
}

// New creates a sink writing to base. A nil base or enabled=false yields a
// sink whose methods are no-ops.
func New(base hclog.Logger, enabled bool) *Sink {
	if base == nil {
		base = hclog.NewNullLogger()
	}
	return &Sink{enabled: enabled, logger: base}
}

// Nop returns a disabled sink.
func Nop() *Sink {
	return New(nil, false)
}

// Enabled reports whether the sink emits anything.
func (s *Sink) Enabled() bool {
	return s != nil && s.enabled
}

// With returns a sink that attaches the key/value pairs to every entry.
func (s *Sink) With(args ...any) *Sink {
	if s == nil {
		return Nop()
	}
	return &Sink{enabled: s.enabled, logger: s.logger.With(args...)}
}

// Log records an informational diagnostic.
func (s *Sink) Log(msg string, args ...any) {
	if !s.Enabled() {
		return
	}
	s.logger.Info(msg, args...)
}

// Debug records a verbose diagnostic.
func (s *Sink) Debug(msg string, args ...any) {
	if !s.Enabled() {
		return
	}
	s.logger.Debug(msg, args...)
}

// Error records a diagnostic at error severity.
func (s *Sink) Error(msg string, args ...any) {
	if !s.Enabled() {
		return
	}
	s.logger.Error(msg, args...)
}
