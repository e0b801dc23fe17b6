// Package logging provides the diagnostic sink handed to a capture and the
// process level logger the CLI writes to. Both are backed by go-hclog so that
// capture diagnostics and tool output share one structured stream.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Log levels supported by the base logger
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Options configures the process level logger.
type Options struct {
	Name   string
	Level  string
	JSON   bool
	Output io.Writer // defaults to stderr
}

// NewBase creates the hclog logger shared by the CLI and capture sinks.
func NewBase(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	name := opts.Name
	if name == "" {
		name = "domcapture"
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(ParseLevel(opts.Level)),
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// ParseLevel normalizes a level name. Unknown names map to info.
func ParseLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelTrace:
		return LevelTrace
	case LevelDebug:
		return LevelDebug
	case LevelWarn, "warning":
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

// ValidLevels returns the list of valid log level names.
func ValidLevels() []string {
	return []string{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}
}
