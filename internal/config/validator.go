package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ankek/domcapture/internal/logging"
	"github.com/ankek/domcapture/internal/surface"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "browser.window_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() ValidationErrors {
	var errs ValidationErrors

	level := strings.ToLower(c.Logging.Level)
	if !slices.Contains(logging.ValidLevels(), level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}

	if _, err := surface.ParseFormat(c.Output.Format); err != nil {
		errs = append(errs, ValidationError{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: "must be one of png, jpeg, bmp, tiff",
		})
	}

	if c.Browser.WindowWidth <= 0 {
		errs = append(errs, ValidationError{
			Field:   "browser.window_width",
			Value:   c.Browser.WindowWidth,
			Message: "must be positive",
		})
	}
	if c.Browser.WindowHeight <= 0 {
		errs = append(errs, ValidationError{
			Field:   "browser.window_height",
			Value:   c.Browser.WindowHeight,
			Message: "must be positive",
		})
	}
	if c.Browser.TimeoutSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "browser.timeout_seconds",
			Value:   c.Browser.TimeoutSeconds,
			Message: "must not be negative",
		})
	}

	return errs
}
