package capture

import (
	"errors"
	"fmt"
)

// ErrNotInDocument is returned when the target element has no owning document.
var ErrNotInDocument = errors.New("provided element is not within a document")

// OptionError reports a user supplied option outside its valid range.
type OptionError struct {
	Field  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid capture option %s: %s", e.Field, e.Reason)
}
