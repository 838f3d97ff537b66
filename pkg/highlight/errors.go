package highlight

import (
	"errors"
	"fmt"
	"time"
)

// ErrPatternTimeout is returned when matching does not finish within the time budget.
var ErrPatternTimeout = errors.New("highlight: pattern matching timed out")

// TimeoutError carries the pattern and budget that were exceeded.
type TimeoutError struct {
	Pattern string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("highlight: matching %q exceeded %s", e.Pattern, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return ErrPatternTimeout
}
