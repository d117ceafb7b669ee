package atlas

import "fmt"
import "errors"

// Returned (possibly wrapped) when a run is cancelled through its
// context or its ShouldCancel predicate. Cancellation is not a
// failure: no partial pages are returned.
var ErrCancelled = errors.New("generation cancelled")

// Bad input detected before any rendering. Never retried.
type ValidationError struct {
	Field string
	Value any
	Reason string
}

func (self *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", self.Field, self.Value, self.Reason)
}

// An unexpected failure during the layout pass, including recovered
// panics. [SafeGenerate]() retries these once with reset offsets.
type LayoutError struct {
	Err error
}

func (self *LayoutError) Error() string { return "layout failed: " + self.Err.Error() }
func (self *LayoutError) Unwrap() error { return self.Err }
