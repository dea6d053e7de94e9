package intent

import (
	"errors"
	"fmt"
)

// ErrNoStructuredData means the reply contains no complete bracket pair.
// Callers should treat the reply as plain conversation, not a failure.
var ErrNoStructuredData = errors.New("no structured data in reply")

// MalformedJSONError means a bracket pair was found but its contents do
// not parse as JSON even after normalization.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("malformed JSON in reply: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// InvalidActionError means the reply named an action outside add/replace.
type InvalidActionError struct {
	Value string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q: must map to add or replace", e.Value)
}

// InvalidNumberError means a numeric field held a value that is neither a
// JSON number nor a numeric string.
type InvalidNumberError struct {
	Field string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("field %q is not a number", e.Field)
}
