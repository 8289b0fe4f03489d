package questiongen

import (
	"encoding/json"
	"fmt"
)

// GenerationError indicates question generation failed hard: the provider
// was unavailable or errored and the fallback bank was not applicable.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// MalformedError indicates the provider responded, but the content failed
// structural validation. Logged distinctly from GenerationError for
// diagnosis; callers treat both as hard failures.
type MalformedError struct {
	Content json.RawMessage
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed generated question: %v", e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
