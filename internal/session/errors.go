package session

import "errors"

var (
	// ErrSessionNotFound means the sessionId is unknown (expired or never
	// existed). Maps to 404 at the API boundary.
	ErrSessionNotFound = errors.New("session not found")

	// ErrOutOfSequence means the client is desynced from the session state
	// machine: submitting after completion, or submitting for a question
	// that was never generated. Maps to 400.
	ErrOutOfSequence = errors.New("request out of sequence")

	// ErrInvalidAnswer means the answer payload did not match the shape the
	// current question's archetype expects. Maps to 400.
	ErrInvalidAnswer = errors.New("invalid answer payload")
)
