package domain

import "errors"

// ErrTreeNotFound is returned when no question tree is registered for a
// project type. It is fatal at engine construction time.
var ErrTreeNotFound = errors.New("question tree not found")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrQuestionNotFound is returned when a question id does not exist in the tree.
var ErrQuestionNotFound = errors.New("question not found")

// ErrNotInHistory is returned by rewind when the target question was never
// answered. The engine state is unchanged on this failure.
var ErrNotInHistory = errors.New("question not found in history")

// Validation is the value-style result of answer validation. Expected
// per-call failures are reported this way rather than as errors so a UI can
// re-prompt without losing engine state.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Valid is the successful validation result.
func Valid() Validation {
	return Validation{Valid: true}
}

// Invalid builds a failed validation result with a user-facing message.
func Invalid(message string) Validation {
	return Validation{Valid: false, Error: message}
}
