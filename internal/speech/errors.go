package speech

import (
	"errors"
	"fmt"
)

var (
	// ErrSynthesisFailed wraps every failed synthesizer call.
	ErrSynthesisFailed = errors.New("speech synthesis failed")

	// ErrNothingToSpeak is returned when cleaning leaves no text.
	ErrNothingToSpeak = errors.New("nothing to speak")

	// ErrDisabled is returned when speech is turned off (TTS_ENABLED=false).
	ErrDisabled = errors.New("speech is disabled")
)

// Error wraps errors with context about the failed synthesis.
type Error struct {
	// Op is the operation that failed (e.g., "Render").
	Op string

	// Voice is the voice locale that was requested.
	Voice string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("speech: %s failed (voice %s): %s: %v", e.Op, e.Voice, e.Details, e.Err)
	}
	return fmt.Sprintf("speech: %s failed (voice %s): %v", e.Op, e.Voice, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError tags err as a synthesis failure unless it already is an *Error.
func WrapError(op, voice string, err error, details string) error {
	if err == nil {
		return nil
	}

	var speechErr *Error
	if errors.As(err, &speechErr) {
		return err
	}

	if !errors.Is(err, ErrSynthesisFailed) {
		err = fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
	}
	return &Error{Op: op, Voice: voice, Err: err, Details: details}
}
