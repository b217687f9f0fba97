package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Common generation errors
var (
	// ErrGenerationFailed wraps every failed model call.
	ErrGenerationFailed = errors.New("text generation failed")

	// ErrEmptyResponse is returned when the model answered with no choices or no text.
	ErrEmptyResponse = errors.New("model returned an empty response")

	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("missing model API key: set GEMINI_API_KEY")

	// ErrUnauthorized is returned when the model endpoint rejects the API key.
	ErrUnauthorized = errors.New("model API key rejected")

	// ErrRateLimited is returned when the model endpoint reports quota exhaustion.
	ErrRateLimited = errors.New("model API quota exceeded")
)

// Error wraps errors with context about the failed model call.
type Error struct {
	// Op is the operation that failed (e.g., "Generate").
	Op string

	// Model is the model id that was called.
	Model string

	// StatusCode is the HTTP status returned by the endpoint, if any.
	StatusCode int

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("llm: %s failed (model %s): %s: %v", e.Op, e.Model, e.Details, e.Err)
	}
	return fmt.Sprintf("llm: %s failed (model %s): %v", e.Op, e.Model, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError tags err as a failed generation. Errors that are already an
// *Error are returned unchanged.
func WrapError(op, model string, err error, details string) error {
	if err == nil {
		return nil
	}

	var llmErr *Error
	if errors.As(err, &llmErr) {
		return err
	}

	return &Error{
		Op:         op,
		Model:      model,
		StatusCode: statusCode(err),
		Err:        fmt.Errorf("%w: %w", ErrGenerationFailed, classify(err)),
		Details:    details,
	}
}

// classify maps endpoint status codes to sentinels, keeping the cause.
func classify(err error) error {
	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return err
	}
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
