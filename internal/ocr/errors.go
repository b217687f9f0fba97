package ocr

import (
	"errors"
	"fmt"
)

// Common OCR processing errors
var (
	// ErrEngineFailed is returned when the OCR engine could not process an image.
	// It is distinct from a successful recognition that found no text.
	ErrEngineFailed = errors.New("OCR engine failed")

	// ErrEngineUnavailable is returned when the engine binary or service is not reachable.
	ErrEngineUnavailable = errors.New("OCR engine unavailable")

	// ErrEmptyImage is returned when no image bytes were supplied.
	ErrEmptyImage = errors.New("empty image")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS nor an API key is configured for a cloud engine.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set OCR_API_KEY, GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS")
)

// OCRError wraps errors with additional context about the OCR processing failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "Recognize", "NewVisionEngine").
	Op string

	// Engine names the engine that failed, if any.
	Engine string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	prefix := "ocr"
	if e.Engine != "" {
		prefix = "ocr[" + e.Engine + "]"
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s failed: %s: %v", prefix, e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", prefix, e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op, engine string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Engine:  engine,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op, engine string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewOCRError(op, engine, err, details)
}

// engineFailure tags a raw engine error so that errors.Is(err, ErrEngineFailed) holds.
func engineFailure(op, engine string, cause error) error {
	return NewOCRError(op, engine, fmt.Errorf("%w: %v", ErrEngineFailed, cause), "")
}
