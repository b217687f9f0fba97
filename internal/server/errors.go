package server

import (
	"context"
	"errors"
	"net/http"

	"doclens/internal/extract"
	"doclens/internal/i18n"
	"doclens/internal/llm"
	"doclens/internal/ocr"
	"doclens/internal/router"
	"doclens/internal/session"
	"doclens/internal/speech"
	"doclens/internal/workspace"
	"doclens/pkg/models"
)

// Error codes double as i18n keys under "error.".
const (
	codeInvalidRequest  = "invalid_request"
	codeSessionNotFound = "session_not_found"
	codeNotReady        = "not_ready"
	codeNoLanguage      = "no_language"
	codeLocked          = "locked"
	codeNoDocument      = "no_document"
	codeStale           = "stale"
	codeUnsupportedType = "unsupported_type"
	codeNoReadableText  = "no_readable_text"
	codeInvalidDocument = "invalid_document"
	codeFileTooLarge    = "file_too_large"
	codeOCRFailed       = "ocr_failed"
	codeModelFailed     = "model_failed"
	codeSpeechFailed    = "speech_failed"
	codeSpeechDisabled  = "speech_disabled"
	codeNothingToSpeak  = "nothing_to_speak"
	codeInternal        = "internal"
)

var (
	// errFileTooLarge marks an upload over the size ceiling.
	errFileTooLarge = errors.New("file exceeds the upload limit")

	// errBadRequest marks a malformed request body.
	errBadRequest = errors.New("bad request")
)

// classify maps domain errors to an HTTP status and error code.
func classify(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusInternalServerError, codeInternal
	case errors.Is(err, errFileTooLarge), errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, codeFileTooLarge
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, codeSessionNotFound
	case errors.Is(err, session.ErrNotReady):
		return http.StatusConflict, codeNotReady
	case errors.Is(err, session.ErrNoLanguage):
		return http.StatusConflict, codeNoLanguage
	case errors.Is(err, session.ErrLocked):
		return http.StatusConflict, codeLocked
	case errors.Is(err, session.ErrNoDocument):
		return http.StatusConflict, codeNoDocument
	case errors.Is(err, session.ErrStale):
		return http.StatusConflict, codeStale
	case errors.Is(err, errBadRequest),
		errors.Is(err, session.ErrInvalidLanguage), errors.Is(err, session.ErrInvalidSector),
		errors.Is(err, workspace.ErrEmptyQuestion), errors.Is(err, router.ErrMissingQuery):
		return http.StatusBadRequest, codeInvalidRequest
	case errors.Is(err, extract.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType, codeUnsupportedType
	case errors.Is(err, extract.ErrNoReadableText), errors.Is(err, extract.ErrEmptyFile):
		return http.StatusUnprocessableEntity, codeNoReadableText
	case errors.Is(err, extract.ErrInvalidDocument):
		return http.StatusUnprocessableEntity, codeInvalidDocument
	case errors.Is(err, ocr.ErrEngineFailed):
		return http.StatusBadGateway, codeOCRFailed
	case errors.Is(err, llm.ErrGenerationFailed):
		return http.StatusBadGateway, codeModelFailed
	case errors.Is(err, speech.ErrDisabled):
		return http.StatusServiceUnavailable, codeSpeechDisabled
	case errors.Is(err, speech.ErrNothingToSpeak):
		return http.StatusBadRequest, codeNothingToSpeak
	case errors.Is(err, speech.ErrSynthesisFailed):
		return http.StatusBadGateway, codeSpeechFailed
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, codeInternal
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func localize(lang models.Language, code string) string {
	return i18n.Lookup(lang, "error."+code)
}
