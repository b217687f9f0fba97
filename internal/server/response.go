package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes the error envelope with a message localized for the request.
func RespondError(c *gin.Context, err error) {
	status, code := classify(err)
	lang := requestLanguage(c)

	detail := ""
	if err != nil && status < http.StatusInternalServerError {
		detail = err.Error()
	}

	requestLogger(c).Warn().
		Err(err).
		Int("status", status).
		Str("code", code).
		Msg("Request failed")

	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: localize(lang, code),
			Code:    code,
			Detail:  detail,
		},
	})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
