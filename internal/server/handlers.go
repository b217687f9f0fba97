package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"doclens/internal/extract"
	"doclens/internal/i18n"
	"doclens/internal/session"
	"doclens/pkg/models"
	"doclens/pkg/services"
)

// SessionHandler serves the /api/sessions routes.
type SessionHandler struct {
	workspace      services.Workspace
	maxUploadBytes int64
}

// NewSessionHandler creates a handler enforcing maxUploadBytes on uploads.
func NewSessionHandler(ws services.Workspace, maxUploadBytes int64) *SessionHandler {
	return &SessionHandler{workspace: ws, maxUploadBytes: maxUploadBytes}
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

type sectorRequest struct {
	Sector string `json:"sector" binding:"required"`
}

type questionRequest struct {
	Question string `json:"question" binding:"required"`
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, h.workspace.CreateSession())
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	view, err := h.workspace.GetSession(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.workspace.EndSession(c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectLanguage handles PUT /api/sessions/:id/language.
func (h *SessionHandler) SelectLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", session.ErrInvalidLanguage, err))
		return
	}
	lang, ok := models.ParseLanguage(req.Language)
	if !ok {
		RespondError(c, fmt.Errorf("%w: %q", session.ErrInvalidLanguage, req.Language))
		return
	}

	view, err := h.workspace.SelectLanguage(c.Param("id"), lang)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

// SelectSector handles PUT /api/sessions/:id/sector.
func (h *SessionHandler) SelectSector(c *gin.Context) {
	var req sectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", session.ErrInvalidSector, err))
		return
	}
	sector, ok := models.ParseSector(req.Sector)
	if !ok {
		RespondError(c, fmt.Errorf("%w: %q", session.ErrInvalidSector, req.Sector))
		return
	}

	view, err := h.workspace.SelectSector(c.Param("id"), sector)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

// Reset handles POST /api/sessions/:id/reset.
func (h *SessionHandler) Reset(c *gin.Context) {
	view, err := h.workspace.Reset(c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, view)
}

// Upload handles POST /api/sessions/:id/document (multipart field "file").
func (h *SessionHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+(1<<20))

	fh, err := c.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			RespondError(c, errFileTooLarge)
			return
		}
		RespondError(c, fmt.Errorf("%w: multipart field \"file\" is required", errBadRequest))
		return
	}
	if fh.Size > h.maxUploadBytes {
		RespondError(c, errFileTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		RespondError(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		RespondError(c, err)
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		RespondError(c, errFileTooLarge)
		return
	}

	res, err := h.workspace.UploadDocument(c.Request.Context(), c.Param("id"), filepath.Base(fh.Filename), data)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

// Sample handles POST /api/sessions/:id/sample.
func (h *SessionHandler) Sample(c *gin.Context) {
	res, err := h.workspace.LoadSample(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, res)
}

// Chat handles POST /api/sessions/:id/chat.
func (h *SessionHandler) Chat(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	reply, err := h.workspace.AskDocument(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reply)
}

// General handles POST /api/sessions/:id/general.
func (h *SessionHandler) General(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	reply, err := h.workspace.AskGeneral(c.Request.Context(), c.Param("id"), req.Question)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, reply)
}

// Speech handles POST /api/sessions/:id/speech and returns audio/mpeg.
func (h *SessionHandler) Speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	audio, err := h.workspace.Speak(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "audio/mpeg", audio)
}

// Strings handles GET /api/i18n/:lang.
func Strings(c *gin.Context) {
	lang, ok := models.ParseLanguage(c.Param("lang"))
	if !ok {
		lang = models.LanguageEnglish
	}
	RespondOK(c, gin.H{
		"language": lang,
		"strings":  i18n.Table(lang),
	})
}

// Options handles GET /api/options: selectable languages, sectors and file types.
func Options(c *gin.Context) {
	RespondOK(c, gin.H{
		"languages":  models.SupportedLanguages(),
		"sectors":    models.SupportedSectors(),
		"file_types": extract.SupportedExtensions(),
	})
}

// HealthCheck handles GET /healthcheck.
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
