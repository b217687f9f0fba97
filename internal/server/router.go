// Package server exposes the workspace over HTTP with gin.
package server

import (
	"github.com/gin-gonic/gin"

	"doclens/pkg/services"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Workspace      services.Workspace
	CORSOrigins    []string
	MaxUploadBytes int64
}

// NewRouter builds the gin engine with every route under /api.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestContext())
	r.Use(RequestLog())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}
	r.MaxMultipartMemory = 32 << 20

	r.GET("/healthcheck", HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/options", Options)
		api.GET("/i18n/:lang", Strings)

		h := NewSessionHandler(cfg.Workspace, cfg.MaxUploadBytes)
		sessions := api.Group("/sessions")
		sessions.POST("", h.Create)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Delete)
		sessions.PUT("/:id/language", h.SelectLanguage)
		sessions.PUT("/:id/sector", h.SelectSector)
		sessions.POST("/:id/reset", h.Reset)
		sessions.POST("/:id/document", h.Upload)
		sessions.POST("/:id/sample", h.Sample)
		sessions.POST("/:id/chat", h.Chat)
		sessions.POST("/:id/general", h.General)
		sessions.POST("/:id/speech", h.Speech)
	}

	return r
}
