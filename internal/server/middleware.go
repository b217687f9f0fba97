package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"doclens/internal/logger"
	"doclens/pkg/models"
)

const (
	headerRequestID = "X-Request-ID"
	ctxLoggerKey    = "logger"
)

// CORS allows the configured browser origins.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language", headerRequestID},
		ExposeHeaders:    []string{headerRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// RequestContext tags every request with an id and a request-scoped logger.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)

		log := logger.WithRequestID(id)
		c.Set(ctxLoggerKey, log)
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))
		c.Next()
	}
}

// RequestLog logs one line per request after it completes.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := requestLogger(c)
		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("took", time.Since(start)).
			Msg("HTTP request")
	}
}

func requestLogger(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(ctxLoggerKey); ok {
		if log, ok := v.(zerolog.Logger); ok {
			return &log
		}
	}
	log := logger.WithComponent("http")
	return &log
}

// requestLanguage picks the language for messages from ?lang= or the
// primary Accept-Language tag, defaulting to English.
func requestLanguage(c *gin.Context) models.Language {
	if lang, ok := models.ParseLanguage(c.Query("lang")); ok && lang != models.LanguageAuto {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	if header != "" {
		tag := strings.SplitN(strings.SplitN(header, ",", 2)[0], ";", 2)[0]
		tag = strings.SplitN(strings.TrimSpace(tag), "-", 2)[0]
		if lang, ok := models.ParseLanguage(tag); ok && lang != models.LanguageAuto {
			return lang
		}
	}
	return models.LanguageEnglish
}
