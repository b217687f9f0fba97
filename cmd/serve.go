package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"doclens/internal/config"
	"doclens/internal/i18n"
	"doclens/internal/logger"
	"doclens/internal/server"
	"doclens/internal/session"
	"doclens/internal/speech"
	"doclens/internal/workspace"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serve the document assistant over HTTP.

Each browser session picks a language and a sector, uploads a document (or
loads the sector sample), reads its summary, chats about it or asks general
questions, and can have any answer read aloud. Sessions live in memory and
expire after SESSION_TTL of inactivity.

Required environment variables:
  GEMINI_API_KEY - API key for the Gemini model

Optional environment variables:
  HTTP_ADDR, CORS_ORIGINS, MAX_UPLOAD_MB, SESSION_TTL, TTS_ENABLED,
  OCR_ENGINE, OCR_CACHE_TTL`,
	Example: `  # Serve on the default address
  doclens serve

  # Serve on another port
  doclens serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: HTTP_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	i18n.MustLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, ocrCloser, err := newExtractor(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQuietly(ocrCloser, log)

	responder, err := newResponder(cfg, log)
	if err != nil {
		return err
	}

	var speaker workspace.Speaker
	if renderer, synth := newSpeechRenderer(ctx, cfg, log); renderer != nil {
		defer closeQuietly(synth, log)
		speaker = renderer
	}

	ws := workspace.NewService(session.NewStore(cfg.SessionTTL), extractor, responder, speaker)

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("ocr_engine", cfg.OCREngine).
		Str("model", cfg.LLMModel).
		Bool("speech", speaker != nil).
		Dur("session_ttl", cfg.SessionTTL).
		Int64("max_upload_mb", cfg.MaxUploadMB).
		Msg("Starting DocLens server")

	srv := server.NewServer(cfg.HTTPAddr, server.RouterConfig{
		Workspace:      ws,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server failed")
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	log.Info().Msg("DocLens server stopped")
	return nil
}

// newSpeechRenderer returns nil when speech is disabled or the Text-to-Speech
// client cannot be created; the server then runs without read-aloud.
func newSpeechRenderer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*speech.Renderer, *speech.GoogleSynthesizer) {
	if !cfg.TTSEnabled {
		log.Info().Msg("Speech disabled by TTS_ENABLED")
		return nil, nil
	}
	synth, err := speech.NewGoogleSynthesizer(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Text-to-Speech unavailable, continuing without speech")
		return nil, nil
	}
	return speech.NewRenderer(synth), synth
}
