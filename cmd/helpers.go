package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"doclens/internal/config"
	"doclens/internal/extract"
	"doclens/internal/llm"
	"doclens/internal/ocr"
	"doclens/internal/router"
	"doclens/internal/speech"
	"doclens/pkg/models"
)

const credentialsHelp = "Please set one of:\n\n" +
	"1. Export GOOGLE_APPLICATION_CREDENTIALS with path to service account JSON:\n" +
	"   export GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n\n" +
	"2. Export GOOGLE_CREDENTIALS with inline JSON:\n" +
	"   export GOOGLE_CREDENTIALS='{\"type\":\"service_account\",\"project_id\":\"your-project\",...}'\n\n" +
	"3. Use Application Default Credentials (if gcloud is configured):\n" +
	"   gcloud auth application-default login\n\n" +
	"4. Check that your .env file contains the credentials variables"

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func loadConfig(log zerolog.Logger) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return nil, err
	}
	return cfg, nil
}

// validateInputFile checks that path is a readable, non-empty document of a
// supported type within the upload ceiling.
func validateInputFile(path string, maxBytes int64, log zerolog.Logger) (os.FileInfo, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().Str("file", path).Msg("File not found")
			return nil, fmt.Errorf("file not found: %s", path)
		}
		if os.IsPermission(err) {
			log.Error().Str("file", path).Msg("Permission denied accessing file")
			return nil, fmt.Errorf("permission denied accessing file: %s", path)
		}
		return nil, fmt.Errorf("error accessing file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().Str("file", path).Msg("Path is not a regular file")
		return nil, fmt.Errorf("path is not a regular file: %s", path)
	}

	if !extract.Supported(path) {
		log.Error().Str("file", path).Msg("Unsupported file type")
		return nil, fmt.Errorf("unsupported file type: %s (supported: %s)",
			path, strings.Join(extract.SupportedExtensions(), ", "))
	}

	if fileInfo.Size() == 0 {
		log.Error().Str("file", path).Msg("File is empty")
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	if fileInfo.Size() > maxBytes {
		log.Error().
			Str("file", path).
			Int64("size", fileInfo.Size()).
			Int64("max_size", maxBytes).
			Msg("File exceeds maximum size limit")
		return nil, fmt.Errorf("file too large (%d bytes). Maximum size is %d MB (MAX_UPLOAD_MB)",
			fileInfo.Size(), maxBytes>>20)
	}

	return fileInfo, nil
}

// parseLanguageFlag accepts a language name or ISO code; empty means Auto.
func parseLanguageFlag(value string) (models.Language, error) {
	lang, ok := models.ParseLanguage(value)
	if !ok {
		return "", fmt.Errorf("unsupported language %q (use auto, english, hindi, telugu or urdu)", value)
	}
	return lang, nil
}

func parseSectorFlag(value string) (models.Sector, error) {
	sector, ok := models.ParseSector(value)
	if !ok {
		return "", fmt.Errorf("unsupported sector %q (use law, medical or agriculture)", value)
	}
	return sector, nil
}

// newExtractor builds the configured OCR engine behind its cache and the
// extractor on top. The returned closer releases the engine's client.
func newExtractor(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*extract.Extractor, io.Closer, error) {
	adapter, err := ocr.NewAdapterFromConfig(ctx, cfg)
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Error().Err(err).Str("engine", cfg.OCREngine).Msg("Google Cloud credentials not configured")
			return nil, nil, fmt.Errorf("Google Cloud credentials not configured for OCR_ENGINE=%s. %s",
				cfg.OCREngine, credentialsHelp)
		}
		log.Error().Err(err).Str("engine", cfg.OCREngine).Msg("Failed to create OCR engine")
		return nil, nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}

	log.Debug().Str("engine", cfg.OCREngine).Msg("OCR engine created successfully")
	return extract.NewFromConfig(cfg, adapter), adapter, nil
}

func newResponder(cfg *config.Config, log zerolog.Logger) (*router.Service, error) {
	if err := cfg.RequireLLM(); err != nil {
		log.Error().Err(err).Msg("Generative model not configured")
		return nil, fmt.Errorf("%w. Set GEMINI_API_KEY in the environment or .env file", err)
	}
	client, err := llm.NewClientFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	log.Debug().Str("model", client.Model()).Msg("Model client created successfully")
	return router.NewService(client), nil
}

func closeQuietly(c io.Closer, log zerolog.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close client")
	}
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, log zerolog.Logger) error {
	if path == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Error().Err(err).Msg("Failed to write to stdout")
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Error().
			Err(err).
			Str("output_file", path).
			Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output_file", path).
		Int("bytes", len(data)).
		Msg("Output written to file")
	return nil
}

// handleExtractError provides user-friendly error messages for extraction failures
func handleExtractError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Extraction failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("extraction timed out. Try increasing --timeout or processing a smaller file")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("extraction was canceled")
	case errors.Is(err, extract.ErrUnsupportedType):
		return fmt.Errorf("unsupported file type. Supported types: %s", strings.Join(extract.SupportedExtensions(), ", "))
	case errors.Is(err, extract.ErrEmptyFile):
		return fmt.Errorf("the file is empty")
	case errors.Is(err, extract.ErrInvalidDocument):
		return fmt.Errorf("invalid or corrupted document. Please check the file integrity: %w", err)
	case errors.Is(err, ocr.ErrEngineUnavailable):
		return fmt.Errorf("OCR engine unavailable. Install tesseract (with the hin, tel and urd language packs) or set OCR_ENGINE=vision|documentai: %w", err)
	case errors.Is(err, ocr.ErrMissingCredentials):
		return fmt.Errorf("Google Cloud credentials not configured. %s", credentialsHelp)
	case errors.Is(err, extract.ErrNoReadableText):
		return fmt.Errorf("no readable text found in the document. The scan may be too faint or the file may contain only graphics")
	case isAuthError(err):
		return fmt.Errorf("Google Cloud authentication failed. %s\n\nOriginal error: %v", credentialsHelp, err)
	case errors.Is(err, ocr.ErrEngineFailed):
		return fmt.Errorf("text recognition failed. This may be due to network issues, API quota limits, or service unavailability: %w", err)
	default:
		return fmt.Errorf("extraction failed: %w", err)
	}
}

// handleLLMError provides user-friendly error messages for model failures
func handleLLMError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Model request failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("the model did not answer in time. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("the request was canceled")
	case errors.Is(err, router.ErrMissingQuery):
		return fmt.Errorf("the question is empty")
	case errors.Is(err, router.ErrMissingDocument):
		return fmt.Errorf("the document has no text to work with")
	case errors.Is(err, llm.ErrMissingAPIKey), errors.Is(err, llm.ErrUnauthorized):
		return fmt.Errorf("the model rejected the API key. Check GEMINI_API_KEY: %w", err)
	case errors.Is(err, llm.ErrRateLimited):
		return fmt.Errorf("the model is rate limiting requests. Wait a moment and try again")
	case errors.Is(err, llm.ErrEmptyResponse):
		return fmt.Errorf("the model returned an empty answer. Try rephrasing the question")
	default:
		return fmt.Errorf("model request failed: %w", err)
	}
}

// handleSpeechError provides user-friendly error messages for speech failures
func handleSpeechError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Speech rendering failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("speech rendering timed out. Try increasing --timeout or shortening the text")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("speech rendering was canceled")
	case errors.Is(err, speech.ErrDisabled):
		return fmt.Errorf("speech is disabled. Set TTS_ENABLED=true to enable it")
	case errors.Is(err, speech.ErrNothingToSpeak):
		return fmt.Errorf("there is no readable text to speak")
	case isAuthError(err):
		return fmt.Errorf("Google Cloud authentication failed. %s\n\nOriginal error: %v", credentialsHelp, err)
	default:
		return fmt.Errorf("speech rendering failed: %w", err)
	}
}

func isAuthError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "Unauthenticated") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "PERMISSION_DENIED") ||
		strings.Contains(errStr, "transport: per-RPC creds failed")
}
