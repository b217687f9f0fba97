package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"doclens/internal/logger"
)

// Supported OCR engines.
const (
	OCREngineTesseract  = "tesseract"
	OCREngineVision     = "vision"
	OCREngineDocumentAI = "documentai"
)

// DefaultLLMBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultLLMBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

type Config struct {
	// Generative model
	LLMAPIKey  string
	LLMModel   string
	LLMBaseURL string

	// OCR
	OCREngine     string
	TesseractPath string
	OCRAPIKey     string
	OCRCacheTTL   time.Duration

	// Rasterisers
	PdftoppmPath string
	MutoolPath   string

	// Google Cloud (Document AI OCR engine, Vision, Text-to-Speech)
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Speech
	TTSEnabled bool

	// HTTP server
	HTTPAddr    string
	CORSOrigins []string
	MaxUploadMB int64
	SessionTTL  time.Duration

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		LLMAPIKey:             getEnv("GEMINI_API_KEY", getEnv("GEMINI_KEY", "")),
		LLMModel:              getEnv("LLM_MODEL", "gemini-2.5-flash-lite"),
		LLMBaseURL:            getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		OCREngine:             strings.ToLower(getEnv("OCR_ENGINE", OCREngineTesseract)),
		TesseractPath:         getEnv("TESSERACT_PATH", "tesseract"),
		OCRAPIKey:             getEnv("OCR_API_KEY", ""),
		PdftoppmPath:          getEnv("PDFTOPPM_PATH", "pdftoppm"),
		MutoolPath:            getEnv("MUTOOL_PATH", "mutool"),
		GoogleCloudProject:    getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:   getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID: getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:         getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:             getEnv("LOG_OUTPUT", "stderr"),
	}

	var err error
	if config.OCRCacheTTL, err = getDuration("OCR_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if config.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if config.TTSEnabled, err = getBool("TTS_ENABLED", true); err != nil {
		return nil, err
	}
	if config.MaxUploadMB, err = getInt64("MAX_UPLOAD_MB", 200); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks settings that every command depends on.
func (c *Config) Validate() error {
	switch c.OCREngine {
	case OCREngineTesseract, OCREngineVision:
	case OCREngineDocumentAI:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for OCR_ENGINE=documentai")
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required for OCR_ENGINE=documentai")
		}
	default:
		return fmt.Errorf("OCR_ENGINE must be one of %s, %s, %s (got %q)",
			OCREngineTesseract, OCREngineVision, OCREngineDocumentAI, c.OCREngine)
	}
	if c.OCRCacheTTL <= 0 {
		return fmt.Errorf("OCR_CACHE_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// RequireLLM reports whether the generative model can be contacted.
func (c *Config) RequireLLM() error {
	if c.LLMAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// MaxUploadBytes returns the upload ceiling in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q: %w", key, value, err)
	}
	return b, nil
}

func getInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, value, err)
	}
	return n, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
