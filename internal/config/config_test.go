package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_KEY", "LLM_MODEL", "OCR_ENGINE", "OCR_CACHE_TTL",
		"SESSION_TTL", "TTS_ENABLED", "MAX_UPLOAD_MB", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.5-flash-lite", cfg.LLMModel)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	assert.Equal(t, OCREngineTesseract, cfg.OCREngine)
	assert.Equal(t, time.Hour, cfg.OCRCacheTTL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.TTSEnabled)
	assert.Equal(t, int64(200<<20), cfg.MaxUploadBytes())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Error(t, cfg.RequireLLM())
}

func TestLoadLegacyKeyName(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_KEY", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.LLMAPIKey)
	assert.NoError(t, cfg.RequireLLM())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"unknown engine":      {"OCR_ENGINE", "abbyy"},
		"bad ttl":             {"OCR_CACHE_TTL", "soon"},
		"negative ttl":        {"SESSION_TTL", "-1m"},
		"bad bool":            {"TTS_ENABLED", "perhaps"},
		"zero upload ceiling": {"MAX_UPLOAD_MB", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDocumentAIEngineNeedsProcessor(t *testing.T) {
	t.Setenv("OCR_ENGINE", "documentai")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo")
	t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DOCUMENT_AI_PROCESSOR_ID")

	t.Setenv("DOCUMENT_AI_PROCESSOR_ID", "abc123")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "us", cfg.GoogleCloudLocation)
}
