package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclens/internal/extract"
	"doclens/internal/llm"
	"doclens/internal/speech"
	"doclens/pkg/models"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	log := zerolog.Nop()

	good := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(good, []byte("hello"), 0o644))
	info, err := validateInputFile(good, 1<<20, log)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = validateInputFile(empty, 1<<20, log)
	assert.ErrorContains(t, err, "empty")

	slides := filepath.Join(dir, "deck.pptx")
	require.NoError(t, os.WriteFile(slides, []byte("x"), 0o644))
	_, err = validateInputFile(slides, 1<<20, log)
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = validateInputFile(good, 2, log)
	assert.ErrorContains(t, err, "too large")

	_, err = validateInputFile(filepath.Join(dir, "missing.pdf"), 1<<20, log)
	assert.ErrorContains(t, err, "not found")

	_, err = validateInputFile(dir, 1<<20, log)
	assert.ErrorContains(t, err, "not a regular file")
}

func TestParseFlags(t *testing.T) {
	lang, err := parseLanguageFlag("te")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageTelugu, lang)

	lang, err = parseLanguageFlag("")
	require.NoError(t, err)
	assert.Equal(t, models.LanguageAuto, lang)

	_, err = parseLanguageFlag("french")
	assert.Error(t, err)

	sector, err := parseSectorFlag("medical")
	require.NoError(t, err)
	assert.Equal(t, models.SectorMedical, sector)

	_, err = parseSectorFlag("finance")
	assert.Error(t, err)
}

func TestErrorHandlersKeepCause(t *testing.T) {
	log := zerolog.Nop()

	err := handleExtractError(errors.New("boom"), log)
	assert.ErrorContains(t, err, "boom")

	err = handleExtractError(extract.ErrNoReadableText, log)
	assert.ErrorContains(t, err, "no readable text")

	err = handleLLMError(&llm.Error{Op: "Generate", Err: llm.ErrRateLimited}, log)
	assert.ErrorContains(t, err, "rate limiting")

	err = handleSpeechError(speech.ErrDisabled, log)
	assert.ErrorContains(t, err, "TTS_ENABLED")
}

func TestFormatAnswer(t *testing.T) {
	assert.Equal(t, "answer\n\n---\nnote\n", formatAnswer("answer\n\n", "note"))
	assert.Equal(t, "answer\n", formatAnswer("answer", ""))
}
