package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"doclens/internal/logger"
)

// TesseractEngine runs the tesseract binary, feeding the image on stdin.
type TesseractEngine struct {
	path string
	log  zerolog.Logger
}

// NewTesseractEngine creates an engine for the binary at path ("tesseract" if empty).
func NewTesseractEngine(path string) *TesseractEngine {
	if path == "" {
		path = "tesseract"
	}
	return &TesseractEngine{
		path: path,
		log:  logger.WithComponent("ocr-tesseract"),
	}
}

// Name implements Engine.
func (t *TesseractEngine) Name() string { return "tesseract" }

// Recognize implements Engine.
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte, langCode string) (string, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return "", NewOCRError(op, t.Name(), fmt.Errorf("%w: %w", ErrEngineFailed, ErrEmptyImage), "")
	}
	if langCode == "" {
		langCode = DefaultLanguageCode
	}
	if _, err := exec.LookPath(t.path); err != nil {
		return "", NewOCRError(op, t.Name(), fmt.Errorf("%w: %w", ErrEngineFailed, ErrEngineUnavailable), err.Error())
	}

	cmd := exec.CommandContext(ctx, t.path, "stdin", "stdout", "-l", langCode)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.log.Warn().
			Err(err).
			Str("lang", langCode).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("tesseract run failed")
		return "", NewOCRError(op, t.Name(), fmt.Errorf("%w: %v", ErrEngineFailed, err), strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
