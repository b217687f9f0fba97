// Package extract turns an uploaded file into plain text.
//
// PDFs go through a fallback chain: the embedded text layer first, then
// poppler rasterisation with OCR, then MuPDF rasterisation with OCR. Images
// are normalised and sent to OCR. DOCX and TXT are read directly.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"doclens/internal/config"
	"doclens/internal/logger"
	"doclens/internal/ocr"
	"doclens/pkg/models"
)

// Method records which strategy produced the text.
type Method string

const (
	MethodPlainText    Method = "text"
	MethodDOCX         Method = "docx"
	MethodImageOCR     Method = "image-ocr"
	MethodPDFTextLayer Method = "pdf-text-layer"
	MethodPDFPoppler   Method = "pdf-ocr-poppler"
	MethodPDFMuPDF     Method = "pdf-ocr-mupdf"
)

// Result is a successful extraction.
type Result struct {
	Text   string `json:"text"`
	Method Method `json:"method"`

	// Pages is the number of pages or images that were read.
	Pages int `json:"pages,omitempty"`

	// Warnings lists non-fatal problems, such as a rasteriser that failed
	// before a later stage succeeded or pages skipped after an OCR error.
	Warnings []string `json:"warnings,omitempty"`
}

// Extractor dispatches on file extension.
type Extractor struct {
	ocr       ocr.Recognizer
	textLayer TextLayerReader
	primary   Rasterizer
	alternate Rasterizer
	log       zerolog.Logger
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithTextLayer replaces the PDF text layer reader.
func WithTextLayer(r TextLayerReader) Option {
	return func(e *Extractor) { e.textLayer = r }
}

// WithRasterizers replaces the primary and alternate PDF rasterisers.
// A nil rasteriser skips its stage.
func WithRasterizers(primary, alternate Rasterizer) Option {
	return func(e *Extractor) {
		e.primary = primary
		e.alternate = alternate
	}
}

// New creates an extractor that sends images to recognizer. By default it
// reads PDF text with rsc.io/pdf and rasterises with pdftoppm then mutool
// found on PATH.
func New(recognizer ocr.Recognizer, opts ...Option) *Extractor {
	e := &Extractor{
		ocr:       recognizer,
		textLayer: PDFTextLayer{},
		primary:   NewPopplerRasterizer(""),
		alternate: NewMuPDFRasterizer(""),
		log:       logger.WithComponent("extract"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig creates an extractor using the rasteriser paths from cfg.
func NewFromConfig(cfg *config.Config, recognizer ocr.Recognizer) *Extractor {
	return New(recognizer, WithRasterizers(
		NewPopplerRasterizer(cfg.PdftoppmPath),
		NewMuPDFRasterizer(cfg.MutoolPath),
	))
}

// Supported reports whether the file name has an accepted extension.
func Supported(name string) bool {
	switch extension(name) {
	case ".pdf", ".docx", ".txt", ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// SupportedExtensions lists the accepted file extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".jpg", ".jpeg", ".png"}
}

// Extract returns the text of the file called name. lang selects the OCR
// language for scanned pages and photos.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte, lang models.Language) (*Result, error) {
	ext := extension(name)
	if !Supported(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyFile)
	}

	start := time.Now()
	langCode := ocr.LanguageCode(lang)

	var (
		res *Result
		err error
	)
	switch ext {
	case ".txt":
		res = &Result{Text: decodeText(data), Method: MethodPlainText}
	case ".docx":
		var text string
		if text, err = extractDOCX(data); err == nil {
			res = &Result{Text: text, Method: MethodDOCX}
		}
	case ".jpg", ".jpeg", ".png":
		res, err = e.extractImage(ctx, data, langCode)
	case ".pdf":
		res, err = e.extractPDF(ctx, data, langCode)
	}
	if err != nil {
		e.log.Warn().Err(err).Str("file", name).Str("ext", ext).Msg("Extraction failed")
		return nil, err
	}

	if strings.TrimSpace(res.Text) == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNoReadableText)
	}

	e.log.Info().
		Str("file", name).
		Str("method", string(res.Method)).
		Int("pages", res.Pages).
		Int("chars", len(res.Text)).
		Dur("took", time.Since(start)).
		Msg("Extracted document text")

	return res, nil
}

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
