// Package ocr turns page and photo images into text.
//
// Three engines are available behind the Engine interface:
//   - TesseractEngine runs a local tesseract binary (TESSERACT_PATH).
//   - VisionEngine calls Google Cloud Vision document text detection,
//     authenticated by OCR_API_KEY or Google service account credentials.
//   - DocumentAIEngine calls a Google Document AI OCR processor.
//
// Callers should go through an Adapter, which memoises results by the exact
// (image bytes, language code) pair for a bounded window so that re-rendered
// pages are not sent to the engine twice.
//
// An engine failure is always an *OCRError wrapping ErrEngineFailed;
// context cancellation and deadlines are returned as they are. A
// successful call that finds nothing returns "" and a nil error, so callers
// can tell "engine failed" apart from "page has no text".
package ocr

import (
	"context"
	"strings"

	"doclens/pkg/models"
)

// Engine recognises text in a single encoded image (PNG or JPEG).
type Engine interface {
	// Name identifies the engine in logs.
	Name() string

	// Recognize returns the text found in image. langCode is a tesseract
	// style language code such as "eng" or "hin".
	Recognize(ctx context.Context, image []byte, langCode string) (string, error)
}

// Recognizer is what the document extractor depends on. Adapter implements it.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, langCode string) (string, error)
}

// DefaultLanguageCode is used when no language, or Auto, is selected.
const DefaultLanguageCode = "eng"

var languageCodes = map[models.Language]string{
	models.LanguageEnglish: "eng",
	models.LanguageHindi:   "hin",
	models.LanguageTelugu:  "tel",
	models.LanguageUrdu:    "urd",
}

// LanguageCode maps an interface language to the OCR language code.
func LanguageCode(lang models.Language) string {
	if code, ok := languageCodes[lang]; ok {
		return code
	}
	return DefaultLanguageCode
}

// languageHint converts a tesseract code to the BCP-47 hint the Google APIs expect.
func languageHint(langCode string) string {
	switch strings.ToLower(langCode) {
	case "hin":
		return "hi"
	case "tel":
		return "te"
	case "urd":
		return "ur"
	case "eng", "":
		return "en"
	default:
		return langCode
	}
}
