package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// minTextLayerRunes is the length a PDF text layer must exceed to be used
// without OCR.
const minTextLayerRunes = 20

func (e *Extractor) extractPDF(ctx context.Context, data []byte, langCode string) (*Result, error) {
	var warnings []string

	if e.textLayer != nil {
		pages, err := e.textLayer.PageTexts(data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("text layer: %v", err))
			e.log.Debug().Err(err).Msg("PDF text layer unreadable")
		} else {
			text := strings.TrimSpace(strings.Join(pages, "\n"))
			if utf8.RuneCountInString(text) > minTextLayerRunes {
				return &Result{Text: text, Method: MethodPDFTextLayer, Pages: len(pages), Warnings: warnings}, nil
			}
			e.log.Debug().Int("runes", utf8.RuneCountInString(text)).Msg("PDF text layer too short, falling back to OCR")
		}
	}

	// ocrErr is the last OCR failure; it is reported instead of "no text"
	// when no page was recognised by any stage.
	var (
		ocrErr     error
		recognised bool
	)
	stages := []struct {
		rasterizer Rasterizer
		method     Method
	}{
		{e.primary, MethodPDFPoppler},
		{e.alternate, MethodPDFMuPDF},
	}
	for _, stage := range stages {
		if stage.rasterizer == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, report, err := e.ocrPages(ctx, stage.rasterizer, data, langCode)
		warnings = append(warnings, report.warnings...)
		recognised = recognised || report.recognised
		if report.lastErr != nil {
			ocrErr = report.lastErr
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			warnings = append(warnings, fmt.Sprintf("%s: %v", stage.rasterizer.Name(), err))
			e.log.Warn().Err(err).Str("rasterizer", stage.rasterizer.Name()).Msg("PDF rasterisation failed")
			continue
		}
		if res != nil {
			res.Method = stage.method
			res.Warnings = warnings
			return res, nil
		}
	}

	if !recognised && ocrErr != nil {
		return nil, fmt.Errorf("no page could be recognised (%d warnings): %w", len(warnings), ocrErr)
	}
	return nil, ErrNoReadableText
}

// pageReport summarises one rasterise-and-OCR stage.
type pageReport struct {
	warnings   []string
	recognised bool
	lastErr    error
}

// ocrPages rasterises the PDF and recognises each page. Pages whose OCR
// fails are skipped. A nil result means no page produced text.
func (e *Extractor) ocrPages(ctx context.Context, r Rasterizer, data []byte, langCode string) (*Result, pageReport, error) {
	var report pageReport

	images, err := r.Rasterize(ctx, data)
	if err != nil {
		return nil, report, err
	}

	var texts []string
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		normalized, err := normalizeImage(img)
		if err != nil {
			report.warnings = append(report.warnings, fmt.Sprintf("%s page %d: %v", r.Name(), i+1, err))
			continue
		}

		text, err := e.ocr.Recognize(ctx, normalized, langCode)
		if err != nil {
			if ctx.Err() != nil {
				return nil, report, ctx.Err()
			}
			report.warnings = append(report.warnings, fmt.Sprintf("%s page %d: %v", r.Name(), i+1, err))
			report.lastErr = err
			e.log.Warn().Err(err).Int("page", i+1).Str("rasterizer", r.Name()).Msg("Skipping page after OCR error")
			continue
		}
		report.recognised = true
		texts = append(texts, text)
	}

	combined := strings.TrimSpace(strings.Join(texts, "\n"))
	if combined == "" {
		return nil, report, nil
	}
	return &Result{Text: combined, Pages: len(images)}, report, nil
}
