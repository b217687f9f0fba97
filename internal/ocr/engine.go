package ocr

import (
	"context"
	"fmt"

	"doclens/internal/config"
)

// NewEngine builds the engine selected by OCR_ENGINE.
func NewEngine(ctx context.Context, cfg *config.Config) (Engine, error) {
	switch cfg.OCREngine {
	case config.OCREngineTesseract, "":
		return NewTesseractEngine(cfg.TesseractPath), nil
	case config.OCREngineVision:
		return NewVisionEngine(ctx, cfg.OCRAPIKey)
	case config.OCREngineDocumentAI:
		return NewDocumentAIEngine(ctx, DocumentAIConfig{
			ProjectID:   cfg.GoogleCloudProject,
			Location:    cfg.GoogleCloudLocation,
			ProcessorID: cfg.DocumentAIProcessorID,
		})
	default:
		return nil, NewOCRError("NewEngine", cfg.OCREngine, ErrEngineUnavailable, fmt.Sprintf("unknown engine %q", cfg.OCREngine))
	}
}

// NewAdapterFromConfig builds the configured engine wrapped in a cache.
func NewAdapterFromConfig(ctx context.Context, cfg *config.Config) (*Adapter, error) {
	engine, err := NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewAdapter(engine, cfg.OCRCacheTTL), nil
}
