package ocr_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"doclens/internal/config"
	"doclens/internal/ocr"
	"doclens/pkg/models"
)

// Example shows recognising a photo through the configured engine.
func Example() {
	// .env is loaded by main via godotenv before config.Load.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adapter, err := ocr.NewAdapterFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create OCR adapter: %v", err)
	}

	image, err := os.ReadFile("prescription.png")
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}

	text, err := adapter.Recognize(ctx, image, ocr.LanguageCode(models.LanguageHindi))
	if err != nil {
		log.Fatalf("OCR failed: %v", err)
	}

	fmt.Printf("Extracted text (%d characters):\n%s\n", len(text), text)
}

// ExampleAdapter_Recognize shows telling an engine failure apart from a page without text.
func ExampleAdapter_Recognize() {
	ctx := context.Background()
	adapter := ocr.NewAdapter(ocr.NewTesseractEngine("tesseract"), time.Hour)

	image, err := os.ReadFile("scan.png")
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}

	text, err := adapter.Recognize(ctx, image, "eng")
	switch {
	case errors.Is(err, ocr.ErrEngineUnavailable):
		fmt.Println("tesseract is not installed")
	case errors.Is(err, ocr.ErrEngineFailed):
		fmt.Printf("engine error: %v\n", err)
	case text == "":
		fmt.Println("no text on this page")
	default:
		fmt.Println(text)
	}
}
