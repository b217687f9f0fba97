package extract_test

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"doclens/internal/config"
	"doclens/internal/extract"
	"doclens/internal/ocr"
	"doclens/pkg/models"
)

// Example extracts the text of a scanned PDF, falling back to OCR as needed.
func Example() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	adapter, err := ocr.NewAdapterFromConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create OCR adapter: %v", err)
	}
	extractor := extract.NewFromConfig(cfg, adapter)

	path := "land_record.pdf"
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	res, err := extractor.Extract(ctx, filepath.Base(path), data, models.LanguageTelugu)
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		log.Fatalf("Choose a PDF, DOCX, TXT, JPG or PNG file")
	case errors.Is(err, extract.ErrNoReadableText):
		log.Fatalf("Could not extract readable text from %s", path)
	case err != nil:
		log.Fatalf("Extraction failed: %v", err)
	}

	fmt.Printf("Method: %s, pages: %d\n", res.Method, res.Pages)
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Println(res.Text)
}
