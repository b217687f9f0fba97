package ocr

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"doclens/internal/gcp"
)

// DocumentAIConfig identifies the Document AI OCR processor to call.
type DocumentAIConfig struct {
	ProjectID        string
	Location         string
	ProcessorID      string
	ProcessorVersion string
}

// processorName builds the full resource name for the configured processor.
func (c DocumentAIConfig) processorName() string {
	if c.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			c.ProjectID, c.Location, c.ProcessorID, c.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		c.ProjectID, c.Location, c.ProcessorID)
}

// DocumentAIEngine implements Engine with a Google Document AI OCR processor.
type DocumentAIEngine struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
}

// NewDocumentAIEngine creates a processor client on the regional endpoint for cfg.Location.
func NewDocumentAIEngine(ctx context.Context, cfg DocumentAIConfig) (*DocumentAIEngine, error) {
	const op = "NewDocumentAIEngine"

	if cfg.ProjectID == "" || cfg.ProcessorID == "" {
		return nil, NewOCRError(op, "documentai", ErrEngineUnavailable, "project and processor ID are required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}

	var opts []option.ClientOption
	opts = append(opts, gcp.RegionalEndpoint("documentai", cfg.Location)...)
	opts = append(opts, gcp.ClientOptionsFromEnv()...)

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		if !gcp.HasCredentials("") {
			return nil, WrapOCRError(op, "documentai", ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, "documentai", err, fmt.Sprintf("failed to create Document AI client for location: %s", cfg.Location))
	}

	return &DocumentAIEngine{client: client, config: cfg}, nil
}

// Name implements Engine.
func (d *DocumentAIEngine) Name() string { return "documentai" }

// Recognize implements Engine. Document AI detects the language itself, so
// langCode is not sent.
func (d *DocumentAIEngine) Recognize(ctx context.Context, image []byte, langCode string) (string, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return "", NewOCRError(op, d.Name(), fmt.Errorf("%w: %w", ErrEngineFailed, ErrEmptyImage), "")
	}

	req := &documentaipb.ProcessRequest{
		Name: d.config.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  image,
				MimeType: http.DetectContentType(image),
			},
		},
	}

	resp, err := d.client.ProcessDocument(ctx, req)
	if err != nil {
		return "", engineFailure(op, d.Name(), fmt.Errorf("Document AI error: %w", err))
	}
	if resp.Document == nil {
		return "", engineFailure(op, d.Name(), fmt.Errorf("no document in response"))
	}

	return strings.TrimSpace(resp.Document.Text), nil
}

// Close closes the underlying Document AI client.
func (d *DocumentAIEngine) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
