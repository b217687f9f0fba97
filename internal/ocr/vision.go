package ocr

import (
	"context"
	"fmt"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"

	"doclens/internal/gcp"
	"doclens/internal/logger"
)

// VisionEngine implements Engine using Google Cloud Vision document text detection.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
	log    zerolog.Logger
}

// NewVisionEngine creates a Vision client. apiKey (OCR_API_KEY) takes
// precedence over GOOGLE_CREDENTIALS / GOOGLE_APPLICATION_CREDENTIALS;
// with neither, Application Default Credentials are tried.
func NewVisionEngine(ctx context.Context, apiKey string) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	client, err := vision.NewImageAnnotatorClient(ctx, gcp.ClientOptions(apiKey)...)
	if err != nil {
		if !gcp.HasCredentials(apiKey) {
			return nil, WrapOCRError(op, "vision", ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, "vision", err, "failed to create Vision client")
	}

	return NewVisionEngineWithClient(client), nil
}

// NewVisionEngineWithClient creates an engine with an explicit client (for testing).
func NewVisionEngineWithClient(client *vision.ImageAnnotatorClient) *VisionEngine {
	return &VisionEngine{
		client: client,
		log:    logger.WithComponent("ocr-vision"),
	}
}

// Name implements Engine.
func (v *VisionEngine) Name() string { return "vision" }

// Recognize implements Engine.
func (v *VisionEngine) Recognize(ctx context.Context, image []byte, langCode string) (string, error) {
	const op = "Recognize"

	if len(image) == 0 {
		return "", NewOCRError(op, v.Name(), fmt.Errorf("%w: %w", ErrEngineFailed, ErrEmptyImage), "")
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{
					LanguageHints: []string{languageHint(langCode)},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", engineFailure(op, v.Name(), fmt.Errorf("Vision API call failed: %w", err))
	}
	if len(resp.Responses) == 0 {
		return "", engineFailure(op, v.Name(), fmt.Errorf("no response from Vision API"))
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return "", engineFailure(op, v.Name(), fmt.Errorf("Vision API error: %s", imageResp.Error.Message))
	}
	if imageResp.FullTextAnnotation == nil {
		v.log.Debug().Str("lang", langCode).Msg("Vision found no text")
		return "", nil
	}

	return strings.TrimSpace(imageResp.FullTextAnnotation.Text), nil
}

// Close closes the underlying Vision client.
func (v *VisionEngine) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}
