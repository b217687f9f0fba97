package speech

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"doclens/internal/gcp"
)

// GoogleSynthesizer implements Synthesizer with Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	client *texttospeech.Client
}

// NewGoogleSynthesizer creates a Text-to-Speech client from the environment credentials.
func NewGoogleSynthesizer(ctx context.Context) (*GoogleSynthesizer, error) {
	client, err := texttospeech.NewClient(ctx, gcp.ClientOptionsFromEnv()...)
	if err != nil {
		return nil, WrapError("NewGoogleSynthesizer", "", err, "failed to create Text-to-Speech client")
	}
	return &GoogleSynthesizer{client: client}, nil
}

// Synthesize implements Synthesizer.
func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_NEUTRAL,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: Text-to-Speech API call failed: %v", ErrSynthesisFailed, err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("%w: empty audio content", ErrSynthesisFailed)
	}
	return resp.AudioContent, nil
}

// Close closes the underlying client.
func (g *GoogleSynthesizer) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
