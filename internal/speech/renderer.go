// Package speech reads assistant replies aloud.
//
// Text is cleaned of emoji and markdown, mapped to a voice by language, and
// synthesised to MP3. Audio is returned to the caller and never stored.
package speech

import (
	"bytes"
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"doclens/internal/logger"
	"doclens/pkg/models"
)

// Synthesizer turns plain text into MP3 audio for a voice locale.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// DefaultMaxChunkBytes keeps each request under the synthesizer's 5000 byte input limit.
const DefaultMaxChunkBytes = 4500

// Renderer cleans text and synthesises it in chunks.
type Renderer struct {
	synth         Synthesizer
	maxChunkBytes int
	log           zerolog.Logger
}

// NewRenderer creates a renderer. A nil synth yields a renderer that always
// returns ErrDisabled.
func NewRenderer(synth Synthesizer) *Renderer {
	return &Renderer{
		synth:         synth,
		maxChunkBytes: DefaultMaxChunkBytes,
		log:           logger.WithComponent("speech"),
	}
}

// Enabled reports whether a synthesizer is configured.
func (r *Renderer) Enabled() bool {
	return r != nil && r.synth != nil
}

// Render returns MP3 audio for text in lang. Synthesis errors are returned
// as *Error wrapping ErrSynthesisFailed and are not retried.
func (r *Renderer) Render(ctx context.Context, text string, lang models.Language) ([]byte, error) {
	const op = "Render"

	voice := VoiceFor(lang)
	if !r.Enabled() {
		return nil, &Error{Op: op, Voice: voice, Err: ErrDisabled}
	}

	cleaned := Clean(text)
	if cleaned == "" {
		return nil, &Error{Op: op, Voice: voice, Err: ErrNothingToSpeak}
	}

	start := time.Now()
	chunks := splitChunks(cleaned, r.maxChunkBytes)

	var audio bytes.Buffer
	for i, chunk := range chunks {
		mp3, err := r.synth.Synthesize(ctx, chunk, voice)
		if err != nil {
			r.log.Warn().Err(err).Str("voice", voice).Int("chunk", i+1).Int("chunks", len(chunks)).Msg("Speech synthesis failed")
			return nil, WrapError(op, voice, err, "")
		}
		audio.Write(mp3)
	}

	r.log.Debug().
		Str("voice", voice).
		Int("chars", utf8.RuneCountInString(cleaned)).
		Int("chunks", len(chunks)).
		Int("bytes", audio.Len()).
		Dur("took", time.Since(start)).
		Msg("Speech rendered")

	return audio.Bytes(), nil
}

// splitChunks splits text into pieces of at most limit bytes, preferring
// sentence ends, then whitespace, then any rune boundary.
func splitChunks(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := lastBreak(text[:limit], isSentenceEnd)
		if cut <= 0 {
			cut = lastBreak(text[:limit], isSpace)
		}
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		if chunk := strings.TrimSpace(text[:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// lastBreak returns the byte offset just after the last rune in s matching fn.
func lastBreak(s string, fn func(rune) bool) int {
	for i := len(s); i > 0; {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		if fn(r) {
			return i
		}
		i -= size
	}
	return 0
}

func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '!', '?', '\n', '।', '۔', '؟':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
