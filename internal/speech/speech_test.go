package speech

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclens/pkg/models"
)

type fakeSynth struct {
	chunks []string
	voices []string
	err    error
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	f.chunks = append(f.chunks, text)
	f.voices = append(f.voices, voice)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("[" + text + "]"), nil
}

func TestCleanStripsEmojiAndMarkdown(t *testing.T) {
	in := "## 🔍 **Summary**\n⚠️ Pay __rent__ by the *5th* ✅ 🇮🇳"
	assert.Equal(t, "Summary\n Pay rent by the 5th", Clean(in))

	assert.Equal(t, "Doctor  advice", Clean("Doctor 🩺 advice"))
	assert.Equal(t, "Time  now", Clean("Time ⏰ now"))
	assert.Equal(t, "Blood  heart", Clean("Blood 🩸 heart 🫀"))
	assert.Equal(t, "Wait  then go", Clean("Wait ⌛ then go ➡️"))
	assert.Equal(t, "Next  step", Clean("Next → step 〰 ㊗ 🀄"))
}

func TestCleanKeepsIndicScripts(t *testing.T) {
	in := "**सारांश**: किराया 5 तारीख तक 🙏"
	assert.Equal(t, "सारांश: किराया 5 तारीख तक", Clean(in))
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "hi-IN", VoiceFor(models.LanguageHindi))
	assert.Equal(t, "te-IN", VoiceFor(models.LanguageTelugu))
	assert.Equal(t, "ur-IN", VoiceFor(models.LanguageUrdu))
	assert.Equal(t, "en-IN", VoiceFor(models.LanguageEnglish))
	assert.Equal(t, "en-IN", VoiceFor(models.LanguageAuto))
	assert.Equal(t, "en-IN", VoiceFor("Klingon"))
}

func TestRenderCleansAndSelectsVoice(t *testing.T) {
	synth := &fakeSynth{}
	r := NewRenderer(synth)

	audio, err := r.Render(context.Background(), "**Take** rest 😊", models.LanguageTelugu)
	require.NoError(t, err)
	assert.Equal(t, []byte("[Take rest]"), audio)
	assert.Equal(t, []string{"te-IN"}, synth.voices)
}

func TestRenderNothingToSpeak(t *testing.T) {
	synth := &fakeSynth{}
	_, err := NewRenderer(synth).Render(context.Background(), "🔥🔥 ** ##", models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrNothingToSpeak)
	assert.Empty(t, synth.chunks)
}

func TestRenderSynthesisFailure(t *testing.T) {
	synth := &fakeSynth{err: errors.New("quota")}
	_, err := NewRenderer(synth).Render(context.Background(), "hello", models.LanguageEnglish)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSynthesisFailed)

	var speechErr *Error
	require.ErrorAs(t, err, &speechErr)
	assert.Equal(t, "en-IN", speechErr.Voice)
	assert.Len(t, synth.chunks, 1, "no retry")
}

func TestRenderDisabled(t *testing.T) {
	_, err := NewRenderer(nil).Render(context.Background(), "hello", models.LanguageEnglish)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestRenderChunksLongText(t *testing.T) {
	synth := &fakeSynth{}
	r := NewRenderer(synth)
	r.maxChunkBytes = 40

	text := "The first sentence is here. The second sentence follows! Is there a third? Yes."
	audio, err := r.Render(context.Background(), text, models.LanguageEnglish)
	require.NoError(t, err)

	require.Greater(t, len(synth.chunks), 1)
	for _, c := range synth.chunks {
		assert.LessOrEqual(t, len(c), 40)
	}
	assert.Equal(t, "The first sentence is here.", synth.chunks[0])
	assert.Equal(t, strings.Join(synth.chunks, " "), text)
	assert.True(t, strings.HasPrefix(string(audio), "[The first sentence is here.]"))
}

func TestSplitChunksRespectsRuneBoundaries(t *testing.T) {
	text := strings.Repeat("क", 50) // 3 bytes per rune, no breaks
	chunks := splitChunks(text, 10)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c))
		assert.LessOrEqual(t, len(c), 10)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}
