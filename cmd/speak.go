package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"doclens/internal/logger"
	"doclens/internal/router"
	"doclens/internal/speech"
	"doclens/pkg/models"
)

var speakCmd = &cobra.Command{
	Use:   "speak [text|-]",
	Short: "Read text aloud as an MP3 file",
	Long: `Render text as MP3 speech with Google Cloud Text-to-Speech.

Markdown markup, emoji and other symbols are stripped before synthesis.
Long text is split at sentence boundaries and the audio is joined. Pass "-"
to read the text from stdin.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  TTS_ENABLED - must not be false`,
	Example: `  # Speak a sentence in Urdu
  doclens speak "آپ کا کرایہ پانچ تاریخ کو واجب ہے" --lang urdu -o answer.mp3

  # Read a saved summary aloud
  doclens summarize lease.pdf --sector law | doclens speak - -o summary.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)

	speakCmd.Flags().StringP("lang", "l", "auto", "Voice language (auto, english, hindi, telugu, urdu)")
	speakCmd.Flags().StringP("output", "o", "", "Output MP3 file path")
	speakCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
	_ = speakCmd.MarkFlagRequired("output")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("speak")

	langFlag, _ := cmd.Flags().GetString("lang")
	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	lang, err := parseLanguageFlag(langFlag)
	if err != nil {
		return err
	}

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return handleSpeechError(speech.ErrNothingToSpeak, log)
	}
	if lang == models.LanguageAuto {
		lang = router.DetectLanguage(text)
	}

	log.Info().
		Str("lang", string(lang)).
		Str("voice", speech.VoiceFor(lang)).
		Int("text_length", len(text)).
		Str("output", outputPath).
		Msg("Starting speech rendering")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if !cfg.TTSEnabled {
		return handleSpeechError(speech.ErrDisabled, log)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	synth, err := speech.NewGoogleSynthesizer(ctx)
	if err != nil {
		return handleSpeechError(err, log)
	}
	defer closeQuietly(synth, log)

	startTime := time.Now()
	audio, err := speech.NewRenderer(synth).Render(ctx, text, lang)
	if err != nil {
		return handleSpeechError(err, log)
	}

	log.Info().
		Int("audio_bytes", len(audio)).
		Dur("duration", time.Since(startTime)).
		Msg("Speech rendered successfully")

	return writeOutput(outputPath, audio, log)
}
