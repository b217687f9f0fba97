package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"doclens/internal/i18n"
	"doclens/internal/logger"
	"doclens/internal/router"
	"doclens/pkg/models"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a document or the sector in general",
	Long: `Ask the sector persona a question.

With --file the question is answered from that document only; without it the
persona answers as a general sector assistant. Medical emergencies (and other
urgent situations) are recognised in every supported language and answered
with immediate safety steps first.

Required environment variables:
  GEMINI_API_KEY - API key for the Gemini model`,
	Example: `  # Ask about a document
  doclens ask "When is the rent due?" --sector law --file lease.pdf

  # Ask a general question in Hindi
  doclens ask "गेहूं में कौन सी खाद डालें?" --sector agriculture --lang hindi`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// AskOutput represents the JSON output structure when --json flag is used
type AskOutput struct {
	Question  string          `json:"question"`
	Answer    string          `json:"answer"`
	Mode      models.Mode     `json:"mode"`
	Sector    models.Sector   `json:"sector"`
	Language  models.Language `json:"language"`
	Emergency bool            `json:"emergency"`
	File      string          `json:"file,omitempty"`
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringP("sector", "s", "", "Sector persona (law, medical, agriculture)")
	askCmd.Flags().StringP("file", "f", "", "Document to answer from (omit for a general question)")
	askCmd.Flags().StringP("lang", "l", "auto", "Answer language (auto, english, hindi, telugu, urdu)")
	askCmd.Flags().Bool("json", false, "Output as JSON")
	askCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
	_ = askCmd.MarkFlagRequired("sector")
}

func runAsk(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("ask")

	sectorFlag, _ := cmd.Flags().GetString("sector")
	filePath, _ := cmd.Flags().GetString("file")
	langFlag, _ := cmd.Flags().GetString("lang")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("the question is empty")
	}

	sector, err := parseSectorFlag(sectorFlag)
	if err != nil {
		return err
	}
	lang, err := parseLanguageFlag(langFlag)
	if err != nil {
		return err
	}

	mode := models.ModeGeneral
	if filePath != "" {
		mode = models.ModeChat
	}

	log.Info().
		Str("sector", string(sector)).
		Str("mode", string(mode)).
		Str("lang", string(lang)).
		Str("file", filePath).
		Msg("Starting question")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	responder, err := newResponder(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	req := router.Request{
		Sector:   sector,
		Mode:     mode,
		Language: lang,
		Query:    question,
	}
	if mode == models.ModeChat {
		result, err := extractFile(ctx, cfg, filePath, lang, log)
		if err != nil {
			return err
		}
		req.Document = result.Text
	}

	startTime := time.Now()
	reply, err := responder.Respond(ctx, req)
	if err != nil {
		return handleLLMError(err, log)
	}

	log.Info().
		Bool("emergency", reply.Emergency).
		Str("language", string(reply.Language)).
		Int("answer_length", len(reply.Text)).
		Dur("duration", time.Since(startTime)).
		Msg("Question answered successfully")

	if jsonOutput {
		out, err := json.MarshalIndent(AskOutput{
			Question:  question,
			Answer:    reply.Text,
			Mode:      mode,
			Sector:    sector,
			Language:  reply.Language,
			Emergency: reply.Emergency,
			File:      filePath,
		}, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		return writeOutput("", append(out, '\n'), log)
	}

	return writeOutput("", []byte(formatAnswer(reply.Text, i18n.Disclaimer(reply.Language, sector))), log)
}
