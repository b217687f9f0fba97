package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"doclens/internal/config"
	"doclens/internal/extract"
	"doclens/internal/i18n"
	"doclens/internal/logger"
	"doclens/internal/router"
	"doclens/pkg/models"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Explain a document in plain language",
	Long: `Extract a document's text and have the sector persona explain it in
simple language: what the document is, the key points, what to do next and
the risks to watch for.

The summary is written in --lang; with "auto" it follows the document's own
language.

Required environment variables:
  GEMINI_API_KEY - API key for the Gemini model`,
	Example: `  # Summarise a rental agreement
  doclens summarize lease.pdf --sector law

  # Summarise a lab report in Telugu and save it
  doclens summarize report.pdf --sector medical --lang telugu -o summary.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

// SummaryOutput represents the JSON output structure when --json flag is used
type SummaryOutput struct {
	FileName   string          `json:"file_name"`
	Sector     models.Sector   `json:"sector"`
	Language   models.Language `json:"language"`
	Method     extract.Method  `json:"method"`
	Characters int             `json:"characters"`
	Summary    string          `json:"summary"`
	Disclaimer string          `json:"disclaimer"`
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringP("sector", "s", "", "Sector persona (law, medical, agriculture)")
	summarizeCmd.Flags().StringP("lang", "l", "auto", "Answer language (auto, english, hindi, telugu, urdu)")
	summarizeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	summarizeCmd.Flags().Bool("json", false, "Output as JSON")
	summarizeCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
	_ = summarizeCmd.MarkFlagRequired("sector")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("summarize")

	sectorFlag, _ := cmd.Flags().GetString("sector")
	langFlag, _ := cmd.Flags().GetString("lang")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	path := args[0]

	sector, err := parseSectorFlag(sectorFlag)
	if err != nil {
		return err
	}
	lang, err := parseLanguageFlag(langFlag)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", path).
		Str("sector", string(sector)).
		Str("lang", string(lang)).
		Int("timeout", timeoutSecs).
		Msg("Starting document summary")

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

	result, err := extractFile(ctx, cfg, path, lang, log)
	if err != nil {
		return err
	}

	startTime := time.Now()
	reply, err := responder.Respond(ctx, router.Request{
		Sector:   sector,
		Mode:     models.ModeSummary,
		Language: lang,
		Document: result.Text,
	})
	if err != nil {
		return handleLLMError(err, log)
	}

	log.Info().
		Str("language", string(reply.Language)).
		Int("summary_length", len(reply.Text)).
		Dur("duration", time.Since(startTime)).
		Msg("Summary completed successfully")

	disclaimer := i18n.Disclaimer(reply.Language, sector)

	var outputData []byte
	if jsonOutput {
		outputData, err = json.MarshalIndent(SummaryOutput{
			FileName:   filepath.Base(path),
			Sector:     sector,
			Language:   reply.Language,
			Method:     result.Method,
			Characters: len([]rune(result.Text)),
			Summary:    reply.Text,
			Disclaimer: disclaimer,
		}, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = append(outputData, '\n')
	} else {
		outputData = []byte(formatAnswer(reply.Text, disclaimer))
	}

	return writeOutput(outputPath, outputData, log)
}

// extractFile validates, reads and extracts one input file.
func extractFile(ctx context.Context, cfg *config.Config, path string, lang models.Language, log zerolog.Logger) (*extract.Result, error) {
	fileInfo, err := validateInputFile(path, cfg.MaxUploadBytes(), log)
	if err != nil {
		return nil, err
	}

	extractor, closer, err := newExtractor(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(closer, log)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to read file")
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := extractor.Extract(ctx, filepath.Base(path), data, lang)
	if err != nil {
		return nil, handleExtractError(err, log)
	}

	log.Info().
		Str("file", path).
		Int64("size", fileInfo.Size()).
		Str("method", string(result.Method)).
		Int("text_length", len(result.Text)).
		Msg("Document text extracted")
	return result, nil
}

func formatAnswer(text, disclaimer string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(text, "\n"))
	b.WriteString("\n")
	if disclaimer != "" {
		b.WriteString("\n---\n")
		b.WriteString(disclaimer)
		b.WriteString("\n")
	}
	return b.String()
}
