package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"doclens/internal/extract"
	"doclens/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract text from a PDF, DOCX, TXT or image file",
	Long: `Extract the text of a document the same way the assistant does before
summarising it.

PDFs are read from their text layer first. Scanned PDFs are rasterised with
pdftoppm (Poppler) or, failing that, mutool (MuPDF) and recognised with the
configured OCR engine. Images go straight to OCR; DOCX and TXT are read
directly.

Optional environment variables:
  OCR_ENGINE - tesseract (default), vision or documentai
  TESSERACT_PATH, PDFTOPPM_PATH, MUTOOL_PATH - binary locations
  OCR_API_KEY - API key for the Vision engine`,
	Example: `  # Extract text to stdout
  doclens extract lease.pdf

  # Recognise a Hindi scan and save the text
  doclens extract prescription.jpg --lang hindi -o prescription.txt

  # Output as JSON with extraction details
  doclens extract soil-report.pdf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

// ExtractOutput represents the JSON output structure when --json flag is used
type ExtractOutput struct {
	FileName           string         `json:"file_name"`
	FileSize           int64          `json:"file_size"`
	Method             extract.Method `json:"method"`
	Pages              int            `json:"pages,omitempty"`
	Characters         int            `json:"characters"`
	Warnings           []string       `json:"warnings,omitempty"`
	ProcessingDuration string         `json:"processing_duration"`
	Text               string         `json:"text"`
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().StringP("lang", "l", "auto", "Document language hint for OCR (auto, english, hindi, telugu, urdu)")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	langFlag, _ := cmd.Flags().GetString("lang")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	path := args[0]

	log.Info().
		Str("file", path).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Str("lang", langFlag).
		Int("timeout", timeoutSecs).
		Msg("Starting text extraction")

	lang, err := parseLanguageFlag(langFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	fileInfo, err := validateInputFile(path, cfg.MaxUploadBytes(), log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	extractor, closer, err := newExtractor(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQuietly(closer, log)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("Failed to read file")
		return fmt.Errorf("failed to read file: %w", err)
	}

	startTime := time.Now()
	result, err := extractor.Extract(ctx, filepath.Base(path), data, lang)
	if err != nil {
		return handleExtractError(err, log)
	}
	duration := time.Since(startTime)

	log.Info().
		Str("method", string(result.Method)).
		Int("pages", result.Pages).
		Int("warnings", len(result.Warnings)).
		Int("text_length", len(result.Text)).
		Dur("duration", duration).
		Msg("Extraction completed successfully")

	for _, w := range result.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}

	var outputData []byte
	if jsonOutput {
		outputData, err = json.MarshalIndent(ExtractOutput{
			FileName:           filepath.Base(fileInfo.Name()),
			FileSize:           fileInfo.Size(),
			Method:             result.Method,
			Pages:              result.Pages,
			Characters:         len([]rune(result.Text)),
			Warnings:           result.Warnings,
			ProcessingDuration: duration.String(),
			Text:               result.Text,
		}, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
	} else {
		outputData = []byte(result.Text)
	}

	if !strings.HasSuffix(string(outputData), "\n") {
		outputData = append(outputData, '\n')
	}
	return writeOutput(outputPath, outputData, log)
}
