package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"doclens/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "doclens",
	Short: "DocLens - multilingual document summary and Q&A",
	Long: `DocLens reads legal, medical and agricultural documents (PDF, DOCX, TXT,
JPG, PNG), explains them in plain language and answers questions about them
in English, Hindi, Telugu or Urdu.

Text is taken from the document itself when possible and recognised with OCR
otherwise. Summaries and answers come from a Gemini model; answers can be read
aloud with Google Cloud Text-to-Speech.

Run "doclens serve" for the HTTP API, or use the commands below directly.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("DocLens CLI executed")

		fmt.Println("Welcome to DocLens!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
