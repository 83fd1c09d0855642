package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/scribe/internal/session"
)

var importMode string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a lexicon file and open it in the TUI",
	Long: `Import a word-book lexicon (a JSON document or JSON Lines) and open the
TUI directly in the chosen workflow.

Examples:
  scribe import CET4_1.json
  scribe import words.jsonl --mode triage`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importMode, "mode", "m", "selection", "Workflow to start in: selection, triage")
}

func runImport(cmd *cobra.Command, args []string) error {
	mode, ok := session.ParseMode(importMode)
	if !ok {
		return fmt.Errorf("unknown mode %q (want selection or triage)", importMode)
	}
	return runConsole(commandContext(cmd), args[0], mode)
}
