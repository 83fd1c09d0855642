package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var knownCmd = &cobra.Command{
	Use:   "known",
	Short: "Work with the known-words store",
	Long:  `Commands for listing and editing the words registered in the known-words store.`,
}

var knownListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known words",
	Args:  cobra.NoArgs,
	RunE:  runKnownList,
}

var knownAddCmd = &cobra.Command{
	Use:   "add <word>...",
	Short: "Register words as known",
	Long: `Register one or more words with the known-words store in a single
request. Words already known are reported as skipped.

Example:
  scribe known add apple banana`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKnownAdd,
}

var knownRemoveCmd = &cobra.Command{
	Use:   "remove <word>",
	Short: "Forget a known word",
	Args:  cobra.ExactArgs(1),
	RunE:  runKnownRemove,
}

func init() {
	rootCmd.AddCommand(knownCmd)
	knownCmd.AddCommand(knownListCmd)
	knownCmd.AddCommand(knownAddCmd)
	knownCmd.AddCommand(knownRemoveCmd)
}

func runKnownList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg, stderrLogger(cfg))

	words, err := client.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing known words: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, w := range words {
		fmt.Fprintln(out, w)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d known words at %s\n", len(words), client.BaseURL())
	return nil
}

func runKnownAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg, stderrLogger(cfg))

	res, err := client.Register(commandContext(cmd), args)
	if err != nil {
		return fmt.Errorf("registering words: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res)
	return nil
}

func runKnownRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg, stderrLogger(cfg))

	if err := client.Remove(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("removing %q: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
	return nil
}
