package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/scribe/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize scribe configuration",
	Long: `Write a config.yaml with the default settings to your config directory.

Edit it afterwards to point api.base_url at your known-words store or to
change the import defaults. Any key can also be overridden with a
SCRIBE_ environment variable, e.g. SCRIBE_API_BASE_URL.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	path := filepath.Join(configDir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.Save(configDir, config.Default(configDir)); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration written to %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'scribe serve' to start a local known-words store")
	fmt.Fprintln(out, "  2. Run 'scribe inspect <file>' to check a lexicon")
	fmt.Fprintln(out, "  3. Run 'scribe' to import it and mark the words you know")
	return nil
}
