// Package cmd contains all CLI commands for scribe.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/scribe/internal/clipboard"
	"github.com/f3rmion/scribe/internal/config"
	"github.com/f3rmion/scribe/internal/importer"
	"github.com/f3rmion/scribe/internal/knownwords"
	"github.com/f3rmion/scribe/internal/lexicon"
	"github.com/f3rmion/scribe/internal/logging"
	"github.com/f3rmion/scribe/internal/session"
	"github.com/f3rmion/scribe/internal/tui"
	"github.com/f3rmion/scribe/internal/tui/banner"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Import word-book lexicons and mark the words you know",
	Long: `Scribe imports vocabulary files exported from word-book apps, lets you
decide which words you already know, and registers them with a
known-words store.

Two workflows are available:
  - Select: tick the known words in a list and submit them at once
  - Triage: go through the words one card at a time, then submit the
    ones you did not know

Running 'scribe' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole(commandContext(cmd), "", session.ModeSelection)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/scribe)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.DefaultDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig loads the configuration, raising the log level for --verbose.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// commandContext returns the command's context, or Background when it
// runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// stderrLogger is the logger of the non-interactive commands.
func stderrLogger(cfg *config.Config) *slog.Logger {
	return logging.New(cfg.Log, os.Stderr)
}

func newClient(cfg *config.Config, logger *slog.Logger) *knownwords.Client {
	return knownwords.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
}

// runConsole launches the TUI. With a path the file is imported first and
// the console opens in mode.
func runConsole(ctx context.Context, path string, mode session.Mode) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.Discard()
	if f, err := logging.OpenFile(cfg.Log.File); err == nil {
		defer f.Close()
		logger = logging.New(cfg.Log, f)
	} else {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	client := newClient(cfg, logger)
	ctrl := importer.NewController(importer.FileReader{}, client, logger, importer.Options{
		Load: lexicon.LoadOptions{SnippetLength: cfg.Import.SnippetLength},
	})

	if path != "" {
		imp, err := ctrl.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}
		if err := ctrl.SwitchMode(mode); err != nil {
			return fmt.Errorf("starting %s: %w", mode, err)
		}
		logger.Info("opened from command line", slog.String("file", path), slog.String("summary", imp.Summary()))
	}

	p := tea.NewProgram(
		tui.NewApp(tui.Deps{
			Controller: ctrl,
			Prober:     client,
			Copier:     clipboard.New(),
			Banner:     banner.New(),
			Config:     cfg,
			Logger:     logger,
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
