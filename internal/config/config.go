// Package config handles loading and saving scribe configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the config directory.
const FileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. SCRIBE_API_BASE_URL.
const EnvPrefix = "SCRIBE"

// Config holds all scribe configuration.
type Config struct {
	API    APIConfig    `mapstructure:"api" yaml:"api"`
	Store  StoreConfig  `mapstructure:"store" yaml:"store"`
	Import ImportConfig `mapstructure:"import" yaml:"import"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// APIConfig configures the known-words client.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// StoreConfig configures the bundled known-words store.
type StoreConfig struct {
	Path   string `mapstructure:"path" yaml:"path"`
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// ImportConfig configures lexicon import.
type ImportConfig struct {
	StartDir      string        `mapstructure:"start_dir" yaml:"start_dir"`
	Extensions    []string      `mapstructure:"extensions" yaml:"extensions"`
	SnippetLength int           `mapstructure:"snippet_length" yaml:"snippet_length"`
	ResetDelay    time.Duration `mapstructure:"reset_delay" yaml:"reset_delay"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text or json
	File   string `mapstructure:"file" yaml:"file"`     // used by the TUI only
}

// DefaultDir returns $HOME/.config/scribe.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "scribe"), nil
}

// Default returns the configuration used when nothing is set.
func Default(dir string) Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:5000",
			Timeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Path:   filepath.Join(dir, "known_words.db"),
			Listen: "127.0.0.1:5000",
		},
		Import: ImportConfig{
			Extensions:    []string{".json", ".jsonl", ".txt"},
			SnippetLength: 500,
			ResetDelay:    2 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "scribe.log"),
		},
	}
}

// Load reads dir/config.yaml if present and applies SCRIBE_* env overrides
// on top of the defaults.
func Load(dir string) (*Config, error) {
	def := Default(dir)
	v := viper.New()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("store.listen", def.Store.Listen)
	v.SetDefault("import.start_dir", def.Import.StartDir)
	v.SetDefault("import.extensions", def.Import.Extensions)
	v.SetDefault("import.snippet_length", def.Import.SnippetLength)
	v.SetDefault("import.reset_delay", def.Import.ResetDelay)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.file", def.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to dir/config.yaml, creating dir if needed.
func Save(dir string, cfg Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, FileName), out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
