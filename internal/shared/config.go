package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	History  HistoryConfig  `toml:"history"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Export   ExportConfig   `toml:"export"`
}

// EditorConfig contains playlist editing behavior.
type EditorConfig struct {
	AutoSelectExclude string `toml:"auto_select_exclude"`
	LenientParse      bool   `toml:"lenient_parse"`
	DefaultExtension  string `toml:"default_extension"`
}

// HistoryConfig toggles the recent-file history.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // used while a full-screen UI owns the terminal
}

// ExportConfig contains defaults for the export commands.
type ExportConfig struct {
	Format    string  `toml:"format"`
	Workers   int     `toml:"workers"`
	RateLimit float64 `toml:"rate_limit"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
