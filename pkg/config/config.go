/*
Package config manages the TOML configuration for cliserve.

Configuration is best-effort: any failure to locate, create, or parse a
config file falls back to built-in defaults so the completion surface
never refuses to start over a bad config.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/cliserve/cliserve/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxLine  int `toml:"max_line"`
}

// DictConfig holds dictionary options. An empty Path means the
// embedded dictionary asset.
type DictConfig struct {
	Path string `toml:"path"`
}

// CliConfig holds interactive CLI options.
type CliConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	HistoryFile  string `toml:"history_file"`
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit: 64,
			MaxLine:  512,
		},
		Dict: DictConfig{
			Path: "",
		},
		CLI: CliConfig{
			DefaultLimit: 24,
			HistoryFile:  filepath.Join(os.TempDir(), "cliserve_history"),
		},
	}
}

// GetDefaultConfigPath returns [user config dir]/cliserve/config.toml,
// falling back to the executable directory.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return filepath.Join(execDir, "config.toml"), nil
	}
	return filepath.Join(homeDir, ".config", "cliserve", "config.toml"), nil
}

// InitConfig loads config from path, creating a default file first if
// none exists. Every failure path degrades to defaults.
func InitConfig(path string) (*Config, error) {
	dir := filepath.Dir(path)
	if err := utils.EnsureDir(dir); err != nil {
		log.Warnf("failed to create config directory %s: %v, using defaults", dir, err)
		return DefaultConfig(), nil
	}
	if !utils.FileExists(path) {
		cfg := DefaultConfig()
		if err := utils.SaveTOMLFile(cfg, path); err != nil {
			log.Warnf("failed to write default config at %s: %v, using defaults", path, err)
			return DefaultConfig(), nil
		}
		log.Debugf("created default config file at %s", path)
		return cfg, nil
	}
	return LoadConfig(path)
}

// LoadConfig loads from a TOML file, recovering valid sections from a
// partially broken file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(path, cfg); err != nil {
		return tryPartialParse(path)
	}
	return cfg, nil
}

func tryPartialParse(path string) (*Config, error) {
	cfg := DefaultConfig()
	parsed, err := utils.ParseTOMLWithRecovery(path)
	if err != nil {
		log.Warnf("could not parse any configuration from %s: %v, using defaults", path, err)
		return cfg, nil
	}
	if section, ok := utils.ExtractSection(parsed, "server"); ok {
		if val, ok := utils.ExtractInt(section, "max_limit"); ok {
			cfg.Server.MaxLimit = val
		}
		if val, ok := utils.ExtractInt(section, "max_line"); ok {
			cfg.Server.MaxLine = val
		}
	}
	if section, ok := utils.ExtractSection(parsed, "dict"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			cfg.Dict.Path = val
		}
	}
	if section, ok := utils.ExtractSection(parsed, "cli"); ok {
		if val, ok := utils.ExtractInt(section, "default_limit"); ok {
			cfg.CLI.DefaultLimit = val
		}
		if val, ok := utils.ExtractString(section, "history_file"); ok {
			cfg.CLI.HistoryFile = val
		}
	}
	return cfg, nil
}
