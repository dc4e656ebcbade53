// Package config loads default generation settings from the user config
// directory, with a built-in fallback when no file exists.
package config

import (
	"os"
	"path/filepath"

	"vesper/internal/models"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config mirrors ~/.config/vesper/config.toml.
type Config struct {
	Model            string  `toml:"model"`
	Temperature      float64 `toml:"temperature"`
	TopP             float64 `toml:"top_p"`
	PresencePenalty  float64 `toml:"presence_penalty"`
	FrequencyPenalty float64 `toml:"frequency_penalty"`
	MaxTokens        int     `toml:"max_tokens"`
	Directions       string  `toml:"directions"`
	APIKey           string  `toml:"api_key"`
	Format           string  `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:       models.DefaultModel,
		Temperature: models.DefaultTemperature,
		TopP:        models.DefaultTopP,
		MaxTokens:   models.DefaultMaxTokens,
		Directions:  models.DefaultDirections,
		Format:      string(models.FormatMarkdown),
	}
}

// Dir returns the vesper config directory, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	dir := filepath.Join(configDir, "vesper")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads the config file if present and applies the VESPER_API_KEY
// environment override. A missing file yields the defaults.
func Load() (Config, error) {
	cfg := Default()

	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse %s", path)
		}
	}

	if key := os.Getenv("VESPER_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg, nil
}

// Settings converts the configuration into the process-wide default chat
// settings.
func (c Config) Settings() models.ChatSettings {
	s := models.ChatSettings{
		Temperature:      c.Temperature,
		TopP:             c.TopP,
		PresencePenalty:  c.PresencePenalty,
		FrequencyPenalty: c.FrequencyPenalty,
		MaxTokens:        c.MaxTokens,
		Model:            c.Model,
		Format:           models.FormatPlainText,
	}
	if c.Format == string(models.FormatMarkdown) {
		s.Format = models.FormatMarkdown
	}
	if c.APIKey != "" {
		s.APIKey = models.StrPtr(c.APIKey)
	}
	if c.Directions != "" {
		s.Directions = models.StrPtr(c.Directions)
	}
	return s
}
