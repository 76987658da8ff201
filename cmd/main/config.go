package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/CTAG07/Sundew/pkg/corpus"
	"github.com/CTAG07/Sundew/pkg/ngram"
	"github.com/CTAG07/Sundew/pkg/templating"
	"github.com/natefinch/atomic"
)

// ModelConfig holds the n-gram model settings.
type ModelConfig struct {
	Order    int `json:"order"`
	MinCount int `json:"min_count"`
}

// GenerateConfig holds the defaults for the generate command.
type GenerateConfig struct {
	CorpusPath string `json:"corpus_path"`
	MaxLength  int    `json:"max_length"`
	NumSamples int    `json:"num_samples"`
}

// CorpusConfig holds the settings for downloading and caching corpora.
type CorpusConfig struct {
	OutputPath   string   `json:"output_path"`
	DatabasePath string   `json:"database_path"`
	UserAgent    string   `json:"user_agent"`
	URLTemplates []string `json:"url_templates"`
	TimeoutSec   int      `json:"timeout_sec"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel    string                     `json:"log_level"`
	TemplateDir string                     `json:"template_dir"`
	Model       *ModelConfig               `json:"model_config"`
	Generate    *GenerateConfig            `json:"generate_config"`
	Corpus      *CorpusConfig              `json:"corpus_config"`
	Templates   *templating.TemplateConfig `json:"template_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	templates := templating.DefaultConfig()
	return &Config{
		LogLevel:    "warn",
		TemplateDir: "",
		Model: &ModelConfig{
			Order:    3,
			MinCount: ngram.DefaultMinCount,
		},
		Generate: &GenerateConfig{
			CorpusPath: "./data/example_corpus.txt",
			MaxLength:  50,
			NumSamples: 1,
		},
		Corpus: &CorpusConfig{
			OutputPath:   "./data/corpus.txt",
			DatabasePath: "./data/corpus_cache.db",
			UserAgent:    corpus.DefaultUserAgent,
			URLTemplates: append([]string(nil), corpus.DefaultURLTemplates...),
			TimeoutSec:   60,
		},
		Templates: &templates,
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values. An empty
// path returns the defaults without touching the filesystem.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if dir := filepath.Dir(path); dir != "" {
				_ = os.MkdirAll(dir, 0o755)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without a file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.fillDefaults()
	return config, nil
}

// fillDefaults replaces sections a config file set to null.
func (c *Config) fillDefaults() {
	d := DefaultConfig()
	if c.Model == nil {
		c.Model = d.Model
	}
	if c.Generate == nil {
		c.Generate = d.Generate
	}
	if c.Corpus == nil {
		c.Corpus = d.Corpus
	}
	if c.Templates == nil {
		c.Templates = d.Templates
	}
}

// parseLogLevel maps a config level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
