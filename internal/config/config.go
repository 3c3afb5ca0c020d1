// Package config loads the settings that tune how quill interprets commands,
// formats output, and logs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dekarrin/quill/internal/command"
	"github.com/dekarrin/quill/internal/match"
)

// Environment variables that override values read from the config file.
const (
	EnvLogLevel    = "QUILL_LOG_LEVEL"
	EnvLogFile     = "QUILL_LOG_FILE"
	EnvOutputWidth = "QUILL_OUTPUT_WIDTH"
)

// Config is the complete set of quill settings.
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Parser   ParserConfig   `yaml:"parser"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Debug enables the DEBUG command.
	Debug bool `yaml:"debug"`
}

// ResolverConfig holds settings for matching what the player types against
// the names of things.
type ResolverConfig struct {
	// StopWords are dropped from both sides before comparing.
	StopWords []string `yaml:"stop_words"`

	// SelfWords refer to the thing the last command was done to.
	SelfWords []string `yaml:"self_words"`

	// SimilarityThreshold is the score a misspelling must exceed to still
	// count as a match. Must be in (0, 1].
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// ParserConfig holds the budgets of the command parser.
type ParserConfig struct {
	// MaxSteps is the number of pattern nodes one parse may visit.
	MaxSteps int `yaml:"max_steps"`

	// MaxTies is the most equally good readings one registration may give.
	MaxTies int `yaml:"max_ties"`
}

// OutputConfig holds settings for text shown to the player.
type OutputConfig struct {
	// Width is the column output is wrapped to.
	Width int `yaml:"width"`

	// HistoryFile is where interactive command history is kept. Blank keeps
	// no history.
	HistoryFile string `yaml:"history_file"`
}

// LoggingConfig holds settings for the diagnostic log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is console or json.
	Format string `yaml:"format"`

	// File is where log output goes. Blank discards it.
	File string `yaml:"file"`

	MaxSizeMB  int `yaml:"max_size_mb"`
	MaxBackups int `yaml:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days"`
}

// Default returns a Config with every setting at its default.
func Default() Config {
	return Config{
		Resolver: ResolverConfig{
			StopWords:           append([]string(nil), match.DefaultStopWords...),
			SelfWords:           append([]string(nil), command.DefaultSelfWords...),
			SimilarityThreshold: match.DefaultThreshold,
		},
		Parser: ParserConfig{
			MaxSteps: command.DefaultMaxSteps,
			MaxTies:  command.DefaultMaxTies,
		},
		Output: OutputConfig{
			Width: 80,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the YAML config file at path over the defaults and then applies
// any environment overrides. A missing file is not an error; the defaults
// are used. If path is blank, only the defaults and environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Default(), fmt.Errorf("parse config %q: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
	if v := getenv(EnvOutputWidth); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", EnvOutputWidth, v)
		}
		cfg.Output.Width = w
	}
	return nil
}

// Validate returns an error if any setting is out of range.
func (cfg Config) Validate() error {
	t := cfg.Resolver.SimilarityThreshold
	if t <= 0 || t > 1 {
		return fmt.Errorf("resolver.similarity_threshold must be greater than 0 and at most 1, got %v", t)
	}
	if cfg.Parser.MaxSteps < 1 {
		return fmt.Errorf("parser.max_steps must be positive, got %d", cfg.Parser.MaxSteps)
	}
	if cfg.Parser.MaxTies < 1 {
		return fmt.Errorf("parser.max_ties must be positive, got %d", cfg.Parser.MaxTies)
	}
	if cfg.Output.Width < 2 {
		return fmt.Errorf("output.width must be at least 2, got %d", cfg.Output.Width)
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, or error, got %q", cfg.Logging.Level)
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", cfg.Logging.Format)
	}
	return nil
}

// NewResolver creates the name resolver described by the resolver settings.
func (cfg Config) NewResolver() *match.Resolver {
	return match.NewResolver(cfg.Resolver.StopWords, cfg.Resolver.SimilarityThreshold)
}
