// Package config loads the crosstalk CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/crosstalk"
)

// EnvLanguage overrides Config.Language when set.
const EnvLanguage = "CROSSTALK_LANGUAGE"

// Config is the on-disk CLI configuration.
type Config struct {
	// Language is the local language: a preset or named language, or six symbols.
	Language string `yaml:"language"`
	// Languages maps names to six-symbol definitions, e.g. "murloc: m r g l 0 !".
	Languages map[string]string `yaml:"languages,omitempty"`
	// MaxSymbols caps wire input size (0 = library default of 1<<20 symbols).
	MaxSymbols int `yaml:"max_symbols,omitempty"`
	Log        LogConfig `yaml:"log"`
}

// LogConfig selects the logging backend.
type LogConfig struct {
	// Backend is one of zap, logrus, slog, none.
	Backend string `yaml:"backend"`
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

var (
	backends = map[string]bool{"zap": true, "logrus": true, "slog": true, "none": true}
	levels   = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Language: "common",
		Log: LogConfig{
			Backend: "zap",
			Level:   "warn",
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies the
// environment override and validates.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv applies overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLanguage)); v != "" {
		c.Language = v
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	for name, def := range c.Languages {
		if _, ok := crosstalk.Presets[strings.ToLower(name)]; ok {
			return fmt.Errorf("languages.%s shadows a preset", name)
		}
		if _, err := crosstalk.ParseLanguage(def); err != nil {
			return fmt.Errorf("languages.%s: %w", name, err)
		}
	}
	if _, err := c.ResolveLanguage(c.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if c.MaxSymbols < 0 {
		return fmt.Errorf("max_symbols must be >= 0")
	}
	if !backends[c.Log.Backend] {
		return fmt.Errorf("log.backend must be one of zap, logrus, slog, none")
	}
	if !levels[c.Log.Level] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// ResolveLanguage looks name up among the presets, then the configured
// languages, and finally parses it as a literal symbol list.
func (c *Config) ResolveLanguage(name string) (crosstalk.Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return crosstalk.Language{}, fmt.Errorf("empty language")
	}
	if l, ok := crosstalk.Presets[strings.ToLower(name)]; ok {
		return l, nil
	}
	if def, ok := c.Languages[name]; ok {
		return crosstalk.ParseLanguage(def)
	}
	return crosstalk.ParseLanguage(name)
}

// Names lists every resolvable language name, presets first, each group sorted.
func (c *Config) Names() []string {
	presets := make([]string, 0, len(crosstalk.Presets))
	for n := range crosstalk.Presets {
		presets = append(presets, n)
	}
	sort.Strings(presets)
	named := make([]string, 0, len(c.Languages))
	for n := range c.Languages {
		named = append(named, n)
	}
	sort.Strings(named)
	return append(presets, named...)
}

// Options builds translator options for the configured language.
func (c *Config) Options(lang string, log crosstalk.Logger) (crosstalk.Options, error) {
	if lang == "" {
		lang = c.Language
	}
	l, err := c.ResolveLanguage(lang)
	if err != nil {
		return crosstalk.Options{}, err
	}
	return crosstalk.Options{Language: l, Logger: log, MaxSymbols: c.MaxSymbols}, nil
}
