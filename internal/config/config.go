package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pbaille/digest/internal/classifier"
	"github.com/pbaille/digest/internal/cleanup"
	"github.com/pbaille/digest/internal/numbering"
	"github.com/pbaille/digest/internal/render"
	"github.com/pbaille/digest/internal/reorder"
)

// Environment variables read by Load
const (
	EnvConfig      = "DIGEST_CONFIG"
	EnvLogLevel    = "DIGEST_LOG_LEVEL"
	EnvLogFormat   = "DIGEST_LOG_FORMAT"
	EnvMergeSuffix = "DIGEST_MERGE_SUFFIX"
)

// Config holds all digest configuration.
type Config struct {
	Logging    LoggingConfig     `yaml:"logging"`
	Categories CategoriesConfig  `yaml:"categories"`
	Merge      MergeConfig       `yaml:"merge"`
	Sort       SortConfig        `yaml:"sort"`
	Numbering  numbering.Options `yaml:"numbering"`
	Replace    ReplaceConfig     `yaml:"replace"`
	Server     ServerConfig      `yaml:"server"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// CategoriesConfig is the keyword rule table used by reorder.
type CategoriesConfig struct {
	Rules    []classifier.Rule `yaml:"rules"`
	Default  string            `yaml:"default"`
	Verbatim []string          `yaml:"verbatim"` // heading markers of sections kept in order
}

// MergeConfig configures segment merging.
type MergeConfig struct {
	Suffix            string             `yaml:"suffix"`
	AllowedCategories []string           `yaml:"allowed_categories"` // incremental mode only; empty keeps all
	Fresh             render.CountLayout `yaml:"fresh"`
	Incremental       render.CountLayout `yaml:"incremental"`
}

// SortConfig configures importance sorting.
type SortConfig struct {
	Pattern string             `yaml:"pattern"`
	Layout  render.CountLayout `yaml:"layout"`
}

// ReplaceConfig is the replacement table used by replace.
type ReplaceConfig struct {
	Pairs []cleanup.Pair `yaml:"pairs"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Categories: CategoriesConfig{
			Rules:    classifier.CloneRules(classifier.DefaultRules),
			Default:  classifier.DefaultCategory,
			Verbatim: append([]string(nil), reorder.DefaultVerbatimMarkers...),
		},
		Merge: MergeConfig{
			Suffix:      "_merged",
			Fresh:       render.FreshLayout,
			Incremental: render.IncrementalLayout,
		},
		Sort: SortConfig{
			Pattern: "high_score_summaries_*.txt",
			Layout:  render.FreshLayout,
		},
		Numbering: numbering.DefaultOptions,
		Replace: ReplaceConfig{
			Pairs: append([]cleanup.Pair(nil), cleanup.DefaultPairs...),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the YAML config at path on top of the defaults. An empty path
// falls back to $DIGEST_CONFIG; a missing file yields the defaults. A .env
// file in the working directory is loaded first, without overriding
// variables already set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v, ok := os.LookupEnv(EnvMergeSuffix); ok {
		c.Merge.Suffix = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := c.Classifier(); err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "":
	default:
		return fmt.Errorf("logging: unknown format %q", c.Logging.Format)
	}
	if strings.ContainsAny(c.Merge.Suffix, `/\`) {
		return fmt.Errorf("merge: suffix %q must not contain path separators", c.Merge.Suffix)
	}
	return nil
}

// Classifier builds the keyword classifier described by the categories section.
func (c *Config) Classifier() (*classifier.Classifier, error) {
	return classifier.New(c.Categories.Rules, c.Categories.Default)
}
