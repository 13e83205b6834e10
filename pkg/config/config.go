// Package config loads caseinspect settings from TOML or YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/grovetools/caseinspect/pkg/report"
	pelletier "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file written by `config init`.
const DefaultFileName = ".caseinspect.toml"

// searchNames are checked in order when no config path is given.
var searchNames = []string{".caseinspect.toml", ".caseinspect.yml", ".caseinspect.yaml"}

// Config holds the effective inspector settings.
type Config struct {
	// Dataset is the path of the case-study JSON file.
	Dataset string `toml:"dataset" yaml:"dataset" comment:"Path to the case-study dataset, relative to the working directory"`
	// Match is the title substring used to select a case study.
	Match string `toml:"match" yaml:"match" comment:"Title substring selecting the case study to inspect"`
	// Count is the number of paragraphs previewed.
	Count int `toml:"count" yaml:"count" comment:"Number of paragraphs to preview"`
	// Limit is the preview length in characters.
	Limit int `toml:"limit" yaml:"limit" comment:"Preview length in characters"`
	// RequireVersion is an optional semver constraint on the dataset version.
	RequireVersion string `toml:"requireVersion,omitempty" yaml:"requireVersion,omitempty" comment:"Semver constraint the dataset version must satisfy, e.g. \">= 1.0\""`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dataset: casestudy.DefaultDatasetPath,
		Match:   casestudy.DefaultTitleMatch,
		Count:   report.DefaultCount,
		Limit:   report.DefaultLimit,
	}
}

// ReportOptions returns the report settings.
func (c Config) ReportOptions() report.Options {
	return report.Options{Count: c.Count, Limit: c.Limit}
}

// Validate checks that numeric settings are usable.
func (c Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset path must not be empty")
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative, got %d", c.Count)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	return nil
}

// Discover returns the first config file found in dir, or "" if there is none.
func Discover(dir string) string {
	for _, name := range searchNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load overlays the file at path on top of the defaults. The format is
// chosen by extension: .yml and .yaml are YAML, anything else is TOML.
func Load(path string, log *logrus.Entry) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
		for _, key := range md.Undecoded() {
			log.WithField("key", key.String()).Warn("Ignoring unknown config key")
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.WithField("path", path).Debug("Loaded config")
	return cfg, nil
}

// Save writes cfg as TOML to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := pelletier.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ToYAML renders cfg as YAML for display.
func ToYAML(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
