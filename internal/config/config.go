// Package config provides configuration file support for ai-code-review.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikestreety/ai-code-review/internal/git"
	"github.com/mikestreety/ai-code-review/internal/llm"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = ".ai-code-review.yaml"

// OutputFormats lists the valid --format values.
var OutputFormats = []string{"console", "html", "json"}

// Duration is a custom type that handles YAML duration parsing.
// Supports both Go duration format ("5m", "300s") and numeric seconds.
type Duration time.Duration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case float64:
		*d = Duration(time.Duration(v) * time.Second)
	default:
		return fmt.Errorf("invalid duration type: %T", v)
	}
	return nil
}

// AsDuration returns the underlying time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// Config represents the ai-code-review configuration file.
type Config struct {
	Provider        *string   `yaml:"provider"`
	Base            *string   `yaml:"base"`
	Timeout         *Duration `yaml:"timeout"`
	Format          *string   `yaml:"format"`
	Output          *string   `yaml:"output"`
	GitLabURL       *string   `yaml:"gitlab_url"`
	Project         *string   `yaml:"project"`
	ExcludePatterns []string  `yaml:"exclude_patterns"`
}

// LoadResult contains the loaded config and any warnings encountered.
type LoadResult struct {
	Config   *Config
	Warnings []string
}

// LoadWithWarnings reads the config file from the git repository root.
// Returns an empty config (not an error) if the file doesn't exist or the
// working directory is not a git repository.
func LoadWithWarnings() (*LoadResult, error) {
	repoRoot, err := git.GetRoot()
	if err != nil {
		return &LoadResult{Config: &Config{}}, nil
	}
	return LoadFromPathWithWarnings(filepath.Join(repoRoot, ConfigFileName))
}

// LoadFromPathWithWarnings reads a config file and returns warnings for
// unknown keys. Returns an empty config (not an error) if the file doesn't
// exist; returns an error for invalid YAML, invalid regex patterns, or
// invalid values.
func LoadFromPathWithWarnings(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &LoadResult{Config: &Config{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	warnings := checkUnknownKeys(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	if err := cfg.validatePatterns(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigFileName, err)
	}

	return &LoadResult{Config: &cfg, Warnings: warnings}, nil
}

// validatePatterns checks that all exclude patterns are valid regex.
func (c *Config) validatePatterns() error {
	for _, pattern := range c.ExcludePatterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid regex pattern %q in %s: %w", pattern, ConfigFileName, err)
		}
	}
	return nil
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	if c.Timeout != nil && *c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", time.Duration(*c.Timeout))
	}
	if c.Provider != nil && !slices.Contains(llm.SupportedProviders, *c.Provider) {
		return fmt.Errorf("provider must be one of %v, got %q", llm.SupportedProviders, *c.Provider)
	}
	if c.Format != nil && !slices.Contains(OutputFormats, *c.Format) {
		return fmt.Errorf("format must be one of %v, got %q", OutputFormats, *c.Format)
	}
	return nil
}

// knownTopLevelKeys are the valid top-level keys in the config file.
var knownTopLevelKeys = []string{
	"provider", "base", "timeout", "format", "output",
	"gitlab_url", "project", "exclude_patterns",
}

// checkUnknownKeys returns a warning for every top-level key the tool does
// not understand. Typos in config files fail silently otherwise.
func checkUnknownKeys(data []byte) []string {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var warnings []string
	for key := range raw {
		if !slices.Contains(knownTopLevelKeys, key) {
			warnings = append(warnings, fmt.Sprintf("unknown config key %q in %s (ignored)", key, ConfigFileName))
		}
	}
	slices.Sort(warnings)
	return warnings
}
