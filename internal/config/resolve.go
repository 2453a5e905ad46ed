package config

import (
	"os"
	"time"

	"github.com/mikestreety/ai-code-review/internal/llm"
)

// Defaults holds the built-in default values.
var Defaults = ResolvedConfig{
	Provider: llm.DefaultProvider,
	Base:     "main",
	Timeout:  10 * time.Minute,
	Format:   "console",
}

// ResolvedConfig holds the final resolved configuration values.
type ResolvedConfig struct {
	Provider  string
	Base      string
	Timeout   time.Duration
	Format    string
	Output    string
	GitLabURL string
	Project   string
}

// FlagState tracks whether a flag was explicitly set.
type FlagState struct {
	ProviderSet  bool
	BaseSet      bool
	TimeoutSet   bool
	FormatSet    bool
	OutputSet    bool
	GitLabURLSet bool
	ProjectSet   bool
}

// EnvState captures env var values and whether they were set.
type EnvState struct {
	Provider     string
	ProviderSet  bool
	Base         string
	BaseSet      bool
	Timeout      time.Duration
	TimeoutSet   bool
	Format       string
	FormatSet    bool
	GitLabURL    string
	GitLabURLSet bool
	Project      string
	ProjectSet   bool
}

// LoadEnvState reads environment variables and returns their state.
func LoadEnvState() EnvState {
	var state EnvState

	if v := os.Getenv("AI_REVIEW_PROVIDER"); v != "" {
		state.Provider = v
		state.ProviderSet = true
	}
	if v := os.Getenv("AI_REVIEW_BASE_REF"); v != "" {
		state.Base = v
		state.BaseSet = true
	}
	if v := os.Getenv("AI_REVIEW_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			state.Timeout = d
			state.TimeoutSet = true
		}
	}
	if v := os.Getenv("AI_REVIEW_FORMAT"); v != "" {
		state.Format = v
		state.FormatSet = true
	}
	if v := os.Getenv("GITLAB_URL"); v != "" {
		state.GitLabURL = v
		state.GitLabURLSet = true
	}
	if v := os.Getenv("AI_REVIEW_PROJECT"); v != "" {
		state.Project = v
		state.ProjectSet = true
	}

	return state
}

// Resolve merges config file values with env vars and flags.
// Precedence: flags > env vars > config file > defaults.
func Resolve(cfg *Config, envState EnvState, flagState FlagState, flagValues ResolvedConfig) ResolvedConfig {
	result := Defaults

	if cfg != nil {
		if cfg.Provider != nil {
			result.Provider = *cfg.Provider
		}
		if cfg.Base != nil {
			result.Base = *cfg.Base
		}
		if cfg.Timeout != nil {
			result.Timeout = cfg.Timeout.AsDuration()
		}
		if cfg.Format != nil {
			result.Format = *cfg.Format
		}
		if cfg.Output != nil {
			result.Output = *cfg.Output
		}
		if cfg.GitLabURL != nil {
			result.GitLabURL = *cfg.GitLabURL
		}
		if cfg.Project != nil {
			result.Project = *cfg.Project
		}
	}

	if envState.ProviderSet {
		result.Provider = envState.Provider
	}
	if envState.BaseSet {
		result.Base = envState.Base
	}
	if envState.TimeoutSet {
		result.Timeout = envState.Timeout
	}
	if envState.FormatSet {
		result.Format = envState.Format
	}
	if envState.GitLabURLSet {
		result.GitLabURL = envState.GitLabURL
	}
	if envState.ProjectSet {
		result.Project = envState.Project
	}

	if flagState.ProviderSet {
		result.Provider = flagValues.Provider
	}
	if flagState.BaseSet {
		result.Base = flagValues.Base
	}
	if flagState.TimeoutSet {
		result.Timeout = flagValues.Timeout
	}
	if flagState.FormatSet {
		result.Format = flagValues.Format
	}
	if flagState.OutputSet {
		result.Output = flagValues.Output
	}
	if flagState.GitLabURLSet {
		result.GitLabURL = flagValues.GitLabURL
	}
	if flagState.ProjectSet {
		result.Project = flagValues.Project
	}

	return result
}

// Merge combines config file exclude patterns with CLI patterns.
// CLI patterns are appended after config patterns (both are applied).
func Merge(cfg *Config, cliPatterns []string) []string {
	if cfg == nil {
		return cliPatterns
	}
	return append(cfg.ExcludePatterns, cliPatterns...)
}
