package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadFromPathWithWarnings_MissingFile(t *testing.T) {
	result, err := LoadFromPathWithWarnings(filepath.Join(t.TempDir(), ConfigFileName))
	if err != nil {
		t.Fatalf("LoadFromPathWithWarnings() error = %v, want nil for missing file", err)
	}
	if result.Config == nil {
		t.Fatal("LoadFromPathWithWarnings() Config = nil, want empty config")
	}
	if result.Config.Provider != nil {
		t.Error("missing file should produce empty config")
	}
}

func TestLoadFromPathWithWarnings_FullConfig(t *testing.T) {
	path := writeConfig(t, `
provider: gemini
base: develop
timeout: 5m
format: html
output: review.html
gitlab_url: https://gitlab.example.com
project: group/repo
exclude_patterns:
  - "vendor/"
  - "\\.min\\.js$"
`)

	result, err := LoadFromPathWithWarnings(path)
	if err != nil {
		t.Fatalf("LoadFromPathWithWarnings() error = %v", err)
	}
	cfg := result.Config

	if cfg.Provider == nil || *cfg.Provider != "gemini" {
		t.Errorf("Provider = %v, want gemini", cfg.Provider)
	}
	if cfg.Base == nil || *cfg.Base != "develop" {
		t.Errorf("Base = %v, want develop", cfg.Base)
	}
	if cfg.Timeout == nil || cfg.Timeout.AsDuration() != 5*time.Minute {
		t.Errorf("Timeout = %v, want 5m", cfg.Timeout)
	}
	if cfg.Format == nil || *cfg.Format != "html" {
		t.Errorf("Format = %v, want html", cfg.Format)
	}
	if len(cfg.ExcludePatterns) != 2 {
		t.Errorf("ExcludePatterns = %v, want 2 patterns", cfg.ExcludePatterns)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestLoadFromPathWithWarnings_NumericTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: 300\n")

	result, err := LoadFromPathWithWarnings(path)
	if err != nil {
		t.Fatalf("LoadFromPathWithWarnings() error = %v", err)
	}
	if result.Config.Timeout == nil || result.Config.Timeout.AsDuration() != 300*time.Second {
		t.Errorf("Timeout = %v, want 300s (numeric seconds)", result.Config.Timeout)
	}
}

func TestLoadFromPathWithWarnings_UnknownKeys(t *testing.T) {
	path := writeConfig(t, "provider: claude\nproviderr: gemini\nmax_reviewers: 3\n")

	result, err := LoadFromPathWithWarnings(path)
	if err != nil {
		t.Fatalf("LoadFromPathWithWarnings() error = %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "max_reviewers") {
		t.Errorf("Warnings[0] = %q, want mention of max_reviewers (sorted)", result.Warnings[0])
	}
	if !strings.Contains(result.Warnings[1], "providerr") {
		t.Errorf("Warnings[1] = %q, want mention of providerr", result.Warnings[1])
	}
}

func TestLoadFromPathWithWarnings_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid yaml", "provider: [unclosed", "invalid"},
		{"invalid regex", "exclude_patterns:\n  - \"[unclosed\"\n", "invalid regex pattern"},
		{"invalid provider", "provider: gpt4\n", "provider must be one of"},
		{"invalid format", "format: pdf\n", "format must be one of"},
		{"invalid duration", "timeout: never\n", "invalid duration"},
		{"zero timeout", "timeout: 0\n", "timeout must be > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadFromPathWithWarnings(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestResolve_Precedence(t *testing.T) {
	cfgTimeout := Duration(2 * time.Minute)
	cfg := &Config{
		Provider: strPtr("gemini"),
		Base:     strPtr("develop"),
		Timeout:  &cfgTimeout,
	}

	env := EnvState{
		Provider:    "claude",
		ProviderSet: true,
		Base:        "release",
		BaseSet:     true,
	}

	flags := FlagState{ProviderSet: true}
	flagValues := ResolvedConfig{Provider: "gemini"}

	resolved := Resolve(cfg, env, flags, flagValues)

	// flag wins over env and config
	if resolved.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini (flag)", resolved.Provider)
	}
	// env wins over config
	if resolved.Base != "release" {
		t.Errorf("Base = %q, want release (env)", resolved.Base)
	}
	// config wins over default
	if resolved.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m (config)", resolved.Timeout)
	}
	// default fills the rest
	if resolved.Format != "console" {
		t.Errorf("Format = %q, want console (default)", resolved.Format)
	}
}

func TestResolve_Defaults(t *testing.T) {
	resolved := Resolve(nil, EnvState{}, FlagState{}, ResolvedConfig{})

	if resolved.Provider != Defaults.Provider {
		t.Errorf("Provider = %q, want default %q", resolved.Provider, Defaults.Provider)
	}
	if resolved.Base != "main" {
		t.Errorf("Base = %q, want main", resolved.Base)
	}
	if resolved.Timeout != 10*time.Minute {
		t.Errorf("Timeout = %v, want 10m", resolved.Timeout)
	}
}

func TestLoadEnvState(t *testing.T) {
	t.Setenv("AI_REVIEW_PROVIDER", "gemini")
	t.Setenv("AI_REVIEW_TIMEOUT", "90s")
	t.Setenv("AI_REVIEW_BASE_REF", "")

	state := LoadEnvState()

	if !state.ProviderSet || state.Provider != "gemini" {
		t.Errorf("Provider = %q (set=%v), want gemini", state.Provider, state.ProviderSet)
	}
	if !state.TimeoutSet || state.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v (set=%v), want 90s", state.Timeout, state.TimeoutSet)
	}
	if state.BaseSet {
		t.Error("BaseSet = true for empty env var, want false")
	}
}

func TestLoadEnvState_InvalidTimeout(t *testing.T) {
	t.Setenv("AI_REVIEW_TIMEOUT", "soon")

	state := LoadEnvState()
	if state.TimeoutSet {
		t.Error("TimeoutSet = true for unparseable duration, want false")
	}
}

func TestMerge(t *testing.T) {
	cfg := &Config{ExcludePatterns: []string{"vendor/"}}

	got := Merge(cfg, []string{"\\.lock$"})
	if len(got) != 2 || got[0] != "vendor/" || got[1] != "\\.lock$" {
		t.Errorf("Merge() = %v, want [vendor/ \\.lock$]", got)
	}

	if got := Merge(nil, []string{"a"}); len(got) != 1 {
		t.Errorf("Merge(nil) = %v, want [a]", got)
	}
}
