package llm

import (
	"context"
	"fmt"
	"os/exec"
)

// Compile-time interface check
var _ Provider = (*GeminiProvider)(nil)

// GeminiProvider implements the Provider interface for the Gemini CLI backend.
// Gemini sometimes ignores the JSON instruction and answers in prose; the
// reconciler falls back to prose extraction for this provider.
type GeminiProvider struct{}

// NewGeminiProvider creates a new GeminiProvider instance.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{}
}

// Name returns the provider's identifier.
func (g *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the gemini CLI is installed and accessible.
func (g *GeminiProvider) IsAvailable() error {
	_, err := exec.LookPath("gemini")
	if err != nil {
		return fmt.Errorf("gemini CLI not found in PATH: %w", err)
	}
	return nil
}

// ExecuteReview runs a code review using the gemini CLI.
// Uses 'gemini -o json -' with the prompt piped to stdin.
func (g *GeminiProvider) ExecuteReview(ctx context.Context, req *ReviewRequest) (*ExecutionResult, error) {
	if err := g.IsAvailable(); err != nil {
		return nil, err
	}

	return executeReview(ctx, req, cliConfig{
		Command: "gemini",
		Args:    []string{"-o", "json", "-"},
	})
}
