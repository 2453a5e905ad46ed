package llm

import (
	"context"
	"fmt"
	"os/exec"
)

// Compile-time interface check
var _ Provider = (*ClaudeProvider)(nil)

// ClaudeProvider implements the Provider interface for the Claude CLI backend.
// With --output-format json the CLI wraps its answer in a metadata envelope;
// the reconciler unwraps the "result" field before parsing.
type ClaudeProvider struct{}

// NewClaudeProvider creates a new ClaudeProvider instance.
func NewClaudeProvider() *ClaudeProvider {
	return &ClaudeProvider{}
}

// Name returns the provider's identifier.
func (c *ClaudeProvider) Name() string {
	return "claude"
}

// IsAvailable checks if the claude CLI is installed and accessible.
func (c *ClaudeProvider) IsAvailable() error {
	_, err := exec.LookPath("claude")
	if err != nil {
		return fmt.Errorf("claude CLI not found in PATH: %w", err)
	}
	return nil
}

// ExecuteReview runs a code review using the claude CLI.
// Uses 'claude --print --output-format json -' with the prompt piped via
// stdin. Returns an ExecutionResult for streaming the output.
func (c *ClaudeProvider) ExecuteReview(ctx context.Context, req *ReviewRequest) (*ExecutionResult, error) {
	if err := c.IsAvailable(); err != nil {
		return nil, err
	}

	return executeReview(ctx, req, cliConfig{
		Command: "claude",
		Args:    []string{"--print", "--output-format", "json", "-"},
	})
}
