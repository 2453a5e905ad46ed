// Package llm runs code reviews through external LLM CLI tools.
package llm

import (
	"context"
	"fmt"
	"time"
)

// SupportedProviders lists all valid provider names.
var SupportedProviders = []string{"claude", "gemini"}

// DefaultProvider is the provider used for reviews when none is specified.
const DefaultProvider = "claude"

// ReviewRequest contains the inputs for a review execution.
type ReviewRequest struct {
	// Diff is the unified diff of the changes under review.
	Diff string

	// Context is the full-file context blob accompanying the diff.
	Context string

	// WorkDir is the working directory for the provider process
	// (defaults to current directory).
	WorkDir string

	// Timeout is the maximum duration for the review execution.
	Timeout time.Duration

	// UseRefFile writes the review input to a temp file and instructs the
	// provider to read it, instead of embedding it in the prompt. When false,
	// ref-file mode is still used automatically for large inputs.
	UseRefFile bool
}

// Provider represents an LLM CLI backend that can execute code reviews.
type Provider interface {
	// Name returns the provider's identifier (e.g., "claude", "gemini").
	Name() string

	// IsAvailable checks if the provider's CLI is installed and accessible.
	IsAvailable() error

	// ExecuteReview runs a code review with the given request.
	// Returns an ExecutionResult for streaming output.
	// The caller MUST call Close() on the result to ensure proper resource
	// cleanup. After Close(), ExitCode() and Stderr() return valid values.
	ExecuteReview(ctx context.Context, req *ReviewRequest) (*ExecutionResult, error)
}

// NewProvider creates a Provider by name.
func NewProvider(name string) (Provider, error) {
	switch name {
	case "claude":
		return NewClaudeProvider(), nil
	case "gemini":
		return NewGeminiProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q, supported: claude, gemini", name)
	}
}
