package llm

import (
	"bytes"
	"context"
)

// cliConfig holds the provider-specific parameters for a review run.
type cliConfig struct {
	// Command is the CLI command name (e.g., "claude", "gemini").
	Command string
	// Args are the CLI arguments (e.g., ["--print", "--output-format", "json", "-"]).
	Args []string
}

// executeReview is the shared review implementation for both providers.
// It handles ref-file branching, prompt assembly, and command execution.
func executeReview(ctx context.Context, req *ReviewRequest, cc cliConfig) (*ExecutionResult, error) {
	input := BuildReviewInput(req.Context, req.Diff)

	useRefFile := req.UseRefFile || len(input) > RefFileSizeThreshold

	var prompt string
	var tempFilePath string

	if useRefFile {
		absPath, err := WriteInputToTempFile(req.WorkDir, input)
		if err != nil {
			return nil, err
		}
		tempFilePath = absPath
		prompt = buildRefFilePrompt(absPath)
	} else {
		prompt = DefaultReviewPrompt + "\n\n" + input
	}

	stdin := bytes.NewReader([]byte(prompt))

	return executeCommand(ctx, executeOptions{
		Command:      cc.Command,
		Args:         cc.Args,
		Stdin:        stdin,
		WorkDir:      req.WorkDir,
		TempFilePath: tempFilePath,
	})
}
