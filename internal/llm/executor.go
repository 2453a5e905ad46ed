package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"syscall"
)

// executeOptions configures command execution for provider CLI invocations.
type executeOptions struct {
	// Command is the CLI executable name (e.g., "claude", "gemini").
	Command string
	// Args are the command-line arguments.
	Args []string
	// Stdin provides input to the command (typically the prompt).
	Stdin io.Reader
	// WorkDir sets the working directory for the command.
	WorkDir string
	// TempFilePath is a temp file to clean up on Close (used by ref-file mode).
	TempFilePath string
}

// executeCommand starts a provider CLI and hands back a streaming
// ExecutionResult. The command gets its own process group so a context
// cancellation can kill the CLI together with anything it spawned; stderr is
// buffered for diagnostics. The temp file, when set, is removed on any start
// failure and otherwise when the result is closed.
func executeCommand(ctx context.Context, opts executeOptions) (*ExecutionResult, error) {
	// #nosec G204 - Command is always one of the known provider CLIs (claude,
	// gemini) passed from trusted code in the provider implementations.
	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)

	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}

	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}

	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		CleanupTempFile(opts.TempFilePath)
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		CleanupTempFile(opts.TempFilePath)
		return nil, fmt.Errorf("failed to start %s: %w", opts.Command, err)
	}

	reader := &cmdReader{
		Reader:       stdout,
		cmd:          cmd,
		ctx:          ctx,
		stderr:       stderr,
		tempFilePath: opts.TempFilePath,
	}

	return NewExecutionResult(reader, reader.ExitCode, reader.Stderr), nil
}
