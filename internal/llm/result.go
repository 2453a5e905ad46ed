package llm

import (
	"io"
	"sync"
)

// ExecutionResult is the streaming handle to a running provider CLI. It
// implements io.ReadCloser; ExitCode and Stderr are only meaningful after
// Close has waited on the process.
type ExecutionResult struct {
	reader       io.ReadCloser
	exitCode     int
	exitCodeFunc func() int
	stderr       string
	stderrFunc   func() string
	closeOnce    sync.Once
}

// NewExecutionResult wraps reader. exitCodeFunc and stderrFunc are invoked
// once, inside the first Close, to capture the process outcome.
func NewExecutionResult(reader io.ReadCloser, exitCodeFunc func() int, stderrFunc func() string) *ExecutionResult {
	return &ExecutionResult{
		reader:       reader,
		exitCodeFunc: exitCodeFunc,
		stderrFunc:   stderrFunc,
	}
}

// Read implements io.Reader.
func (r *ExecutionResult) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

// Close closes the underlying reader and captures the exit code and stderr
// from the completed process. Idempotent; only the first call does work.
func (r *ExecutionResult) Close() error {
	var closeErr error
	r.closeOnce.Do(func() {
		closeErr = r.reader.Close()
		if r.exitCodeFunc != nil {
			r.exitCode = r.exitCodeFunc()
		}
		if r.stderrFunc != nil {
			r.stderr = r.stderrFunc()
		}
	})
	return closeErr
}

// ExitCode returns the process exit code: 0 on success, -1 when the process
// could not be waited on. Valid only after Close.
func (r *ExecutionResult) ExitCode() int {
	return r.exitCode
}

// Stderr returns the captured stderr output. Valid only after Close.
func (r *ExecutionResult) Stderr() string {
	return r.stderr
}
