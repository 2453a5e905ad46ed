package llm

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"sync"
	"syscall"
)

// cmdReader streams a provider CLI's stdout and settles the process on
// Close: the command is waited on, its exit code recorded, and the ref-file
// temp file (if any) removed.
type cmdReader struct {
	io.Reader
	cmd          *exec.Cmd
	ctx          context.Context
	stderr       *bytes.Buffer
	exitCode     int
	closeOnce    sync.Once
	tempFilePath string
}

// Close waits for the command to complete; afterwards ExitCode returns the
// process exit code. A canceled or timed-out context means the CLI may have
// spawned children of its own, so the whole process group is killed before
// waiting. Idempotent; only the first call does work.
func (r *cmdReader) Close() error {
	r.closeOnce.Do(func() {
		if closer, ok := r.Reader.(io.Closer); ok {
			_ = closer.Close()
		}

		if r.cmd != nil && r.cmd.Process != nil {
			// Wait invalidates cmd.Process; grab the pid first.
			pid := r.cmd.Process.Pid

			if r.ctx != nil && r.ctx.Err() != nil {
				// Negative pid addresses the process group. The process may
				// already be gone, so the error is ignored.
				_ = syscall.Kill(-pid, syscall.SIGKILL)
			}

			if err := r.cmd.Wait(); err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					r.exitCode = exitErr.ExitCode()
				} else {
					r.exitCode = -1
				}
			}
		}

		CleanupTempFile(r.tempFilePath)
	})

	return nil
}

// ExitCode returns the process exit code. Valid only after Close.
func (r *cmdReader) ExitCode() int {
	return r.exitCode
}

// Stderr returns the captured stderr output. Valid only after Close.
func (r *cmdReader) Stderr() string {
	if r.stderr == nil {
		return ""
	}
	return r.stderr.String()
}
