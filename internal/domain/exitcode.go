package domain

// ExitCode represents the exit status of the reviewer.
type ExitCode int

const (
	// ExitNoComments indicates a successful review with no surviving comments.
	ExitNoComments ExitCode = 0
	// ExitComments indicates a successful review that produced comments.
	ExitComments ExitCode = 1
	// ExitError indicates the review failed due to an error.
	ExitError ExitCode = 2
	// ExitInterrupted indicates the review was interrupted by a signal.
	ExitInterrupted ExitCode = 130
)

// Int returns the exit code as an int for use with os.Exit.
func (e ExitCode) Int() int {
	return int(e)
}
