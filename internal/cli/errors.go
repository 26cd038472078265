package cli

import (
	"errors"
)

// reportedError marks a failure whose details were already written to the
// command output
type reportedError struct {
	err error
}

func (e *reportedError) Error() string {
	return e.err.Error()
}

func (e *reportedError) Unwrap() error {
	return e.err
}

// IsReported reports whether err was already rendered by the command
func IsReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}

// ExitCode maps a command error to the process exit status
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
