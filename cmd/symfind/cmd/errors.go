package cmd

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	exitOK         = 0
	exitParseError = 1
	exitUsageError = 2
)

// exitError is returned by the command to signal a specific exit code.
// A nil err means the failure was already reported.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error { return e.err }

func usageError(format string, args ...any) error {
	return exitError{code: exitUsageError, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by Execute to a process exit code. Errors
// raised by cobra itself (unknown flag, conflicting flags) are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsageError
}
