package cli

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/insight/loader"
)

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing errors/warnings to stderr).
// Main centralizes exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// renderError describes a load error for the terminal. Feed errors name the
// feed and its location; a missing location hints at the flag to set.
func renderError(err error) string {
	var feedErr *loader.FeedError
	if !errors.As(err, &feedErr) {
		return err.Error()
	}

	if errors.Is(feedErr.Err, loader.ErrNoSource) {
		return fmt.Sprintf("no location for the %s feed (set --%s)", feedErr.Feed, feedErr.Feed)
	}

	var statusErr *loader.StatusError
	if errors.As(feedErr.Err, &statusErr) {
		return fmt.Sprintf("failed to load %s from %s: server answered %d",
			feedErr.Feed, pathStyle.Render(feedErr.Location), statusErr.StatusCode)
	}

	return fmt.Sprintf("failed to load %s from %s: %v",
		feedErr.Feed, pathStyle.Render(feedErr.Location), feedErr.Err)
}
