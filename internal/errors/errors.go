package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/weekboard/internal/cli"
	"github.com/julianstephens/weekboard/internal/controller"
	"github.com/julianstephens/weekboard/internal/export"
	"github.com/julianstephens/weekboard/internal/lock"
	"github.com/julianstephens/weekboard/internal/logger"
	"github.com/julianstephens/weekboard/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix. Known
// failures get a hint line telling the user what to do next.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a short remedy for well-known errors.
func Hint(err error) string {
	switch {
	case stderrors.Is(err, cli.ErrUnreadableBoard):
		return "restore a backup with 'weekboard backup restore', or open 'weekboard tui' to start over (a backup is taken first)"
	case stderrors.Is(err, storage.ErrNotLoaded):
		return "run 'weekboard init' to create the board store"
	case stderrors.Is(err, storage.ErrNotFound):
		return "add a row with 'weekboard row add <label>' to start a board"
	case stderrors.Is(err, export.ErrWeekNotSet):
		return "pick a week first with 'weekboard week <year> <week>'"
	case stderrors.Is(err, lock.ErrLocked):
		return "another weekboard session is open; close it or remove the stale lock with 'weekboard doctor --fix'"
	case stderrors.Is(err, controller.ErrUnknownIntent):
		return "this is a bug, please report it with the output of 'weekboard debug dump'"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
