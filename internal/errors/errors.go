// Package errors holds the CLI-facing error helpers. Every message a user
// sees on stderr goes through here so the "Error: " prefix stays uniform
// across commands.
package errors

import (
	"fmt"
	"os"

	"github.com/mglynn/daytrack/internal/logger"
)

// Format prefixes an error for stderr output. A nil error formats to the
// empty string.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Formatf is Format for a printf-style message.
func Formatf(format string, args ...any) string {
	return "Error: " + fmt.Sprintf(format, args...)
}

// Fatal logs the error, prints it to stderr, and exits with status 1. A nil
// error is a no-op so callers can pass a command result unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal for a printf-style message.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("command failed", "error", msg)
	fmt.Fprintln(os.Stderr, "Error: "+msg)
	os.Exit(1)
}
