// Package debug holds tk's process-wide output switches: debug logging
// (TK_DEBUG or --verbose) and quiet mode (--quiet).
package debug

import (
	"fmt"
	"io"
	"os"
)

var (
	enabled     = os.Getenv("TK_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	stderr io.Writer = os.Stderr
	stdout io.Writer = os.Stdout
)

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetOutput redirects normal and debug output. Passing nil restores the
// process's stdout/stderr.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

func Logf(format string, args ...interface{}) {
	if enabled || verboseMode {
		fmt.Fprintf(stderr, format, args...)
	}
}

// Warnf writes a warning to stderr. Warnings are shown even in quiet mode.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Warning: "+format, args...)
}

// PrintNormal prints output unless quiet mode is enabled
// Use this for normal informational output that should be suppressed in quiet mode
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Fprintf(stdout, format, args...)
	}
}

// PrintlnNormal prints a line unless quiet mode is enabled
func PrintlnNormal(args ...interface{}) {
	if !quietMode {
		fmt.Fprintln(stdout, args...)
	}
}
