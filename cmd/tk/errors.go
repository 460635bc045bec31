package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tkt-dev/tk/internal/lockfile"
	"github.com/tkt-dev/tk/internal/types"
	"github.com/tkt-dev/tk/internal/ui"
	"github.com/tkt-dev/tk/internal/validation"
)

// Error codes included in --json error output.
const (
	codeValidation = "validation"
	codeLockBusy   = "lock_busy"
	codeInternal   = "internal"
)

func errorCode(err error) string {
	switch {
	case types.IsValidationError(err), errors.Is(err, validation.ErrInvalidTicketID):
		return codeValidation
	case errors.Is(err, lockfile.ErrLockBusy):
		return codeLockBusy
	}
	return codeInternal
}

// reportError prints a failed invocation's error to stderr, as
//
//	{"error": "message", "code": "validation"}
//
// when --json is active, and as "Error: message" otherwise.
func reportError(err error) {
	if jsonOutput {
		encoder := json.NewEncoder(stderr)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(map[string]string{"error": err.Error(), "code": errorCode(err)})
		return
	}
	fmt.Fprintf(stderr, "%s %v\n", ui.RenderFail("Error:"), err)
}

// WarnError writes a warning message to stderr and returns.
// Use this for auxiliary operations whose failure should not fail the
// command (telemetry, lock release).
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "%s "+format+"\n", append([]interface{}{ui.RenderWarn("Warning:")}, args...)...)
}
