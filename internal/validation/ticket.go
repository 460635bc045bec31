// Package validation turns raw command-line input into the validated values
// the ticket store accepts.
package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tkt-dev/tk/internal/types"
)

// ErrInvalidTicketID is returned for ticket IDs that are not positive integers.
var ErrInvalidTicketID = errors.New("invalid ticket id")

// ParseTicketID parses a ticket ID such as "42" or "#42".
// Zero is rejected since the store never issues it.
func ParseTicketID(raw string) (types.TicketID, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w %q (expected a positive integer)", ErrInvalidTicketID, raw)
	}
	return types.TicketID(n), nil
}

// Draft validates the fields of a new ticket. The description is free-form.
func Draft(title, description string) (types.TicketDraft, error) {
	t, err := types.NewTitle(title)
	if err != nil {
		return types.TicketDraft{}, err
	}
	return types.TicketDraft{Title: t, Description: description}, nil
}

// Patch builds a TicketPatch from optional raw fields. Unset fields stay nil
// so the store leaves them untouched; a set description may be empty, which
// clears it, but a set title must still be non-blank.
func Patch(titleSet bool, title string, descriptionSet bool, description string) (types.TicketPatch, error) {
	var patch types.TicketPatch
	if titleSet {
		t, err := types.NewTitle(title)
		if err != nil {
			return types.TicketPatch{}, err
		}
		patch.Title = &t
	}
	if descriptionSet {
		d := description
		patch.Description = &d
	}
	return patch, nil
}
