package types

import (
	"fmt"
	"strings"
)

// Status represents the current state of a ticket
type Status string

// Ticket status constants
const (
	StatusToDo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusBlocked    Status = "blocked"
	StatusDone       Status = "done"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusToDo, StatusInProgress, StatusBlocked, StatusDone}

// IsValid checks if the status value is one of the built-in statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// DisplayName returns the human-facing name (ToDo, InProgress, Blocked, Done).
func (s Status) DisplayName() string {
	switch s {
	case StatusToDo:
		return "ToDo"
	case StatusInProgress:
		return "InProgress"
	case StatusBlocked:
		return "Blocked"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// ParseStatus converts user text into a Status. Matching is case-insensitive
// and accepts the hyphenated spellings "to-do" and "in-progress".
func ParseStatus(text string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "todo", "to-do":
		return StatusToDo, nil
	case "inprogress", "in-progress":
		return StatusInProgress, nil
	case "blocked":
		return StatusBlocked, nil
	case "done":
		return StatusDone, nil
	}
	return "", fmt.Errorf("%w %q (valid values: todo, inprogress, blocked and done)", ErrInvalidStatus, text)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Any spelling accepted
// by ParseStatus is accepted here.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
