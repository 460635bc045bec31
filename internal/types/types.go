// Package types defines core data structures for the tk ticket tracker.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned when raw user input cannot become a value type.
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyComment  = errors.New("comment cannot be empty")
	ErrInvalidStatus = errors.New("invalid status")
)

// IsValidationError reports whether err was caused by rejected user input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrEmptyComment) ||
		errors.Is(err, ErrInvalidStatus)
}

// TicketID identifies a ticket. IDs are issued by the store starting at 1.
type TicketID uint64

// Title is the non-blank headline of a ticket.
type Title struct {
	raw string
}

// NewTitle validates raw and wraps it. The untrimmed string is kept.
func NewTitle(raw string) (Title, error) {
	if strings.TrimSpace(raw) == "" {
		return Title{}, ErrEmptyTitle
	}
	return Title{raw: raw}, nil
}

func (t Title) String() string {
	return t.raw
}

// IsZero reports whether t was never constructed through NewTitle.
func (t Title) IsZero() bool {
	return t.raw == ""
}

// MarshalText implements encoding.TextMarshaler.
func (t Title) MarshalText() ([]byte, error) {
	return []byte(t.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same rules as NewTitle.
func (t *Title) UnmarshalText(text []byte) error {
	v, err := NewTitle(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Comment is a non-blank note attached to a ticket.
type Comment struct {
	raw string
}

// NewComment validates raw and wraps it. The untrimmed string is kept.
func NewComment(raw string) (Comment, error) {
	if strings.TrimSpace(raw) == "" {
		return Comment{}, ErrEmptyComment
	}
	return Comment{raw: raw}, nil
}

func (c Comment) String() string {
	return c.raw
}

// MarshalText implements encoding.TextMarshaler.
func (c Comment) MarshalText() ([]byte, error) {
	return []byte(c.raw), nil
}

// UnmarshalText implements encoding.TextUnmarshaler with the same rules as NewComment.
func (c *Comment) UnmarshalText(text []byte) error {
	v, err := NewComment(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TicketDraft is the validated input for creating a ticket.
type TicketDraft struct {
	Title       Title
	Description string
}

// TicketPatch is a partial update. A nil field leaves the ticket's value
// unchanged; a non-nil field replaces it.
type TicketPatch struct {
	Title       *Title
	Description *string
}

// IsEmpty reports whether applying the patch would change nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil
}

// Ticket is a trackable unit of work
type Ticket struct {
	ID          TicketID  `json:"id" yaml:"id" toml:"id"`
	Title       Title     `json:"title" yaml:"title" toml:"title"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Status      Status    `json:"status" yaml:"status" toml:"status"`
	Comments    []Comment `json:"comments" yaml:"comments" toml:"comments"`
}

// Clone returns a copy of t that shares no memory with it.
func (t Ticket) Clone() Ticket {
	c := t
	c.Comments = make([]Comment, len(t.Comments))
	copy(c.Comments, t.Comments)
	return c
}

// Equal reports whether two tickets hold identical field values.
func (t Ticket) Equal(o Ticket) bool {
	if t.ID != o.ID || t.Title != o.Title || t.Description != o.Description || t.Status != o.Status {
		return false
	}
	if len(t.Comments) != len(o.Comments) {
		return false
	}
	for i := range t.Comments {
		if t.Comments[i] != o.Comments[i] {
			return false
		}
	}
	return true
}

func (t Ticket) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ticket:\n\tId:%d\n\tTitle:%s\n\tDescription:%s\n\tStatus:%s\n\tComments:\n",
		t.ID, t.Title, t.Description, t.Status.DisplayName())
	for _, c := range t.Comments {
		fmt.Fprintf(&b, "\t- %s\n", c)
	}
	return b.String()
}

// DeletedTicket is a ticket that has been removed from the store and is
// now owned by the caller.
type DeletedTicket struct {
	Ticket Ticket `json:"ticket"`
}

func (d DeletedTicket) String() string {
	return d.Ticket.String()
}
