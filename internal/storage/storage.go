// Package storage holds the in-memory ticket store.
//
// TicketStore is the sole owner of every ticket. Callers receive copies from
// Get and List; the only way to change a stored ticket is through the store's
// methods. Lookups on unknown IDs report ok == false rather than an error.
//
// Loading and saving the store to disk lives in the jsonfile sub-package.
package storage

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tkt-dev/tk/internal/types"
)

// ErrCorruptState is returned by Restore when persisted state violates the
// store's invariants.
var ErrCorruptState = errors.New("corrupt ticket state")

// TicketStore owns all tickets keyed by ID and issues new IDs.
type TicketStore struct {
	currentID types.TicketID
	data      map[types.TicketID]*types.Ticket
}

// New returns an empty store whose first issued ID will be 1.
func New() *TicketStore {
	return &TicketStore{
		data: make(map[types.TicketID]*types.Ticket),
	}
}

// Restore rebuilds a store from persisted state. It rejects ID 0, duplicate
// IDs, and a counter below the highest ticket ID, since any of those would let
// the store hand out an identifier twice.
func Restore(currentID types.TicketID, tickets []types.Ticket) (*TicketStore, error) {
	s := New()
	for _, t := range tickets {
		if t.ID == 0 {
			return nil, fmt.Errorf("%w: ticket with id 0", ErrCorruptState)
		}
		if _, dup := s.data[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate ticket id %d", ErrCorruptState, t.ID)
		}
		if t.ID > currentID {
			return nil, fmt.Errorf("%w: ticket id %d exceeds id counter %d", ErrCorruptState, t.ID, currentID)
		}
		if t.Title.IsZero() {
			return nil, fmt.Errorf("%w: ticket %d has no title", ErrCorruptState, t.ID)
		}
		if !t.Status.IsValid() {
			return nil, fmt.Errorf("%w: ticket %d has invalid status %q", ErrCorruptState, t.ID, t.Status)
		}
		c := t.Clone()
		s.data[c.ID] = &c
	}
	s.currentID = currentID
	return s, nil
}

func (s *TicketStore) generateID() types.TicketID {
	s.currentID++
	return s.currentID
}

// Create stores a new ticket built from draft with status ToDo and no
// comments, and returns its ID.
func (s *TicketStore) Create(draft types.TicketDraft) types.TicketID {
	id := s.generateID()
	s.data[id] = &types.Ticket{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      types.StatusToDo,
		Comments:    []types.Comment{},
	}
	return id
}

// Get returns a copy of the ticket with the given ID.
func (s *TicketStore) Get(id types.TicketID) (types.Ticket, bool) {
	t, ok := s.data[id]
	if !ok {
		return types.Ticket{}, false
	}
	return t.Clone(), true
}

// List returns a copy of every ticket, ordered by ID.
func (s *TicketStore) List() []types.Ticket {
	out := make([]types.Ticket, 0, len(s.data))
	for _, t := range s.data {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateTicket applies the non-nil fields of patch.
func (s *TicketStore) UpdateTicket(id types.TicketID, patch types.TicketPatch) bool {
	t, ok := s.data[id]
	if !ok {
		return false
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	return true
}

// UpdateTicketStatus overwrites the ticket's status. Any status may move to
// any other.
func (s *TicketStore) UpdateTicketStatus(id types.TicketID, status types.Status) bool {
	t, ok := s.data[id]
	if !ok {
		return false
	}
	t.Status = status
	return true
}

// AddCommentToTicket appends comment to the ticket's comments.
func (s *TicketStore) AddCommentToTicket(id types.TicketID, comment types.Comment) bool {
	t, ok := s.data[id]
	if !ok {
		return false
	}
	t.Comments = append(t.Comments, comment)
	return true
}

// Delete removes the ticket and hands it to the caller.
func (s *TicketStore) Delete(id types.TicketID) (types.DeletedTicket, bool) {
	t, ok := s.data[id]
	if !ok {
		return types.DeletedTicket{}, false
	}
	delete(s.data, id)
	return types.DeletedTicket{Ticket: *t}, true
}

// Len returns the number of stored tickets.
func (s *TicketStore) Len() int {
	return len(s.data)
}

// CurrentID returns the last issued ID, or 0 if none has been issued.
func (s *TicketStore) CurrentID() types.TicketID {
	return s.currentID
}

// Snapshot returns the ID counter and a copy of every ticket ordered by ID.
func (s *TicketStore) Snapshot() (types.TicketID, []types.Ticket) {
	return s.currentID, s.List()
}
