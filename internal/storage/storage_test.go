package storage_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkt-dev/tk/internal/storage"
	"github.com/tkt-dev/tk/internal/types"
)

func mustTitle(t *testing.T, s string) types.Title {
	t.Helper()
	title, err := types.NewTitle(s)
	require.NoError(t, err)
	return title
}

func mustComment(t *testing.T, s string) types.Comment {
	t.Helper()
	c, err := types.NewComment(s)
	require.NoError(t, err)
	return c
}

func newDraft(t *testing.T, title, description string) types.TicketDraft {
	t.Helper()
	return types.TicketDraft{Title: mustTitle(t, title), Description: description}
}

func createTicket(t *testing.T, s *storage.TicketStore, n int) types.Ticket {
	t.Helper()
	id := s.Create(newDraft(t, fmt.Sprintf("ticket %d", n), fmt.Sprintf("description %d", n)))
	ticket, ok := s.Get(id)
	require.True(t, ok, "created ticket %d should be retrievable", id)
	return ticket
}

func TestCreateTicket(t *testing.T) {
	s := storage.New()
	draft := newDraft(t, "Fix bug", "NPE on login")

	id := s.Create(draft)

	ticket, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, ticket.ID)
	assert.Equal(t, draft.Title, ticket.Title)
	assert.Equal(t, draft.Description, ticket.Description)
	assert.Equal(t, types.StatusToDo, ticket.Status)
	assert.Empty(t, ticket.Comments)
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	s := storage.New()
	assert.Equal(t, types.TicketID(0), s.CurrentID())

	for want := types.TicketID(1); want <= 5; want++ {
		got := s.Create(newDraft(t, "t", ""))
		assert.Equal(t, want, got)
	}

	// Deleting does not free an ID for reuse.
	_, ok := s.Delete(5)
	require.True(t, ok)
	assert.Equal(t, types.TicketID(6), s.Create(newDraft(t, "t", "")))
}

func TestGetMissingTicket(t *testing.T) {
	s := storage.New()
	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	s := storage.New()
	id := s.Create(newDraft(t, "original", "desc"))
	require.True(t, s.AddCommentToTicket(id, mustComment(t, "first")))

	ticket, _ := s.Get(id)
	ticket.Description = "changed"
	ticket.Comments[0] = mustComment(t, "tampered")

	again, _ := s.Get(id)
	assert.Equal(t, "desc", again.Description)
	assert.Equal(t, "first", again.Comments[0].String())
}

func TestDeleteTicket(t *testing.T) {
	s := storage.New()
	inserted := createTicket(t, s, 1)

	deleted, ok := s.Delete(inserted.ID)
	require.True(t, ok)
	assert.True(t, deleted.Ticket.Equal(inserted))

	_, ok = s.Get(inserted.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestDeleteMissingTicketLeavesStoreUnchanged(t *testing.T) {
	s := storage.New()
	createTicket(t, s, 1)
	createTicket(t, s, 2)
	before := s.List()

	_, ok := s.Delete(99)
	assert.False(t, ok)
	assert.Equal(t, before, s.List())
}

func TestListEmptyStore(t *testing.T) {
	s := storage.New()
	tickets := s.List()
	assert.NotNil(t, tickets)
	assert.Empty(t, tickets)
}

func TestListReturnsAllTickets(t *testing.T) {
	s := storage.New()
	n := 1 + rand.Intn(200)
	created := make(map[types.TicketID]types.Ticket, n)
	for i := 0; i < n; i++ {
		ticket := createTicket(t, s, i)
		created[ticket.ID] = ticket
	}

	listed := s.List()
	require.Len(t, listed, n)
	for _, ticket := range listed {
		want, ok := created[ticket.ID]
		require.True(t, ok, "unexpected ticket %d", ticket.ID)
		assert.True(t, want.Equal(ticket))
	}
	for i := 1; i < len(listed); i++ {
		assert.Less(t, listed[i-1].ID, listed[i].ID)
	}
}

func TestUpdateTicket(t *testing.T) {
	newTitle := mustTitle(t, "new title")
	newDesc := "new description"
	emptyDesc := ""

	tests := []struct {
		name      string
		patch     types.TicketPatch
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "both fields",
			patch:     types.TicketPatch{Title: &newTitle, Description: &newDesc},
			wantTitle: "new title",
			wantDesc:  "new description",
		},
		{
			name:      "title only",
			patch:     types.TicketPatch{Title: &newTitle},
			wantTitle: "new title",
			wantDesc:  "old description",
		},
		{
			name:      "description only",
			patch:     types.TicketPatch{Description: &newDesc},
			wantTitle: "old title",
			wantDesc:  "new description",
		},
		{
			name:      "description cleared",
			patch:     types.TicketPatch{Description: &emptyDesc},
			wantTitle: "old title",
			wantDesc:  "",
		},
		{
			name:      "no fields",
			patch:     types.TicketPatch{},
			wantTitle: "old title",
			wantDesc:  "old description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := storage.New()
			id := s.Create(newDraft(t, "old title", "old description"))
			require.True(t, s.UpdateTicketStatus(id, types.StatusBlocked))
			require.True(t, s.AddCommentToTicket(id, mustComment(t, "keep me")))

			require.True(t, s.UpdateTicket(id, tt.patch))

			got, _ := s.Get(id)
			assert.Equal(t, tt.wantTitle, got.Title.String())
			assert.Equal(t, tt.wantDesc, got.Description)
			assert.Equal(t, types.StatusBlocked, got.Status)
			assert.Equal(t, []types.Comment{mustComment(t, "keep me")}, got.Comments)
		})
	}
}

func TestUpdateMissingTicket(t *testing.T) {
	s := storage.New()
	title := mustTitle(t, "x")
	assert.False(t, s.UpdateTicket(3, types.TicketPatch{Title: &title}))
	assert.Equal(t, 0, s.Len())
}

func TestUpdateTicketStatus(t *testing.T) {
	for _, from := range types.AllStatuses {
		for _, to := range types.AllStatuses {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				s := storage.New()
				id := s.Create(newDraft(t, "t", ""))
				require.True(t, s.UpdateTicketStatus(id, from))
				require.True(t, s.UpdateTicketStatus(id, to))
				got, _ := s.Get(id)
				assert.Equal(t, to, got.Status)
			})
		}
	}
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	s := storage.New()
	assert.False(t, s.UpdateTicketStatus(1, types.StatusDone))
}

func TestAddCommentToTicket(t *testing.T) {
	s := storage.New()
	id := s.Create(newDraft(t, "t", ""))

	var want []types.Comment
	for _, text := range []string{"one", "two", "one"} {
		c := mustComment(t, text)
		require.True(t, s.AddCommentToTicket(id, c))
		want = append(want, c)

		got, _ := s.Get(id)
		assert.Equal(t, want, got.Comments)
	}
}

func TestAddCommentToMissingTicket(t *testing.T) {
	s := storage.New()
	assert.False(t, s.AddCommentToTicket(types.TicketID(rand.Uint64()|1), mustComment(t, "Test comment")))
}

func TestTicketLifecycle(t *testing.T) {
	s := storage.New()

	id := s.Create(newDraft(t, "Fix bug", "NPE on login"))
	require.Equal(t, types.TicketID(1), id)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, types.StatusToDo, got.Status)

	require.True(t, s.AddCommentToTicket(1, mustComment(t, "Reproduced")))
	got, _ = s.Get(1)
	assert.Equal(t, []types.Comment{mustComment(t, "Reproduced")}, got.Comments)

	require.True(t, s.UpdateTicketStatus(1, types.StatusDone))
	got, _ = s.Get(1)
	assert.Equal(t, types.StatusDone, got.Status)

	deleted, ok := s.Delete(1)
	require.True(t, ok)
	assert.Equal(t, types.StatusDone, deleted.Ticket.Status)
	assert.Len(t, deleted.Ticket.Comments, 1)

	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestRestore(t *testing.T) {
	a := types.Ticket{ID: 1, Title: mustTitle(t, "a"), Status: types.StatusDone, Comments: []types.Comment{mustComment(t, "c")}}
	b := types.Ticket{ID: 3, Title: mustTitle(t, "b"), Status: types.StatusBlocked}

	s, err := storage.Restore(5, []types.Ticket{b, a})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, types.TicketID(5), s.CurrentID())

	counter, tickets := s.Snapshot()
	assert.Equal(t, types.TicketID(5), counter)
	require.Len(t, tickets, 2)
	assert.True(t, tickets[0].Equal(a))
	assert.True(t, tickets[1].Equal(b))

	assert.Equal(t, types.TicketID(6), s.Create(newDraft(t, "next", "")))
}

func TestRestoreRejectsCorruptState(t *testing.T) {
	ok := types.Ticket{ID: 2, Title: mustTitle(t, "ok"), Status: types.StatusToDo}

	tests := []struct {
		name    string
		counter types.TicketID
		tickets []types.Ticket
	}{
		{"zero id", 2, []types.Ticket{{ID: 0, Title: mustTitle(t, "z"), Status: types.StatusToDo}}},
		{"duplicate id", 2, []types.Ticket{ok, ok}},
		{"counter behind ids", 1, []types.Ticket{ok}},
		{"missing title", 2, []types.Ticket{{ID: 2, Status: types.StatusToDo}}},
		{"invalid status", 2, []types.Ticket{{ID: 2, Title: mustTitle(t, "s"), Status: "closed"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := storage.Restore(tt.counter, tt.tickets)
			assert.ErrorIs(t, err, storage.ErrCorruptState)
		})
	}
}
