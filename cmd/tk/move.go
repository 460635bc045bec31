package main

import (
	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/types"
)

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "move",
		GroupID: "tickets",
		Short:   "Change a ticket's status",
		Long: `Change a ticket's status. Any status can move to any other.

Accepted values (case-insensitive): todo, inprogress, blocked, done.
"to-do" and "in-progress" are accepted too.`,
		Example: `  tk move --ticket-id 3 --status inprogress`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDFromFlags(cmd)
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("status")
			status, err := types.ParseStatus(raw)
			if err != nil {
				return err
			}

			if !store.UpdateTicketStatus(id, status) {
				return reportNotFound(cmd, id)
			}
			storeDirty = true

			if jsonOutput {
				ticket, _ := store.Get(id)
				return outputJSON(cmd, ticket)
			}
			printSuccess("Status of ticket %d was updated to %s", id, status.DisplayName())
			return nil
		},
	}
	addTicketIDFlag(cmd)
	cmd.Flags().String("status", "", "New status (todo, inprogress, blocked, done)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}
