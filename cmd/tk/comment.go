package main

import (
	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/types"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comment",
		GroupID: "tickets",
		Short:   "Add a comment to a ticket",
		Long: `Append a comment to a ticket. Comments keep the order they were added
in and cannot be edited or removed.`,
		Example: `  tk comment --ticket-id 3 --comment "Reproduced on 1.4"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDFromFlags(cmd)
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetString("comment")
			comment, err := types.NewComment(raw)
			if err != nil {
				return err
			}

			if !store.AddCommentToTicket(id, comment) {
				return reportNotFound(cmd, id)
			}
			storeDirty = true

			if jsonOutput {
				ticket, _ := store.Get(id)
				return outputJSON(cmd, ticket)
			}
			printSuccess("Comment has been added to ticket %d", id)
			return nil
		},
	}
	addTicketIDFlag(cmd)
	cmd.Flags().String("comment", "", "Comment text")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}
