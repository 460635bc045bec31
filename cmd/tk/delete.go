package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		GroupID: "tickets",
		Short:   "Delete a ticket",
		Long: `Delete a ticket and print what was removed.

The ticket's ID is never reused.`,
		Example: `  tk delete --ticket-id 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDFromFlags(cmd)
			if err != nil {
				return err
			}

			deleted, ok := store.Delete(id)
			if !ok {
				return reportNotFound(cmd, id)
			}
			storeDirty = true

			if jsonOutput {
				return outputJSON(cmd, deleted)
			}
			if debug.IsQuiet() {
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderWarn("The following ticket has been deleted:"))
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderTicket(deleted.Ticket, ui.TicketOptions{}))
			return nil
		},
	}
	addTicketIDFlag(cmd)
	return cmd
}
