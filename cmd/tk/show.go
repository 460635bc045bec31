package main

import (
	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/ui"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get"},
		GroupID: "tickets",
		Short:   "Show one ticket",
		Long: `Show one ticket with its status and comments.

On a colour terminal the description is rendered as markdown.`,
		Example: `  tk show --ticket-id 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ticketIDFromFlags(cmd)
			if err != nil {
				return err
			}
			ticket, ok := store.Get(id)
			if !ok {
				return reportNotFound(cmd, id)
			}
			if jsonOutput {
				return outputJSON(cmd, ticket)
			}
			noPager, _ := cmd.Flags().GetBool("no-pager")
			return ui.ToPager(cmd.OutOrStdout(), ui.RenderTicket(ticket, ui.TicketOptions{Markdown: true}), ui.PagerOptions{NoPager: noPager})
		},
	}
	addTicketIDFlag(cmd)
	cmd.Flags().Bool("no-pager", false, "Do not pipe output through a pager")
	return cmd
}
