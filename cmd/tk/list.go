package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "tickets",
		Short:   "List all tickets",
		Long:    `List every ticket in ID order, separated by blank lines.`,
		Example: `  tk list
  tk list --json`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
	cmd.Flags().Bool("no-pager", false, "Do not pipe output through a pager")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	tickets := store.List()
	debug.Logf("list: %d tickets\n", len(tickets))

	if jsonOutput {
		return outputJSON(cmd, tickets)
	}
	if len(tickets) == 0 {
		debug.PrintlnNormal(ui.RenderMuted("No tickets."))
		return nil
	}

	rendered := make([]string, len(tickets))
	for i, t := range tickets {
		rendered[i] = ui.RenderTicket(t, ui.TicketOptions{})
	}
	noPager, _ := cmd.Flags().GetBool("no-pager")
	return ui.ToPager(cmd.OutOrStdout(), strings.Join(rendered, "\n\n"), ui.PagerOptions{NoPager: noPager})
}
