package main

import (
	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/types"
	"github.com/tkt-dev/tk/internal/validation"
)

func addTicketIDFlag(cmd *cobra.Command) {
	cmd.Flags().String("ticket-id", "", "ID of the ticket (e.g. 3 or #3)")
	_ = cmd.MarkFlagRequired("ticket-id")
}

func ticketIDFromFlags(cmd *cobra.Command) (types.TicketID, error) {
	raw, _ := cmd.Flags().GetString("ticket-id")
	return validation.ParseTicketID(raw)
}
