package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/validation"
)

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit",
		GroupID: "tickets",
		Short:   "Change a ticket's title or description",
		Long: `Change a ticket's title and/or description.

Only the flags you pass are changed. --description "" clears the
description; the title can be replaced but never emptied. Status and
comments are left alone (see 'tk move' and 'tk comment').`,
		Example: `  tk edit --ticket-id 3 --title "Fix login crash"
  tk edit --ticket-id 3 --description ""`,
		Args: cobra.NoArgs,
		RunE: runEdit,
	}
	addTicketIDFlag(cmd)
	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description")
	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := ticketIDFromFlags(cmd)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	patch, err := validation.Patch(
		cmd.Flags().Changed("title"), title,
		cmd.Flags().Changed("description"), description,
	)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change: pass --title and/or --description")
	}

	if !store.UpdateTicket(id, patch) {
		return reportNotFound(cmd, id)
	}
	storeDirty = true

	if jsonOutput {
		ticket, _ := store.Get(id)
		return outputJSON(cmd, ticket)
	}
	printSuccess("Ticket %d was updated.", id)
	return nil
}
