package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/validation"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		GroupID: "tickets",
		Short:   "Create a new ticket",
		Long: `Create a new ticket with status ToDo and no comments.

The title must contain at least one non-whitespace character; the
description may be empty. With --interactive, the fields are asked for in
a terminal form instead.`,
		Example: `  tk create --title "Fix bug" --description "NPE on login"
  tk create --interactive`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}
	cmd.Flags().String("title", "", "Ticket title (required unless --interactive)")
	cmd.Flags().String("description", "", "Ticket description")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the ticket using an interactive form")
	cmd.MarkFlagsMutuallyExclusive("interactive", "title")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	if interactive {
		var err error
		title, description, err = runCreateForm(description)
		if errors.Is(err, errFormAborted) {
			fmt.Fprintln(stderr, "Ticket creation cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	} else if !cmd.Flags().Changed("title") {
		return fmt.Errorf("required flag \"title\" not set (or use --interactive)")
	}

	draft, err := validation.Draft(title, description)
	if err != nil {
		return err
	}

	id := store.Create(draft)
	storeDirty = true

	if jsonOutput {
		ticket, _ := store.Get(id)
		return outputJSON(cmd, ticket)
	}
	printSuccess("Created ticket %d", id)
	return nil
}
