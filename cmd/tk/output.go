package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkt-dev/tk/internal/debug"
	"github.com/tkt-dev/tk/internal/types"
	"github.com/tkt-dev/tk/internal/ui"
)

// outputJSON writes v as indented JSON to the command's stdout.
func outputJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// notFoundResult is the --json shape for a lookup that matched nothing.
type notFoundResult struct {
	TicketID types.TicketID `json:"ticket_id"`
	Found    bool           `json:"found"`
	Message  string         `json:"message"`
}

// reportNotFound tells the user no ticket has the given ID. A miss is not a
// failure: the invocation still exits 0 and nothing is saved.
func reportNotFound(cmd *cobra.Command, id types.TicketID) error {
	msg := fmt.Sprintf("There was no ticket associated to the ticket id %d", id)
	if jsonOutput {
		return outputJSON(cmd, notFoundResult{TicketID: id, Found: false, Message: msg})
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMuted(msg))
	return nil
}

// printSuccess prints a confirmation line unless --quiet is given.
func printSuccess(format string, args ...interface{}) {
	debug.PrintNormal("%s\n", ui.RenderPass(fmt.Sprintf(format, args...)))
}
