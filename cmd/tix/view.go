package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/debug"
	"github.com/tixcli/tix/internal/dispatch"
	"github.com/tixcli/tix/internal/idgen"
	"github.com/tixcli/tix/internal/ui"
)

var viewCmd = &cobra.Command{
	Use:     "view-ticket <id>",
	Aliases: []string{"view", "show"},
	GroupID: "tickets",
	Short:   "Show one ticket in full",
	Long: `Show every field of one ticket.

A missing ticket prints "Ticket not found." and is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	id := args[0]
	if err := newDispatcher(cmd).Dispatch(getRootContext(), dispatch.ViewRequest{ID: id}); err != nil {
		return err
	}
	warnMalformedID(cmd, id)
	return nil
}

// warnMalformedID points at 'tix list' when id cannot be a generated ticket
// id, which usually means a typo or a truncated paste.
func warnMalformedID(cmd *cobra.Command, id string) {
	if jsonOutput || debug.IsQuiet() || idgen.IsTicketID(id) {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %q is not a ticket id (ids are UUIDs); run 'tix list' to see them\n", ui.RenderWarn("Hint:"), id)
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
