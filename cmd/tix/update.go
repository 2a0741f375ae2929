package main

import (
	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/dispatch"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	GroupID: "tickets",
	Short:   "Update fields of a ticket",
	Long: `Update the given fields of one ticket. Fields not passed are left as
they are; updated_at is refreshed either way.

Status is one of TODO, PROGRESS or DONE, in any case:

  tix update <id> -s progress -a alice

An invalid status is rejected before anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	req := dispatch.UpdateRequest{
		ID:          args[0],
		Title:       changedString(cmd, "title"),
		Description: changedString(cmd, "description"),
		Status:      changedString(cmd, "status"),
		Assignee:    changedString(cmd, "assignee"),
	}
	if err := newDispatcher(cmd).Dispatch(getRootContext(), req); err != nil {
		return err
	}
	warnMalformedID(cmd, req.ID)
	return nil
}

// changedString returns the flag's value, or nil when it wasn't passed.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	updateCmd.Flags().StringP("title", "t", "", "New title")
	updateCmd.Flags().StringP("description", "d", "", "New description")
	updateCmd.Flags().StringP("status", "s", "", "New status (TODO, PROGRESS, DONE)")
	updateCmd.Flags().StringP("assignee", "a", "", "New assignee")
	rootCmd.AddCommand(updateCmd)
}
