package main

import (
	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/config"
	"github.com/tixcli/tix/internal/dispatch"
)

var listCmd = &cobra.Command{
	Use:     "list",
	GroupID: "tickets",
	Short:   "List all tickets",
	Long: `List every ticket as "ID | Title | Status | Assignee" rows.

Rows come out in no particular order unless --sort (or sort: true in the
config file) orders them by creation time.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	sort, _ := cmd.Flags().GetBool("sort")
	if !cmd.Flags().Changed("sort") {
		sort = config.GetBool(config.KeySort)
	}
	return newDispatcher(cmd).Dispatch(getRootContext(), dispatch.ListRequest{Sort: sort})
}

func init() {
	listCmd.Flags().Bool("sort", false, "Order tickets by creation time")
	rootCmd.AddCommand(listCmd)
}
