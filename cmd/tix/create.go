package main

import (
	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/dispatch"
)

var createCmd = &cobra.Command{
	Use:     "create",
	GroupID: "tickets",
	Short:   "Create a new ticket",
	Long: `Create a new ticket in TODO status.

The ticket gets a fresh UUID, which is printed on success:

  tix create -t "Fix bug" -d "NPE on login"
  tix create -t "Write docs" -d "" -a alice`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")

	req := dispatch.CreateRequest{
		Title:       title,
		Description: description,
	}
	if cmd.Flags().Changed("assignee") {
		assignee, _ := cmd.Flags().GetString("assignee")
		req.Assignee = &assignee
	}

	return newDispatcher(cmd).Dispatch(getRootContext(), req)
}

func init() {
	createCmd.Flags().StringP("title", "t", "", "Ticket title (required)")
	createCmd.Flags().StringP("description", "d", "", "Ticket description (required, may be empty)")
	createCmd.Flags().StringP("assignee", "a", "", "Assignee (optional)")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("description")
	rootCmd.AddCommand(createCmd)
}
