package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tixcli/tix/internal/dispatch"
)

// maxTitleLength caps titles entered through the form.
const maxTitleLength = 500

var createFormCmd = &cobra.Command{
	Use:     "create-form",
	GroupID: "tickets",
	Short:   "Create a new ticket using an interactive form",
	Long: `Create a new ticket using an interactive terminal form.

The form uses keyboard navigation:
  - Tab/Shift+Tab: Move between fields
  - Enter: Submit the form (on the last field or submit button)
  - Ctrl+C: Cancel and exit`,
	Args: cobra.NoArgs,
	RunE: runCreateForm,
}

// createFormValues holds what the user typed into the form.
type createFormValues struct {
	Title       string
	Description string
	Assignee    string
}

func runCreateForm(cmd *cobra.Command, args []string) error {
	var values createFormValues
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Brief summary of the ticket (required)").
				Placeholder("e.g., Fix NPE on login").
				Value(&values.Title).
				Validate(validateFormTitle),

			huh.NewText().
				Title("Description").
				Description("Markdown is rendered by 'tix view-ticket'").
				Placeholder("Steps to reproduce, context, links...").
				CharLimit(5000).
				Value(&values.Description),

			huh.NewInput().
				Title("Assignee").
				Description("Who should work on this? (optional)").
				Placeholder("username").
				Value(&values.Assignee),

			huh.NewConfirm().
				Title("Create this ticket?").
				Affirmative("Create").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Ticket creation cancelled.")
			return nil
		}
		return fmt.Errorf("form error: %w", err)
	}
	if !confirmed {
		fmt.Fprintln(cmd.ErrOrStderr(), "Ticket creation cancelled.")
		return nil
	}

	return newDispatcher(cmd).Dispatch(getRootContext(), values.request())
}

func validateFormTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	if len(s) > maxTitleLength {
		return fmt.Errorf("title must be %d characters or less", maxTitleLength)
	}
	return nil
}

// request converts form input into a create request. A blank assignee
// means unassigned.
func (v createFormValues) request() dispatch.CreateRequest {
	req := dispatch.CreateRequest{
		Title:       strings.TrimSpace(v.Title),
		Description: v.Description,
	}
	if assignee := strings.TrimSpace(v.Assignee); assignee != "" {
		req.Assignee = &assignee
	}
	return req
}

func init() {
	rootCmd.AddCommand(createFormCmd)
}
