package dispatch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tixcli/tix/internal/types"
	"github.com/tixcli/tix/internal/ui"
)

// UnassignedLabel is shown in place of a missing assignee.
const UnassignedLabel = "Unassigned"

const (
	msgCreated  = "Ticket created successfully, with ID %s\n"
	msgUpdated  = "Ticket updated successfully.\n"
	msgNotFound = "Ticket not found.\n"
	msgNoTicket = "No tickets found.\n"
	listHeader  = "ID | Title | Status | Assignee"
	listRule    = "------------------------"
)

func (d *Dispatcher) renderCreated(t *types.Ticket) error {
	if d.JSON {
		return d.writeJSON(t)
	}
	if d.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(d.out(), msgCreated, ui.RenderAccent(t.ID))
	return err
}

func (d *Dispatcher) renderUpdated(t *types.Ticket) error {
	if d.JSON {
		return d.writeJSON(t)
	}
	if d.Quiet {
		return nil
	}
	_, err := fmt.Fprint(d.out(), msgUpdated)
	return err
}

func (d *Dispatcher) renderNotFound(id string) error {
	if d.JSON {
		return d.writeJSON(map[string]string{"error": "not found", "id": id})
	}
	_, err := fmt.Fprint(d.out(), msgNotFound)
	return err
}

func (d *Dispatcher) renderList(tickets []*types.Ticket) error {
	if d.JSON {
		if tickets == nil {
			tickets = []*types.Ticket{}
		}
		return d.writeJSON(tickets)
	}
	if len(tickets) == 0 {
		_, err := fmt.Fprint(d.out(), msgNoTicket)
		return err
	}

	var b strings.Builder
	b.WriteString(ui.RenderBold(listHeader) + "\n")
	b.WriteString(ui.RenderMuted(listRule) + "\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "%s | %s | %s | %s\n",
			ui.RenderAccent(t.ID), t.Title, ui.RenderStatus(t.Status), t.AssigneeOr(UnassignedLabel))
	}
	_, err := fmt.Fprint(d.out(), b.String())
	return err
}

func (d *Dispatcher) renderTicket(t *types.Ticket) error {
	if d.JSON {
		return d.writeJSON(t)
	}
	_, err := fmt.Fprint(d.out(), FormatTicket(t))
	return err
}

// FormatTicket renders the full ticket block used by view-ticket.
func FormatTicket(t *types.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", ui.RenderAccent(t.ID), ui.RenderBold(t.Title))
	fmt.Fprintf(&b, "Status: %s\n", ui.RenderStatus(t.Status))
	fmt.Fprintf(&b, "Assignee: %s\n", t.AssigneeOr(UnassignedLabel))
	fmt.Fprintf(&b, "Created: %s\n", t.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Updated: %s\n", t.UpdatedAt.Format(time.RFC3339))
	if t.Description != "" {
		fmt.Fprintf(&b, "\nDescription:\n%s\n", ui.RenderMarkdown(t.Description))
	}
	return b.String()
}

// writeJSON outputs v as pretty-printed JSON.
func (d *Dispatcher) writeJSON(v interface{}) error {
	encoder := json.NewEncoder(d.out())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
