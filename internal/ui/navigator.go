// Package ui builds the view models behind the support desk page.
package ui

import "fmt"

// Pane is one tab of the widget.
type Pane string

const (
	PaneAssistant Pane = "assistant"
	PaneNewTicket Pane = "new-ticket"
	PaneFAQ       Pane = "faq"
	PaneMyTickets Pane = "my-tickets"
)

var paneOrder = []Pane{PaneAssistant, PaneNewTicket, PaneFAQ, PaneMyTickets}

var paneLabels = map[Pane]string{
	PaneAssistant: "Assistant",
	PaneNewTicket: "New Ticket",
	PaneFAQ:       "FAQ",
	PaneMyTickets: "My Tickets",
}

// Tab is a rendered tab button.
type Tab struct {
	Pane   Pane
	Label  string
	Active bool
}

// Navigator tracks which single pane is visible.
type Navigator struct {
	active Pane
}

// NewNavigator starts on the assistant pane.
func NewNavigator() *Navigator {
	return &Navigator{active: PaneAssistant}
}

// Select activates pane and deactivates the rest. Unknown panes are rejected
// and leave the current selection in place.
func (n *Navigator) Select(pane Pane) error {
	if _, ok := paneLabels[pane]; !ok {
		return fmt.Errorf("unknown pane %q", pane)
	}
	n.active = pane
	return nil
}

// Active returns the visible pane.
func (n *Navigator) Active() Pane {
	return n.active
}

// IsActive reports whether pane is the visible one.
func (n *Navigator) IsActive(pane Pane) bool {
	return n.active == pane
}

// Tabs lists every pane in display order.
func (n *Navigator) Tabs() []Tab {
	tabs := make([]Tab, 0, len(paneOrder))
	for _, p := range paneOrder {
		tabs = append(tabs, Tab{Pane: p, Label: paneLabels[p], Active: p == n.active})
	}
	return tabs
}
