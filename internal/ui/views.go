package ui

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
)

// Empty-state placeholders.
const (
	NoTicketsText      = "No tickets yet."
	NoAppointmentsText = "No appointments yet."
)

// TicketRow is one rendered ticket.
type TicketRow struct {
	ID          int
	Subject     string
	Status      string
	Category    string
	Priority    string
	Created     string
	ToggleLabel string
}

// TicketView is the full ticket list, newest first.
type TicketView struct {
	Rows        []TicketRow
	Placeholder string
}

// NewTicketView renders tickets given in insertion order.
func NewTicketView(tickets []domain.Ticket) TicketView {
	if len(tickets) == 0 {
		return TicketView{Placeholder: NoTicketsText}
	}
	rows := make([]TicketRow, 0, len(tickets))
	for i := len(tickets) - 1; i >= 0; i-- {
		t := tickets[i]
		label := "Resolve"
		if t.Status == domain.TicketStatusResolved {
			label = "Reopen"
		}
		rows = append(rows, TicketRow{
			ID:          t.ID,
			Subject:     t.Subject,
			Status:      string(t.Status),
			Category:    string(t.Category),
			Priority:    string(t.Priority),
			Created:     t.CreatedAt.Format("2006-01-02"),
			ToggleLabel: label,
		})
	}
	return TicketView{Rows: rows}
}

// AppointmentRow is one rendered appointment.
type AppointmentRow struct {
	ID       int
	Heading  string
	UserName string
	Notes    string
}

// AppointmentView is the full appointment list, newest first.
type AppointmentView struct {
	Rows        []AppointmentRow
	Placeholder string
}

// NewAppointmentView renders appointments given in insertion order.
func NewAppointmentView(appts []domain.Appointment) AppointmentView {
	if len(appts) == 0 {
		return AppointmentView{Placeholder: NoAppointmentsText}
	}
	rows := make([]AppointmentRow, 0, len(appts))
	for i := len(appts) - 1; i >= 0; i-- {
		a := appts[i]
		row := AppointmentRow{
			ID:       a.ID,
			Heading:  fmt.Sprintf("#%d · %s · %s", a.ID, strings.ToUpper(string(a.Type)), domain.DisplaySlot(a.Slot)),
			UserName: a.UserName,
		}
		if a.Notes != nil {
			row.Notes = *a.Notes
		}
		rows = append(rows, row)
	}
	return AppointmentView{Rows: rows}
}

// Severity of a toast.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Toast is a one-shot notice shown on the next render.
type Toast struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// FAQEntry is a static question and answer.
type FAQEntry struct {
	Question string
	Answer   string
}
