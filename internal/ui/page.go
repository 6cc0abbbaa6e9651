package ui

import (
	"embed"
	"io/fs"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/intent"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates returns the page templates rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// FAQ is the content of the FAQ pane.
var FAQ = []FAQEntry{
	{Question: "When is support available?", Answer: intent.HoursAnswer},
	{Question: "Where are you?", Answer: intent.LocationAnswer},
	{Question: "How do I book counselling?", Answer: "Use the booking form under My Tickets, or type: book mental 2025-10-12 15:00"},
	{Question: "How do I reach a person?", Answer: "Type 'agent' in the assistant or submit a ticket. Our team will contact you."},
}

// Page is everything the widget template renders.
type Page struct {
	Tabs         []Tab
	Active       Pane
	Transcript   []domain.ChatMessage
	Tickets      TicketView
	Appointments AppointmentView
	Toast        *Toast
	PrefillType  domain.AppointmentType
	Categories   []domain.TicketCategory
	Priorities   []domain.TicketPriority
	ApptTypes    []domain.AppointmentType
	FAQ          []FAQEntry
}

// NewPage assembles a page from current repository reads.
func NewPage(nav *Navigator, transcript []domain.ChatMessage, tickets []domain.Ticket, appts []domain.Appointment) Page {
	return Page{
		Tabs:         nav.Tabs(),
		Active:       nav.Active(),
		Transcript:   transcript,
		Tickets:      NewTicketView(tickets),
		Appointments: NewAppointmentView(appts),
		Categories:   domain.TicketCategories,
		Priorities:   domain.TicketPriorities,
		ApptTypes:    domain.AppointmentTypes,
		FAQ:          FAQ,
	}
}

// Shows reports whether pane is the visible one.
func (p Page) Shows(pane string) bool {
	return string(p.Active) == pane
}

// Prefilled reports whether t is the quick-selected appointment type.
func (p Page) Prefilled(t domain.AppointmentType) bool {
	return p.PrefillType == t
}
