package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// Toggled returns the opposite status.
func (s TicketStatus) Toggled() TicketStatus {
	if s == TicketStatusResolved {
		return TicketStatusInProgress
	}
	return TicketStatusResolved
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

// TicketPriorities lists priorities in form order.
var TicketPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh}

// TicketCategory groups tickets for triage.
type TicketCategory string

const (
	TicketCategoryGeneral      TicketCategory = "General"
	TicketCategoryBilling      TicketCategory = "Billing"
	TicketCategoryTechnical    TicketCategory = "Technical"
	TicketCategoryAppointments TicketCategory = "Appointments"
	TicketCategoryFeedback     TicketCategory = "Feedback"
)

// TicketCategories lists categories in form order.
var TicketCategories = []TicketCategory{
	TicketCategoryGeneral,
	TicketCategoryBilling,
	TicketCategoryTechnical,
	TicketCategoryAppointments,
	TicketCategoryFeedback,
}

// GuestName is used when a requester leaves the name blank.
const GuestName = "Guest"

// Ticket is a support request raised by a visitor.
type Ticket struct {
	ID        int            `json:"id"`
	Subject   string         `json:"subject"`
	Category  TicketCategory `json:"category"`
	Priority  TicketPriority `json:"priority"`
	Name      string         `json:"name"`
	Status    TicketStatus   `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}
