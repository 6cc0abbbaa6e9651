package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject  string                `json:"subject"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
	Name     string                `json:"name"`
}

// TicketResponse represents one ticket.
type TicketResponse struct {
	ID        int                   `json:"id"`
	Subject   string                `json:"subject"`
	Category  domain.TicketCategory `json:"category"`
	Priority  domain.TicketPriority `json:"priority"`
	Name      string                `json:"name"`
	Status    domain.TicketStatus   `json:"status"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID,
		Subject:   t.Subject,
		Category:  t.Category,
		Priority:  t.Priority,
		Name:      t.Name,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
	}
}

// NewTicketResponses maps tickets, keeping order.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}
