package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/store"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// NewTicket describes a ticket to append.
type NewTicket struct {
	Subject  string
	Category domain.TicketCategory
	Priority domain.TicketPriority
	Name     string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, input NewTicket) (*domain.Ticket, error)
	ToggleStatus(ctx context.Context, id int) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
}

type ticketRepository struct {
	store store.Store
	clock Clock
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(s store.Store, clock Clock) TicketRepository {
	return &ticketRepository{store: s, clock: clock}
}

func (r *ticketRepository) Create(ctx context.Context, input NewTicket) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, apperrors.NewValidationError("subject required", nil)
	}

	r.store.Lock()
	defer r.store.Unlock()

	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	ticket := domain.Ticket{
		ID:        nextID(tickets, func(t domain.Ticket) int { return t.ID }),
		Subject:   subject,
		Category:  input.Category,
		Priority:  input.Priority,
		Name:      strings.TrimSpace(input.Name),
		Status:    domain.TicketStatusInProgress,
		CreatedAt: r.clock.Now(),
	}
	if ticket.Category == "" {
		ticket.Category = domain.TicketCategoryGeneral
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if ticket.Name == "" {
		ticket.Name = domain.GuestName
	}

	tickets = append(tickets, ticket)
	if err := r.store.Set(ctx, TicketsKey, tickets); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ToggleStatus(ctx context.Context, id int) (*domain.Ticket, error) {
	r.store.Lock()
	defer r.store.Unlock()

	tickets, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		if tickets[i].ID != id {
			continue
		}
		tickets[i].Status = tickets[i].Status.Toggled()
		if err := r.store.Set(ctx, TicketsKey, tickets); err != nil {
			return nil, err
		}
		updated := tickets[i]
		return &updated, nil
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.load(ctx)
}

func (r *ticketRepository) load(ctx context.Context) ([]domain.Ticket, error) {
	return store.GetOr(ctx, r.store, TicketsKey, []domain.Ticket{})
}
