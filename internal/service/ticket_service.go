package service

import (
	"context"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
)

// ChatTicketSubject is the subject of tickets opened from the assistant.
const ChatTicketSubject = "Assistance requested via chatbot"

// TicketCreateInput is the ticket form.
type TicketCreateInput struct {
	Subject  string                `json:"subject" validate:"required,max=200"`
	Category domain.TicketCategory `json:"category" validate:"required,oneof=General Billing Technical Appointments Feedback"`
	Priority domain.TicketPriority `json:"priority" validate:"required,oneof=Low Medium High"`
	Name     string                `json:"name" validate:"max=120"`
}

// TicketService coordinates ticket workflows for a visitor.
type TicketService struct {
	deps Dependencies
}

// NewTicketService constructs the service.
func NewTicketService(deps Dependencies) *TicketService {
	return &TicketService{deps: deps.withDefaults()}
}

func (s *TicketService) repo(visitorID string) repository.TicketRepository {
	return repository.NewTicketRepository(s.deps.Stores.ForVisitor(visitorID), s.deps.Clock)
}

// SubmitTicket validates the form and opens a ticket. A blank name becomes Guest.
func (s *TicketService) SubmitTicket(ctx context.Context, visitorID string, input TicketCreateInput, source events.Source) (*domain.Ticket, error) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.Name = strings.TrimSpace(input.Name)
	if err := s.deps.Validator.Validate(input); err != nil {
		return nil, err
	}
	return s.create(ctx, visitorID, repository.NewTicket{
		Subject:  input.Subject,
		Category: input.Category,
		Priority: input.Priority,
		Name:     input.Name,
	}, source)
}

// OpenChatTicket opens the fixed assistance ticket used by the agent intent.
func (s *TicketService) OpenChatTicket(ctx context.Context, visitorID string) (*domain.Ticket, error) {
	return s.create(ctx, visitorID, repository.NewTicket{
		Subject:  ChatTicketSubject,
		Category: domain.TicketCategoryGeneral,
		Priority: domain.TicketPriorityMedium,
		Name:     domain.GuestName,
	}, events.SourceChat)
}

func (s *TicketService) create(ctx context.Context, visitorID string, input repository.NewTicket, source events.Source) (*domain.Ticket, error) {
	ticket, err := s.repo(visitorID).Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.deps.Metrics.RecordTicket("created", string(source))
	s.deps.publishEvent(ctx, events.Event{
		Type:      events.EventTicketCreated,
		VisitorID: visitorID,
		RecordID:  ticket.ID,
		Source:    source,
		Payload: events.TicketCreatedPayload{
			Subject:  ticket.Subject,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ToggleStatus flips a ticket between In Progress and Resolved.
func (s *TicketService) ToggleStatus(ctx context.Context, visitorID string, id int, source events.Source) (*domain.Ticket, error) {
	ticket, err := s.repo(visitorID).ToggleStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	s.deps.Metrics.RecordTicket("toggled", string(source))
	s.deps.publishEvent(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		VisitorID: visitorID,
		RecordID:  ticket.ID,
		Source:    source,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status.Toggled(),
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// ListTickets returns the visitor's tickets in insertion order.
func (s *TicketService) ListTickets(ctx context.Context, visitorID string) ([]domain.Ticket, error) {
	return s.repo(visitorID).List(ctx)
}
