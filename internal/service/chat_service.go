package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/intent"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// Greeting opens every transcript.
const Greeting = "Hello! I'm your virtual health assistant. Ask about hours, location, booking, or type 'agent' to open a ticket."

// ChatService is the assistant: it classifies a message, acts on it and
// appends both sides to the visitor's transcript.
type ChatService struct {
	deps         Dependencies
	tickets      *TicketService
	appointments *AppointmentService
}

// NewChatService constructs the service.
func NewChatService(deps Dependencies, tickets *TicketService, appointments *AppointmentService) *ChatService {
	return &ChatService{deps: deps.withDefaults(), tickets: tickets, appointments: appointments}
}

func (s *ChatService) repo(visitorID string) repository.TranscriptRepository {
	return repository.NewTranscriptRepository(s.deps.Stores.ForVisitor(visitorID))
}

// Transcript returns the visitor's transcript, greeting first-time visitors.
func (s *ChatService) Transcript(ctx context.Context, visitorID string) ([]domain.ChatMessage, error) {
	return s.repo(visitorID).AppendSeeded(ctx, s.message(Greeting, domain.SenderBot))
}

// HandleMessage processes one user submission and returns the updated
// transcript. Blank input changes nothing. The user message and the reply
// are written together once the reply is known, so a failed action leaves
// the transcript as it was.
func (s *ChatService) HandleMessage(ctx context.Context, visitorID, text string) ([]domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.Transcript(ctx, visitorID)
	}
	greeting := s.message(Greeting, domain.SenderBot)
	userMsg := s.message(text, domain.SenderUser)

	detected := intent.Detect(text)
	s.deps.Metrics.RecordIntent(string(detected.Kind))

	reply, err := s.respond(ctx, visitorID, detected)
	if err != nil {
		return nil, err
	}
	return s.repo(visitorID).AppendSeeded(ctx, greeting, userMsg, s.message(reply, domain.SenderBot))
}

func (s *ChatService) respond(ctx context.Context, visitorID string, detected intent.Intent) (string, error) {
	switch detected.Kind {
	case intent.KindAgent:
		ticket, err := s.tickets.OpenChatTicket(ctx, visitorID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Ticket %d opened. Our team will contact you.", ticket.ID), nil
	case intent.KindBook:
		_, err := s.appointments.QuickBook(ctx, visitorID, detected.Type, detected.Slot)
		if apperrors.HasCode(err, apperrors.CodeSlotConflict) {
			return apperrors.ToDomainError(err).Message, nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Booked %s counselling at %s.", detected.Type, domain.DisplaySlot(detected.Slot)), nil
	default:
		s.deps.Logger.Debug("canned reply", zap.String("intent", string(detected.Kind)))
		return detected.Answer, nil
	}
}

func (s *ChatService) message(text string, sender domain.Sender) domain.ChatMessage {
	return domain.ChatMessage{Text: text, Sender: sender, At: s.deps.Clock.Now()}
}
