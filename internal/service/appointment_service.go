package service

import (
	"context"
	"strings"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// AppointmentCreateInput is the appointment form.
type AppointmentCreateInput struct {
	Type     domain.AppointmentType `json:"type" validate:"required,oneof=mental career"`
	Slot     string                 `json:"slot" validate:"required,datetime=2006-01-02T15:04"`
	UserName string                 `json:"name" validate:"max=120"`
	Notes    string                 `json:"notes" validate:"max=1000"`
}

// AppointmentService coordinates booking and cancellation.
type AppointmentService struct {
	deps Dependencies
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps Dependencies) *AppointmentService {
	return &AppointmentService{deps: deps.withDefaults()}
}

func (s *AppointmentService) repo(visitorID string) repository.AppointmentRepository {
	return repository.NewAppointmentRepository(s.deps.Stores.ForVisitor(visitorID), s.deps.Clock)
}

// Book validates the form and books the slot.
func (s *AppointmentService) Book(ctx context.Context, visitorID string, input AppointmentCreateInput, source events.Source) (*domain.Appointment, error) {
	input.Slot = strings.TrimSpace(input.Slot)
	if err := s.deps.Validator.Validate(input); err != nil {
		return nil, err
	}
	return s.create(ctx, visitorID, repository.NewAppointment{
		Type:     input.Type,
		Slot:     input.Slot,
		UserName: input.UserName,
		Notes:    input.Notes,
	}, source)
}

// QuickBook books a slot for a guest from the assistant. The slot text is
// taken as the classifier produced it.
func (s *AppointmentService) QuickBook(ctx context.Context, visitorID string, apptType domain.AppointmentType, slot string) (*domain.Appointment, error) {
	return s.create(ctx, visitorID, repository.NewAppointment{
		Type:     apptType,
		Slot:     slot,
		UserName: domain.GuestName,
	}, events.SourceChat)
}

func (s *AppointmentService) create(ctx context.Context, visitorID string, input repository.NewAppointment, source events.Source) (*domain.Appointment, error) {
	appt, err := s.repo(visitorID).Create(ctx, input)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeSlotConflict) {
			s.deps.Metrics.RecordAppointment("book", "conflict")
		}
		return nil, err
	}
	s.deps.Metrics.RecordAppointment("book", "ok")
	s.deps.publishEvent(ctx, events.Event{
		Type:      events.EventAppointmentBooked,
		VisitorID: visitorID,
		RecordID:  appt.ID,
		Source:    source,
		Payload:   events.AppointmentPayload{Type: appt.Type, Slot: appt.Slot},
	})
	return appt, nil
}

// Cancel removes an appointment.
func (s *AppointmentService) Cancel(ctx context.Context, visitorID string, id int, source events.Source) error {
	appt, err := s.repo(visitorID).Cancel(ctx, id)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			s.deps.Metrics.RecordAppointment("cancel", "not_found")
		}
		return err
	}
	s.deps.Metrics.RecordAppointment("cancel", "ok")
	s.deps.publishEvent(ctx, events.Event{
		Type:      events.EventAppointmentCancelled,
		VisitorID: visitorID,
		RecordID:  id,
		Source:    source,
		Payload:   events.AppointmentPayload{Type: appt.Type, Slot: appt.Slot},
	})
	return nil
}

// ListAppointments returns the visitor's appointments in insertion order.
func (s *AppointmentService) ListAppointments(ctx context.Context, visitorID string) ([]domain.Appointment, error) {
	return s.repo(visitorID).List(ctx)
}
