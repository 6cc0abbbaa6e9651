package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
)

// NotificationService logs domain events for the support team.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventAppointmentBooked, n.handleAppointment)
	n.dispatcher.Subscribe(events.EventAppointmentCancelled, n.handleAppointment)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	fields := eventFields(event)
	if payload, ok := event.Payload.(events.TicketCreatedPayload); ok {
		fields = append(fields, zap.String("priority", string(payload.Priority)))
		if payload.Priority == domain.TicketPriorityHigh {
			n.logger.Warn("TicketCreated", fields...)
			return nil
		}
	}
	n.logger.Info("TicketCreated", fields...)
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	n.logger.Info("TicketStatusChanged", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func (n *NotificationService) handleAppointment(_ context.Context, event events.Event) error {
	n.logger.Info("Appointment", append(eventFields(event), zap.Any("payload", event.Payload))...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_type", string(event.Type)),
		zap.String("visitor_id", event.VisitorID),
		zap.Int("record_id", event.RecordID),
		zap.String("source", string(event.Source)),
	}
}
