package worker

import (
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/service"
)

// StartNotificationWorker registers notification handlers and, when an
// exporter is given, forwards every event to it.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, exporter *events.KafkaExporter) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if exporter != nil && dispatcher != nil {
		exporter.Register(dispatcher)
	}
}
