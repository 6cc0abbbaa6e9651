package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/internal/store"
)

// StoreProvider hands out the store for one visitor.
type StoreProvider interface {
	ForVisitor(visitorID string) store.Store
}

// Dependencies bundles what the desk services share.
type Dependencies struct {
	Stores     StoreProvider
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Validator  *FormValidator
	Logger     *zap.Logger
	Clock      repository.Clock
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Dispatcher == nil {
		d.Dispatcher = events.NewInMemoryDispatcher()
	}
	if d.Validator == nil {
		d.Validator = NewFormValidator()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

func (d Dependencies) publishEvent(ctx context.Context, event events.Event) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	if err := d.Dispatcher.Publish(ctx, event); err != nil {
		d.Logger.Warn("event handlers failed",
			zap.String("event_type", string(event.Type)),
			zap.String("visitor_id", event.VisitorID),
			zap.Error(err))
	}
}
