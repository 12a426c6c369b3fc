package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/events"
)

// EventForwarder ships events to an external audit sink.
type EventForwarder interface {
	Forward(ctx context.Context, event events.Event) error
}

// AuditService records user administration events.
type AuditService struct {
	dispatcher events.Dispatcher
	forwarder  EventForwarder
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, forwarder EventForwarder, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		forwarder:  forwarder,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserUpdated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeactivated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handle)
	a.dispatcher.Subscribe(events.EventUserPasswordReset, a.handle)
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	a.logger.Info("user admin event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))

	if a.forwarder == nil {
		return nil
	}
	if err := a.forwarder.Forward(ctx, event); err != nil {
		a.logger.Warn("forward audit event", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	return nil
}
