package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/user-admin-service/internal/events"
)

type stubForwarder struct {
	forwardFn func(ctx context.Context, event events.Event) error
	forwarded []events.Event
}

func (s *stubForwarder) Forward(ctx context.Context, event events.Event) error {
	s.forwarded = append(s.forwarded, event)
	if s.forwardFn != nil {
		return s.forwardFn(ctx, event)
	}
	return nil
}

func TestAuditServiceLogsAndForwards(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	forwarder := &stubForwarder{}
	NewAuditService(dispatcher, forwarder, zap.New(core)).RegisterHandlers()

	for _, et := range []events.EventType{events.EventUserUpdated, events.EventUserDeactivated, events.EventUserDeleted, events.EventUserPasswordReset} {
		require.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: string(et), Type: et, UserID: "u1"}))
	}

	require.Len(t, forwarder.forwarded, 4)
	entries := logs.FilterMessage("user admin event").All()
	require.Len(t, entries, 4)
	assert.Equal(t, "user.password_reset", entries[3].ContextMap()["event_type"])
}

func TestAuditServiceReportsForwardFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	forwarder := &stubForwarder{forwardFn: func(context.Context, events.Event) error {
		return errors.New("redis down")
	}}
	NewAuditService(dispatcher, forwarder, zap.New(core)).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{ID: "e1", Type: events.EventUserDeleted})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("forward audit event").Len())
}

func TestAuditServiceWithoutForwarder(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, nil, zap.NewNop()).RegisterHandlers()

	assert.NoError(t, dispatcher.Publish(context.Background(), events.Event{ID: "e1", Type: events.EventUserUpdated}))
}
