package service

import (
	"context"

	"ai-profiling-be/internal/pkg/logger"
	"ai-profiling-be/pkg/events"
	pktNats "ai-profiling-be/pkg/nats"
)

// LifecycleSubscriber registers durable handlers for lifecycle subjects.
// Satisfied by *nats.Subscriber.
type LifecycleSubscriber interface {
	Subscribe(subject string, durableName string, handler pktNats.EventHandler) error
}

// EventAuditService consumes every lifecycle event off the stream and writes
// it to the audit log. Durable, so events emitted while the worker is down
// are recorded on restart.
type EventAuditService struct {
	subscriber LifecycleSubscriber
	logger     logger.ILogger
}

func NewEventAuditService(sub LifecycleSubscriber, log logger.ILogger) *EventAuditService {
	return &EventAuditService{
		subscriber: sub,
		logger:     log,
	}
}

// Start registers the durable consumer. Runs until the subscription fails to
// establish; consumption itself happens on the subscriber's goroutines.
func (s *EventAuditService) Start() {
	err := s.subscriber.Subscribe("profile.>", "profile-audit-worker", s.record)
	if err != nil {
		s.logger.Error("event_audit", "Failed to subscribe to lifecycle events", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	s.logger.Info("event_audit", "Lifecycle audit worker started", nil)
}

func (s *EventAuditService) record(_ context.Context, event events.Event) error {
	s.logger.Info("event_audit", event.EventType(), event.Payload())
	return nil
}
