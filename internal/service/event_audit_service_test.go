package service_test

import (
	"context"
	"testing"

	"ai-profiling-be/internal/service"
	"ai-profiling-be/pkg/events"
	pktNats "ai-profiling-be/pkg/nats"
)

type fakeSubscriber struct {
	subject string
	durable string
	handler pktNats.EventHandler
}

func (f *fakeSubscriber) Subscribe(subject string, durableName string, handler pktNats.EventHandler) error {
	f.subject = subject
	f.durable = durableName
	f.handler = handler
	return nil
}

type recordingLogger struct {
	nopLogger
	messages []string
}

func (l *recordingLogger) Info(_ string, message string, _ map[string]interface{}) {
	l.messages = append(l.messages, message)
}

func TestEventAuditWorkerRecordsLifecycleEvents(t *testing.T) {
	sub := &fakeSubscriber{}
	log := &recordingLogger{}
	service.NewEventAuditService(sub, log).Start()

	if sub.subject != "profile.>" {
		t.Errorf("subscribed to %q, want every profile subject", sub.subject)
	}
	if sub.durable == "" {
		t.Error("subscription is not durable")
	}
	if sub.handler == nil {
		t.Fatal("no handler registered")
	}

	event := events.NewLoopTerminated("user-1", 95)
	if err := sub.handler(context.Background(), event); err != nil {
		t.Fatalf("handler: %v", err)
	}

	logged := false
	for _, m := range log.messages {
		if m == events.TypeLoopTerminated {
			logged = true
		}
	}
	if !logged {
		t.Errorf("audit log messages = %v, missing %s", log.messages, events.TypeLoopTerminated)
	}
}
