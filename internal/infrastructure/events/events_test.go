package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"intern-match/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLog_PublishWritesEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewLog(zap.New(core))

	userID := uuid.New()
	err := p.Publish(context.Background(), usecase.Event{
		Type:       usecase.EventApplicationCreated,
		UserID:     userID,
		Status:     "pending",
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	entries := logs.FilterMessage("event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["type"] != usecase.EventApplicationCreated {
		t.Fatalf("unexpected type field %v", fields["type"])
	}
	if fields["user_id"] != userID.String() {
		t.Fatalf("unexpected user_id field %v", fields["user_id"])
	}
}

func TestRabbitMQ_ClosedPublisher(t *testing.T) {
	p := &RabbitMQ{log: zap.NewNop()}
	err := p.Publish(context.Background(), usecase.Event{Type: usecase.EventCatalogUpdated})
	if !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected ErrPublisherClosed, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close on closed publisher: %v", err)
	}
}

type countingPublisher struct {
	n   int
	err error
}

func (p *countingPublisher) Publish(context.Context, usecase.Event) error {
	p.n++
	return p.err
}

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	ok := &countingPublisher{}
	failing := &countingPublisher{err: boom}

	err := Multi{failing, nil, ok}.Publish(context.Background(), usecase.Event{Type: usecase.EventBookmarkToggled})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if ok.n != 1 || failing.n != 1 {
		t.Fatalf("expected every publisher to be called, got ok=%d failing=%d", ok.n, failing.n)
	}
}
