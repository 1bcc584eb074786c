package event

import (
	"context"
	"log/slog"
	"time"
)

type UserRegisteredEvent struct {
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

type BatchCompletedEvent struct {
	BatchID   string    `json:"batchId"`
	Username  string    `json:"username,omitempty"`
	Rows      int       `json:"rows"`
	Churners  int       `json:"churners"`
	Timestamp time.Time `json:"timestamp"`
}

// NoopEventPublisher is used when RabbitMQ is disabled.
type NoopEventPublisher struct {
	logger *slog.Logger
}

func NewNoopEventPublisher(logger *slog.Logger) *NoopEventPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopEventPublisher{logger: logger.With("component", "NoopEventPublisher")}
}

func (p *NoopEventPublisher) PublishUserRegistered(ctx context.Context, event UserRegisteredEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, publisher disabled", "routingKey", routingKeyUserRegistered, "username", event.Username)
	return nil
}

func (p *NoopEventPublisher) PublishBatchCompleted(ctx context.Context, event BatchCompletedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, publisher disabled", "routingKey", routingKeyBatchCompleted, "batchId", event.BatchID)
	return nil
}

var _ EventPublisher = (*NoopEventPublisher)(nil)
