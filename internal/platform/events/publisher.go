// Package events provides the outbound adapters behind ports.EventPublisher.
package events

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/core/ports"
)

// NewPublisher selects the adapter for lifecycle events: posthog-backed when an
// API key is configured, slog-only otherwise.
func NewPublisher(apiKey string, logger *slog.Logger) (ports.EventPublisher, func()) {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, lifecycle events will only be logged.")
		return NewLogPublisher(logger), func() {}
	}
	pub, err := NewPosthogPublisher(apiKey, logger)
	if err != nil {
		logger.Error("Failed to initialize posthog client, falling back to log publisher",
			slog.String("error", err.Error()),
		)
		return NewLogPublisher(logger), func() {}
	}
	return pub, pub.Close
}

// posthogPublisher forwards lifecycle events to PostHog. Enqueue is buffered
// and asynchronous, which fits the fire-and-forget publish contract.
type posthogPublisher struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogPublisher creates a posthog-backed EventPublisher.
func NewPosthogPublisher(apiKey string, logger *slog.Logger) (*posthogPublisher, error) {
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		return nil, err
	}
	return &posthogPublisher{client: client, logger: logger}, nil
}

var _ ports.EventPublisher = (*posthogPublisher)(nil)

func (p *posthogPublisher) Publish(ctx context.Context, event domain.Event) error {
	props := event.Payload()
	p.logger.Info("Enqueueing event",
		slog.String("event", event.EventType()),
		slog.Any("properties", props),
	)
	return p.client.Enqueue(posthog.Capture{
		DistinctId: distinctID(props),
		Event:      event.EventType(),
		Properties: props,
		Timestamp:  event.OccurredAt(),
	})
}

// Close flushes buffered events.
func (p *posthogPublisher) Close() {
	if err := p.client.Close(); err != nil {
		p.logger.Error("Failed to close posthog client", slog.String("error", err.Error()))
	}
}

// distinctID groups events by stage; every lifecycle event carries a stageID.
func distinctID(props map[string]any) string {
	if id, ok := props["stageID"].(string); ok && id != "" {
		return id
	}
	return "stagefund-backend"
}

// logPublisher is the fallback adapter: events end up in the structured log only.
type logPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a slog-only EventPublisher.
func NewLogPublisher(logger *slog.Logger) ports.EventPublisher {
	return &logPublisher{logger: logger}
}

var _ ports.EventPublisher = (*logPublisher)(nil)

func (p *logPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.logger.Info("Lifecycle event",
		slog.String("event", event.EventType()),
		slog.Time("occurred_at", event.OccurredAt()),
		slog.Any("properties", event.Payload()),
	)
	return nil
}
