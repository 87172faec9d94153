package ports

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// EventPublisher delivers lifecycle events to external subscribers (settlement,
// notifications). Delivery is fire-and-forget: the core logs publish failures
// and never retries or rolls back on them.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
