package repositories

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// PaymentReader defines read operations for contribution obligations.
type PaymentReader interface {
	// FindPaymentByID retrieves a single obligation.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.StagePayment, error)

	// FindPaymentsByStageID lists every obligation of a stage.
	FindPaymentsByStageID(ctx context.Context, stageID string) ([]domain.StagePayment, error)

	// FindPaymentsByUsername lists a user's obligations across stages.
	FindPaymentsByUsername(ctx context.Context, username string) ([]domain.StagePayment, error)
}

// PaymentWriter defines write operations for contribution obligations.
type PaymentWriter interface {
	// CreatePaymentsIfAbsent inserts the given obligations, skipping any whose
	// (stage_id, username, month_number) key already exists. The skip happens at
	// the storage layer (ON CONFLICT DO NOTHING), so concurrent generation runs
	// cannot double-insert. Returns the obligations actually created.
	CreatePaymentsIfAbsent(ctx context.Context, payments []domain.StagePayment) ([]domain.StagePayment, error)

	// UpdatePaymentPaid persists a paid transition.
	UpdatePaymentPaid(ctx context.Context, payment domain.StagePayment) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
