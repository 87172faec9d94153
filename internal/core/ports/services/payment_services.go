package services

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// PaymentSvcFacade generates and settles monthly contribution obligations.
type PaymentSvcFacade interface {
	// GenerateMonthlyPayments ensures exactly one obligation exists per
	// participant for the given cycle month. Safe to call repeatedly for the
	// same (stage, month); re-invocation creates nothing new. Returns the
	// obligations created by this call.
	GenerateMonthlyPayments(ctx context.Context, stageID string, monthNumber int) ([]domain.StagePayment, error)

	// ProcessPayment marks an obligation paid with the provider's payment key.
	ProcessPayment(ctx context.Context, paymentID, paymentKey string) error

	GetPaymentsByStage(ctx context.Context, stageID string) ([]domain.StagePayment, error)
	GetPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error)
	GetUnpaidPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error)
}
