package services

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// PayoutSvcFacade generates and disburses turn payouts.
type PayoutSvcFacade interface {
	// GeneratePayout ensures exactly one payout record exists for the turn.
	// Re-invocation for an existing (stage, turn) is a no-op returning the
	// existing record.
	GeneratePayout(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error)

	// CompletePayout records the disbursement, marks the recipient received and
	// closes the stage once every turn has been paid out.
	CompletePayout(ctx context.Context, payoutID, transactionID string) error

	GetPayoutsByStage(ctx context.Context, stageID string) ([]domain.StagePayout, error)
	GetPayoutsByUser(ctx context.Context, username string) ([]domain.StagePayout, error)
}
