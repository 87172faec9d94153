package repositories

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// PayoutReader defines read operations for payout records.
type PayoutReader interface {
	// FindPayoutByID retrieves a single payout record.
	FindPayoutByID(ctx context.Context, payoutID string) (*domain.StagePayout, error)

	// FindPayoutByStageAndTurn retrieves the payout for a turn, if generated.
	FindPayoutByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error)

	// FindPayoutsByStageID lists every payout of a stage ordered by turn.
	FindPayoutsByStageID(ctx context.Context, stageID string) ([]domain.StagePayout, error)

	// FindPayoutsByUsername lists a user's payouts across stages.
	FindPayoutsByUsername(ctx context.Context, username string) ([]domain.StagePayout, error)

	// CountCompletedByStageID counts disbursed payouts of a stage.
	CountCompletedByStageID(ctx context.Context, stageID string) (int, error)
}

// PayoutWriter defines write operations for payout records.
type PayoutWriter interface {
	// CreatePayoutIfAbsent inserts the payout unless its (stage_id, turn_number)
	// key already exists; the uniqueness constraint closes the check-then-act
	// race. Returns false when the record was already there.
	CreatePayoutIfAbsent(ctx context.Context, payout domain.StagePayout) (bool, error)

	// CompletePayout persists the payout's completed transition and the
	// recipient's received flag in one transaction.
	CompletePayout(ctx context.Context, payout domain.StagePayout, recipient domain.StageParticipant) error
}

// PayoutRepositoryFacade combines all payout repository interfaces.
type PayoutRepositoryFacade interface {
	PayoutReader
	PayoutWriter
}
