package repositories

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// SettlementRepositoryFacade defines persistence for stage settlements.
type SettlementRepositoryFacade interface {
	// SaveSettlement inserts the settlement and all its participant rows in one
	// transaction. Only one settlement may exist per stage.
	SaveSettlement(ctx context.Context, settlement domain.StageSettlement) error

	// FindSettlementByStageID retrieves a stage's settlement with its
	// participant rows, or apperrors.ErrNotFound.
	FindSettlementByStageID(ctx context.Context, stageID string) (*domain.StageSettlement, error)
}
