package services

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// SettlementSvcFacade reconciles completed stages.
type SettlementSvcFacade interface {
	// GenerateSettlement builds and verifies the final reconciliation of a
	// completed stage. Returns the existing settlement when one already exists.
	GenerateSettlement(ctx context.Context, stageID string) (*domain.StageSettlement, error)

	GetSettlement(ctx context.Context, stageID string) (*domain.StageSettlement, error)
}
