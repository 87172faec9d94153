package services

import (
	"context"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/dto"
)

// StageSvcFacade orchestrates stage creation, enrollment and lifecycle transitions.
// It is the only component that writes stage and participant state from
// user-initiated actions.
type StageSvcFacade interface {
	// CreateStage validates the configuration and persists a recruiting stage.
	CreateStage(ctx context.Context, req dto.CreateStageRequest) (*domain.Stage, error)

	// JoinStage enrolls a user on a turn. The check-and-insert runs as one
	// atomic unit per stage.
	JoinStage(ctx context.Context, stageID, username string, turnNumber int) (*domain.StageParticipant, error)

	// StartStage activates a fully recruited stage and publishes StageStarted.
	StartStage(ctx context.Context, stageID string) (*domain.Stage, error)

	// CompleteStage closes an active stage and publishes StageCompleted.
	CompleteStage(ctx context.Context, stageID string) error

	// CancelStage aborts a stage that has not completed.
	CancelStage(ctx context.Context, stageID string) error

	GetStage(ctx context.Context, stageID string) (*domain.Stage, error)
	GetParticipants(ctx context.Context, stageID string) ([]domain.StageParticipant, error)
	GetStagesByStatus(ctx context.Context, status domain.StageStatus) ([]domain.Stage, error)
	GetStagesByUser(ctx context.Context, username string) ([]domain.Stage, error)
}
