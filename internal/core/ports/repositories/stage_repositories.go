package repositories

import (
	"context"
	"time"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

// StageReader defines read operations for stage data.
type StageReader interface {
	// FindStageByID retrieves a stage without its participant roster.
	FindStageByID(ctx context.Context, stageID string) (*domain.Stage, error)

	// FindStageByIDWithParticipants retrieves the stage and its full participant
	// set in one consistent read.
	FindStageByIDWithParticipants(ctx context.Context, stageID string) (*domain.Stage, error)

	// FindStagesByStatus lists stages in a given lifecycle state.
	FindStagesByStatus(ctx context.Context, status domain.StageStatus) ([]domain.Stage, error)

	// FindStagesByStatusAndPaymentDay lists stages in a given state whose payment
	// day matches the given day of month. The scheduler's daily selection query.
	FindStagesByStatusAndPaymentDay(ctx context.Context, status domain.StageStatus, day int) ([]domain.Stage, error)

	// FindParticipantsByStageID lists a stage's roster ordered by turn number.
	FindParticipantsByStageID(ctx context.Context, stageID string) ([]domain.StageParticipant, error)

	// FindParticipantByStageAndTurn retrieves the holder of a turn.
	FindParticipantByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StageParticipant, error)

	// FindStagesByUsername lists every stage the user participates in.
	FindStagesByUsername(ctx context.Context, username string) ([]domain.Stage, error)
}

// StageWriter defines write operations for stage data. AddParticipant and
// ActivateStage run the load-check-save sequence inside one database transaction
// holding a row lock on the stage, so concurrent joins on the same stage serialize.
type StageWriter interface {
	// SaveStage inserts a newly created stage.
	SaveStage(ctx context.Context, stage domain.Stage) error

	// AddParticipant locks the stage row, replays the aggregate's join checks
	// against the current roster and inserts the participant, all in one
	// transaction. The unique constraints on (stage_id, turn_number) and
	// (stage_id, username) backstop the in-memory checks.
	AddParticipant(ctx context.Context, stageID, username string, turnNumber int, now time.Time) (*domain.StageParticipant, error)

	// ActivateStage locks the stage row, runs the aggregate's activation and
	// persists the transition. Returns the activated stage and the lifecycle
	// event for the caller to publish.
	ActivateStage(ctx context.Context, stageID string, now time.Time) (*domain.Stage, *domain.StageStartedEvent, error)

	// UpdateStageStatus persists a completed or cancelled transition.
	UpdateStageStatus(ctx context.Context, stageID string, status domain.StageStatus, updatedAt time.Time) error
}

// StageRepositoryFacade combines all stage repository interfaces.
type StageRepositoryFacade interface {
	StageReader
	StageWriter
}
