package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/core/ports"
	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
	portssvc "github.com/stagefund/stagefund_backend/internal/core/ports/services"
	"github.com/stagefund/stagefund_backend/internal/dto"
)

// stageService is the transactional facade over the stage aggregate. All
// user-initiated stage and participant writes go through here; per-cycle
// financial obligations belong to the generation engines.
type stageService struct {
	stageRepo portsrepo.StageRepositoryFacade
	publisher ports.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewStageService creates a new StageService.
func NewStageService(stageRepo portsrepo.StageRepositoryFacade, publisher ports.EventPublisher, logger *slog.Logger) portssvc.StageSvcFacade {
	return &stageService{
		stageRepo: stageRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

var _ portssvc.StageSvcFacade = (*stageService)(nil)

// CreateStage validates the configuration through the aggregate and persists
// a recruiting stage.
func (s *stageService) CreateStage(ctx context.Context, req dto.CreateStageRequest) (*domain.Stage, error) {
	stage, err := domain.NewStage(uuid.NewString(), req.Name, req.TotalParticipants, req.MonthlyPayment, req.InterestRate, req.PaymentDay, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.stageRepo.SaveStage(ctx, *stage); err != nil {
		return nil, err
	}

	s.logger.Info("stage created",
		slog.String("stage_id", stage.StageID),
		slog.String("name", stage.Name),
		slog.Int("total_participants", stage.TotalParticipants),
	)
	return stage, nil
}

// JoinStage enrolls a user on a turn. The repository runs the load-check-insert
// sequence under a row lock on the stage so concurrent joins serialize.
func (s *stageService) JoinStage(ctx context.Context, stageID, username string, turnNumber int) (*domain.StageParticipant, error) {
	participant, err := s.stageRepo.AddParticipant(ctx, stageID, username, turnNumber, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("stage joined",
		slog.String("stage_id", stageID),
		slog.String("username", username),
		slog.Int("turn_number", turnNumber),
	)
	return participant, nil
}

// StartStage activates a fully recruited stage and publishes the lifecycle
// event. Publication is fire-and-forget: a failed publish is logged, never
// propagated, because the activation has already committed.
func (s *stageService) StartStage(ctx context.Context, stageID string) (*domain.Stage, error) {
	stage, event, err := s.stageRepo.ActivateStage(ctx, stageID, s.now())
	if err != nil {
		return nil, err
	}

	if pubErr := s.publisher.Publish(ctx, *event); pubErr != nil {
		s.logger.Error("failed to publish StageStarted event",
			slog.String("stage_id", stageID),
			slog.String("error", pubErr.Error()),
		)
	}

	s.logger.Info("stage started",
		slog.String("stage_id", stageID),
		slog.String("start_date", stage.StartDate.Format("2006-01-02")),
	)
	return stage, nil
}

// CompleteStage closes an active stage and publishes StageCompleted.
func (s *stageService) CompleteStage(ctx context.Context, stageID string) error {
	stage, err := s.stageRepo.FindStageByID(ctx, stageID)
	if err != nil {
		return err
	}

	now := s.now()
	event, err := stage.Complete(now)
	if err != nil {
		return err
	}
	if err := s.stageRepo.UpdateStageStatus(ctx, stageID, stage.Status, now); err != nil {
		return err
	}

	if pubErr := s.publisher.Publish(ctx, *event); pubErr != nil {
		s.logger.Error("failed to publish StageCompleted event",
			slog.String("stage_id", stageID),
			slog.String("error", pubErr.Error()),
		)
	}

	s.logger.Info("stage completed", slog.String("stage_id", stageID))
	return nil
}

// CancelStage aborts a stage that has not completed.
func (s *stageService) CancelStage(ctx context.Context, stageID string) error {
	stage, err := s.stageRepo.FindStageByID(ctx, stageID)
	if err != nil {
		return err
	}

	now := s.now()
	if err := stage.Cancel(now); err != nil {
		return err
	}
	if err := s.stageRepo.UpdateStageStatus(ctx, stageID, stage.Status, now); err != nil {
		return err
	}

	s.logger.Info("stage cancelled", slog.String("stage_id", stageID))
	return nil
}

// GetStage returns the stage with its participant roster.
func (s *stageService) GetStage(ctx context.Context, stageID string) (*domain.Stage, error) {
	return s.stageRepo.FindStageByIDWithParticipants(ctx, stageID)
}

// GetParticipants returns a stage's roster ordered by turn.
func (s *stageService) GetParticipants(ctx context.Context, stageID string) ([]domain.StageParticipant, error) {
	return s.stageRepo.FindParticipantsByStageID(ctx, stageID)
}

// GetStagesByStatus lists stages in a lifecycle state.
func (s *stageService) GetStagesByStatus(ctx context.Context, status domain.StageStatus) ([]domain.Stage, error) {
	return s.stageRepo.FindStagesByStatus(ctx, status)
}

// GetStagesByUser lists the stages a user participates in.
func (s *stageService) GetStagesByUser(ctx context.Context, username string) ([]domain.Stage, error) {
	return s.stageRepo.FindStagesByUsername(ctx, username)
}
