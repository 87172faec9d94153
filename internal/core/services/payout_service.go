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
)

// payoutService generates and disburses the turn payouts. The position factor
// is injected so the interest curve can be swapped without touching the engine.
type payoutService struct {
	payoutRepo portsrepo.PayoutRepositoryFacade
	stageRepo  portsrepo.StageRepositoryFacade
	publisher  ports.EventPublisher
	factor     domain.PositionFactor
	logger     *slog.Logger
	now        func() time.Time
}

// NewPayoutService creates a new PayoutService. A nil factor selects
// domain.DefaultPositionFactor.
func NewPayoutService(payoutRepo portsrepo.PayoutRepositoryFacade, stageRepo portsrepo.StageRepositoryFacade, publisher ports.EventPublisher, factor domain.PositionFactor, logger *slog.Logger) portssvc.PayoutSvcFacade {
	if factor == nil {
		factor = domain.DefaultPositionFactor
	}
	return &payoutService{
		payoutRepo: payoutRepo,
		stageRepo:  stageRepo,
		publisher:  publisher,
		factor:     factor,
		logger:     logger,
		now:        time.Now,
	}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// GeneratePayout ensures exactly one payout record exists for the turn. The
// (stage_id, turn_number) uniqueness key absorbs concurrent and repeated calls;
// when the record already exists it is returned unchanged and no event fires.
func (s *payoutService) GeneratePayout(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error) {
	stage, err := s.stageRepo.FindStageByIDWithParticipants(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.Status != domain.StageActive {
		return nil, domain.ErrStageNotActive
	}
	if turnNumber < 1 || turnNumber > stage.TotalParticipants {
		return nil, domain.ErrTurnOutOfRange
	}
	recipient := stage.ParticipantByTurn(turnNumber)
	if recipient == nil {
		return nil, domain.ErrRecipientNotFound
	}

	now := s.now()
	payout := domain.StagePayout{
		PayoutID:    uuid.NewString(),
		StageID:     stage.StageID,
		Username:    recipient.Username,
		TurnNumber:  turnNumber,
		Amount:      stage.PayoutAmount(turnNumber, s.factor),
		ScheduledAt: stage.PayoutScheduledAt(turnNumber),
		CreatedAt:   now,
	}

	created, err := s.payoutRepo.CreatePayoutIfAbsent(ctx, payout)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.payoutRepo.FindPayoutByStageAndTurn(ctx, stageID, turnNumber)
	}

	event := domain.PayoutReadyEvent{
		StageID:    payout.StageID,
		Username:   payout.Username,
		TurnNumber: payout.TurnNumber,
		Amount:     payout.Amount,
		At:         now,
	}
	if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
		s.logger.Error("failed to publish PayoutReady event",
			slog.String("stage_id", stageID),
			slog.Int("turn_number", turnNumber),
			slog.String("error", pubErr.Error()),
		)
	}

	s.logger.Info("payout generated",
		slog.String("stage_id", stageID),
		slog.Int("turn_number", turnNumber),
		slog.String("username", payout.Username),
		slog.String("amount", payout.Amount.String()),
	)
	return &payout, nil
}

// CompletePayout records the disbursement and marks the recipient received, in
// one transaction. When the final turn's payout completes, the stage closes.
func (s *payoutService) CompletePayout(ctx context.Context, payoutID, transactionID string) error {
	payout, err := s.payoutRepo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		return err
	}

	recipient, err := s.stageRepo.FindParticipantByStageAndTurn(ctx, payout.StageID, payout.TurnNumber)
	if err != nil {
		return err
	}

	now := s.now()
	if err := payout.Complete(transactionID, now); err != nil {
		return err
	}
	if err := recipient.MarkPayoutReceived(now); err != nil {
		return err
	}
	if err := s.payoutRepo.CompletePayout(ctx, *payout, *recipient); err != nil {
		return err
	}

	s.logger.Info("payout completed",
		slog.String("payout_id", payoutID),
		slog.String("stage_id", payout.StageID),
		slog.Int("turn_number", payout.TurnNumber),
	)

	return s.completeStageIfDone(ctx, payout.StageID)
}

// completeStageIfDone closes the stage once every turn has a completed payout.
func (s *payoutService) completeStageIfDone(ctx context.Context, stageID string) error {
	stage, err := s.stageRepo.FindStageByID(ctx, stageID)
	if err != nil {
		return err
	}
	completed, err := s.payoutRepo.CountCompletedByStageID(ctx, stageID)
	if err != nil {
		return err
	}
	if completed < stage.TotalParticipants {
		return nil
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

	s.logger.Info("stage completed after final payout", slog.String("stage_id", stageID))
	return nil
}

// GetPayoutsByStage returns every payout of a stage.
func (s *payoutService) GetPayoutsByStage(ctx context.Context, stageID string) ([]domain.StagePayout, error) {
	return s.payoutRepo.FindPayoutsByStageID(ctx, stageID)
}

// GetPayoutsByUser returns a user's payouts across all stages.
func (s *payoutService) GetPayoutsByUser(ctx context.Context, username string) ([]domain.StagePayout, error) {
	return s.payoutRepo.FindPayoutsByUsername(ctx, username)
}
