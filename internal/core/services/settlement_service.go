package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stagefund/stagefund_backend/internal/apperrors"
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
	portssvc "github.com/stagefund/stagefund_backend/internal/core/ports/services"
)

// settlementService builds the final reconciliation of a completed stage.
type settlementService struct {
	settlementRepo portsrepo.SettlementRepositoryFacade
	stageRepo      portsrepo.StageRepositoryFacade
	paymentRepo    portsrepo.PaymentRepositoryFacade
	payoutRepo     portsrepo.PayoutRepositoryFacade
	logger         *slog.Logger
	now            func() time.Time
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryFacade, stageRepo portsrepo.StageRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, payoutRepo portsrepo.PayoutRepositoryFacade, logger *slog.Logger) portssvc.SettlementSvcFacade {
	return &settlementService{
		settlementRepo: settlementRepo,
		stageRepo:      stageRepo,
		paymentRepo:    paymentRepo,
		payoutRepo:     payoutRepo,
		logger:         logger,
		now:            time.Now,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// GenerateSettlement cross-checks every payment against every payout of a
// completed stage and persists one verified settlement per stage. The
// stage_id uniqueness key makes the operation idempotent: a concurrent or
// repeated call surfaces the settlement that is already on record.
func (s *settlementService) GenerateSettlement(ctx context.Context, stageID string) (*domain.StageSettlement, error) {
	existing, err := s.settlementRepo.FindSettlementByStageID(ctx, stageID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	stage, err := s.stageRepo.FindStageByIDWithParticipants(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.Status != domain.StageCompleted {
		return nil, domain.ErrStageNotCompleted
	}

	payments, err := s.paymentRepo.FindPaymentsByStageID(ctx, stageID)
	if err != nil {
		return nil, err
	}
	payouts, err := s.payoutRepo.FindPayoutsByStageID(ctx, stageID)
	if err != nil {
		return nil, err
	}

	// Only paid payments and completed payouts count toward the reconciliation.
	totalPayments := decimal.Zero
	paidByUser := make(map[string]decimal.Decimal, len(stage.Participants))
	paidMonths := make(map[string]int, len(stage.Participants))
	for _, p := range payments {
		if !p.IsPaid {
			continue
		}
		totalPayments = totalPayments.Add(p.Amount)
		paidByUser[p.Username] = paidByUser[p.Username].Add(p.Amount)
		paidMonths[p.Username]++
	}

	totalPayouts := decimal.Zero
	receivedByUser := make(map[string]decimal.Decimal, len(stage.Participants))
	for _, p := range payouts {
		if !p.IsCompleted {
			continue
		}
		totalPayouts = totalPayouts.Add(p.Amount)
		receivedByUser[p.Username] = receivedByUser[p.Username].Add(p.Amount)
	}

	now := s.now()
	settlement := domain.NewStageSettlement(uuid.NewString(), stageID, totalPayments, totalPayouts, now)
	for _, participant := range stage.Participants {
		ps := domain.NewParticipantSettlement(
			uuid.NewString(),
			settlement.SettlementID,
			participant.Username,
			participant.TurnNumber,
			paidByUser[participant.Username],
			receivedByUser[participant.Username],
			paidMonths[participant.Username],
			participant.TurnNumber,
		)
		settlement.AddParticipantSettlement(ps)
	}

	if err := settlement.Verify(); err != nil {
		s.logger.Error("settlement verification failed",
			slog.String("stage_id", stageID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := s.settlementRepo.SaveSettlement(ctx, *settlement); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.settlementRepo.FindSettlementByStageID(ctx, stageID)
		}
		return nil, err
	}

	s.logger.Info("settlement generated",
		slog.String("stage_id", stageID),
		slog.String("total_payments", settlement.TotalPayments.String()),
		slog.String("total_payouts", settlement.TotalPayouts.String()),
		slog.String("total_interest", settlement.TotalInterest.String()),
	)
	return settlement, nil
}

// GetSettlement returns the settlement of a stage.
func (s *settlementService) GetSettlement(ctx context.Context, stageID string) (*domain.StageSettlement, error) {
	return s.settlementRepo.FindSettlementByStageID(ctx, stageID)
}
