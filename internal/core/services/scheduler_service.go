package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
	portssvc "github.com/stagefund/stagefund_backend/internal/core/ports/services"
)

// schedulerService drives the calendar side of the system. It decides WHICH
// stages are due on a given date and hands the actual record creation to the
// generation engines; it never writes financial state itself. Failures are
// isolated per stage so one broken stage cannot stall the rest of the batch.
type schedulerService struct {
	stageRepo  portsrepo.StageRepositoryFacade
	paymentSvc portssvc.PaymentSvcFacade
	payoutSvc  portssvc.PayoutSvcFacade
	logger     *slog.Logger
}

// NewSchedulerService creates a new SchedulerService.
func NewSchedulerService(stageRepo portsrepo.StageRepositoryFacade, paymentSvc portssvc.PaymentSvcFacade, payoutSvc portssvc.PayoutSvcFacade, logger *slog.Logger) portssvc.SchedulerSvcFacade {
	return &schedulerService{
		stageRepo:  stageRepo,
		paymentSvc: paymentSvc,
		payoutSvc:  payoutSvc,
		logger:     logger,
	}
}

var _ portssvc.SchedulerSvcFacade = (*schedulerService)(nil)

// GeneratePaymentsForDay creates the current cycle's obligations for every
// active stage whose payment day falls on today. A stage past its final cycle
// month is skipped; it stays listed until its last payout completes it.
func (s *schedulerService) GeneratePaymentsForDay(ctx context.Context, today time.Time) {
	stages, err := s.dueStages(ctx, today)
	if err != nil {
		s.logger.Error("failed to list stages due for payment generation",
			slog.String("error", err.Error()),
		)
		return
	}

	for _, stage := range stages {
		month := stage.CurrentCycleMonth(today)
		if month < 1 || month > stage.TotalParticipants {
			continue
		}
		created, err := s.paymentSvc.GenerateMonthlyPayments(ctx, stage.StageID, month)
		if err != nil {
			s.logger.Error("payment generation failed for stage",
				slog.String("stage_id", stage.StageID),
				slog.Int("month_number", month),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.Info("payment generation done for stage",
			slog.String("stage_id", stage.StageID),
			slog.Int("month_number", month),
			slog.Int("created", len(created)),
		)
	}
}

// GeneratePayoutsForDay releases the previous cycle's payout for every active
// stage whose payment day falls on today. In cycle month m the turn that
// collected contributions through month m-1 is paid, so month 1 releases nothing.
func (s *schedulerService) GeneratePayoutsForDay(ctx context.Context, today time.Time) {
	stages, err := s.dueStages(ctx, today)
	if err != nil {
		s.logger.Error("failed to list stages due for payout generation",
			slog.String("error", err.Error()),
		)
		return
	}

	for _, stage := range stages {
		month := stage.CurrentCycleMonth(today)
		if month <= 1 || month > stage.TotalParticipants {
			continue
		}
		turn := month - 1
		payout, err := s.payoutSvc.GeneratePayout(ctx, stage.StageID, turn)
		if err != nil {
			s.logger.Error("payout generation failed for stage",
				slog.String("stage_id", stage.StageID),
				slog.Int("turn_number", turn),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.Info("payout generation done for stage",
			slog.String("stage_id", stage.StageID),
			slog.Int("turn_number", turn),
			slog.String("username", payout.Username),
		)
	}
}

// dueStages lists the active stages whose payment day matches today. Stages
// whose payment day exceeds the month's length run on the month's last day.
func (s *schedulerService) dueStages(ctx context.Context, today time.Time) ([]domain.Stage, error) {
	stages, err := s.stageRepo.FindStagesByStatusAndPaymentDay(ctx, domain.StageActive, today.Day())
	if err != nil {
		return nil, err
	}

	last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()).Day()
	if today.Day() != last {
		return stages, nil
	}

	// On the month's last day, pick up the stages whose payment day
	// overflows this month (e.g. day 31 in February).
	for day := last + 1; day <= 31; day++ {
		overflow, err := s.stageRepo.FindStagesByStatusAndPaymentDay(ctx, domain.StageActive, day)
		if err != nil {
			return nil, err
		}
		stages = append(stages, overflow...)
	}
	return stages, nil
}
