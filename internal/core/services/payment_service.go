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

// paymentService generates and settles the monthly contribution obligations.
type paymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	stageRepo   portsrepo.StageRepositoryFacade
	publisher   ports.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade, stageRepo portsrepo.StageRepositoryFacade, publisher ports.EventPublisher, logger *slog.Logger) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo: paymentRepo,
		stageRepo:   stageRepo,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// GenerateMonthlyPayments creates one obligation per participant for the given
// cycle month. The (stage_id, username, month_number) uniqueness key makes the
// call idempotent: rows that already exist are skipped, and only the rows this
// call actually created are returned and announced.
func (s *paymentService) GenerateMonthlyPayments(ctx context.Context, stageID string, monthNumber int) ([]domain.StagePayment, error) {
	stage, err := s.stageRepo.FindStageByIDWithParticipants(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage.Status != domain.StageActive {
		return nil, domain.ErrStageNotActive
	}
	if monthNumber < 1 || monthNumber > stage.TotalParticipants {
		return nil, domain.ErrMonthOutOfRange
	}

	now := s.now()
	dueDate := stage.PaymentDueDate(monthNumber)

	payments := make([]domain.StagePayment, 0, len(stage.Participants))
	for _, participant := range stage.Participants {
		payments = append(payments, domain.StagePayment{
			PaymentID:   uuid.NewString(),
			StageID:     stage.StageID,
			Username:    participant.Username,
			MonthNumber: monthNumber,
			Amount:      stage.MonthlyPayment,
			DueDate:     dueDate,
			CreatedAt:   now,
		})
	}

	created, err := s.paymentRepo.CreatePaymentsIfAbsent(ctx, payments)
	if err != nil {
		return nil, err
	}

	for _, payment := range created {
		event := domain.PaymentDueEvent{
			StageID:     payment.StageID,
			Username:    payment.Username,
			MonthNumber: payment.MonthNumber,
			Amount:      payment.Amount,
			DueDate:     payment.DueDate,
			At:          now,
		}
		if pubErr := s.publisher.Publish(ctx, event); pubErr != nil {
			s.logger.Error("failed to publish PaymentDue event",
				slog.String("stage_id", payment.StageID),
				slog.String("username", payment.Username),
				slog.String("error", pubErr.Error()),
			)
		}
	}

	s.logger.Info("monthly payments generated",
		slog.String("stage_id", stageID),
		slog.Int("month_number", monthNumber),
		slog.Int("created", len(created)),
		slog.Int("skipped", len(payments)-len(created)),
	)
	return created, nil
}

// ProcessPayment marks an obligation paid with the provider's payment key.
func (s *paymentService) ProcessPayment(ctx context.Context, paymentID, paymentKey string) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if err := payment.MarkAsPaid(paymentKey, s.now()); err != nil {
		return err
	}
	if err := s.paymentRepo.UpdatePaymentPaid(ctx, *payment); err != nil {
		return err
	}

	s.logger.Info("payment processed",
		slog.String("payment_id", paymentID),
		slog.String("stage_id", payment.StageID),
		slog.String("username", payment.Username),
	)
	return nil
}

// GetPaymentsByStage returns every obligation of a stage.
func (s *paymentService) GetPaymentsByStage(ctx context.Context, stageID string) ([]domain.StagePayment, error) {
	return s.paymentRepo.FindPaymentsByStageID(ctx, stageID)
}

// GetPaymentsByUser returns a user's obligations across all stages.
func (s *paymentService) GetPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error) {
	return s.paymentRepo.FindPaymentsByUsername(ctx, username)
}

// GetUnpaidPaymentsByUser returns a user's outstanding obligations.
func (s *paymentService) GetUnpaidPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error) {
	payments, err := s.paymentRepo.FindPaymentsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	unpaid := make([]domain.StagePayment, 0, len(payments))
	for _, p := range payments {
		if !p.IsPaid {
			unpaid = append(unpaid, p)
		}
	}
	return unpaid, nil
}
