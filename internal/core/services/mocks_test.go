package services_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockStageRepository is a mock type for the StageRepositoryFacade interface
type MockStageRepository struct {
	mock.Mock
}

func (m *MockStageRepository) FindStageByID(ctx context.Context, stageID string) (*domain.Stage, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stage), args.Error(1)
}

func (m *MockStageRepository) FindStageByIDWithParticipants(ctx context.Context, stageID string) (*domain.Stage, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stage), args.Error(1)
}

func (m *MockStageRepository) FindStagesByStatus(ctx context.Context, status domain.StageStatus) ([]domain.Stage, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stage), args.Error(1)
}

func (m *MockStageRepository) FindStagesByStatusAndPaymentDay(ctx context.Context, status domain.StageStatus, day int) ([]domain.Stage, error) {
	args := m.Called(ctx, status, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stage), args.Error(1)
}

func (m *MockStageRepository) FindParticipantsByStageID(ctx context.Context, stageID string) ([]domain.StageParticipant, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StageParticipant), args.Error(1)
}

func (m *MockStageRepository) FindParticipantByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StageParticipant, error) {
	args := m.Called(ctx, stageID, turnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StageParticipant), args.Error(1)
}

func (m *MockStageRepository) FindStagesByUsername(ctx context.Context, username string) ([]domain.Stage, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Stage), args.Error(1)
}

func (m *MockStageRepository) SaveStage(ctx context.Context, stage domain.Stage) error {
	args := m.Called(ctx, stage)
	return args.Error(0)
}

func (m *MockStageRepository) AddParticipant(ctx context.Context, stageID, username string, turnNumber int, now time.Time) (*domain.StageParticipant, error) {
	args := m.Called(ctx, stageID, username, turnNumber, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StageParticipant), args.Error(1)
}

func (m *MockStageRepository) ActivateStage(ctx context.Context, stageID string, now time.Time) (*domain.Stage, *domain.StageStartedEvent, error) {
	args := m.Called(ctx, stageID, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Stage), args.Get(1).(*domain.StageStartedEvent), args.Error(2)
}

func (m *MockStageRepository) UpdateStageStatus(ctx context.Context, stageID string, status domain.StageStatus, updatedAt time.Time) error {
	args := m.Called(ctx, stageID, status, updatedAt)
	return args.Error(0)
}

// MockPaymentRepository is a mock type for the PaymentRepositoryFacade interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.StagePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagePayment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByStageID(ctx context.Context, stageID string) ([]domain.StagePayment, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentsByUsername(ctx context.Context, username string) ([]domain.StagePayment, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentRepository) CreatePaymentsIfAbsent(ctx context.Context, payments []domain.StagePayment) ([]domain.StagePayment, error) {
	args := m.Called(ctx, payments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentRepository) UpdatePaymentPaid(ctx context.Context, payment domain.StagePayment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// MockPayoutRepository is a mock type for the PayoutRepositoryFacade interface
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.StagePayout, error) {
	args := m.Called(ctx, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagePayout), args.Error(1)
}

func (m *MockPayoutRepository) FindPayoutByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error) {
	args := m.Called(ctx, stageID, turnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagePayout), args.Error(1)
}

func (m *MockPayoutRepository) FindPayoutsByStageID(ctx context.Context, stageID string) ([]domain.StagePayout, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayout), args.Error(1)
}

func (m *MockPayoutRepository) FindPayoutsByUsername(ctx context.Context, username string) ([]domain.StagePayout, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayout), args.Error(1)
}

func (m *MockPayoutRepository) CountCompletedByStageID(ctx context.Context, stageID string) (int, error) {
	args := m.Called(ctx, stageID)
	return args.Int(0), args.Error(1)
}

func (m *MockPayoutRepository) CreatePayoutIfAbsent(ctx context.Context, payout domain.StagePayout) (bool, error) {
	args := m.Called(ctx, payout)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayoutRepository) CompletePayout(ctx context.Context, payout domain.StagePayout, recipient domain.StageParticipant) error {
	args := m.Called(ctx, payout, recipient)
	return args.Error(0)
}

// MockSettlementRepository is a mock type for the SettlementRepositoryFacade interface
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.StageSettlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) FindSettlementByStageID(ctx context.Context, stageID string) (*domain.StageSettlement, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StageSettlement), args.Error(1)
}

// MockEventPublisher is a mock type for the EventPublisher port
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockPaymentService is a mock type for the PaymentSvcFacade interface
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) GenerateMonthlyPayments(ctx context.Context, stageID string, monthNumber int) ([]domain.StagePayment, error) {
	args := m.Called(ctx, stageID, monthNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentService) ProcessPayment(ctx context.Context, paymentID, paymentKey string) error {
	args := m.Called(ctx, paymentID, paymentKey)
	return args.Error(0)
}

func (m *MockPaymentService) GetPaymentsByStage(ctx context.Context, stageID string) ([]domain.StagePayment, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentService) GetPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

func (m *MockPaymentService) GetUnpaidPaymentsByUser(ctx context.Context, username string) ([]domain.StagePayment, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayment), args.Error(1)
}

// MockPayoutService is a mock type for the PayoutSvcFacade interface
type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) GeneratePayout(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error) {
	args := m.Called(ctx, stageID, turnNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StagePayout), args.Error(1)
}

func (m *MockPayoutService) CompletePayout(ctx context.Context, payoutID, transactionID string) error {
	args := m.Called(ctx, payoutID, transactionID)
	return args.Error(0)
}

func (m *MockPayoutService) GetPayoutsByStage(ctx context.Context, stageID string) ([]domain.StagePayout, error) {
	args := m.Called(ctx, stageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayout), args.Error(1)
}

func (m *MockPayoutService) GetPayoutsByUser(ctx context.Context, username string) ([]domain.StagePayout, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StagePayout), args.Error(1)
}
