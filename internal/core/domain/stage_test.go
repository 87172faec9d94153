package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagefund/stagefund_backend/internal/core/domain"
)

var testNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestStage(t *testing.T, totalParticipants int) *domain.Stage {
	t.Helper()
	stage, err := domain.NewStage(
		"stage-1",
		"test fund",
		totalParticipants,
		decimal.NewFromInt(100000),
		decimal.NewFromFloat(0.05),
		15,
		testNow,
	)
	require.NoError(t, err)
	return stage
}

func TestNewStage_Validation(t *testing.T) {
	tests := []struct {
		name              string
		totalParticipants int
		monthlyPayment    decimal.Decimal
		interestRate      decimal.Decimal
		paymentDay        int
		wantErr           error
	}{
		{
			name:              "valid configuration",
			totalParticipants: 5,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        15,
		},
		{
			name:              "zero participants",
			totalParticipants: 0,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        15,
			wantErr:           domain.ErrInvalidConfiguration,
		},
		{
			name:              "negative participants",
			totalParticipants: -3,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        15,
			wantErr:           domain.ErrInvalidConfiguration,
		},
		{
			name:              "zero monthly payment",
			totalParticipants: 5,
			monthlyPayment:    decimal.Zero,
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        15,
			wantErr:           domain.ErrInvalidConfiguration,
		},
		{
			name:              "negative interest rate",
			totalParticipants: 5,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(-0.01),
			paymentDay:        15,
			wantErr:           domain.ErrInvalidConfiguration,
		},
		{
			name:              "zero interest rate is allowed",
			totalParticipants: 5,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.Zero,
			paymentDay:        15,
		},
		{
			name:              "payment day too low",
			totalParticipants: 5,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        0,
			wantErr:           domain.ErrInvalidConfiguration,
		},
		{
			name:              "payment day too high",
			totalParticipants: 5,
			monthlyPayment:    decimal.NewFromInt(100000),
			interestRate:      decimal.NewFromFloat(0.05),
			paymentDay:        32,
			wantErr:           domain.ErrInvalidConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, err := domain.NewStage("stage-1", "test fund", tt.totalParticipants, tt.monthlyPayment, tt.interestRate, tt.paymentDay, testNow)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, stage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StageRecruiting, stage.Status)
			assert.Nil(t, stage.StartDate)
			assert.Empty(t, stage.Participants)
		})
	}
}

func TestStage_Join(t *testing.T) {
	t.Run("participants occupy unique turns", func(t *testing.T) {
		stage := newTestStage(t, 3)

		p1, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)
		assert.Equal(t, 1, p1.TurnNumber)

		_, err = stage.Join("u2", 2, testNow)
		require.NoError(t, err)
		_, err = stage.Join("u3", 3, testNow)
		require.NoError(t, err)

		turns := map[int]bool{}
		users := map[string]bool{}
		for _, p := range stage.Participants {
			assert.False(t, turns[p.TurnNumber], "turn %d duplicated", p.TurnNumber)
			assert.False(t, users[p.Username], "user %s duplicated", p.Username)
			turns[p.TurnNumber] = true
			users[p.Username] = true
		}
		assert.Len(t, stage.Participants, 3)
	})

	t.Run("taken turn is rejected", func(t *testing.T) {
		stage := newTestStage(t, 3)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)

		_, err = stage.Join("u4", 1, testNow)
		assert.ErrorIs(t, err, domain.ErrTurnAlreadyTaken)
	})

	t.Run("duplicate user is rejected", func(t *testing.T) {
		stage := newTestStage(t, 3)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)

		_, err = stage.Join("u1", 2, testNow)
		assert.ErrorIs(t, err, domain.ErrDuplicateParticipant)
	})

	t.Run("turn outside range is rejected", func(t *testing.T) {
		stage := newTestStage(t, 3)

		_, err := stage.Join("u1", 0, testNow)
		assert.ErrorIs(t, err, domain.ErrTurnOutOfRange)

		_, err = stage.Join("u1", 4, testNow)
		assert.ErrorIs(t, err, domain.ErrTurnOutOfRange)
	})

	t.Run("joining a non-recruiting stage fails", func(t *testing.T) {
		stage := newTestStage(t, 2)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)
		_, err = stage.Join("u2", 2, testNow)
		require.NoError(t, err)
		_, err = stage.Activate(testNow)
		require.NoError(t, err)

		_, err = stage.Join("u3", 1, testNow)
		assert.ErrorIs(t, err, domain.ErrStageNotRecruiting)
	})
}

func TestStage_Activate(t *testing.T) {
	t.Run("full roster activates and stamps dates", func(t *testing.T) {
		stage := newTestStage(t, 3)
		for i, u := range []string{"u1", "u2", "u3"} {
			_, err := stage.Join(u, i+1, testNow)
			require.NoError(t, err)
		}

		event, err := stage.Activate(testNow)
		require.NoError(t, err)

		assert.Equal(t, domain.StageActive, stage.Status)
		require.NotNil(t, stage.StartDate)
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *stage.StartDate)
		require.NotNil(t, stage.ExpectedEndDate)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *stage.ExpectedEndDate)

		assert.Equal(t, "StageStarted", event.EventType())
		assert.Equal(t, stage.StageID, event.StageID)
		assert.Equal(t, 3, event.TotalParticipants)
		assert.Equal(t, 15, event.PaymentDay)
	})

	t.Run("incomplete roster cannot activate", func(t *testing.T) {
		stage := newTestStage(t, 3)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)

		_, err = stage.Activate(testNow)
		assert.ErrorIs(t, err, domain.ErrIncompleteRoster)
		assert.Equal(t, domain.StageRecruiting, stage.Status)
	})

	t.Run("second activation is rejected", func(t *testing.T) {
		stage := newTestStage(t, 2)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)
		_, err = stage.Join("u2", 2, testNow)
		require.NoError(t, err)
		_, err = stage.Activate(testNow)
		require.NoError(t, err)

		_, err = stage.Activate(testNow)
		assert.ErrorIs(t, err, domain.ErrStageNotRecruiting)
	})
}

func TestStage_CompleteAndCancel(t *testing.T) {
	activated := func(t *testing.T) *domain.Stage {
		stage := newTestStage(t, 2)
		_, err := stage.Join("u1", 1, testNow)
		require.NoError(t, err)
		_, err = stage.Join("u2", 2, testNow)
		require.NoError(t, err)
		_, err = stage.Activate(testNow)
		require.NoError(t, err)
		return stage
	}

	t.Run("complete from active", func(t *testing.T) {
		stage := activated(t)
		event, err := stage.Complete(testNow)
		require.NoError(t, err)
		assert.Equal(t, domain.StageCompleted, stage.Status)
		assert.Equal(t, "StageCompleted", event.EventType())
	})

	t.Run("complete from recruiting fails", func(t *testing.T) {
		stage := newTestStage(t, 2)
		_, err := stage.Complete(testNow)
		assert.ErrorIs(t, err, domain.ErrStageNotActive)
	})

	t.Run("cancel before completion", func(t *testing.T) {
		stage := activated(t)
		require.NoError(t, stage.Cancel(testNow))
		assert.Equal(t, domain.StageCancelled, stage.Status)
	})

	t.Run("completed stage cannot be cancelled", func(t *testing.T) {
		stage := activated(t)
		_, err := stage.Complete(testNow)
		require.NoError(t, err)
		assert.ErrorIs(t, stage.Cancel(testNow), domain.ErrStageCompleted)
	})
}

func TestStage_CurrentCycleMonth(t *testing.T) {
	stage := newTestStage(t, 5)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	stage.Status = domain.StageActive
	stage.StartDate = &start

	tests := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"activation day", time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC), 1},
		{"day before first anniversary", time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC), 1},
		{"one month later", time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), 2},
		{"mid second cycle", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 2},
		{"four months later", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), 5},
		{"year boundary", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stage.CurrentCycleMonth(tt.today))
		})
	}
}

func TestStage_CurrentCycleMonth_ClampedAnniversary(t *testing.T) {
	stage := newTestStage(t, 5)
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	stage.Status = domain.StageActive
	stage.StartDate = &start

	// February has no 31st: its last day counts as the anniversary, matching
	// the due-date clamp, so month 2 begins on the 28th.
	assert.Equal(t, 1, stage.CurrentCycleMonth(time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, stage.CurrentCycleMonth(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, stage.CurrentCycleMonth(time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, stage.CurrentCycleMonth(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestStage_PaymentDueDate(t *testing.T) {
	stage := newTestStage(t, 5)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	stage.StartDate = &start

	due := stage.PaymentDueDate(1)
	assert.Equal(t, time.Date(2025, 1, 15, 23, 59, 59, 0, time.UTC), due)

	due = stage.PaymentDueDate(3)
	assert.Equal(t, time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC), due)

	// Cycle months roll over the year boundary.
	nov := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	stage.StartDate = &nov
	due = stage.PaymentDueDate(3)
	assert.Equal(t, time.Date(2026, 1, 15, 23, 59, 59, 0, time.UTC), due)
}

func TestStage_PaymentDueDate_ClampsToMonthEnd(t *testing.T) {
	stage, err := domain.NewStage("stage-1", "end of month fund", 5, decimal.NewFromInt(100000), decimal.NewFromFloat(0.05), 31, testNow)
	require.NoError(t, err)
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	stage.StartDate = &start

	// February 2025 has 28 days.
	due := stage.PaymentDueDate(2)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), due)
}

func TestStage_PaymentDueDate_ConsecutiveMonths(t *testing.T) {
	stage, err := domain.NewStage("stage-1", "end of month fund", 5, decimal.NewFromInt(100000), decimal.NewFromFloat(0.05), 31, testNow)
	require.NoError(t, err)
	start := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	stage.StartDate = &start

	// A day-31 stage must produce one due date per calendar month; a short
	// month clamps, it never spills into the next one.
	want := []time.Time{
		time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 5, 31, 23, 59, 59, 0, time.UTC),
	}
	for i, w := range want {
		assert.Equal(t, w, stage.PaymentDueDate(i+1), "month %d", i+1)
	}
}

func TestStage_PayoutAmount(t *testing.T) {
	stage := newTestStage(t, 5)

	tests := []struct {
		turn int
		want int64
	}{
		{1, 500000}, // 100000 * 5 * (1 + 0.05*0)
		{3, 550000}, // 100000 * 5 * (1 + 0.05*2)
		{5, 600000}, // 100000 * 5 * (1 + 0.05*4)
	}

	for _, tt := range tests {
		got := stage.PayoutAmount(tt.turn, nil)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "turn %d: want %d, got %s", tt.turn, tt.want, got)
	}
}

func TestStage_PayoutAmount_CustomFactor(t *testing.T) {
	stage := newTestStage(t, 5)

	// Flat curve: every turn pays out the plain pool total.
	flat := func(turn, totalParticipants int) decimal.Decimal { return decimal.Zero }

	for turn := 1; turn <= 5; turn++ {
		got := stage.PayoutAmount(turn, flat)
		assert.True(t, got.Equal(decimal.NewFromInt(500000)), "turn %d: got %s", turn, got)
	}
}

func TestStage_PayoutScheduledAt(t *testing.T) {
	stage := newTestStage(t, 5)
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	stage.StartDate = &start

	at := stage.PayoutScheduledAt(2)
	assert.Equal(t, time.Date(2025, 2, 16, 9, 0, 0, 0, time.UTC), at)
}

func TestStageParticipant_MarkPayoutReceived(t *testing.T) {
	p := domain.StageParticipant{StageID: "stage-1", Username: "u1", TurnNumber: 1}

	require.NoError(t, p.MarkPayoutReceived(testNow))
	assert.True(t, p.HasReceivedPayout)
	require.NotNil(t, p.PayoutReceivedAt)

	assert.ErrorIs(t, p.MarkPayoutReceived(testNow), domain.ErrPayoutAlreadyReceived)
}

func TestStageParticipant_IsPayoutDue(t *testing.T) {
	p := domain.StageParticipant{TurnNumber: 3}
	assert.True(t, p.IsPayoutDue(3))
	assert.False(t, p.IsPayoutDue(2))

	require.NoError(t, p.MarkPayoutReceived(testNow))
	assert.False(t, p.IsPayoutDue(3))
}

func TestStagePayment_MarkAsPaid(t *testing.T) {
	payment := domain.StagePayment{
		PaymentID: "pay-1",
		Amount:    decimal.NewFromInt(100000),
		DueDate:   time.Date(2025, 2, 15, 23, 59, 59, 0, time.UTC),
	}

	require.NoError(t, payment.MarkAsPaid("toss-key-1", testNow))
	assert.True(t, payment.IsPaid)
	assert.Equal(t, "toss-key-1", payment.PaymentKey)

	assert.ErrorIs(t, payment.MarkAsPaid("toss-key-2", testNow), domain.ErrPaymentAlreadyPaid)
}

func TestStagePayment_IsOverdue(t *testing.T) {
	payment := domain.StagePayment{DueDate: time.Date(2025, 2, 15, 23, 59, 59, 0, time.UTC)}

	assert.False(t, payment.IsOverdue(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, payment.IsOverdue(time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, payment.MarkAsPaid("k", testNow))
	assert.False(t, payment.IsOverdue(time.Date(2025, 2, 16, 0, 0, 0, 0, time.UTC)))
}

func TestStagePayout_Complete(t *testing.T) {
	payout := domain.StagePayout{PayoutID: "po-1", Amount: decimal.NewFromInt(500000)}

	require.NoError(t, payout.Complete("txn-1", testNow))
	assert.True(t, payout.IsCompleted)
	assert.Equal(t, "txn-1", payout.TransactionID)

	assert.ErrorIs(t, payout.Complete("txn-2", testNow), domain.ErrPayoutAlreadyCompleted)
}
