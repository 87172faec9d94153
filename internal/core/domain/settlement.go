package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StageSettlement reconciles a completed stage: the sum of everything paid in,
// everything paid out, and the interest spread between the two.
type StageSettlement struct {
	SettlementID           string                  `json:"settlementID"`
	StageID                string                  `json:"stageID"`
	TotalPayments          decimal.Decimal         `json:"totalPayments"`
	TotalPayouts           decimal.Decimal         `json:"totalPayouts"`
	TotalInterest          decimal.Decimal         `json:"totalInterest"`
	SettlementDate         time.Time               `json:"settlementDate"`
	IsVerified             bool                    `json:"isVerified"`
	ParticipantSettlements []ParticipantSettlement `json:"participantSettlements,omitempty"`
}

// NewStageSettlement builds the stage-level totals; participant rows are added afterwards.
func NewStageSettlement(settlementID, stageID string, totalPayments, totalPayouts decimal.Decimal, now time.Time) *StageSettlement {
	return &StageSettlement{
		SettlementID:   settlementID,
		StageID:        stageID,
		TotalPayments:  totalPayments,
		TotalPayouts:   totalPayouts,
		TotalInterest:  totalPayouts.Sub(totalPayments),
		SettlementDate: now,
	}
}

// AddParticipantSettlement appends a per-participant reconciliation row.
func (s *StageSettlement) AddParticipantSettlement(ps ParticipantSettlement) {
	s.ParticipantSettlements = append(s.ParticipantSettlements, ps)
}

// Verify cross-checks the participant rows against the stage totals and marks
// the settlement verified. Any mismatch means generation produced inconsistent data.
func (s *StageSettlement) Verify() error {
	calculatedPaid := decimal.Zero
	calculatedReceived := decimal.Zero
	for _, ps := range s.ParticipantSettlements {
		calculatedPaid = calculatedPaid.Add(ps.TotalPaid)
		calculatedReceived = calculatedReceived.Add(ps.TotalReceived)
	}
	if !calculatedPaid.Equal(s.TotalPayments) {
		return fmt.Errorf("settlement payment mismatch: expected %s, got %s", s.TotalPayments, calculatedPaid)
	}
	if !calculatedReceived.Equal(s.TotalPayouts) {
		return fmt.Errorf("settlement payout mismatch: expected %s, got %s", s.TotalPayouts, calculatedReceived)
	}
	s.IsVerified = true
	return nil
}

// AverageReturn is the stage-wide interest yield as a percentage of payments.
func (s *StageSettlement) AverageReturn() decimal.Decimal {
	if s.TotalPayments.IsZero() {
		return decimal.Zero
	}
	return s.TotalInterest.DivRound(s.TotalPayments, 4).Mul(decimal.NewFromInt(100))
}

// ParticipantSettlement captures one participant's final position in a settled stage.
type ParticipantSettlement struct {
	ParticipantSettlementID string          `json:"participantSettlementID"`
	SettlementID            string          `json:"settlementID"`
	Username                string          `json:"username"`
	TurnNumber              int             `json:"turnNumber"`
	TotalPaid               decimal.Decimal `json:"totalPaid"`
	TotalReceived           decimal.Decimal `json:"totalReceived"`
	ProfitLoss              decimal.Decimal `json:"profitLoss"`
	EffectiveRate           decimal.Decimal `json:"effectiveRate"` // percent
	PaidMonths              int             `json:"paidMonths"`
	ReceivedMonth           int             `json:"receivedMonth"`
}

// NewParticipantSettlement derives profit/loss and the effective rate from the totals.
func NewParticipantSettlement(id, settlementID, username string, turnNumber int, totalPaid, totalReceived decimal.Decimal, paidMonths, receivedMonth int) ParticipantSettlement {
	ps := ParticipantSettlement{
		ParticipantSettlementID: id,
		SettlementID:            settlementID,
		Username:                username,
		TurnNumber:              turnNumber,
		TotalPaid:               totalPaid,
		TotalReceived:           totalReceived,
		ProfitLoss:              totalReceived.Sub(totalPaid),
		PaidMonths:              paidMonths,
		ReceivedMonth:           receivedMonth,
	}
	if totalPaid.IsPositive() {
		ps.EffectiveRate = ps.ProfitLoss.DivRound(totalPaid, 4).Mul(decimal.NewFromInt(100))
	} else {
		ps.EffectiveRate = decimal.Zero
	}
	return ps
}

// IsProfitable reports whether the participant came out ahead.
func (ps ParticipantSettlement) IsProfitable() bool {
	return ps.ProfitLoss.IsPositive()
}

// IsBreakEven reports whether the participant received exactly what they paid.
func (ps ParticipantSettlement) IsBreakEven() bool {
	return ps.ProfitLoss.IsZero()
}
