package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageSettlement represents one row of the stage_settlements table; stage_id is unique.
type StageSettlement struct {
	SettlementID   string          `json:"settlementID"`
	StageID        string          `json:"stageID"`
	TotalPayments  decimal.Decimal `json:"totalPayments"`
	TotalPayouts   decimal.Decimal `json:"totalPayouts"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	SettlementDate time.Time       `json:"settlementDate"`
	IsVerified     bool            `json:"isVerified"`
}

// ParticipantSettlement represents one row of the participant_settlements table.
type ParticipantSettlement struct {
	ParticipantSettlementID string          `json:"participantSettlementID"`
	SettlementID            string          `json:"settlementID"`
	Username                string          `json:"username"`
	TurnNumber              int             `json:"turnNumber"`
	TotalPaid               decimal.Decimal `json:"totalPaid"`
	TotalReceived           decimal.Decimal `json:"totalReceived"`
	ProfitLoss              decimal.Decimal `json:"profitLoss"`
	EffectiveRate           decimal.Decimal `json:"effectiveRate"`
	PaidMonths              int             `json:"paidMonths"`
	ReceivedMonth           int             `json:"receivedMonth"`
}
