package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StagePayout represents one row of the stage_payouts table.
// (stage_id, turn_number) is unique.
type StagePayout struct {
	PayoutID      string          `json:"payoutID"`
	StageID       string          `json:"stageID"`
	Username      string          `json:"username"`
	TurnNumber    int             `json:"turnNumber"`
	Amount        decimal.Decimal `json:"amount"`
	IsCompleted   bool            `json:"isCompleted"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	TransactionID *string         `json:"transactionID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
