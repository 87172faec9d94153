package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPayoutAlreadyCompleted = errors.New("payout is already completed")

// StagePayout is the lump-sum disbursement owed to the holder of a turn.
// (stageID, turnNumber) is the idempotency key; the database enforces it.
type StagePayout struct {
	PayoutID      string          `json:"payoutID"`
	StageID       string          `json:"stageID"`
	Username      string          `json:"username"`
	TurnNumber    int             `json:"turnNumber"`
	Amount        decimal.Decimal `json:"amount"`
	IsCompleted   bool            `json:"isCompleted"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	TransactionID string          `json:"transactionID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Complete records the disbursement with its settlement transaction ID.
func (p *StagePayout) Complete(transactionID string, now time.Time) error {
	if p.IsCompleted {
		return ErrPayoutAlreadyCompleted
	}
	p.IsCompleted = true
	p.CompletedAt = &now
	p.TransactionID = transactionID
	return nil
}
