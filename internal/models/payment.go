package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StagePayment represents one row of the stage_payments table.
// (stage_id, username, month_number) is unique; that constraint is what makes
// monthly generation idempotent.
type StagePayment struct {
	PaymentID   string          `json:"paymentID"`
	StageID     string          `json:"stageID"`
	Username    string          `json:"username"`
	MonthNumber int             `json:"monthNumber"`
	Amount      decimal.Decimal `json:"amount"`
	IsPaid      bool            `json:"isPaid"`
	DueDate     time.Time       `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	PaymentKey  *string         `json:"paymentKey,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
