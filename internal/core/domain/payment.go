package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPaymentAlreadyPaid = errors.New("payment is already marked paid")

// StagePayment is one participant's contribution obligation for one cycle month.
// (stageID, username, monthNumber) is the idempotency key; the database enforces it.
type StagePayment struct {
	PaymentID   string          `json:"paymentID"`
	StageID     string          `json:"stageID"`
	Username    string          `json:"username"`
	MonthNumber int             `json:"monthNumber"`
	Amount      decimal.Decimal `json:"amount"`
	IsPaid      bool            `json:"isPaid"`
	DueDate     time.Time       `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	PaymentKey  string          `json:"paymentKey,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// MarkAsPaid records settlement of the obligation through the payment provider key.
func (p *StagePayment) MarkAsPaid(paymentKey string, now time.Time) error {
	if p.IsPaid {
		return ErrPaymentAlreadyPaid
	}
	p.IsPaid = true
	p.PaidAt = &now
	p.PaymentKey = paymentKey
	return nil
}

// IsOverdue reports whether the obligation is unpaid past its deadline.
func (p *StagePayment) IsOverdue(now time.Time) bool {
	return !p.IsPaid && now.After(p.DueDate)
}
