package dto

import "github.com/shopspring/decimal"

// CreateStageRequest carries the configuration for a new rotating fund.
type CreateStageRequest struct {
	Name              string          `json:"name" binding:"required"`
	TotalParticipants int             `json:"totalParticipants" binding:"required"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment" binding:"required"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	PaymentDay        int             `json:"paymentDay" binding:"required"`
}
