package mapping

import (
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/models"
)

// ToModelPayment converts a domain StagePayment to its model form.
func ToModelPayment(d domain.StagePayment) models.StagePayment {
	m := models.StagePayment{
		PaymentID:   d.PaymentID,
		StageID:     d.StageID,
		Username:    d.Username,
		MonthNumber: d.MonthNumber,
		Amount:      d.Amount,
		IsPaid:      d.IsPaid,
		DueDate:     d.DueDate,
		PaidAt:      d.PaidAt,
		CreatedAt:   d.CreatedAt,
	}
	if d.PaymentKey != "" {
		key := d.PaymentKey
		m.PaymentKey = &key
	}
	return m
}

// ToDomainPayment converts a model StagePayment to its domain form.
func ToDomainPayment(m models.StagePayment) domain.StagePayment {
	d := domain.StagePayment{
		PaymentID:   m.PaymentID,
		StageID:     m.StageID,
		Username:    m.Username,
		MonthNumber: m.MonthNumber,
		Amount:      m.Amount,
		IsPaid:      m.IsPaid,
		DueDate:     m.DueDate,
		PaidAt:      m.PaidAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.PaymentKey != nil {
		d.PaymentKey = *m.PaymentKey
	}
	return d
}

// ToDomainPaymentSlice converts model payments to domain payments.
func ToDomainPaymentSlice(ms []models.StagePayment) []domain.StagePayment {
	ds := make([]domain.StagePayment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
