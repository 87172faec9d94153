package mapping

import (
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/models"
)

// ToModelPayout converts a domain StagePayout to its model form.
func ToModelPayout(d domain.StagePayout) models.StagePayout {
	m := models.StagePayout{
		PayoutID:    d.PayoutID,
		StageID:     d.StageID,
		Username:    d.Username,
		TurnNumber:  d.TurnNumber,
		Amount:      d.Amount,
		IsCompleted: d.IsCompleted,
		ScheduledAt: d.ScheduledAt,
		CompletedAt: d.CompletedAt,
		CreatedAt:   d.CreatedAt,
	}
	if d.TransactionID != "" {
		txnID := d.TransactionID
		m.TransactionID = &txnID
	}
	return m
}

// ToDomainPayout converts a model StagePayout to its domain form.
func ToDomainPayout(m models.StagePayout) domain.StagePayout {
	d := domain.StagePayout{
		PayoutID:    m.PayoutID,
		StageID:     m.StageID,
		Username:    m.Username,
		TurnNumber:  m.TurnNumber,
		Amount:      m.Amount,
		IsCompleted: m.IsCompleted,
		ScheduledAt: m.ScheduledAt,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
	}
	if m.TransactionID != nil {
		d.TransactionID = *m.TransactionID
	}
	return d
}

// ToDomainPayoutSlice converts model payouts to domain payouts.
func ToDomainPayoutSlice(ms []models.StagePayout) []domain.StagePayout {
	ds := make([]domain.StagePayout, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayout(m)
	}
	return ds
}
