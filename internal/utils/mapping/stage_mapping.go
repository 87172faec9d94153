package mapping

import (
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/models"
)

// ToModelStage converts a domain Stage to a model Stage (participants are stored separately).
func ToModelStage(d domain.Stage) models.Stage {
	return models.Stage{
		StageID:           d.StageID,
		Name:              d.Name,
		TotalParticipants: d.TotalParticipants,
		MonthlyPayment:    d.MonthlyPayment,
		InterestRate:      d.InterestRate,
		PaymentDay:        d.PaymentDay,
		Status:            models.StageStatus(d.Status),
		StartDate:         d.StartDate,
		ExpectedEndDate:   d.ExpectedEndDate,
		CreatedAt:         d.CreatedAt,
		LastUpdatedAt:     d.LastUpdatedAt,
	}
}

// ToDomainStage converts a model Stage to a domain Stage.
func ToDomainStage(m models.Stage) domain.Stage {
	return domain.Stage{
		StageID:           m.StageID,
		Name:              m.Name,
		TotalParticipants: m.TotalParticipants,
		MonthlyPayment:    m.MonthlyPayment,
		InterestRate:      m.InterestRate,
		PaymentDay:        m.PaymentDay,
		Status:            domain.StageStatus(m.Status),
		StartDate:         m.StartDate,
		ExpectedEndDate:   m.ExpectedEndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// ToModelParticipant converts a domain StageParticipant to its model form.
func ToModelParticipant(d domain.StageParticipant) models.StageParticipant {
	return models.StageParticipant{
		ParticipantID:     d.ParticipantID,
		StageID:           d.StageID,
		Username:          d.Username,
		TurnNumber:        d.TurnNumber,
		HasReceivedPayout: d.HasReceivedPayout,
		JoinedAt:          d.JoinedAt,
		PayoutReceivedAt:  d.PayoutReceivedAt,
	}
}

// ToDomainParticipant converts a model StageParticipant to its domain form.
func ToDomainParticipant(m models.StageParticipant) domain.StageParticipant {
	return domain.StageParticipant{
		ParticipantID:     m.ParticipantID,
		StageID:           m.StageID,
		Username:          m.Username,
		TurnNumber:        m.TurnNumber,
		HasReceivedPayout: m.HasReceivedPayout,
		JoinedAt:          m.JoinedAt,
		PayoutReceivedAt:  m.PayoutReceivedAt,
	}
}

// ToDomainParticipantSlice converts model participants to domain participants.
func ToDomainParticipantSlice(ms []models.StageParticipant) []domain.StageParticipant {
	ds := make([]domain.StageParticipant, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainParticipant(m)
	}
	return ds
}
