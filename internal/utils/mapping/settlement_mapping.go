package mapping

import (
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	"github.com/stagefund/stagefund_backend/internal/models"
)

// ToModelSettlement converts a domain StageSettlement to its model form
// (participant rows are stored through ToModelParticipantSettlement).
func ToModelSettlement(d domain.StageSettlement) models.StageSettlement {
	return models.StageSettlement{
		SettlementID:   d.SettlementID,
		StageID:        d.StageID,
		TotalPayments:  d.TotalPayments,
		TotalPayouts:   d.TotalPayouts,
		TotalInterest:  d.TotalInterest,
		SettlementDate: d.SettlementDate,
		IsVerified:     d.IsVerified,
	}
}

// ToDomainSettlement converts a model StageSettlement to its domain form.
func ToDomainSettlement(m models.StageSettlement) domain.StageSettlement {
	return domain.StageSettlement{
		SettlementID:   m.SettlementID,
		StageID:        m.StageID,
		TotalPayments:  m.TotalPayments,
		TotalPayouts:   m.TotalPayouts,
		TotalInterest:  m.TotalInterest,
		SettlementDate: m.SettlementDate,
		IsVerified:     m.IsVerified,
	}
}

// ToModelParticipantSettlement converts a domain ParticipantSettlement to its model form.
func ToModelParticipantSettlement(d domain.ParticipantSettlement) models.ParticipantSettlement {
	return models.ParticipantSettlement{
		ParticipantSettlementID: d.ParticipantSettlementID,
		SettlementID:            d.SettlementID,
		Username:                d.Username,
		TurnNumber:              d.TurnNumber,
		TotalPaid:               d.TotalPaid,
		TotalReceived:           d.TotalReceived,
		ProfitLoss:              d.ProfitLoss,
		EffectiveRate:           d.EffectiveRate,
		PaidMonths:              d.PaidMonths,
		ReceivedMonth:           d.ReceivedMonth,
	}
}

// ToDomainParticipantSettlement converts a model ParticipantSettlement to its domain form.
func ToDomainParticipantSettlement(m models.ParticipantSettlement) domain.ParticipantSettlement {
	return domain.ParticipantSettlement{
		ParticipantSettlementID: m.ParticipantSettlementID,
		SettlementID:            m.SettlementID,
		Username:                m.Username,
		TurnNumber:              m.TurnNumber,
		TotalPaid:               m.TotalPaid,
		TotalReceived:           m.TotalReceived,
		ProfitLoss:              m.ProfitLoss,
		EffectiveRate:           m.EffectiveRate,
		PaidMonths:              m.PaidMonths,
		ReceivedMonth:           m.ReceivedMonth,
	}
}
