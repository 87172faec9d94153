package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageStatus indicates the lifecycle state of a stage row.
type StageStatus string

const (
	StageRecruiting StageStatus = "RECRUITING"
	StageActive     StageStatus = "ACTIVE"
	StageCompleted  StageStatus = "COMPLETED"
	StageCancelled  StageStatus = "CANCELLED"
)

// Stage represents a rotating fund as stored in the stages table.
type Stage struct {
	StageID           string          `json:"stageID"`
	Name              string          `json:"name"`
	TotalParticipants int             `json:"totalParticipants"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	PaymentDay        int             `json:"paymentDay"`
	Status            StageStatus     `json:"status"`
	StartDate         *time.Time      `json:"startDate,omitempty"`
	ExpectedEndDate   *time.Time      `json:"expectedEndDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	LastUpdatedAt     time.Time       `json:"lastUpdatedAt"`
}

// StageParticipant represents one row of the stage_participants table.
// (stage_id, turn_number) and (stage_id, username) are unique.
type StageParticipant struct {
	ParticipantID     string     `json:"participantID"`
	StageID           string     `json:"stageID"`
	Username          string     `json:"username"`
	TurnNumber        int        `json:"turnNumber"`
	HasReceivedPayout bool       `json:"hasReceivedPayout"`
	JoinedAt          time.Time  `json:"joinedAt"`
	PayoutReceivedAt  *time.Time `json:"payoutReceivedAt,omitempty"`
}
