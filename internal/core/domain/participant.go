package domain

import (
	"errors"
	"time"
)

var ErrPayoutAlreadyReceived = errors.New("participant already received the payout")

// StageParticipant is owned by its stage; it is created through Stage.Join and
// never mutated afterwards except for payout receipt tracking.
type StageParticipant struct {
	ParticipantID    string     `json:"participantID"`
	StageID          string     `json:"stageID"`
	Username         string     `json:"username"`
	TurnNumber       int        `json:"turnNumber"`
	HasReceivedPayout bool      `json:"hasReceivedPayout"`
	JoinedAt         time.Time  `json:"joinedAt"`
	PayoutReceivedAt *time.Time `json:"payoutReceivedAt,omitempty"`
}

// MarkPayoutReceived records that the participant collected their lump sum.
func (p *StageParticipant) MarkPayoutReceived(now time.Time) error {
	if p.HasReceivedPayout {
		return ErrPayoutAlreadyReceived
	}
	p.HasReceivedPayout = true
	p.PayoutReceivedAt = &now
	return nil
}

// IsPayoutDue reports whether the participant's turn matches the given cycle month
// and the payout has not been collected yet.
func (p *StageParticipant) IsPayoutDue(currentMonth int) bool {
	return p.TurnNumber == currentMonth && !p.HasReceivedPayout
}
