package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a lifecycle notification handed to the event publisher. Delivery is
// fire-and-forget: publication failure never rolls back the state change that
// produced the event.
type Event interface {
	EventType() string
	OccurredAt() time.Time
	Payload() map[string]any
}

// StageStartedEvent is emitted when a stage activates.
type StageStartedEvent struct {
	StageID           string
	Name              string
	TotalParticipants int
	StartDate         time.Time
	PaymentDay        int
	At                time.Time
}

func (e StageStartedEvent) EventType() string     { return "StageStarted" }
func (e StageStartedEvent) OccurredAt() time.Time { return e.At }
func (e StageStartedEvent) Payload() map[string]any {
	return map[string]any{
		"stageID":           e.StageID,
		"stageName":         e.Name,
		"totalParticipants": e.TotalParticipants,
		"startDate":         e.StartDate.Format("2006-01-02"),
		"paymentDay":        e.PaymentDay,
	}
}

// StageCompletedEvent is emitted when the final payout closes a stage.
type StageCompletedEvent struct {
	StageID       string
	Name          string
	CompletedDate time.Time
	At            time.Time
}

func (e StageCompletedEvent) EventType() string     { return "StageCompleted" }
func (e StageCompletedEvent) OccurredAt() time.Time { return e.At }
func (e StageCompletedEvent) Payload() map[string]any {
	return map[string]any{
		"stageID":       e.StageID,
		"stageName":     e.Name,
		"completedDate": e.CompletedDate.Format("2006-01-02"),
	}
}

// PaymentDueEvent notifies a participant of a newly generated contribution obligation.
type PaymentDueEvent struct {
	StageID     string
	Username    string
	MonthNumber int
	Amount      decimal.Decimal
	DueDate     time.Time
	At          time.Time
}

func (e PaymentDueEvent) EventType() string     { return "PaymentDue" }
func (e PaymentDueEvent) OccurredAt() time.Time { return e.At }
func (e PaymentDueEvent) Payload() map[string]any {
	return map[string]any{
		"stageID":     e.StageID,
		"username":    e.Username,
		"monthNumber": e.MonthNumber,
		"amount":      e.Amount.String(),
		"dueDate":     e.DueDate.Format(time.RFC3339),
	}
}

// PayoutReadyEvent notifies the turn holder that their lump sum is ready.
type PayoutReadyEvent struct {
	StageID    string
	Username   string
	TurnNumber int
	Amount     decimal.Decimal
	At         time.Time
}

func (e PayoutReadyEvent) EventType() string     { return "PayoutReady" }
func (e PayoutReadyEvent) OccurredAt() time.Time { return e.At }
func (e PayoutReadyEvent) Payload() map[string]any {
	return map[string]any{
		"stageID":    e.StageID,
		"username":   e.Username,
		"turnNumber": e.TurnNumber,
		"amount":     e.Amount.String(),
	}
}
