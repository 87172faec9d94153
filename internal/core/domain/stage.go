package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// StageStatus indicates where a stage is in its lifecycle.
type StageStatus string

const (
	StageRecruiting StageStatus = "RECRUITING"
	StageActive     StageStatus = "ACTIVE"
	StageCompleted  StageStatus = "COMPLETED"
	StageCancelled  StageStatus = "CANCELLED"
)

var (
	ErrInvalidConfiguration = errors.New("invalid stage configuration")
	ErrStageNotRecruiting   = errors.New("stage is not recruiting")
	ErrStageNotActive       = errors.New("stage is not active")
	ErrStageNotCompleted    = errors.New("stage is not completed")
	ErrStageCompleted       = errors.New("stage is already completed")
	ErrStageFull            = errors.New("stage roster is full")
	ErrIncompleteRoster     = errors.New("stage roster is not full")
	ErrDuplicateParticipant = errors.New("user already participates in this stage")
	ErrTurnAlreadyTaken     = errors.New("turn number is already taken")
	ErrTurnOutOfRange       = errors.New("turn number is out of range")
	ErrMonthOutOfRange      = errors.New("month number is out of range")
	ErrRecipientNotFound    = errors.New("no participant holds this turn")
)

// PositionFactor maps a turn position to the interest multiplier applied to its payout.
// It must be a pure function of turn and totalParticipants.
type PositionFactor func(turn, totalParticipants int) decimal.Decimal

// DefaultPositionFactor weights each turn by how many cycles the holder keeps paying in
// after collecting: turn 1 collects first and earns no interest, the last turn earns the most.
func DefaultPositionFactor(turn, totalParticipants int) decimal.Decimal {
	return decimal.NewFromInt(int64(turn - 1))
}

// Stage is the aggregate root of a single rotating fund. All roster mutation goes
// through Join and Activate; the participant slice is never edited from outside.
type Stage struct {
	StageID           string          `json:"stageID"`
	Name              string          `json:"name"`
	TotalParticipants int             `json:"totalParticipants"`
	MonthlyPayment    decimal.Decimal `json:"monthlyPayment"`
	InterestRate      decimal.Decimal `json:"interestRate"` // fraction, e.g. 0.05
	PaymentDay        int             `json:"paymentDay"`   // day of month, 1-31
	Status            StageStatus     `json:"status"`
	StartDate         *time.Time      `json:"startDate,omitempty"`
	ExpectedEndDate   *time.Time      `json:"expectedEndDate,omitempty"`
	Participants      []StageParticipant `json:"participants,omitempty"`
	AuditFields
}

// NewStage validates the configuration and returns a stage in RECRUITING.
func NewStage(stageID, name string, totalParticipants int, monthlyPayment, interestRate decimal.Decimal, paymentDay int, now time.Time) (*Stage, error) {
	if totalParticipants <= 0 {
		return nil, ErrInvalidConfiguration
	}
	if monthlyPayment.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidConfiguration
	}
	if interestRate.IsNegative() {
		return nil, ErrInvalidConfiguration
	}
	if paymentDay < 1 || paymentDay > 31 {
		return nil, ErrInvalidConfiguration
	}
	return &Stage{
		StageID:           stageID,
		Name:              name,
		TotalParticipants: totalParticipants,
		MonthlyPayment:    monthlyPayment,
		InterestRate:      interestRate,
		PaymentDay:        paymentDay,
		Status:            StageRecruiting,
		AuditFields:       AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}, nil
}

// Join appends a participant after checking every roster invariant.
// The returned participant has no ID yet; the caller assigns one before persisting.
func (s *Stage) Join(username string, turnNumber int, now time.Time) (*StageParticipant, error) {
	if s.Status != StageRecruiting {
		return nil, ErrStageNotRecruiting
	}
	if turnNumber < 1 || turnNumber > s.TotalParticipants {
		return nil, ErrTurnOutOfRange
	}
	if len(s.Participants) >= s.TotalParticipants {
		return nil, ErrStageFull
	}
	for _, p := range s.Participants {
		if p.Username == username {
			return nil, ErrDuplicateParticipant
		}
		if p.TurnNumber == turnNumber {
			return nil, ErrTurnAlreadyTaken
		}
	}
	participant := StageParticipant{
		StageID:    s.StageID,
		Username:   username,
		TurnNumber: turnNumber,
		JoinedAt:   now,
	}
	s.Participants = append(s.Participants, participant)
	s.LastUpdatedAt = now
	return &s.Participants[len(s.Participants)-1], nil
}

// IsFullyRecruited reports whether every turn has a holder.
func (s *Stage) IsFullyRecruited() bool {
	return len(s.Participants) == s.TotalParticipants
}

// Activate moves a fully recruited stage to ACTIVE, stamps the start date and
// returns the lifecycle event to publish. Activation requires a full roster.
func (s *Stage) Activate(now time.Time) (*StageStartedEvent, error) {
	if s.Status != StageRecruiting {
		return nil, ErrStageNotRecruiting
	}
	if !s.IsFullyRecruited() {
		return nil, ErrIncompleteRoster
	}
	start := dateOf(now)
	end := start.AddDate(0, s.TotalParticipants, 0)
	s.Status = StageActive
	s.StartDate = &start
	s.ExpectedEndDate = &end
	s.LastUpdatedAt = now
	return &StageStartedEvent{
		StageID:           s.StageID,
		Name:              s.Name,
		TotalParticipants: s.TotalParticipants,
		StartDate:         start,
		PaymentDay:        s.PaymentDay,
		At:                now,
	}, nil
}

// Complete closes an active stage once every cycle has been paid out.
func (s *Stage) Complete(now time.Time) (*StageCompletedEvent, error) {
	if s.Status != StageActive {
		return nil, ErrStageNotActive
	}
	s.Status = StageCompleted
	s.LastUpdatedAt = now
	return &StageCompletedEvent{
		StageID:       s.StageID,
		Name:          s.Name,
		CompletedDate: dateOf(now),
		At:            now,
	}, nil
}

// Cancel aborts a stage in any state short of COMPLETED.
func (s *Stage) Cancel(now time.Time) error {
	if s.Status == StageCompleted {
		return ErrStageCompleted
	}
	s.Status = StageCancelled
	s.LastUpdatedAt = now
	return nil
}

// CurrentCycleMonth returns the 1-based cycle month for today: 1 plus the number of
// whole calendar months elapsed since the start date. Both generation engines must
// use this single definition so payments and payouts never skew.
func (s *Stage) CurrentCycleMonth(today time.Time) int {
	if s.StartDate == nil {
		return 0
	}
	return wholeMonthsBetween(*s.StartDate, dateOf(today)) + 1
}

// PaymentDueDate returns the contribution deadline for a cycle month:
// the stage's payment day of that month, end of day. When the payment day
// exceeds the month's length the last day of the month is used.
func (s *Stage) PaymentDueDate(monthNumber int) time.Time {
	// Month arithmetic on the first of the month: AddDate on the raw start
	// date would normalize Jan 31 + 1 month into March and skip February.
	first := time.Date(s.StartDate.Year(), s.StartDate.Month()+time.Month(monthNumber-1), 1, 0, 0, 0, 0, s.StartDate.Location())
	day := s.PaymentDay
	if last := lastDayOfMonth(first); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 23, 59, 59, 0, first.Location())
}

// PayoutScheduledAt returns when a turn's payout is released: the morning after
// that cycle's contribution deadline.
func (s *Stage) PayoutScheduledAt(turnNumber int) time.Time {
	due := s.PaymentDueDate(turnNumber)
	next := dateOf(due).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 9, 0, 0, 0, next.Location())
}

// PayoutAmount computes the lump sum for a turn:
// monthlyPayment * totalParticipants * (1 + interestRate * factor(turn)).
func (s *Stage) PayoutAmount(turnNumber int, factor PositionFactor) decimal.Decimal {
	if factor == nil {
		factor = DefaultPositionFactor
	}
	base := s.MonthlyPayment.Mul(decimal.NewFromInt(int64(s.TotalParticipants)))
	multiplier := decimal.NewFromInt(1).Add(s.InterestRate.Mul(factor(turnNumber, s.TotalParticipants)))
	return base.Mul(multiplier)
}

// ParticipantByTurn returns the holder of a turn, or nil when the turn is open.
func (s *Stage) ParticipantByTurn(turnNumber int) *StageParticipant {
	for i := range s.Participants {
		if s.Participants[i].TurnNumber == turnNumber {
			return &s.Participants[i]
		}
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// wholeMonthsBetween counts complete calendar months from a to b, b >= a.
// When a's day overflows b's month (a started on the 31st, b is in February),
// the month's last day counts as the anniversary, mirroring the due-date clamp.
func wholeMonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() && b.Day() != lastDayOfMonth(b) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
