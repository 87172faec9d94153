// Package scheduler fires the daily generation triggers at their configured
// wall-clock times.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/stagefund/stagefund_backend/internal/core/ports/services"
	"github.com/stagefund/stagefund_backend/internal/platform/config"
)

// Runner wakes once per trigger per day and hands the date to the scheduler
// service. It keeps no state of its own: a missed or repeated firing is
// harmless because generation is idempotent.
type Runner struct {
	svc       portssvc.SchedulerSvcFacade
	paymentAt config.TimeOfDay
	payoutAt  config.TimeOfDay
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner creates a Runner wired to the scheduler service.
func NewRunner(svc portssvc.SchedulerSvcFacade, paymentAt, payoutAt config.TimeOfDay, logger *slog.Logger) *Runner {
	return &Runner{
		svc:       svc,
		paymentAt: paymentAt,
		payoutAt:  payoutAt,
		logger:    logger,
		now:       time.Now,
	}
}

// Run blocks until the context ends, firing both daily triggers. Payment
// generation runs at the earlier configured time so payouts always find the
// current cycle's obligations in place.
func (r *Runner) Run(ctx context.Context) {
	r.logger.Info("scheduler runner started",
		slog.String("payment_trigger", r.paymentAt.String()),
		slog.String("payout_trigger", r.payoutAt.String()),
	)

	go r.loop(ctx, r.paymentAt, "payments", r.svc.GeneratePaymentsForDay)
	go r.loop(ctx, r.payoutAt, "payouts", r.svc.GeneratePayoutsForDay)

	<-ctx.Done()
	r.logger.Info("scheduler runner stopping")
}

func (r *Runner) loop(ctx context.Context, at config.TimeOfDay, name string, trigger func(context.Context, time.Time)) {
	for {
		timer := time.NewTimer(time.Until(nextOccurrence(r.now(), at)))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case firedAt := <-timer.C:
			r.logger.Info("daily trigger firing",
				slog.String("trigger", name),
				slog.String("date", firedAt.Format("2006-01-02")),
			)
			trigger(ctx, firedAt)
		}
	}
}

// nextOccurrence returns the next wall-clock moment matching the trigger time,
// strictly after now.
func nextOccurrence(now time.Time, at config.TimeOfDay) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
