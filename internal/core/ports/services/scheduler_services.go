package services

import (
	"context"
	"time"
)

// SchedulerSvcFacade holds the two daily entry points. Both take today's date
// as an argument so they can be exercised with any date in tests; all
// idempotency lives in the generation engines' uniqueness keys, so repeated or
// overlapping runs are safe.
type SchedulerSvcFacade interface {
	// GeneratePaymentsForDay creates the monthly obligations for every active
	// stage whose payment day matches today. One stage's failure never blocks
	// the rest of the batch.
	GeneratePaymentsForDay(ctx context.Context, today time.Time)

	// GeneratePayoutsForDay releases the previous cycle's payout for every
	// active stage whose payment day matches today. Runs after
	// GeneratePaymentsForDay in the daily schedule.
	GeneratePayoutsForDay(ctx context.Context, today time.Time)
}
