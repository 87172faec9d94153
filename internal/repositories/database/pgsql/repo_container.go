package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the concrete pgx repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StageRepo:      newPgxStageRepository(dbPool),
		PaymentRepo:    newPgxPaymentRepository(dbPool),
		PayoutRepo:     newPgxPayoutRepository(dbPool),
		SettlementRepo: newPgxSettlementRepository(dbPool),
	}
}
