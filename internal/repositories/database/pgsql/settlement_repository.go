package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagefund/stagefund_backend/internal/apperrors"
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
	"github.com/stagefund/stagefund_backend/internal/models"
	"github.com/stagefund/stagefund_backend/internal/utils/mapping"
)

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates the repository for stage settlements.
func newPgxSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

// SaveSettlement inserts the settlement and its participant rows in one
// transaction. The unique constraint on stage_id guarantees at most one
// settlement per stage even under concurrent generation.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.StageSettlement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ms := mapping.ToModelSettlement(settlement)
	settlementQuery := `
		INSERT INTO stage_settlements (settlement_id, stage_id, total_payments, total_payouts, total_interest, settlement_date, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, settlementQuery,
		ms.SettlementID, ms.StageID, ms.TotalPayments, ms.TotalPayouts, ms.TotalInterest, ms.SettlementDate, ms.IsVerified,
	); err != nil {
		if isUniqueViolation(err, "stage_settlements_stage_id_key") {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert settlement for stage "+ms.StageID, err)
	}

	batch := &pgx.Batch{}
	rowQuery := `
		INSERT INTO participant_settlements (
			participant_settlement_id, settlement_id, username, turn_number,
			total_paid, total_received, profit_loss, effective_rate, paid_months, received_month
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, ps := range settlement.ParticipantSettlements {
		m := mapping.ToModelParticipantSettlement(ps)
		batch.Queue(rowQuery,
			m.ParticipantSettlementID, m.SettlementID, m.Username, m.TurnNumber,
			m.TotalPaid, m.TotalReceived, m.ProfitLoss, m.EffectiveRate, m.PaidMonths, m.ReceivedMonth,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert participant settlements for stage "+ms.StageID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSettlementByStageID retrieves a stage's settlement with its participant rows.
func (r *PgxSettlementRepository) FindSettlementByStageID(ctx context.Context, stageID string) (*domain.StageSettlement, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT settlement_id, stage_id, total_payments, total_payouts, total_interest, settlement_date, is_verified
		FROM stage_settlements
		WHERE stage_id = $1;
	`, stageID)

	var ms models.StageSettlement
	err := row.Scan(&ms.SettlementID, &ms.StageID, &ms.TotalPayments, &ms.TotalPayouts, &ms.TotalInterest, &ms.SettlementDate, &ms.IsVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find settlement for stage "+stageID, err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT participant_settlement_id, settlement_id, username, turn_number,
		       total_paid, total_received, profit_loss, effective_rate, paid_months, received_month
		FROM participant_settlements
		WHERE settlement_id = $1
		ORDER BY turn_number;
	`, ms.SettlementID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query participant settlements for stage "+stageID, err)
	}
	defer rows.Close()

	settlement := mapping.ToDomainSettlement(ms)
	for rows.Next() {
		var mp models.ParticipantSettlement
		if err := rows.Scan(
			&mp.ParticipantSettlementID, &mp.SettlementID, &mp.Username, &mp.TurnNumber,
			&mp.TotalPaid, &mp.TotalReceived, &mp.ProfitLoss, &mp.EffectiveRate, &mp.PaidMonths, &mp.ReceivedMonth,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan participant settlement row", err)
		}
		settlement.ParticipantSettlements = append(settlement.ParticipantSettlements, mapping.ToDomainParticipantSettlement(mp))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating participant settlement rows", err)
	}

	return &settlement, nil
}
