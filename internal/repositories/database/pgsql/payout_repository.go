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

type PgxPayoutRepository struct {
	BaseRepository
}

// newPgxPayoutRepository creates the repository for payout records.
func newPgxPayoutRepository(pool *pgxpool.Pool) portsrepo.PayoutRepositoryFacade {
	return &PgxPayoutRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PayoutRepositoryFacade = (*PgxPayoutRepository)(nil)

const payoutColumns = `payout_id, stage_id, username, turn_number, amount,
	       is_completed, scheduled_at, completed_at, transaction_id, created_at`

// CreatePayoutIfAbsent inserts the payout unless its (stage_id, turn_number)
// key already exists. The uniqueness constraint, not the caller's pre-check,
// is what closes the check-then-act race.
func (r *PgxPayoutRepository) CreatePayoutIfAbsent(ctx context.Context, payout domain.StagePayout) (bool, error) {
	m := mapping.ToModelPayout(payout)
	query := `
		INSERT INTO stage_payouts (payout_id, stage_id, username, turn_number, amount, is_completed, scheduled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (stage_id, turn_number) DO NOTHING;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PayoutID, m.StageID, m.Username, m.TurnNumber, m.Amount, m.IsCompleted, m.ScheduledAt, m.CreatedAt,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert payout for stage "+m.StageID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// FindPayoutByID retrieves a single payout record.
func (r *PgxPayoutRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.StagePayout, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+payoutColumns+` FROM stage_payouts WHERE payout_id = $1;`, payoutID)
	m, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payout by ID "+payoutID, err)
	}
	p := mapping.ToDomainPayout(*m)
	return &p, nil
}

// FindPayoutByStageAndTurn retrieves the payout for a turn, if generated.
func (r *PgxPayoutRepository) FindPayoutByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StagePayout, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+payoutColumns+` FROM stage_payouts WHERE stage_id = $1 AND turn_number = $2;`,
		stageID, turnNumber,
	)
	m, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payout by turn for stage "+stageID, err)
	}
	p := mapping.ToDomainPayout(*m)
	return &p, nil
}

// FindPayoutsByStageID lists every payout of a stage ordered by turn.
func (r *PgxPayoutRepository) FindPayoutsByStageID(ctx context.Context, stageID string) ([]domain.StagePayout, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+payoutColumns+` FROM stage_payouts WHERE stage_id = $1 ORDER BY turn_number;`,
		stageID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payouts for stage "+stageID, err)
	}
	return scanPayouts(rows)
}

// FindPayoutsByUsername lists a user's payouts across stages.
func (r *PgxPayoutRepository) FindPayoutsByUsername(ctx context.Context, username string) ([]domain.StagePayout, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+payoutColumns+` FROM stage_payouts WHERE username = $1 ORDER BY scheduled_at;`,
		username,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payouts for user "+username, err)
	}
	return scanPayouts(rows)
}

// CountCompletedByStageID counts disbursed payouts of a stage.
func (r *PgxPayoutRepository) CountCompletedByStageID(ctx context.Context, stageID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM stage_payouts WHERE stage_id = $1 AND is_completed;`,
		stageID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count completed payouts for stage "+stageID, err)
	}
	return count, nil
}

// CompletePayout persists the payout's completion and the recipient's received
// flag in one transaction so the two can never diverge.
func (r *PgxPayoutRepository) CompletePayout(ctx context.Context, payout domain.StagePayout, recipient domain.StageParticipant) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mp := mapping.ToModelPayout(payout)
	cmdTag, err := tx.Exec(ctx,
		`UPDATE stage_payouts SET is_completed = $2, completed_at = $3, transaction_id = $4 WHERE payout_id = $1;`,
		mp.PayoutID, mp.IsCompleted, mp.CompletedAt, mp.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payout "+mp.PayoutID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payout " + mp.PayoutID + " not found for update")
	}

	mr := mapping.ToModelParticipant(recipient)
	cmdTag, err = tx.Exec(ctx,
		`UPDATE stage_participants SET has_received_payout = $2, payout_received_at = $3 WHERE participant_id = $1;`,
		mr.ParticipantID, mr.HasReceivedPayout, mr.PayoutReceivedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update participant "+mr.ParticipantID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("participant " + mr.ParticipantID + " not found for update")
	}

	return r.Commit(ctx, tx)
}

func scanPayout(row pgx.Row) (*models.StagePayout, error) {
	var m models.StagePayout
	err := row.Scan(
		&m.PayoutID,
		&m.StageID,
		&m.Username,
		&m.TurnNumber,
		&m.Amount,
		&m.IsCompleted,
		&m.ScheduledAt,
		&m.CompletedAt,
		&m.TransactionID,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPayouts(rows pgx.Rows) ([]domain.StagePayout, error) {
	defer rows.Close()
	payouts := []models.StagePayout{}
	for rows.Next() {
		m, err := scanPayout(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payout row", err)
		}
		payouts = append(payouts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payout rows", err)
	}
	return mapping.ToDomainPayoutSlice(payouts), nil
}
