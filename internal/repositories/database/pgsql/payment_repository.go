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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates the repository for contribution obligations.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, stage_id, username, month_number, amount,
	       is_paid, due_date, paid_at, payment_key, created_at`

// CreatePaymentsIfAbsent inserts the given obligations in one batch, skipping
// rows whose (stage_id, username, month_number) key already exists. The
// ON CONFLICT clause makes the insert itself the idempotency check, so
// concurrent or repeated generation runs cannot double-insert.
func (r *PgxPaymentRepository) CreatePaymentsIfAbsent(ctx context.Context, payments []domain.StagePayment) ([]domain.StagePayment, error) {
	if len(payments) == 0 {
		return nil, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	insertQuery := `
		INSERT INTO stage_payments (payment_id, stage_id, username, month_number, amount, is_paid, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (stage_id, username, month_number) DO NOTHING;
	`
	for _, p := range payments {
		m := mapping.ToModelPayment(p)
		batch.Queue(insertQuery, m.PaymentID, m.StageID, m.Username, m.MonthNumber, m.Amount, m.IsPaid, m.DueDate, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	created := make([]domain.StagePayment, 0, len(payments))
	for _, p := range payments {
		cmdTag, execErr := br.Exec()
		if execErr != nil {
			br.Close()
			return nil, apperrors.NewAppError(500, "failed to insert payment batch for stage "+p.StageID, execErr)
		}
		if cmdTag.RowsAffected() > 0 {
			created = append(created, p)
		}
	}
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to close payment insert batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

// FindPaymentByID retrieves a single obligation.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.StagePayment, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM stage_payments WHERE payment_id = $1;`, paymentID)
	m, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find payment by ID "+paymentID, err)
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// FindPaymentsByStageID lists every obligation of a stage.
func (r *PgxPaymentRepository) FindPaymentsByStageID(ctx context.Context, stageID string) ([]domain.StagePayment, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM stage_payments WHERE stage_id = $1 ORDER BY month_number, username;`,
		stageID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for stage "+stageID, err)
	}
	return scanPayments(rows)
}

// FindPaymentsByUsername lists a user's obligations across stages.
func (r *PgxPaymentRepository) FindPaymentsByUsername(ctx context.Context, username string) ([]domain.StagePayment, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM stage_payments WHERE username = $1 ORDER BY due_date;`,
		username,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query payments for user "+username, err)
	}
	return scanPayments(rows)
}

// UpdatePaymentPaid persists a paid transition.
func (r *PgxPaymentRepository) UpdatePaymentPaid(ctx context.Context, payment domain.StagePayment) error {
	m := mapping.ToModelPayment(payment)
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE stage_payments SET is_paid = $2, paid_at = $3, payment_key = $4 WHERE payment_id = $1;`,
		m.PaymentID, m.IsPaid, m.PaidAt, m.PaymentKey,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update payment "+m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment " + m.PaymentID + " not found for update")
	}
	return nil
}

func scanPayment(row pgx.Row) (*models.StagePayment, error) {
	var m models.StagePayment
	err := row.Scan(
		&m.PaymentID,
		&m.StageID,
		&m.Username,
		&m.MonthNumber,
		&m.Amount,
		&m.IsPaid,
		&m.DueDate,
		&m.PaidAt,
		&m.PaymentKey,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanPayments(rows pgx.Rows) ([]domain.StagePayment, error) {
	defer rows.Close()
	payments := []models.StagePayment{}
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment row", err)
		}
		payments = append(payments, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating payment rows", err)
	}
	return mapping.ToDomainPaymentSlice(payments), nil
}
