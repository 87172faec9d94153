package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stagefund/stagefund_backend/internal/apperrors"
	"github.com/stagefund/stagefund_backend/internal/core/domain"
	portsrepo "github.com/stagefund/stagefund_backend/internal/core/ports/repositories"
	"github.com/stagefund/stagefund_backend/internal/models"
	"github.com/stagefund/stagefund_backend/internal/utils/mapping"
)

type PgxStageRepository struct {
	BaseRepository
}

// newPgxStageRepository creates the repository for stage and participant data.
func newPgxStageRepository(pool *pgxpool.Pool) portsrepo.StageRepositoryFacade {
	return &PgxStageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StageRepositoryFacade = (*PgxStageRepository)(nil)

const stageColumns = `stage_id, name, total_participants, monthly_payment, interest_rate,
	       payment_day, status, start_date, expected_end_date, created_at, last_updated_at`

const participantColumns = `participant_id, stage_id, username, turn_number,
	       has_received_payout, joined_at, payout_received_at`

// SaveStage inserts a newly created stage.
func (r *PgxStageRepository) SaveStage(ctx context.Context, stage domain.Stage) error {
	m := mapping.ToModelStage(stage)
	query := `
		INSERT INTO stages (
			stage_id, name, total_participants, monthly_payment, interest_rate,
			payment_day, status, start_date, expected_end_date, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StageID,
		m.Name,
		m.TotalParticipants,
		m.MonthlyPayment,
		m.InterestRate,
		m.PaymentDay,
		m.Status,
		m.StartDate,
		m.ExpectedEndDate,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stage "+m.StageID, err)
	}
	return nil
}

// FindStageByID retrieves a stage without its roster.
func (r *PgxStageRepository) FindStageByID(ctx context.Context, stageID string) (*domain.Stage, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+stageColumns+` FROM stages WHERE stage_id = $1;`, stageID)
	m, err := scanStage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stage by ID "+stageID, err)
	}
	stage := mapping.ToDomainStage(*m)
	return &stage, nil
}

// FindStageByIDWithParticipants retrieves the stage and its full roster in one
// consistent read.
func (r *PgxStageRepository) FindStageByIDWithParticipants(ctx context.Context, stageID string) (*domain.Stage, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin read transaction", err)
	}
	defer r.Rollback(ctx, tx)

	stage, err := r.findStageWithParticipantsTx(ctx, tx, stageID, false)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return stage, nil
}

// findStageWithParticipantsTx loads the aggregate inside tx, optionally holding
// a FOR UPDATE lock on the stage row. The lock is what serializes concurrent
// joins and activation on the same stage.
func (r *PgxStageRepository) findStageWithParticipantsTx(ctx context.Context, tx pgx.Tx, stageID string, forUpdate bool) (*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE stage_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanStage(tx.QueryRow(ctx, query+`;`, stageID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stage by ID "+stageID, err)
	}

	rows, err := tx.Query(ctx, `SELECT `+participantColumns+` FROM stage_participants WHERE stage_id = $1 ORDER BY turn_number;`, stageID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query participants for stage "+stageID, err)
	}
	participants, err := scanParticipants(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan participants for stage "+stageID, err)
	}

	stage := mapping.ToDomainStage(*m)
	stage.Participants = mapping.ToDomainParticipantSlice(participants)
	return &stage, nil
}

// AddParticipant runs the join sequence as one atomic unit: lock the stage row,
// replay the aggregate's invariant checks against the current roster, insert.
// The unique constraints on (stage_id, turn_number) and (stage_id, username)
// backstop the checks should the lock ever be bypassed.
func (r *PgxStageRepository) AddParticipant(ctx context.Context, stageID, username string, turnNumber int, now time.Time) (*domain.StageParticipant, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	stage, err := r.findStageWithParticipantsTx(ctx, tx, stageID, true)
	if err != nil {
		return nil, err
	}

	participant, err := stage.Join(username, turnNumber, now)
	if err != nil {
		return nil, err
	}
	participant.ParticipantID = uuid.NewString()

	m := mapping.ToModelParticipant(*participant)
	insertQuery := `
		INSERT INTO stage_participants (participant_id, stage_id, username, turn_number, has_received_payout, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, insertQuery, m.ParticipantID, m.StageID, m.Username, m.TurnNumber, m.HasReceivedPayout, m.JoinedAt); err != nil {
		switch {
		case isUniqueViolation(err, "stage_participants_stage_id_turn_number_key"):
			return nil, domain.ErrTurnAlreadyTaken
		case isUniqueViolation(err, "stage_participants_stage_id_username_key"):
			return nil, domain.ErrDuplicateParticipant
		}
		return nil, apperrors.NewAppError(500, "failed to insert participant for stage "+stageID, err)
	}

	if _, err := tx.Exec(ctx, `UPDATE stages SET last_updated_at = $2 WHERE stage_id = $1;`, stageID, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to touch stage "+stageID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return participant, nil
}

// ActivateStage locks the stage row, runs the aggregate's activation and
// persists the transition in the same transaction.
func (r *PgxStageRepository) ActivateStage(ctx context.Context, stageID string, now time.Time) (*domain.Stage, *domain.StageStartedEvent, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	stage, err := r.findStageWithParticipantsTx(ctx, tx, stageID, true)
	if err != nil {
		return nil, nil, err
	}

	event, err := stage.Activate(now)
	if err != nil {
		return nil, nil, err
	}

	updateQuery := `
		UPDATE stages
		SET status = $2, start_date = $3, expected_end_date = $4, last_updated_at = $5
		WHERE stage_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, stageID, models.StageStatus(stage.Status), stage.StartDate, stage.ExpectedEndDate, now); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to activate stage "+stageID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return stage, event, nil
}

// UpdateStageStatus persists a completed or cancelled transition.
func (r *PgxStageRepository) UpdateStageStatus(ctx context.Context, stageID string, status domain.StageStatus, updatedAt time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx,
		`UPDATE stages SET status = $2, last_updated_at = $3 WHERE stage_id = $1;`,
		stageID, models.StageStatus(status), updatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for stage "+stageID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("stage " + stageID + " not found for update")
	}
	return nil
}

// FindStagesByStatus lists stages in a lifecycle state.
func (r *PgxStageRepository) FindStagesByStatus(ctx context.Context, status domain.StageStatus) ([]domain.Stage, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE status = $1 ORDER BY created_at;`,
		models.StageStatus(status),
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stages by status", err)
	}
	return scanStages(rows)
}

// FindStagesByStatusAndPaymentDay is the scheduler's daily selection query.
func (r *PgxStageRepository) FindStagesByStatusAndPaymentDay(ctx context.Context, status domain.StageStatus, day int) ([]domain.Stage, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE status = $1 AND payment_day = $2 ORDER BY created_at;`,
		models.StageStatus(status), day,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stages by status and payment day", err)
	}
	return scanStages(rows)
}

// FindParticipantsByStageID lists the roster ordered by turn number.
func (r *PgxStageRepository) FindParticipantsByStageID(ctx context.Context, stageID string) ([]domain.StageParticipant, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+participantColumns+` FROM stage_participants WHERE stage_id = $1 ORDER BY turn_number;`,
		stageID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query participants for stage "+stageID, err)
	}
	ms, err := scanParticipants(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan participants for stage "+stageID, err)
	}
	return mapping.ToDomainParticipantSlice(ms), nil
}

// FindParticipantByStageAndTurn retrieves the holder of a turn.
func (r *PgxStageRepository) FindParticipantByStageAndTurn(ctx context.Context, stageID string, turnNumber int) (*domain.StageParticipant, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+participantColumns+` FROM stage_participants WHERE stage_id = $1 AND turn_number = $2;`,
		stageID, turnNumber,
	)
	var m models.StageParticipant
	err := row.Scan(&m.ParticipantID, &m.StageID, &m.Username, &m.TurnNumber, &m.HasReceivedPayout, &m.JoinedAt, &m.PayoutReceivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find participant by turn for stage "+stageID, err)
	}
	p := mapping.ToDomainParticipant(m)
	return &p, nil
}

// FindStagesByUsername lists every stage the user participates in.
func (r *PgxStageRepository) FindStagesByUsername(ctx context.Context, username string) ([]domain.Stage, error) {
	query := `
		SELECT ` + stageColumns + `
		FROM stages s
		WHERE EXISTS (
			SELECT 1 FROM stage_participants p
			WHERE p.stage_id = s.stage_id AND p.username = $1
		)
		ORDER BY s.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stages for user "+username, err)
	}
	return scanStages(rows)
}

func scanStage(row pgx.Row) (*models.Stage, error) {
	var m models.Stage
	err := row.Scan(
		&m.StageID,
		&m.Name,
		&m.TotalParticipants,
		&m.MonthlyPayment,
		&m.InterestRate,
		&m.PaymentDay,
		&m.Status,
		&m.StartDate,
		&m.ExpectedEndDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanStages(rows pgx.Rows) ([]domain.Stage, error) {
	defer rows.Close()
	stages := []domain.Stage{}
	for rows.Next() {
		m, err := scanStage(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stage row", err)
		}
		stages = append(stages, mapping.ToDomainStage(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stage rows", err)
	}
	return stages, nil
}

func scanParticipants(rows pgx.Rows) ([]models.StageParticipant, error) {
	defer rows.Close()
	participants := []models.StageParticipant{}
	for rows.Next() {
		var m models.StageParticipant
		if err := rows.Scan(&m.ParticipantID, &m.StageID, &m.Username, &m.TurnNumber, &m.HasReceivedPayout, &m.JoinedAt, &m.PayoutReceivedAt); err != nil {
			return nil, err
		}
		participants = append(participants, m)
	}
	return participants, rows.Err()
}
