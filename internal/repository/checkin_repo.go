package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyspot-backend/internal/models"
)

// ErrDuplicateActive reports that another live check-in won the insert race.
var ErrDuplicateActive = errors.New("user already has an active check-in")

type CheckInRepo struct {
	pool *pgxpool.Pool
}

func NewCheckInRepo(pool *pgxpool.Pool) *CheckInRepo {
	return &CheckInRepo{pool: pool}
}

// Create inserts a new active check-in. Expired-but-flagged rows for the
// user are deactivated in the same transaction so the partial unique index
// only rejects a genuinely live competitor.
func (r *CheckInRepo) Create(ctx context.Context, c *models.CheckIn) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE check_ins
		SET is_active = FALSE
		WHERE user_id = $1
		  AND is_active
		  AND expires_at <= NOW()
	`, c.UserID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO check_ins (user_id, spot_id, status, status_note, started_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		c.UserID, c.SpotID, c.Status, c.StatusNote, c.StartedAt, c.ExpiresAt,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateActive
		}
		return err
	}
	c.IsActive = true

	return tx.Commit(ctx)
}

func (r *CheckInRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	query := `SELECT id, user_id, spot_id, status, status_note, started_at, expires_at, is_active
		FROM check_ins WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.SpotID, &c.Status, &c.StatusNote, &c.StartedAt, &c.ExpiresAt, &c.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetActiveByUser returns the user's live check-in, filtering expiry at
// read time. pgx.ErrNoRows means none.
func (r *CheckInRepo) GetActiveByUser(ctx context.Context, userID uuid.UUID) (*models.CheckIn, error) {
	c := &models.CheckIn{}
	query := `SELECT id, user_id, spot_id, status, status_note, started_at, expires_at, is_active
		FROM check_ins
		WHERE user_id = $1 AND is_active AND expires_at > NOW()`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.SpotID, &c.Status, &c.StatusNote, &c.StartedAt, &c.ExpiresAt, &c.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListActiveBySpot returns the live presences at one spot, newest first.
func (r *CheckInRepo) ListActiveBySpot(ctx context.Context, spotID string) ([]models.CheckIn, error) {
	query := `SELECT id, user_id, spot_id, status, status_note, started_at, expires_at, is_active
		FROM check_ins
		WHERE spot_id = $1 AND is_active AND expires_at > NOW()
		ORDER BY started_at DESC`

	rows, err := r.pool.Query(ctx, query, spotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.SpotID, &c.Status, &c.StatusNote, &c.StartedAt, &c.ExpiresAt, &c.IsActive); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}

// Deactivate flips a check-in inactive and reports whether this call was
// the one that closed it. A false return makes checkout idempotent: the
// session was already recorded (or is being recorded) by someone else.
func (r *CheckInRepo) Deactivate(ctx context.Context, id uuid.UUID) (*models.CheckIn, bool, error) {
	c := &models.CheckIn{}
	query := `
		UPDATE check_ins
		SET is_active = FALSE
		WHERE id = $1 AND is_active
		RETURNING id, user_id, spot_id, status, status_note, started_at, expires_at, is_active
	`
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.SpotID, &c.Status, &c.StatusNote, &c.StartedAt, &c.ExpiresAt, &c.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// ListExpiredActive finds check-ins whose window has lapsed but whose flag
// is still set. Used by the reconciliation sweeper.
func (r *CheckInRepo) ListExpiredActive(ctx context.Context, limit int) ([]models.CheckIn, error) {
	query := `SELECT id, user_id, spot_id, status, status_note, started_at, expires_at, is_active
		FROM check_ins
		WHERE is_active AND expires_at <= NOW()
		ORDER BY expires_at
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []models.CheckIn
	for rows.Next() {
		var c models.CheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.SpotID, &c.Status, &c.StatusNote, &c.StartedAt, &c.ExpiresAt, &c.IsActive); err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}
	return checkIns, rows.Err()
}
