package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyspot-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create writes the immutable session record. Exactly one per check-in
// closure; sessions are never updated or deleted afterwards.
func (r *SessionRepo) Create(ctx context.Context, s *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (user_id, spot_id, status, status_note, started_at, ended_at, duration_minutes, was_manual_checkout)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		s.UserID, s.SpotID, s.Status, s.StatusNote, s.StartedAt, s.EndedAt, s.DurationMinutes, s.WasManualCheckout,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.StudySession, error) {
	query := `SELECT id, user_id, spot_id, status, status_note, started_at, ended_at, duration_minutes, was_manual_checkout, created_at
		FROM study_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var s models.StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.SpotID, &s.Status, &s.StatusNote, &s.StartedAt, &s.EndedAt, &s.DurationMinutes, &s.WasManualCheckout, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
