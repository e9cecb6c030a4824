package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studyspot-backend/internal/models"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

const statsColumns = `user_id, total_sessions, total_minutes, total_hours, total_xp, coins,
	current_streak, longest_streak, last_study_date, favorite_spot, favorite_spot_count,
	spot_stats, monthly_minutes, last_updated`

func (r *StatsRepo) Get(ctx context.Context, userID uuid.UUID) (*models.UserStats, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1`, userID)
	return scanStats(row)
}

// List scans every aggregate record. The leaderboard builder works off this
// snapshot; no isolation beyond "reasonably fresh" is required.
func (r *StatsRepo) List(ctx context.Context) ([]models.UserStats, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+statsColumns+` FROM user_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []models.UserStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, *s)
	}
	return all, rows.Err()
}

// Update applies a read-modify-write under a row lock keyed by user_id, so
// two concurrent session closes for the same user serialize instead of
// losing updates. The callback receives nil when no aggregate exists yet
// and returns the full record to persist.
func (r *StatsRepo) Update(ctx context.Context, userID uuid.UUID, apply func(prev *models.UserStats) *models.UserStats) (*models.UserStats, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1 FOR UPDATE`, userID)
	prev, err := scanStats(row)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	next := apply(prev)

	spotStats, err := json.Marshal(next.SpotStats)
	if err != nil {
		return nil, err
	}
	monthly, err := json.Marshal(next.MonthlyMinutes)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_stats (user_id, total_sessions, total_minutes, total_hours, total_xp, coins,
			current_streak, longest_streak, last_study_date, favorite_spot, favorite_spot_count,
			spot_stats, monthly_minutes, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			total_sessions = EXCLUDED.total_sessions,
			total_minutes = EXCLUDED.total_minutes,
			total_hours = EXCLUDED.total_hours,
			total_xp = EXCLUDED.total_xp,
			coins = EXCLUDED.coins,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_study_date = EXCLUDED.last_study_date,
			favorite_spot = EXCLUDED.favorite_spot,
			favorite_spot_count = EXCLUDED.favorite_spot_count,
			spot_stats = EXCLUDED.spot_stats,
			monthly_minutes = EXCLUDED.monthly_minutes,
			last_updated = EXCLUDED.last_updated
	`, next.UserID, next.TotalSessions, next.TotalMinutes, next.TotalHours, next.TotalXP, next.Coins,
		next.CurrentStreak, next.LongestStreak, next.LastStudyDate, next.FavoriteSpot, next.FavoriteSpotCount,
		spotStats, monthly, next.LastUpdated)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func scanStats(row pgx.Row) (*models.UserStats, error) {
	s := &models.UserStats{}
	var spotStats, monthly []byte

	err := row.Scan(
		&s.UserID, &s.TotalSessions, &s.TotalMinutes, &s.TotalHours, &s.TotalXP, &s.Coins,
		&s.CurrentStreak, &s.LongestStreak, &s.LastStudyDate, &s.FavoriteSpot, &s.FavoriteSpotCount,
		&spotStats, &monthly, &s.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(spotStats, &s.SpotStats); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(monthly, &s.MonthlyMinutes); err != nil {
		return nil, err
	}
	return s, nil
}
