package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"studyspot-backend/internal/models"
)

type SpotRepo struct {
	pool *pgxpool.Pool
}

func NewSpotRepo(pool *pgxpool.Pool) *SpotRepo {
	return &SpotRepo{pool: pool}
}

func (r *SpotRepo) GetByID(ctx context.Context, id string) (*models.Spot, error) {
	s := &models.Spot{}
	query := `SELECT id, name, hours, latitude, longitude, created_at FROM spots WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Hours, &s.Latitude, &s.Longitude, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SpotRepo) List(ctx context.Context) ([]models.Spot, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, hours, latitude, longitude, created_at FROM spots ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []models.Spot
	for rows.Next() {
		var s models.Spot
		if err := rows.Scan(&s.ID, &s.Name, &s.Hours, &s.Latitude, &s.Longitude, &s.CreatedAt); err != nil {
			return nil, err
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}
