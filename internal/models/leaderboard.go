package models

import "github.com/google/uuid"

// Leaderboard metrics.
const (
	MetricHours    = "hours"
	MetricStreak   = "streak"
	MetricLocation = "location"
)

// LeaderboardEntry is derived per request and never persisted. When the
// board is filtered to one spot, Hours and Sessions carry that spot's
// figures instead of the global totals.
type LeaderboardEntry struct {
	Rank          int       `json:"rank"`
	UserID        uuid.UUID `json:"user_id"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar"`
	Sessions      int       `json:"sessions"`
	Hours         float64   `json:"hours"`
	CurrentStreak int       `json:"current_streak"`
	FavoriteSpot  string    `json:"favorite_spot"`
}

type LeaderboardResponse struct {
	Metric      string             `json:"metric"`
	SpotID      string             `json:"spot_id,omitempty"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
	MyRank      *int               `json:"my_rank,omitempty"`
}
