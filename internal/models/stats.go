package models

import (
	"time"

	"github.com/google/uuid"
)

// SpotStat tracks a user's history at one spot.
type SpotStat struct {
	SessionCount int       `json:"session_count"`
	TotalMinutes int       `json:"total_minutes"`
	LastVisit    time.Time `json:"last_visit"`
}

// UserStats is the single mutable aggregate per user, folded forward on
// every session close. The spot_stats and monthly_minutes maps live in
// JSONB columns.
//
// Invariants maintained by the aggregator:
//   - TotalMinutes == sum over SpotStats of TotalMinutes
//   - TotalSessions == sum over SpotStats of SessionCount
//   - FavoriteSpot holds the max SessionCount, ties going to the
//     lexicographically lowest spot ID
//   - LongestStreak >= CurrentStreak
type UserStats struct {
	UserID            uuid.UUID           `json:"user_id"`
	TotalSessions     int                 `json:"total_sessions"`
	TotalMinutes      int                 `json:"total_minutes"`
	TotalHours        float64             `json:"total_hours"`
	TotalXP           int                 `json:"total_xp"`
	Coins             int                 `json:"coins"`
	CurrentStreak     int                 `json:"current_streak"`
	LongestStreak     int                 `json:"longest_streak"`
	LastStudyDate     string              `json:"last_study_date"`
	FavoriteSpot      string              `json:"favorite_spot"`
	FavoriteSpotCount int                 `json:"favorite_spot_count"`
	SpotStats         map[string]SpotStat `json:"spot_stats"`
	MonthlyMinutes    map[string]int      `json:"monthly_minutes"`
	LastUpdated       time.Time           `json:"last_updated"`
}
