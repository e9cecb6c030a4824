package services

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"studyspot-backend/internal/models"
	"studyspot-backend/internal/repository"
)

// LeaderboardService builds per-request rankings over the full set of user
// aggregates. Entries are ephemeral; ranks are never persisted.
type LeaderboardService struct {
	stats      *repository.StatsRepo
	identities *IdentityCache
}

func NewLeaderboardService(stats *repository.StatsRepo, identities *IdentityCache) *LeaderboardService {
	return &LeaderboardService{stats: stats, identities: identities}
}

// Build ranks all users by the chosen metric. With metric "location" and a
// spot filter, only users with history at that spot appear and their
// displayed figures are that spot's, not their global totals. callerID
// locates the caller's own rank; absent callers get no rank.
func (s *LeaderboardService) Build(ctx context.Context, metric, spotID string, callerID uuid.UUID) (*models.LeaderboardResponse, error) {
	if metric != models.MetricHours && metric != models.MetricStreak && metric != models.MetricLocation {
		return nil, &ValidationError{Fields: map[string]string{"metric": "Metric must be hours, streak, or location"}}
	}

	all, err := s.stats.List(ctx)
	if err != nil {
		return nil, err
	}

	lookup := func(id uuid.UUID) models.Identity { return s.identities.Get(ctx, id) }
	entries := RankEntries(all, lookup, metric, spotID)

	resp := &models.LeaderboardResponse{Metric: metric, SpotID: spotID, Leaderboard: entries}
	for i := range entries {
		if entries[i].UserID == callerID {
			rank := entries[i].Rank
			resp.MyRank = &rank
			break
		}
	}
	return resp, nil
}

// RankEntries is the pure ranking core: filter, decorate, sort descending,
// assign dense 1-based ranks. Equal values keep distinct consecutive ranks;
// the pre-sort order (user ID) keeps the result deterministic.
func RankEntries(all []models.UserStats, identity func(uuid.UUID) models.Identity, metric, spotID string) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(all))

	for _, stats := range all {
		entry := models.LeaderboardEntry{
			UserID:        stats.UserID,
			Sessions:      stats.TotalSessions,
			Hours:         stats.TotalHours,
			CurrentStreak: stats.CurrentStreak,
			FavoriteSpot:  stats.FavoriteSpot,
		}

		if metric == models.MetricLocation && spotID != "" {
			spotStat, ok := stats.SpotStats[spotID]
			if !ok {
				continue
			}
			entry.Sessions = spotStat.SessionCount
			entry.Hours = math.Round(float64(spotStat.TotalMinutes)/60*100) / 100
		}

		ident := identity(stats.UserID)
		entry.Username = ident.Username
		entry.Avatar = ident.Avatar
		entries = append(entries, entry)
	}

	// Stable pre-order so ties rank deterministically.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if metric == models.MetricStreak {
			return entries[i].CurrentStreak > entries[j].CurrentStreak
		}
		return entries[i].Hours > entries[j].Hours
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
