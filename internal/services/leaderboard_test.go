package services

import (
	"testing"

	"github.com/google/uuid"

	"studyspot-backend/internal/models"
)

func fixedIdentity(id uuid.UUID) models.Identity {
	return models.Identity{UserID: id, Username: "user-" + id.String()[:8], Avatar: "📚"}
}

func boardFixture() []models.UserStats {
	mk := func(hours float64, streak int, spotStats map[string]models.SpotStat) models.UserStats {
		return models.UserStats{
			UserID:        uuid.New(),
			TotalSessions: 10,
			TotalHours:    hours,
			CurrentStreak: streak,
			SpotStats:     spotStats,
		}
	}
	return []models.UserStats{
		mk(12.5, 2, map[string]models.SpotStat{"doe-library": {SessionCount: 6, TotalMinutes: 450}}),
		mk(3.0, 9, map[string]models.SpotStat{"moffitt-library": {SessionCount: 4, TotalMinutes: 180}}),
		mk(30.25, 1, map[string]models.SpotStat{
			"doe-library": {SessionCount: 2, TotalMinutes: 90},
			"strada-cafe": {SessionCount: 8, TotalMinutes: 1725},
		}),
	}
}

func TestRankEntries_HoursMetric(t *testing.T) {
	entries := RankEntries(boardFixture(), fixedIdentity, models.MetricHours, "")

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	wantHours := []float64{30.25, 12.5, 3.0}
	for i, want := range wantHours {
		if entries[i].Hours != want {
			t.Errorf("entry %d Hours = %v, want %v", i, entries[i].Hours, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("entry %d Rank = %d, want %d", i, entries[i].Rank, i+1)
		}
	}
}

func TestRankEntries_StreakMetric(t *testing.T) {
	entries := RankEntries(boardFixture(), fixedIdentity, models.MetricStreak, "")

	wantStreaks := []int{9, 2, 1}
	for i, want := range wantStreaks {
		if entries[i].CurrentStreak != want {
			t.Errorf("entry %d CurrentStreak = %d, want %d", i, entries[i].CurrentStreak, want)
		}
	}
}

func TestRankEntries_LocationFilter(t *testing.T) {
	entries := RankEntries(boardFixture(), fixedIdentity, models.MetricLocation, "doe-library")

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (only users with doe-library history)", len(entries))
	}
	// Spot hours replace global totals: 450 min = 7.5h beats 90 min = 1.5h.
	if entries[0].Hours != 7.5 || entries[0].Sessions != 6 {
		t.Errorf("top entry = %vh/%d sessions, want 7.5h/6 (spot figures, not global)", entries[0].Hours, entries[0].Sessions)
	}
	if entries[1].Hours != 1.5 || entries[1].Sessions != 2 {
		t.Errorf("second entry = %vh/%d sessions, want 1.5h/2", entries[1].Hours, entries[1].Sessions)
	}
}

func TestRankEntries_ComparatorConsistency(t *testing.T) {
	entries := RankEntries(boardFixture(), fixedIdentity, models.MetricHours, "")

	for i := 1; i < len(entries); i++ {
		if entries[i].Hours > entries[i-1].Hours {
			t.Fatalf("entries not descending at %d: %v > %v", i, entries[i].Hours, entries[i-1].Hours)
		}
	}
}

func TestRankEntries_TiesGetDistinctRanks(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	all := []models.UserStats{
		{UserID: a, TotalHours: 5},
		{UserID: b, TotalHours: 5},
	}

	entries := RankEntries(all, fixedIdentity, models.MetricHours, "")
	if entries[0].Rank != 1 || entries[1].Rank != 2 {
		t.Errorf("tie ranks = %d, %d, want 1, 2", entries[0].Rank, entries[1].Rank)
	}

	// Deterministic regardless of input order.
	swapped := []models.UserStats{all[1], all[0]}
	again := RankEntries(swapped, fixedIdentity, models.MetricHours, "")
	if entries[0].UserID != again[0].UserID {
		t.Error("tie-break depends on input order")
	}
}
