package gamification

import (
	"testing"
	"time"

	"studyspot-backend/internal/models"
)

func statsFixture() *models.UserStats {
	return &models.UserStats{
		TotalSessions: 12,
		TotalMinutes:  720,
		TotalHours:    12,
		CurrentStreak: 3,
		LongestStreak: 9,
		SpotStats: map[string]models.SpotStat{
			"doe-library":     {SessionCount: 8, TotalMinutes: 600, LastVisit: time.Now()},
			"moffitt-library": {SessionCount: 4, TotalMinutes: 120, LastVisit: time.Now()},
		},
	}
}

func TestBadgeEarned(t *testing.T) {
	stats := statsFixture()

	tests := []struct {
		badgeID string
		want    bool
	}{
		{"first-session", true},
		{"ten-sessions", true},
		{"fifty-sessions", false},
		{"ten-hours", true},
		{"fifty-hours", false},
		{"week-streak", true}, // longest streak of 9 qualifies
		{"month-streak", false},
		{"explorer", false}, // only 2 distinct spots
		{"local-legend", false},
	}

	byID := make(map[string]Badge, len(Badges))
	for _, b := range Badges {
		byID[b.ID] = b
	}

	for _, tc := range tests {
		t.Run(tc.badgeID, func(t *testing.T) {
			b, ok := byID[tc.badgeID]
			if !ok {
				t.Fatalf("badge %q missing from catalog", tc.badgeID)
			}
			if got := b.Earned(stats); got != tc.want {
				t.Errorf("Earned() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBadgeEarned_LocalLegend(t *testing.T) {
	stats := statsFixture()
	stats.SpotStats["doe-library"] = models.SpotStat{SessionCount: 30, TotalMinutes: 25 * 60}

	byID := make(map[string]Badge)
	for _, b := range Badges {
		byID[b.ID] = b
	}
	if !byID["local-legend"].Earned(stats) {
		t.Error("25 hours at one spot should earn Local Legend")
	}
}

func TestEarnedBadges_NeverPersistsState(t *testing.T) {
	stats := statsFixture()
	first := EarnedBadges(stats)
	second := EarnedBadges(stats)
	if len(first) != len(second) {
		t.Fatalf("re-evaluation changed result: %d vs %d", len(first), len(second))
	}

	stats.TotalSessions = 0
	stats.TotalHours = 0
	stats.CurrentStreak = 0
	stats.LongestStreak = 0
	stats.SpotStats = nil
	if got := EarnedBadges(stats); len(got) != 0 {
		t.Errorf("empty stats earned %d badges, want 0", len(got))
	}
}
