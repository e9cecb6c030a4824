package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"studyspot-backend/internal/models"
)

var testLoc = time.UTC

func TestApplySession_NewUser(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 14, 30, 0, 0, testLoc)

	stats, first := ApplySession(nil, userID, "doe-library", 90, now, testLoc)

	if !first {
		t.Error("first ever session must count as first of the day")
	}
	if stats.TotalSessions != 1 || stats.TotalMinutes != 90 {
		t.Errorf("totals = %d sessions / %d min, want 1 / 90", stats.TotalSessions, stats.TotalMinutes)
	}
	if stats.TotalHours != 1.5 {
		t.Errorf("TotalHours = %v, want 1.5", stats.TotalHours)
	}
	if stats.TotalXP != 60 {
		t.Errorf("TotalXP = %d, want 60 (one completed hour)", stats.TotalXP)
	}
	if stats.Coins != 12 {
		t.Errorf("Coins = %d, want 12", stats.Coins)
	}
	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Errorf("streaks = %d/%d, want 1/1", stats.CurrentStreak, stats.LongestStreak)
	}
	if stats.FavoriteSpot != "doe-library" || stats.FavoriteSpotCount != 1 {
		t.Errorf("favorite = %q (%d), want doe-library (1)", stats.FavoriteSpot, stats.FavoriteSpotCount)
	}
	if stats.LastStudyDate != "2026-08-28" {
		t.Errorf("LastStudyDate = %q, want 2026-08-28", stats.LastStudyDate)
	}
	if got := stats.MonthlyMinutes["2026-08"]; got != 90 {
		t.Errorf("MonthlyMinutes[2026-08] = %d, want 90", got)
	}
}

func TestApplySession_StreakContinues(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		TotalSessions: 4,
		TotalMinutes:  240,
		TotalHours:    4,
		CurrentStreak: 3,
		LongestStreak: 5,
		LastStudyDate: "2026-08-27", // yesterday
		SpotStats:     map[string]models.SpotStat{"doe-library": {SessionCount: 4, TotalMinutes: 240}},
	}

	stats, first := ApplySession(prev, userID, "doe-library", 30, now, testLoc)
	if !first {
		t.Error("a new calendar day is the first session of that day")
	}
	if stats.CurrentStreak != 4 {
		t.Errorf("CurrentStreak = %d, want 4", stats.CurrentStreak)
	}
	if stats.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5 (unchanged)", stats.LongestStreak)
	}
}

func TestApplySession_StreakResets(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		CurrentStreak: 6,
		LongestStreak: 6,
		LastStudyDate: "2026-08-25", // 3 days ago
		SpotStats:     map[string]models.SpotStat{},
	}

	stats, _ := ApplySession(prev, userID, "doe-library", 45, now, testLoc)
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want reset to 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 6 {
		t.Errorf("LongestStreak = %d, want 6 (unchanged when higher)", stats.LongestStreak)
	}
}

func TestApplySession_SameDayKeepsStreak(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 20, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		CurrentStreak: 2,
		LongestStreak: 2,
		LastStudyDate: "2026-08-28",
		SpotStats:     map[string]models.SpotStat{},
	}

	stats, first := ApplySession(prev, userID, "strada-cafe", 25, now, testLoc)
	if first {
		t.Error("second session on the same day must not be first of the day")
	}
	if stats.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (unchanged)", stats.CurrentStreak)
	}
}

func TestApplySession_NegativeGapResets(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		CurrentStreak: 4,
		LongestStreak: 4,
		LastStudyDate: "2026-08-30", // clock moved backwards
		SpotStats:     map[string]models.SpotStat{},
	}

	stats, _ := ApplySession(prev, userID, "doe-library", 10, now, testLoc)
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 on a negative day gap", stats.CurrentStreak)
	}
}

func TestApplySession_FavoriteSpotTieBreak(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		TotalSessions: 3,
		TotalMinutes:  180,
		LastStudyDate: "2026-08-28",
		FavoriteSpot:  "moffitt-library",
		SpotStats: map[string]models.SpotStat{
			"moffitt-library": {SessionCount: 2, TotalMinutes: 120},
			"doe-library":     {SessionCount: 1, TotalMinutes: 60},
		},
	}

	// doe-library draws level at 2 sessions apiece; it wins the tie by ID.
	stats, _ := ApplySession(prev, userID, "doe-library", 60, now, testLoc)
	if stats.FavoriteSpot != "doe-library" {
		t.Errorf("FavoriteSpot = %q, want doe-library on lexicographic tie-break", stats.FavoriteSpot)
	}
	if stats.FavoriteSpotCount != 2 {
		t.Errorf("FavoriteSpotCount = %d, want 2", stats.FavoriteSpotCount)
	}
}

func TestApplySession_Invariants(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, testLoc)

	var stats *models.UserStats
	spots := []string{"doe-library", "moffitt-library", "doe-library", "strada-cafe", "doe-library"}
	for i, spot := range spots {
		stats, _ = ApplySession(stats, userID, spot, 30+i*15, now.AddDate(0, 0, i), testLoc)

		sumMinutes, sumSessions := 0, 0
		for _, s := range stats.SpotStats {
			sumMinutes += s.TotalMinutes
			sumSessions += s.SessionCount
		}
		if stats.TotalMinutes != sumMinutes {
			t.Fatalf("step %d: TotalMinutes %d != spot sum %d", i, stats.TotalMinutes, sumMinutes)
		}
		if stats.TotalSessions != sumSessions {
			t.Fatalf("step %d: TotalSessions %d != spot sum %d", i, stats.TotalSessions, sumSessions)
		}
		if stats.LongestStreak < stats.CurrentStreak {
			t.Fatalf("step %d: LongestStreak %d < CurrentStreak %d", i, stats.LongestStreak, stats.CurrentStreak)
		}
		maxCount := 0
		for _, s := range stats.SpotStats {
			if s.SessionCount > maxCount {
				maxCount = s.SessionCount
			}
		}
		if stats.FavoriteSpotCount != maxCount {
			t.Fatalf("step %d: FavoriteSpotCount %d != max %d", i, stats.FavoriteSpotCount, maxCount)
		}
	}

	if stats.CurrentStreak != 5 {
		t.Errorf("CurrentStreak = %d, want 5 after five consecutive days", stats.CurrentStreak)
	}
}

func TestApplySession_ZeroDuration(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	stats, _ := ApplySession(nil, userID, "doe-library", 0, now, testLoc)
	if stats.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1 (zero-duration sessions still count)", stats.TotalSessions)
	}
	if stats.TotalMinutes != 0 || stats.TotalXP != 0 || stats.Coins != 0 {
		t.Errorf("minutes/xp/coins = %d/%d/%d, want 0/0/0", stats.TotalMinutes, stats.TotalXP, stats.Coins)
	}
}

func TestApplySession_DoesNotMutateInput(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	prev := &models.UserStats{
		UserID:        userID,
		TotalMinutes:  60,
		LastStudyDate: "2026-08-27",
		SpotStats:     map[string]models.SpotStat{"doe-library": {SessionCount: 1, TotalMinutes: 60}},
	}

	ApplySession(prev, userID, "doe-library", 30, now, testLoc)
	if prev.TotalMinutes != 60 || prev.SpotStats["doe-library"].SessionCount != 1 {
		t.Error("ApplySession mutated its input")
	}
}

func TestSessionDuration(t *testing.T) {
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, testLoc)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"floor below a minute", start.Add(59 * time.Second), 0},
		{"exact minutes", start.Add(25 * time.Minute), 25},
		{"floors partial minute", start.Add(90*time.Minute + 59*time.Second), 90},
		{"end before start clamps to zero", start.Add(-5 * time.Minute), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SessionDuration(start, tc.end); got != tc.want {
				t.Errorf("SessionDuration = %d, want %d", got, tc.want)
			}
		})
	}
}
