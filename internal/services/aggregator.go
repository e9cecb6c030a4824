package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"studyspot-backend/internal/gamification"
	"studyspot-backend/internal/models"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// ApplySession folds one completed session into a user's running aggregate
// and reports whether it was the first session of that calendar day. A nil
// prev creates a fresh record. The input is not mutated.
//
// Duration may be zero; zero-duration sessions still count toward streaks
// and session totals.
func ApplySession(prev *models.UserStats, userID uuid.UUID, spotID string, durationMinutes int, now time.Time, loc *time.Location) (*models.UserStats, bool) {
	today := now.In(loc).Format(dateLayout)
	month := now.In(loc).Format(monthLayout)

	if prev == nil {
		xp := gamification.SessionXP(durationMinutes)
		return &models.UserStats{
			UserID:            userID,
			TotalSessions:     1,
			TotalMinutes:      durationMinutes,
			TotalHours:        roundHours(durationMinutes),
			TotalXP:           xp,
			Coins:             gamification.CoinsForXP(xp),
			CurrentStreak:     1,
			LongestStreak:     1,
			LastStudyDate:     today,
			FavoriteSpot:      spotID,
			FavoriteSpotCount: 1,
			SpotStats: map[string]models.SpotStat{
				spotID: {SessionCount: 1, TotalMinutes: durationMinutes, LastVisit: now},
			},
			MonthlyMinutes: map[string]int{month: durationMinutes},
			LastUpdated:    now,
		}, true
	}

	next := *prev

	// Streak: calendar-day gap, not wall-clock. A negative gap (clock moved
	// backwards) resets like any other gap.
	daysDiff := daysBetween(prev.LastStudyDate, today)
	switch {
	case daysDiff == 0:
		// same day, streak unchanged
	case daysDiff == 1:
		next.CurrentStreak = prev.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}

	next.TotalSessions = prev.TotalSessions + 1
	next.TotalMinutes = prev.TotalMinutes + durationMinutes
	next.TotalHours = roundHours(next.TotalMinutes)

	next.SpotStats = make(map[string]models.SpotStat, len(prev.SpotStats)+1)
	for k, v := range prev.SpotStats {
		next.SpotStats[k] = v
	}
	entry := next.SpotStats[spotID]
	entry.SessionCount++
	entry.TotalMinutes += durationMinutes
	entry.LastVisit = now
	next.SpotStats[spotID] = entry

	next.FavoriteSpot, next.FavoriteSpotCount = favoriteSpot(next.SpotStats)

	next.TotalXP = prev.TotalXP + gamification.SessionXP(durationMinutes)
	next.Coins = gamification.CoinsForXP(next.TotalXP)

	next.MonthlyMinutes = make(map[string]int, len(prev.MonthlyMinutes)+1)
	for k, v := range prev.MonthlyMinutes {
		next.MonthlyMinutes[k] = v
	}
	next.MonthlyMinutes[month] += durationMinutes

	next.LastStudyDate = today
	next.LastUpdated = now

	return &next, daysDiff != 0
}

// SessionDuration computes whole minutes elapsed, rounding down. Zero is a
// legal duration.
func SessionDuration(startedAt, endedAt time.Time) int {
	d := endedAt.Sub(startedAt)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func roundHours(minutes int) float64 {
	return math.Round(float64(minutes)/60*100) / 100
}

// favoriteSpot picks the entry with the highest session count. Ties go to
// the lexicographically lowest spot ID so the result never depends on map
// iteration order.
func favoriteSpot(spotStats map[string]models.SpotStat) (string, int) {
	ids := make([]string, 0, len(spotStats))
	for id := range spotStats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best, bestCount := "", 0
	for _, id := range ids {
		if spotStats[id].SessionCount > bestCount {
			best, bestCount = id, spotStats[id].SessionCount
		}
	}
	return best, bestCount
}

// daysBetween returns the whole-day gap between two "YYYY-MM-DD" dates. An
// unparseable previous date counts as a gap so the streak restarts cleanly.
func daysBetween(from, to string) int {
	a, errA := time.Parse(dateLayout, from)
	b, errB := time.Parse(dateLayout, to)
	if errA != nil || errB != nil {
		return 2
	}
	return int(b.Sub(a) / (24 * time.Hour))
}
