package gamification

import "studyspot-backend/internal/models"

// Badge categories.
const (
	BadgeCategorySessions = "sessions"
	BadgeCategoryHours    = "hours"
	BadgeCategoryStreak   = "streak"
	BadgeCategoryLocation = "location"
)

// Badge is a one-time achievement keyed by a statistic threshold. Earned
// status is always recomputed from UserStats, never stored.
type Badge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Category    string  `json:"category"`
	Threshold   float64 `json:"threshold"`
}

var Badges = []Badge{
	{ID: "first-session", Name: "First Steps", Description: "Complete your first study session", Icon: "👣", Category: BadgeCategorySessions, Threshold: 1},
	{ID: "ten-sessions", Name: "Regular", Description: "Complete 10 study sessions", Icon: "📖", Category: BadgeCategorySessions, Threshold: 10},
	{ID: "fifty-sessions", Name: "Devoted", Description: "Complete 50 study sessions", Icon: "🏛️", Category: BadgeCategorySessions, Threshold: 50},
	{ID: "ten-hours", Name: "Getting Warm", Description: "Study for 10 total hours", Icon: "🔥", Category: BadgeCategoryHours, Threshold: 10},
	{ID: "fifty-hours", Name: "Deep Work", Description: "Study for 50 total hours", Icon: "🧠", Category: BadgeCategoryHours, Threshold: 50},
	{ID: "hundred-hours", Name: "Centurion", Description: "Study for 100 total hours", Icon: "💯", Category: BadgeCategoryHours, Threshold: 100},
	{ID: "week-streak", Name: "On a Roll", Description: "Study 7 days in a row", Icon: "📅", Category: BadgeCategoryStreak, Threshold: 7},
	{ID: "month-streak", Name: "Unstoppable", Description: "Study 30 days in a row", Icon: "🚀", Category: BadgeCategoryStreak, Threshold: 30},
	{ID: "explorer", Name: "Explorer", Description: "Study at 5 different spots", Icon: "🗺️", Category: BadgeCategoryLocation, Threshold: 5},
	{ID: "local-legend", Name: "Local Legend", Description: "Study 25 hours at a single spot", Icon: "👑", Category: BadgeCategoryLocation, Threshold: 25},
}

// Earned reports whether the stats satisfy the badge's threshold. Streak
// badges accept either the current or the longest streak.
func (b Badge) Earned(stats *models.UserStats) bool {
	switch b.Category {
	case BadgeCategorySessions:
		return float64(stats.TotalSessions) >= b.Threshold
	case BadgeCategoryHours:
		return stats.TotalHours >= b.Threshold
	case BadgeCategoryStreak:
		return float64(stats.CurrentStreak) >= b.Threshold || float64(stats.LongestStreak) >= b.Threshold
	case BadgeCategoryLocation:
		if b.ID == "explorer" {
			return float64(len(stats.SpotStats)) >= b.Threshold
		}
		for _, s := range stats.SpotStats {
			if float64(s.TotalMinutes)/60 >= b.Threshold {
				return true
			}
		}
		return false
	}
	return false
}

// EarnedBadges evaluates the full catalog against the stats.
func EarnedBadges(stats *models.UserStats) []Badge {
	earned := make([]Badge, 0, len(Badges))
	for _, b := range Badges {
		if b.Earned(stats) {
			earned = append(earned, b)
		}
	}
	return earned
}
