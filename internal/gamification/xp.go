package gamification

import "math"

// Two reward schemes coexist deliberately. SessionXP is the persisted
// baseline folded into UserStats; ScoreSession is the live scorer shown at
// checkout and counted against the daily soft cap. They are never merged.

const (
	// Baseline policy: 60 XP per completed hour. Partial hours earn nothing.
	baselineXPPerHour = 60

	// CoinsPerXP divides cumulative XP into coins. Coins are always derived
	// from TotalXP, never accumulated independently.
	CoinsPerXP = 5

	// Live scorer: 10 XP per full 25-minute block, plus flat bonuses.
	blockMinutes = 25
	blockXP      = 10

	BonusStatusNote   = 5
	BonusCoStudy      = 5
	BonusFirstSession = 10

	// DailySoftCap is the daily XP ceiling. XP past it is worth half.
	DailySoftCap = 300
)

// SessionXP is the baseline award for a completed session.
func SessionXP(durationMinutes int) int {
	if durationMinutes < 0 {
		return 0
	}
	return durationMinutes / 60 * baselineXPPerHour
}

// CoinsForXP derives the coin balance from cumulative XP.
func CoinsForXP(totalXP int) int {
	if totalXP < 0 {
		return 0
	}
	return totalXP / CoinsPerXP
}

// ScoreInput describes one session for the live scorer.
type ScoreInput struct {
	DurationMinutes     int
	HasStatusNote       bool
	IsCoStudy           bool
	IsFirstSessionToday bool
	DailyXPSoFar        int
}

// ScoreBreakdown itemizes the live award for display.
type ScoreBreakdown struct {
	BaseXP            int  `json:"base_xp"`
	NoteBonus         int  `json:"note_bonus"`
	CoStudyBonus      int  `json:"co_study_bonus"`
	FirstSessionBonus int  `json:"first_session_bonus"`
	RawTotal          int  `json:"raw_total"`
	SoftCapApplied    bool `json:"soft_cap_applied"`
	FinalXP           int  `json:"final_xp"`
}

// ScoreSession computes the live award. Any XP that would push the day's
// running total past the soft cap is discounted to 50% of its value.
func ScoreSession(in ScoreInput) ScoreBreakdown {
	bd := ScoreBreakdown{}
	if in.DurationMinutes > 0 {
		bd.BaseXP = in.DurationMinutes / blockMinutes * blockXP
	}
	if in.HasStatusNote {
		bd.NoteBonus = BonusStatusNote
	}
	if in.IsCoStudy {
		bd.CoStudyBonus = BonusCoStudy
	}
	if in.IsFirstSessionToday {
		bd.FirstSessionBonus = BonusFirstSession
	}
	bd.RawTotal = bd.BaseXP + bd.NoteBonus + bd.CoStudyBonus + bd.FirstSessionBonus

	headroom := DailySoftCap - in.DailyXPSoFar
	if headroom < 0 {
		headroom = 0
	}
	uncapped := math.Min(float64(bd.RawTotal), float64(headroom))
	overflow := float64(in.DailyXPSoFar+bd.RawTotal) - DailySoftCap
	if overflow < 0 {
		overflow = 0
	}
	if overflow > float64(bd.RawTotal) {
		overflow = float64(bd.RawTotal)
	}
	bd.FinalXP = int(math.Floor(uncapped + overflow*0.5))
	bd.SoftCapApplied = overflow > 0
	return bd
}
