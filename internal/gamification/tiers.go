package gamification

// Tier is a named XP band representing overall progression rank. MaxXP of
// the last tier is unbounded.
type Tier struct {
	Level    int     `json:"level"`
	Name     string  `json:"name"`
	MinXP    int     `json:"min_xp"`
	MaxXP    int     `json:"max_xp"`
	MinHours float64 `json:"min_hours"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
	Height   int     `json:"height"`
}

// Tiers is ordered lowest to highest. Lookup scans from the top so the
// first qualifying band wins.
var Tiers = []Tier{
	{Level: 1, Name: "Seedling", MinXP: 0, MaxXP: 300, MinHours: 0, Icon: "🌱", Color: "#8BC34A", Height: 28},
	{Level: 2, Name: "Sprout", MinXP: 300, MaxXP: 900, MinHours: 5, Icon: "🌿", Color: "#4CAF50", Height: 36},
	{Level: 3, Name: "Sapling", MinXP: 900, MaxXP: 2100, MinHours: 15, Icon: "🌳", Color: "#009688", Height: 44},
	{Level: 4, Name: "Scholar", MinXP: 2100, MaxXP: 4500, MinHours: 35, Icon: "🎓", Color: "#3F51B5", Height: 52},
	{Level: 5, Name: "Sage", MinXP: 4500, MaxXP: 9000, MinHours: 75, Icon: "🦉", Color: "#9C27B0", Height: 60},
	{Level: 6, Name: "Luminary", MinXP: 9000, MaxXP: -1, MinHours: 150, Icon: "✨", Color: "#FFC107", Height: 68},
}

// TierDisplay pairs the resolved tier with progress toward the next one.
// At the top tier progress is pinned to 100 and NextTier is nil.
type TierDisplay struct {
	Tier     Tier    `json:"tier"`
	NextTier *Tier   `json:"next_tier,omitempty"`
	Progress float64 `json:"progress"`
}

// TierForXP returns the highest tier whose MinXP floor the value meets.
func TierForXP(xp int) Tier {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if xp >= Tiers[i].MinXP {
			return Tiers[i]
		}
	}
	return Tiers[0]
}

// TierForHours is the hours-based legacy variant of TierForXP.
func TierForHours(hours float64) Tier {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if hours >= Tiers[i].MinHours {
			return Tiers[i]
		}
	}
	return Tiers[0]
}

// TierDisplayForXP resolves the current tier and the percent progress
// toward the next band floor, clamped to [0, 100].
func TierDisplayForXP(xp int) TierDisplay {
	tier := TierForXP(xp)
	if tier.Level >= len(Tiers) {
		return TierDisplay{Tier: tier, Progress: 100}
	}

	next := Tiers[tier.Level] // levels are 1-based, so this is the next band
	span := next.MinXP - tier.MinXP
	progress := float64(xp-tier.MinXP) / float64(span) * 100
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return TierDisplay{Tier: tier, NextTier: &next, Progress: progress}
}
