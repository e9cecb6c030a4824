package gamification

// Quest cadences.
const (
	QuestDaily  = "daily"
	QuestWeekly = "weekly"
)

// Quest is a static challenge definition. Progress tracking against live
// activity belongs to the clients consuming the catalog.
type Quest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cadence  string `json:"cadence"`
	Target   int    `json:"target"`
	Unit     string `json:"unit"`
	RewardXP int    `json:"reward_xp"`
	Icon     string `json:"icon"`
}

var Quests = []Quest{
	{ID: "daily-checkin", Name: "Show Up", Cadence: QuestDaily, Target: 1, Unit: "sessions", RewardXP: 10, Icon: "📍"},
	{ID: "daily-hour", Name: "Power Hour", Cadence: QuestDaily, Target: 60, Unit: "minutes", RewardXP: 25, Icon: "⏰"},
	{ID: "daily-note", Name: "Say Hello", Cadence: QuestDaily, Target: 1, Unit: "notes", RewardXP: 5, Icon: "💬"},
	{ID: "weekly-sessions", Name: "Habit Forming", Cadence: QuestWeekly, Target: 5, Unit: "sessions", RewardXP: 75, Icon: "📆"},
	{ID: "weekly-spots", Name: "Change of Scenery", Cadence: QuestWeekly, Target: 3, Unit: "spots", RewardXP: 50, Icon: "🧭"},
	{ID: "weekly-minutes", Name: "Marathon Week", Cadence: QuestWeekly, Target: 600, Unit: "minutes", RewardXP: 100, Icon: "🏃"},
}
