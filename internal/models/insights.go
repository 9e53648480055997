package models

// ProductivityInsights is derived entirely from window aggregates. Fields are
// omitted when the underlying data is empty (no active days, no goals).
type ProductivityInsights struct {
	MostProductiveDay   string   `json:"most_productive_day,omitempty"`
	AvgDailyHours       float64  `json:"avg_daily_hours,omitempty"`
	MostActiveWeek      string   `json:"most_active_week,omitempty"`
	MostActiveWeekHours float64  `json:"most_active_week_hours,omitempty"`
	TopCategory         string   `json:"top_category,omitempty"`
	TopCategoryHours    float64  `json:"top_category_hours,omitempty"`
	GoalCompletionRate  *float64 `json:"goal_completion_rate,omitempty"`
}

// Recommendation priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation types.
const (
	RecommendNewCategory    = "new_category"
	RecommendExpandCategory = "expand_category"
	RecommendPracticeSkill  = "practice_skill"
	RecommendSetGoal        = "set_goal"
)

// Recommendation is one actionable suggestion on the dashboard.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	SkillID     uint   `json:"skill_id,omitempty"`
	CategoryID  uint   `json:"category_id,omitempty"`
}

// PriorityRank maps a priority label to its sort weight.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
