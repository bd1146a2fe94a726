package dto

import "time"

// ==================== ACTIVITY RECORDING ====================

type RecordActivityRequest struct {
	ActivityType string `json:"activity_type" validate:"required" example:"codingChallenges"`
	MinutesSpent int    `json:"minutes_spent" validate:"gte=0" example:"45"`
	XPEarned     int    `json:"xp_earned" validate:"gte=0" example:"50"`
	Date         string `json:"date,omitempty" example:"2025-06-01"` // defaults to today (UTC)
}

func (r RecordActivityRequest) Validate() error {
	return GetValidator().Struct(r)
}

type AnalyticsResponse struct {
	UserID         string     `json:"user_id"`
	TotalXP        int        `json:"total_xp"`
	CurrentLevel   int        `json:"current_level"`
	XPToNextLevel  int        `json:"xp_to_next_level"`
	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`

	TotalTimeSpent           int `json:"total_time_spent"`
	TotalSessions            int `json:"total_sessions"`
	TotalActivitiesCompleted int `json:"total_activities_completed"`

	NewAchievements []AchievementResponse `json:"new_achievements,omitempty"`
}

type AchievementResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Icon       string     `json:"icon"`
	XPReward   int        `json:"xp_reward"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

type DailyActivityResponse struct {
	Date                string         `json:"date"`
	XPEarned            int            `json:"xp_earned"`
	TimeSpent           int            `json:"time_spent"`
	SessionsCount       int            `json:"sessions_count"`
	ActivitiesCompleted int            `json:"activities_completed"`
	Buckets             map[string]int `json:"buckets"` // per-type activity counts
}

// ==================== SKILLS ====================

type PracticeSkillRequest struct {
	SkillName     string `json:"skill_name" validate:"required,min=1,max=60" example:"Go"`
	MinutesSpent  int    `json:"minutes_spent" validate:"gte=0" example:"60"`
	ProgressDelta int    `json:"progress_delta" validate:"gte=0,lte=100" example:"5"`
}

func (r PracticeSkillRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SkillProgressResponse struct {
	SkillName     string     `json:"skill_name"`
	Tier          string     `json:"tier"`
	Progress      int        `json:"progress"`
	PracticeHours float64    `json:"practice_hours"`
	LastPracticed *time.Time `json:"last_practiced,omitempty"`
}

// ==================== DASHBOARD ====================

type DashboardResponse struct {
	Analytics          AnalyticsResponse       `json:"analytics"`
	LastWeek           []DailyActivityResponse `json:"last_week"`
	Goals              GoalCountsResponse      `json:"goals"`
	Interviews         InterviewSummary        `json:"interviews"`
	TopSkills          []SkillProgressResponse `json:"top_skills"`
	RecentAchievements []AchievementResponse   `json:"recent_achievements"`
	Insights           LearningInsights        `json:"insights"`
}

type GoalCountsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Abandoned int `json:"abandoned"`
}

type InterviewSummary struct {
	TotalSessions int     `json:"total_sessions"`
	AvgRating     float64 `json:"avg_rating"`
}

// LearningInsights are derived on read, never stored.
type LearningInsights struct {
	StrongestSkill   string `json:"strongest_skill,omitempty"`
	FocusSuggestion  string `json:"focus_suggestion,omitempty"`
	MostActiveDay    string `json:"most_active_day,omitempty"`
	ActiveDaysInWeek int    `json:"active_days_in_week"`
}

// ==================== LEADERBOARD ====================

type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Rank          int    `json:"rank"`
	TotalXP       int    `json:"total_xp"`
	CurrentLevel  int    `json:"current_level"`
	CurrentStreak int    `json:"current_streak"`
}

type LeaderboardResponse struct {
	SortBy      string             `json:"sort_by"`
	TopUsers    []LeaderboardEntry `json:"top_users"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
}

// ==================== STATISTICS ====================

type GoalStatsResponse struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Active         int            `json:"active"`
	Abandoned      int            `json:"abandoned"`
	CompletionRate float64        `json:"completion_rate"`
	ByCategory     map[string]int `json:"by_category"`
	ByPriority     map[string]int `json:"by_priority"`
}

type InterviewStatsResponse struct {
	TotalSessions int            `json:"total_sessions"`
	AvgRating     float64        `json:"avg_rating"`
	TotalMinutes  int            `json:"total_minutes"`
	ByType        map[string]int `json:"by_type"`
}

type CodingStatsResponse struct {
	TotalSubmissions int            `json:"total_submissions"`
	Solved           int            `json:"solved"`
	AcceptanceRate   float64        `json:"acceptance_rate"`
	ByDifficulty     map[string]int `json:"solved_by_difficulty"`
	ByCategory       map[string]int `json:"solved_by_category"`
}
