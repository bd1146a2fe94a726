// model/analytics.go
package model

import (
	"encoding/json"
	"time"
)

// UserAnalytics is the per-user gamification document. Levels and
// xp_to_next_level are always derived from total_xp, never written
// independently. Version backs optimistic concurrency: every save is
// conditional on the version read, so concurrent recorders cannot
// silently overwrite each other's increments.
type UserAnalytics struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null"`

	TotalXP       int `json:"total_xp" gorm:"default:0"`
	CurrentLevel  int `json:"current_level" gorm:"default:1"`
	XPToNextLevel int `json:"xp_to_next_level" gorm:"default:100"`

	CurrentStreak  int        `json:"current_streak" gorm:"default:0"`
	LongestStreak  int        `json:"longest_streak" gorm:"default:0"`
	LastActiveDate *time.Time `json:"last_active_date"`

	TotalTimeSpent           int `json:"total_time_spent" gorm:"default:0"` // in minutes
	TotalSessions            int `json:"total_sessions" gorm:"default:0"`
	TotalActivitiesCompleted int `json:"total_activities_completed" gorm:"default:0"`

	Performance PerformanceMetrics `json:"performance" gorm:"embedded;embeddedPrefix:perf_"`
	Social      SocialMetrics      `json:"social" gorm:"embedded;embeddedPrefix:social_"`

	Version   int64     `json:"-" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PerformanceMetrics holds per-domain rollup counters kept current by
// the recording services. RatingSum exists so the average can be
// updated incrementally instead of rescanning sessions.
type PerformanceMetrics struct {
	InterviewSessions   int     `json:"interview_sessions" gorm:"default:0"`
	InterviewRatingSum  float64 `json:"-" gorm:"default:0"`
	InterviewAvgRating  float64 `json:"interview_avg_rating" gorm:"default:0"`
	ChallengesSolvedEasy   int  `json:"challenges_solved_easy" gorm:"default:0"`
	ChallengesSolvedMedium int  `json:"challenges_solved_medium" gorm:"default:0"`
	ChallengesSolvedHard   int  `json:"challenges_solved_hard" gorm:"default:0"`
	GoalsTotal          int     `json:"goals_total" gorm:"default:0"`
	GoalsCompleted      int     `json:"goals_completed" gorm:"default:0"`
	GoalCompletionRate  float64 `json:"goal_completion_rate" gorm:"default:0"`
}

// SocialMetrics are auxiliary counters; nothing derives from them.
type SocialMetrics struct {
	Connections    int `json:"connections" gorm:"default:0"`
	PostsCreated   int `json:"posts_created" gorm:"default:0"`
	HelpfulVotes   int `json:"helpful_votes" gorm:"default:0"`
	MentorSessions int `json:"mentor_sessions" gorm:"default:0"`
}

// DailyActivity aggregates everything a user did on one UTC calendar
// day. At most one row exists per (analytics, day); the recorder
// upserts it with per-column increments.
type DailyActivity struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	AnalyticsID string    `json:"analytics_id" gorm:"not null;uniqueIndex:idx_daily_analytics_date"`
	UserID      string    `json:"user_id" gorm:"not null;index"`
	ActivityDate time.Time `json:"activity_date" gorm:"not null;uniqueIndex:idx_daily_analytics_date"`

	InterviewPracticeCount int `json:"interview_practice_count" gorm:"default:0"`
	InterviewPracticeTime  int `json:"interview_practice_time" gorm:"default:0"`
	CodingChallengesCount  int `json:"coding_challenges_count" gorm:"default:0"`
	CodingChallengesTime   int `json:"coding_challenges_time" gorm:"default:0"`
	ResumeBuildingCount    int `json:"resume_building_count" gorm:"default:0"`
	ResumeBuildingTime     int `json:"resume_building_time" gorm:"default:0"`
	GoalTrackingCount      int `json:"goal_tracking_count" gorm:"default:0"`
	GoalTrackingTime       int `json:"goal_tracking_time" gorm:"default:0"`
	CourseLearningCount    int `json:"course_learning_count" gorm:"default:0"`
	CourseLearningTime     int `json:"course_learning_time" gorm:"default:0"`
	NetworkingCount        int `json:"networking_count" gorm:"default:0"`
	NetworkingTime         int `json:"networking_time" gorm:"default:0"`

	XPEarned             int `json:"xp_earned" gorm:"default:0"`
	TimeSpent            int `json:"time_spent" gorm:"default:0"` // in minutes
	SessionsCount        int `json:"sessions_count" gorm:"default:0"`
	ActivitiesCompleted  int `json:"activities_completed" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SkillProgress tracks one named skill for one user.
type SkillProgress struct {
	ID            string          `json:"id" gorm:"primaryKey"`
	UserID        string          `json:"user_id" gorm:"not null;uniqueIndex:idx_user_skill"`
	SkillName     string          `json:"skill_name" gorm:"not null;uniqueIndex:idx_user_skill"`
	Tier          string          `json:"tier" gorm:"default:beginner"` // beginner, intermediate, advanced, expert
	Progress      int             `json:"progress" gorm:"default:0"`    // 0-100
	PracticeHours float64         `json:"practice_hours" gorm:"default:0"`
	LastPracticed *time.Time      `json:"last_practiced"`
	Milestones    json.RawMessage `json:"milestones" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UserAchievement is a one-time award. AchievementID is the dedupe
// key ("level_2", "week_streak", ...); the unique index makes a
// duplicate grant a constraint violation rather than a double award.
type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	Title         string    `json:"title" gorm:"not null"`
	Category      string    `json:"category"` // level, streak, goal, challenge, session
	Icon          string    `json:"icon"`
	XPReward      int       `json:"xp_reward" gorm:"default:0"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	CreatedAt     time.Time `json:"created_at"`
}
