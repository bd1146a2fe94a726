package shared

const (
	UserID = "user_id"

	ActivityInterviewPractice = "interviewPractice"
	ActivityCodingChallenges  = "codingChallenges"
	ActivityResumeBuilding    = "resumeBuilding"
	ActivityGoalTracking      = "goalTracking"
	ActivityCourseLearning    = "courseLearning"
	ActivityNetworking        = "networking"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusAbandoned = "abandoned"

	SubmissionAttempted = "attempted"
	SubmissionSolved    = "solved"

	ReportCardPending   = "pending"
	ReportCardCompleted = "completed"
	ReportCardFailed    = "failed"

	SkillTierBeginner     = "beginner"
	SkillTierIntermediate = "intermediate"
	SkillTierAdvanced     = "advanced"
	SkillTierExpert       = "expert"

	AchievementCategoryLevel     = "level"
	AchievementCategoryStreak    = "streak"
	AchievementCategoryGoal      = "goal"
	AchievementCategoryChallenge = "challenge"
	AchievementCategorySession   = "session"
)

// XPPerLevel is the fixed XP cost of a level. Levels are derived from
// total XP, never stored independently of it.
const XPPerLevel = 100

// KnownActivityTypes lists the activity types with a dedicated daily
// bucket. Unknown types still feed the aggregate counters.
var KnownActivityTypes = []string{
	ActivityInterviewPractice,
	ActivityCodingChallenges,
	ActivityResumeBuilding,
	ActivityGoalTracking,
	ActivityCourseLearning,
	ActivityNetworking,
}

func IsKnownActivityType(t string) bool {
	for _, known := range KnownActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}
