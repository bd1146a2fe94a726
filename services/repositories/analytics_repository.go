package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

// ErrVersionConflict is returned when a conditional analytics save
// lost the race against a concurrent writer. Callers re-read and retry.
var ErrVersionConflict = errors.New("analytics row was modified concurrently")

// AnalyticsRepository owns the gamification tables: the per-user
// rollup row, daily activity buckets, skills and achievements.
type AnalyticsRepository struct {
	BaseRepository
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== USER ANALYTICS ====================

func (ds *AnalyticsRepository) GetAnalytics(userID string) (*model.UserAnalytics, error) {
	var analytics model.UserAnalytics
	if err := ds.db.Where("user_id = ?", userID).First(&analytics).Error; err != nil {
		return nil, err
	}
	return &analytics, nil
}

// GetOrCreateAnalytics returns the user's rollup row, creating the
// zero-value row on first touch. A concurrent first touch loses the
// insert to the unique index and falls back to reading the winner.
func (ds *AnalyticsRepository) GetOrCreateAnalytics(userID string) (*model.UserAnalytics, error) {
	analytics, err := ds.GetAnalytics(userID)
	if err == nil {
		return analytics, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &model.UserAnalytics{
		ID:            uuid.New().String(),
		UserID:        userID,
		CurrentLevel:  1,
		XPToNextLevel: shared.XPPerLevel,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := ds.db.Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ds.GetAnalytics(userID)
		}
		return nil, err
	}
	return fresh, nil
}

// SaveAnalytics writes the row conditionally on the version it was
// read at. On success the in-memory version is bumped to match the
// stored one; a lost race returns ErrVersionConflict.
func (ds *AnalyticsRepository) SaveAnalytics(analytics *model.UserAnalytics) error {
	expected := analytics.Version
	analytics.Version = expected + 1
	analytics.UpdatedAt = time.Now()

	res := ds.db.Model(&model.UserAnalytics{}).
		Where("id = ? AND version = ?", analytics.ID, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(analytics)
	if res.Error != nil {
		analytics.Version = expected
		return res.Error
	}
	if res.RowsAffected == 0 {
		analytics.Version = expected
		return ErrVersionConflict
	}
	return nil
}

// ==================== DAILY ACTIVITY ====================

// dailyBucketColumns maps activity types to their count/time column
// pair on daily_activities.
var dailyBucketColumns = map[string][2]string{
	shared.ActivityInterviewPractice: {"interview_practice_count", "interview_practice_time"},
	shared.ActivityCodingChallenges:  {"coding_challenges_count", "coding_challenges_time"},
	shared.ActivityResumeBuilding:    {"resume_building_count", "resume_building_time"},
	shared.ActivityGoalTracking:      {"goal_tracking_count", "goal_tracking_time"},
	shared.ActivityCourseLearning:    {"course_learning_count", "course_learning_time"},
	shared.ActivityNetworking:        {"networking_count", "networking_time"},
}

// UpsertDailyActivity folds one recorded activity into the day's
// bucket row. The unique (analytics_id, activity_date) index plus
// ON CONFLICT increments keep this correct under concurrent writes
// without a read-modify-write cycle.
func (ds *AnalyticsRepository) UpsertDailyActivity(analyticsID, userID string, day time.Time, activityType string, minutes, xp int) error {
	row := &model.DailyActivity{
		ID:                  uuid.New().String(),
		AnalyticsID:         analyticsID,
		UserID:              userID,
		ActivityDate:        day,
		XPEarned:            xp,
		TimeSpent:           minutes,
		SessionsCount:       1,
		ActivitiesCompleted: 1,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	assignments := map[string]interface{}{
		"xp_earned":            gorm.Expr("daily_activities.xp_earned + ?", xp),
		"time_spent":           gorm.Expr("daily_activities.time_spent + ?", minutes),
		"sessions_count":       gorm.Expr("daily_activities.sessions_count + 1"),
		"activities_completed": gorm.Expr("daily_activities.activities_completed + 1"),
		"updated_at":           time.Now(),
	}

	if cols, ok := dailyBucketColumns[activityType]; ok {
		countCol, timeCol := cols[0], cols[1]
		assignments[countCol] = gorm.Expr("daily_activities."+countCol+" + 1")
		assignments[timeCol] = gorm.Expr("daily_activities."+timeCol+" + ?", minutes)
		setBucket(row, activityType, minutes)
	} else {
		// unknown types still count toward the day totals above
		log.WithField("activity_type", activityType).Debug("Unmapped activity type, counted in day totals only")
	}

	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "analytics_id"}, {Name: "activity_date"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(row).Error
}

func setBucket(row *model.DailyActivity, activityType string, minutes int) {
	switch activityType {
	case shared.ActivityInterviewPractice:
		row.InterviewPracticeCount, row.InterviewPracticeTime = 1, minutes
	case shared.ActivityCodingChallenges:
		row.CodingChallengesCount, row.CodingChallengesTime = 1, minutes
	case shared.ActivityResumeBuilding:
		row.ResumeBuildingCount, row.ResumeBuildingTime = 1, minutes
	case shared.ActivityGoalTracking:
		row.GoalTrackingCount, row.GoalTrackingTime = 1, minutes
	case shared.ActivityCourseLearning:
		row.CourseLearningCount, row.CourseLearningTime = 1, minutes
	case shared.ActivityNetworking:
		row.NetworkingCount, row.NetworkingTime = 1, minutes
	}
}

// GetDailyActivities returns bucket rows in [from, to], oldest first.
func (ds *AnalyticsRepository) GetDailyActivities(analyticsID string, from, to time.Time) ([]model.DailyActivity, error) {
	var rows []model.DailyActivity
	err := ds.db.Where("analytics_id = ? AND activity_date >= ? AND activity_date <= ?", analyticsID, from, to).
		Order("activity_date ASC").
		Find(&rows).Error
	return rows, err
}

// PruneDailyActivities drops bucket rows older than the cutoff. Run
// opportunistically; losing a run only delays cleanup.
func (ds *AnalyticsRepository) PruneDailyActivities(cutoff time.Time) (int64, error) {
	res := ds.db.Where("activity_date < ?", cutoff).Delete(&model.DailyActivity{})
	return res.RowsAffected, res.Error
}

// ==================== ACHIEVEMENTS ====================

// CreateUserAchievement inserts a grant row. Duplicate grants hit the
// (user_id, achievement_id) unique index and are reported as a
// conflict so callers can treat them as already-owned.
func (ds *AnalyticsRepository) CreateUserAchievement(achievement *model.UserAchievement) error {
	if achievement.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		achievement.ID = id.String()
	}
	if achievement.UnlockedAt.IsZero() {
		achievement.UnlockedAt = time.Now()
	}
	achievement.CreatedAt = time.Now()
	return ds.db.Create(achievement).Error
}

func (ds *AnalyticsRepository) HasUserUnlockedAchievement(userID, achievementID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

func (ds *AnalyticsRepository) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	err := ds.db.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements).Error
	return achievements, err
}

func (ds *AnalyticsRepository) GetRecentAchievements(userID string, limit int) ([]model.UserAchievement, error) {
	var achievements []model.UserAchievement
	err := ds.db.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Limit(limit).
		Find(&achievements).Error
	return achievements, err
}

// ==================== SKILLS ====================

func (ds *AnalyticsRepository) GetSkill(userID, skillName string) (*model.SkillProgress, error) {
	var skill model.SkillProgress
	if err := ds.db.Where("user_id = ? AND skill_name = ?", userID, skillName).First(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (ds *AnalyticsRepository) SaveSkill(skill *model.SkillProgress) error {
	skill.UpdatedAt = time.Now()
	return ds.db.Save(skill).Error
}

func (ds *AnalyticsRepository) GetUserSkills(userID string) ([]model.SkillProgress, error) {
	var skills []model.SkillProgress
	err := ds.db.Where("user_id = ?", userID).
		Order("progress DESC, practice_hours DESC").
		Find(&skills).Error
	return skills, err
}

func (ds *AnalyticsRepository) GetTopSkills(userID string, limit int) ([]model.SkillProgress, error) {
	var skills []model.SkillProgress
	err := ds.db.Where("user_id = ?", userID).
		Order("progress DESC, practice_hours DESC").
		Limit(limit).
		Find(&skills).Error
	return skills, err
}

// ==================== LEADERBOARD ====================

type LeaderboardRow struct {
	UserID        string
	Username      string
	TotalXP       int
	CurrentLevel  int
	CurrentStreak int
}

var leaderboardSortColumns = map[string]string{
	"total_xp":          "user_analytics.total_xp",
	"current_streak":    "user_analytics.current_streak",
	"current_level":     "user_analytics.current_level",
	"goals_completed":   "user_analytics.perf_goals_completed",
	"challenges_solved": "(user_analytics.perf_challenges_solved_easy + user_analytics.perf_challenges_solved_medium + user_analytics.perf_challenges_solved_hard)",
}

// GetLeaderboard returns the top rows for the requested sort key.
// Unknown keys fall back to xp.
func (ds *AnalyticsRepository) GetLeaderboard(sortBy string, limit int) ([]LeaderboardRow, error) {
	col, ok := leaderboardSortColumns[sortBy]
	if !ok {
		col = leaderboardSortColumns["total_xp"]
	}

	var rows []LeaderboardRow
	err := ds.db.Model(&model.UserAnalytics{}).
		Select("user_analytics.user_id, users.username, user_analytics.total_xp, user_analytics.current_level, user_analytics.current_streak").
		Joins("JOIN users ON users.id = user_analytics.user_id").
		Where("users.is_active = ?", true).
		Order(col + " DESC, user_analytics.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// GetUserRank is 1 + the count of users strictly ahead on the sort key.
func (ds *AnalyticsRepository) GetUserRank(userID, sortBy string) (int, error) {
	col, ok := leaderboardSortColumns[sortBy]
	if !ok {
		col = leaderboardSortColumns["total_xp"]
	}

	analytics, err := ds.GetAnalytics(userID)
	if err != nil {
		return 0, err
	}

	var mine int
	switch sortBy {
	case "current_streak":
		mine = analytics.CurrentStreak
	case "current_level":
		mine = analytics.CurrentLevel
	case "goals_completed":
		mine = analytics.Performance.GoalsCompleted
	case "challenges_solved":
		mine = analytics.Performance.ChallengesSolvedEasy +
			analytics.Performance.ChallengesSolvedMedium +
			analytics.Performance.ChallengesSolvedHard
	default:
		mine = analytics.TotalXP
	}

	var ahead int64
	err = ds.db.Model(&model.UserAnalytics{}).
		Joins("JOIN users ON users.id = user_analytics.user_id").
		Where("users.is_active = ?", true).
		Where(col+" > ?", mine).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}
