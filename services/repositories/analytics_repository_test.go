package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.UserAnalytics{},
		&model.DailyActivity{},
		&model.UserAchievement{},
		&model.SkillProgress{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, active bool) string {
	t.Helper()

	user := model.User{
		ID:       uuid.New().String(),
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed",
		IsActive: active,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestGetOrCreateAnalytics(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	created, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, created.CurrentLevel)
	assert.Equal(t, shared.XPPerLevel, created.XPToNextLevel)
	assert.Equal(t, 0, created.TotalXP)

	again, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestSaveAnalyticsVersionConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	_, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)

	first, err := repo.GetAnalytics(userID)
	require.NoError(t, err)
	second, err := repo.GetAnalytics(userID)
	require.NoError(t, err)

	first.TotalXP = 50
	require.NoError(t, repo.SaveAnalytics(first))
	assert.Equal(t, int64(1), first.Version)

	second.TotalXP = 75
	err = repo.SaveAnalytics(second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// the stale writer's increment never reached the row
	reread, err := repo.GetAnalytics(userID)
	require.NoError(t, err)
	assert.Equal(t, 50, reread.TotalXP)
	assert.Equal(t, int64(1), reread.Version)

	// a retry from fresh state succeeds
	reread.TotalXP = 75
	require.NoError(t, repo.SaveAnalytics(reread))
	assert.Equal(t, int64(2), reread.Version)
}

func TestUpsertDailyActivityIncrements(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	analytics, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, day, shared.ActivityCodingChallenges, 30, 50))
	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, day, shared.ActivityCodingChallenges, 15, 100))
	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, day, shared.ActivityInterviewPractice, 45, 90))

	rows, err := repo.GetDailyActivities(analytics.ID, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 240, row.XPEarned)
	assert.Equal(t, 90, row.TimeSpent)
	assert.Equal(t, 3, row.SessionsCount)
	assert.Equal(t, 3, row.ActivitiesCompleted)
	assert.Equal(t, 2, row.CodingChallengesCount)
	assert.Equal(t, 45, row.CodingChallengesTime)
	assert.Equal(t, 1, row.InterviewPracticeCount)
	assert.Equal(t, 45, row.InterviewPracticeTime)
	assert.Equal(t, 0, row.NetworkingCount)
}

func TestUpsertDailyActivityUnknownType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	analytics, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)

	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, day, "underwater-basket-weaving", 20, 10))

	rows, err := repo.GetDailyActivities(analytics.ID, day, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// day totals move, no bucket column does
	assert.Equal(t, 10, rows[0].XPEarned)
	assert.Equal(t, 20, rows[0].TimeSpent)
	assert.Equal(t, 1, rows[0].SessionsCount)
	assert.Equal(t, 0, rows[0].CodingChallengesCount)
	assert.Equal(t, 0, rows[0].InterviewPracticeCount)
	assert.Equal(t, 0, rows[0].CourseLearningCount)
}

func TestPruneDailyActivities(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	analytics, err := repo.GetOrCreateAnalytics(userID)
	require.NoError(t, err)

	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, old, shared.ActivityCourseLearning, 10, 5))
	require.NoError(t, repo.UpsertDailyActivity(analytics.ID, userID, recent, shared.ActivityCourseLearning, 10, 5))

	pruned, err := repo.PruneDailyActivities(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	rows, err := repo.GetDailyActivities(analytics.ID, old, recent)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestCreateUserAchievementDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	first := &model.UserAchievement{UserID: userID, AchievementID: "week_streak", Title: "Week Warrior", XPReward: 100}
	require.NoError(t, repo.CreateUserAchievement(first))

	dup := &model.UserAchievement{UserID: userID, AchievementID: "week_streak", Title: "Week Warrior", XPReward: 100}
	err := repo.CreateUserAchievement(dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	unlocked, err := repo.HasUserUnlockedAchievement(userID, "week_streak")
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)

	seed := func(username string, xp, streak int, active bool) string {
		userID := createTestUser(t, db, username, active)
		analytics, err := repo.GetOrCreateAnalytics(userID)
		require.NoError(t, err)
		analytics.TotalXP = xp
		analytics.CurrentStreak = streak
		require.NoError(t, repo.SaveAnalytics(analytics))
		return userID
	}

	seed("alice", 450, 2, true)
	bobID := seed("bob", 300, 9, true)
	seed("carol", 150, 4, true)
	seed("ghost", 999, 99, false)

	rows, err := repo.GetLeaderboard("total_xp", 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{rows[0].Username, rows[1].Username, rows[2].Username})

	rank, err := repo.GetUserRank(bobID, "total_xp")
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	byStreak, err := repo.GetLeaderboard("current_streak", 10)
	require.NoError(t, err)
	assert.Equal(t, "bob", byStreak[0].Username)

	streakRank, err := repo.GetUserRank(bobID, "current_streak")
	require.NoError(t, err)
	assert.Equal(t, 1, streakRank)

	// unknown sort keys fall back to xp
	fallback, err := repo.GetLeaderboard("shoe_size", 10)
	require.NoError(t, err)
	assert.Equal(t, "alice", fallback[0].Username)
}

func TestSkillUpsertAndTopSkills(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAnalyticsRepository(db)
	userID := createTestUser(t, db, "alice", true)

	now := time.Now()
	for _, s := range []model.SkillProgress{
		{ID: uuid.New().String(), UserID: userID, SkillName: "Go", Tier: shared.SkillTierIntermediate, Progress: 60, PracticeHours: 40, LastPracticed: &now},
		{ID: uuid.New().String(), UserID: userID, SkillName: "SQL", Tier: shared.SkillTierBeginner, Progress: 25, PracticeHours: 8, LastPracticed: &now},
		{ID: uuid.New().String(), UserID: userID, SkillName: "System Design", Tier: shared.SkillTierBeginner, Progress: 80, PracticeHours: 12, LastPracticed: &now},
	} {
		skill := s
		require.NoError(t, repo.SaveSkill(&skill))
	}

	top, err := repo.GetTopSkills(userID, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "System Design", top[0].SkillName)
	assert.Equal(t, "Go", top[1].SkillName)

	skill, err := repo.GetSkill(userID, "Go")
	require.NoError(t, err)
	skill.Progress = 70
	require.NoError(t, repo.SaveSkill(skill))

	all, err := repo.GetUserSkills(userID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
