package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

func testXPConfig() XPConfig {
	return XPConfig{
		LevelUpBonus:     50,
		WeekStreakBonus:  100,
		MonthStreakBonus: 500,
		GoalCompletion: map[string]int{
			shared.PriorityLow:    50,
			shared.PriorityMedium: 75,
			shared.PriorityHigh:   100,
		},
		ChallengeSolve: map[string]int{
			shared.DifficultyEasy:   50,
			shared.DifficultyMedium: 100,
			shared.DifficultyHard:   150,
		},
		InterviewPerRatingPoint: 30,
	}
}

func freshAnalytics(userID string) *model.UserAnalytics {
	return &model.UserAnalytics{
		ID:            "an_" + userID,
		UserID:        userID,
		CurrentLevel:  1,
		XPToNextLevel: shared.XPPerLevel,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTruncateDay(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected time.Time
	}{
		{
			name:     "UTC afternoon drops to midnight",
			in:       time.Date(2026, 3, 14, 15, 9, 26, 535, time.UTC),
			expected: day(2026, 3, 14),
		},
		{
			name:     "non-UTC time converts before truncating",
			in:       time.Date(2026, 3, 14, 22, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			expected: day(2026, 3, 14),
		},
		{
			name:     "late evening west of UTC lands on the next UTC day",
			in:       time.Date(2026, 3, 14, 23, 0, 0, 0, time.FixedZone("UTC-8", -8*3600)),
			expected: day(2026, 3, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateDay(tt.in))
		})
	}
}

func TestApplyActivityFirstEver(t *testing.T) {
	a := freshAnalytics("u1")
	owned := map[string]bool{}
	now := time.Now()

	granted := applyActivity(a, owned, testXPConfig(), day(2026, 1, 5), 30, 10, nil, now)

	assert.Empty(t, granted)
	assert.Equal(t, 10, a.TotalXP)
	assert.Equal(t, 1, a.CurrentLevel)
	assert.Equal(t, 90, a.XPToNextLevel)
	assert.Equal(t, 1, a.CurrentStreak)
	assert.Equal(t, 1, a.LongestStreak)
	assert.Equal(t, 30, a.TotalTimeSpent)
	assert.Equal(t, 1, a.TotalSessions)
	assert.Equal(t, 1, a.TotalActivitiesCompleted)
	require.NotNil(t, a.LastActiveDate)
	assert.Equal(t, day(2026, 1, 5), *a.LastActiveDate)
}

func TestSettleLevelWithBonusFeedback(t *testing.T) {
	// 90 existing + 20 earned crosses level 2. The level bonus lands
	// on top but does not cross level 3, so the loop settles with
	// 160 XP and 40 to go.
	a := freshAnalytics("u1")
	a.TotalXP = 90
	a.XPToNextLevel = 10
	owned := map[string]bool{}

	granted := applyXP(a, 20, owned, testXPConfig(), time.Now())

	require.Len(t, granted, 1)
	assert.Equal(t, "level_2", granted[0].AchievementID)
	assert.Equal(t, 50, granted[0].XPReward)
	assert.Equal(t, 2, a.CurrentLevel)
	assert.Equal(t, 160, a.TotalXP)
	assert.Equal(t, 40, a.XPToNextLevel)
}

func TestSettleLevelMultipleLevels(t *testing.T) {
	a := freshAnalytics("u1")
	owned := map[string]bool{}

	// 260 XP crosses levels 2 and 3 at once. Their bonuses push the
	// total to 360 which crosses 4, and that bonus crosses 5.
	granted := applyXP(a, 260, owned, testXPConfig(), time.Now())

	ids := make([]string, 0, len(granted))
	for _, g := range granted {
		ids = append(ids, g.AchievementID)
	}
	assert.Equal(t, []string{"level_2", "level_3", "level_4", "level_5"}, ids)
	assert.Equal(t, 5, a.CurrentLevel)
	assert.Equal(t, 460, a.TotalXP)
	assert.Equal(t, 40, a.XPToNextLevel)
}

func TestSettleLevelNeverDemotes(t *testing.T) {
	a := freshAnalytics("u1")
	a.TotalXP = 50
	a.CurrentLevel = 5

	granted := settleLevel(a, map[string]bool{}, testXPConfig(), time.Now())

	assert.Empty(t, granted)
	assert.Equal(t, 5, a.CurrentLevel)
	assert.Equal(t, 450, a.XPToNextLevel)
}

func TestSettleLevelIterationCap(t *testing.T) {
	// A bonus equal to the level cost would never converge. The cap
	// must break the loop rather than spin.
	cfg := testXPConfig()
	cfg.LevelUpBonus = shared.XPPerLevel

	a := freshAnalytics("u1")
	done := make(chan struct{})
	go func() {
		applyXP(a, 100, map[string]bool{}, cfg, time.Now())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("settleLevel did not terminate")
	}
	assert.GreaterOrEqual(t, a.CurrentLevel, 2)
}

func TestGrantAchievementIdempotent(t *testing.T) {
	a := freshAnalytics("u1")
	owned := map[string]bool{}
	spec := achievementSpec{id: "week_streak", title: "Week Warrior", xp: 100}

	first := grantAchievement(a, owned, spec, time.Now())
	second := grantAchievement(a, owned, spec, time.Now())

	require.NotNil(t, first)
	assert.Nil(t, second)
	assert.Equal(t, 100, a.TotalXP)
}

func TestUpdateStreak(t *testing.T) {
	monday := day(2026, 1, 5)

	tests := []struct {
		name            string
		lastActive      *time.Time
		currentStreak   int
		longestStreak   int
		activityDay     time.Time
		expectedStreak  int
		expectedLongest int
		expectedLastDay time.Time
	}{
		{
			name:            "first ever activity starts at one",
			activityDay:     monday,
			expectedStreak:  1,
			expectedLongest: 1,
			expectedLastDay: monday,
		},
		{
			name:            "same day is a no-op",
			lastActive:      &monday,
			currentStreak:   3,
			longestStreak:   5,
			activityDay:     monday,
			expectedStreak:  3,
			expectedLongest: 5,
			expectedLastDay: monday,
		},
		{
			name:            "next day extends",
			lastActive:      &monday,
			currentStreak:   3,
			longestStreak:   3,
			activityDay:     monday.AddDate(0, 0, 1),
			expectedStreak:  4,
			expectedLongest: 4,
			expectedLastDay: monday.AddDate(0, 0, 1),
		},
		{
			name:            "gap resets to one",
			lastActive:      &monday,
			currentStreak:   6,
			longestStreak:   6,
			activityDay:     monday.AddDate(0, 0, 6),
			expectedStreak:  1,
			expectedLongest: 6,
			expectedLastDay: monday.AddDate(0, 0, 6),
		},
		{
			name:            "backfilled day changes nothing",
			lastActive:      &monday,
			currentStreak:   4,
			longestStreak:   4,
			activityDay:     monday.AddDate(0, 0, -2),
			expectedStreak:  4,
			expectedLongest: 4,
			expectedLastDay: monday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := freshAnalytics("u1")
			a.LastActiveDate = tt.lastActive
			a.CurrentStreak = tt.currentStreak
			a.LongestStreak = tt.longestStreak

			updateStreak(a, tt.activityDay)

			assert.Equal(t, tt.expectedStreak, a.CurrentStreak)
			assert.Equal(t, tt.expectedLongest, a.LongestStreak)
			require.NotNil(t, a.LastActiveDate)
			assert.Equal(t, tt.expectedLastDay, *a.LastActiveDate)
		})
	}
}

func TestSevenConsecutiveDaysGrantsWeekStreakOnce(t *testing.T) {
	a := freshAnalytics("u1")
	owned := map[string]bool{}
	cfg := testXPConfig()
	start := day(2026, 1, 5)

	var all []model.UserAchievement
	for i := 0; i < 7; i++ {
		all = append(all, applyActivity(a, owned, cfg, start.AddDate(0, 0, i), 10, 10, nil, time.Now())...)
	}

	weekGrants := 0
	for _, g := range all {
		if g.AchievementID == "week_streak" {
			weekGrants++
			assert.Equal(t, 100, g.XPReward)
		}
	}
	assert.Equal(t, 1, weekGrants)
	assert.Equal(t, 7, a.CurrentStreak)
	// 70 activity + 100 week bonus, then level bonuses cascade the
	// total across levels 2 and 3
	assert.Equal(t, 270, a.TotalXP)
	assert.Equal(t, 3, a.CurrentLevel)
	assert.Equal(t, 30, a.XPToNextLevel)
}

func TestStreakResetAfterGapSkipsWeekAward(t *testing.T) {
	a := freshAnalytics("u1")
	owned := map[string]bool{}
	cfg := testXPConfig()
	start := day(2026, 1, 5)

	for i := 0; i < 6; i++ {
		applyActivity(a, owned, cfg, start.AddDate(0, 0, i), 10, 5, nil, time.Now())
	}
	require.Equal(t, 6, a.CurrentStreak)

	// six day gap, then one more activity
	granted := applyActivity(a, owned, cfg, start.AddDate(0, 0, 12), 10, 5, nil, time.Now())

	assert.Equal(t, 1, a.CurrentStreak)
	assert.Equal(t, 6, a.LongestStreak)
	for _, g := range granted {
		assert.NotEqual(t, "week_streak", g.AchievementID)
	}
	assert.False(t, owned["week_streak"])
}

func TestStreakAchievementsExactLengthOnly(t *testing.T) {
	tests := []struct {
		streak   int
		expected []string
	}{
		{streak: 6, expected: nil},
		{streak: 7, expected: []string{"week_streak"}},
		{streak: 8, expected: nil},
		{streak: 30, expected: []string{"month_streak"}},
		{streak: 31, expected: nil},
	}

	for _, tt := range tests {
		a := freshAnalytics("u1")
		a.CurrentStreak = tt.streak

		granted := streakAchievements(a, map[string]bool{}, testXPConfig(), time.Now())

		var ids []string
		for _, g := range granted {
			ids = append(ids, g.AchievementID)
		}
		assert.Equal(t, tt.expected, ids, "streak %d", tt.streak)
	}
}

func TestMilestoneAchievements(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*model.UserAnalytics)
		owned    map[string]bool
		expected []string
	}{
		{
			name:     "nothing earned yet",
			mutate:   func(a *model.UserAnalytics) {},
			owned:    map[string]bool{},
			expected: nil,
		},
		{
			name: "ten sessions",
			mutate: func(a *model.UserAnalytics) {
				a.TotalSessions = 10
			},
			owned:    map[string]bool{},
			expected: []string{"sessions_10"},
		},
		{
			name: "hundred sessions grants both counters unless owned",
			mutate: func(a *model.UserAnalytics) {
				a.TotalSessions = 100
			},
			owned:    map[string]bool{"sessions_10": true},
			expected: []string{"sessions_100"},
		},
		{
			name: "first completed goal",
			mutate: func(a *model.UserAnalytics) {
				a.Performance.GoalsCompleted = 1
			},
			owned:    map[string]bool{},
			expected: []string{"first_goal"},
		},
		{
			name: "solves across difficulties add up",
			mutate: func(a *model.UserAnalytics) {
				a.Performance.ChallengesSolvedEasy = 4
				a.Performance.ChallengesSolvedMedium = 3
				a.Performance.ChallengesSolvedHard = 3
			},
			owned:    map[string]bool{},
			expected: []string{"challenges_10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := freshAnalytics("u1")
			tt.mutate(a)

			granted := milestoneAchievements(a, tt.owned, time.Now())

			var ids []string
			for _, g := range granted {
				ids = append(ids, g.AchievementID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSkillTierFor(t *testing.T) {
	tests := []struct {
		hours    float64
		expected string
	}{
		{0, shared.SkillTierBeginner},
		{19.9, shared.SkillTierBeginner},
		{20, shared.SkillTierIntermediate},
		{74.9, shared.SkillTierIntermediate},
		{75, shared.SkillTierAdvanced},
		{199.9, shared.SkillTierAdvanced},
		{200, shared.SkillTierExpert},
		{500, shared.SkillTierExpert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, skillTierFor(tt.hours), "%.1f hours", tt.hours)
	}
}

func TestLoadXPConfigOverrides(t *testing.T) {
	t.Setenv("XP_LEVEL_UP_BONUS", "10")
	t.Setenv("XP_GOAL_HIGH", "250")
	t.Setenv("XP_INTERVIEW_PER_RATING_POINT", "12.5")
	t.Setenv("XP_CHALLENGE_EASY", "not-a-number")

	cfg := LoadXPConfig()

	assert.Equal(t, 10, cfg.LevelUpBonus)
	assert.Equal(t, 250, cfg.GoalCompletion[shared.PriorityHigh])
	assert.Equal(t, 12.5, cfg.InterviewPerRatingPoint)
	assert.Equal(t, 50, cfg.ChallengeSolve[shared.DifficultyEasy])
}
