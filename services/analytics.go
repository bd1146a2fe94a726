package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/services/repositories"
	"github.com/ascent-labs/ascent_api/shared"
)

// AnalyticsService owns the gamification engine: XP, levels, streaks,
// achievements and the rollup views built on top of them. All level
// and streak math lives in pure functions below so it can be tested
// without a database.
type AnalyticsService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	redisSvc      *RedisService
	monitoringSvc *MonitoringService

	xp XPConfig
}

const ANALYTICS_SVC = "analytics_svc"

func (svc AnalyticsService) Id() string {
	return ANALYTICS_SVC
}

func (svc *AnalyticsService) Configure(ctx *context.Context) error {
	svc.xp = LoadXPConfig()
	return svc.DefaultService.Configure(ctx)
}

func (svc *AnalyticsService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

// ==================== XP CONFIGURATION ====================

// XPConfig holds every reward amount the engine hands out. Values are
// env-overridable so the XP economy can be tuned without a deploy.
type XPConfig struct {
	LevelUpBonus     int
	WeekStreakBonus  int
	MonthStreakBonus int

	GoalCompletion map[string]int // by priority
	ChallengeSolve map[string]int // by difficulty

	InterviewPerRatingPoint float64
}

func LoadXPConfig() XPConfig {
	return XPConfig{
		LevelUpBonus:     envInt("XP_LEVEL_UP_BONUS", 50),
		WeekStreakBonus:  envInt("XP_WEEK_STREAK_BONUS", 100),
		MonthStreakBonus: envInt("XP_MONTH_STREAK_BONUS", 500),
		GoalCompletion: map[string]int{
			shared.PriorityLow:    envInt("XP_GOAL_LOW", 50),
			shared.PriorityMedium: envInt("XP_GOAL_MEDIUM", 75),
			shared.PriorityHigh:   envInt("XP_GOAL_HIGH", 100),
		},
		ChallengeSolve: map[string]int{
			shared.DifficultyEasy:   envInt("XP_CHALLENGE_EASY", 50),
			shared.DifficultyMedium: envInt("XP_CHALLENGE_MEDIUM", 100),
			shared.DifficultyHard:   envInt("XP_CHALLENGE_HARD", 150),
		},
		InterviewPerRatingPoint: envFloat("XP_INTERVIEW_PER_RATING_POINT", 30),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return fallback
}

// ==================== PURE ENGINE ====================

// maxSettleIterations caps the level/achievement feedback loop.
// Rewards are tiny relative to level cost, so in practice the loop
// settles in one or two passes.
const maxSettleIterations = 10

type achievementSpec struct {
	id       string
	title    string
	category string
	icon     string
	xp       int
}

// truncateDay drops the time-of-day component in UTC. All calendar
// comparisons in the engine happen on these values.
func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// grantAchievement awards a one-time achievement. Owned achievements
// are a no-op; a grant adds its XP reward but does NOT re-settle
// levels itself, callers run settleLevel after the batch.
func grantAchievement(a *model.UserAnalytics, owned map[string]bool, spec achievementSpec, now time.Time) *model.UserAchievement {
	if owned[spec.id] {
		return nil
	}
	owned[spec.id] = true
	a.TotalXP += spec.xp

	return &model.UserAchievement{
		UserID:        a.UserID,
		AchievementID: spec.id,
		Title:         spec.title,
		Category:      spec.category,
		Icon:          spec.icon,
		XPReward:      spec.xp,
		UnlockedAt:    now,
	}
}

// settleLevel brings currentLevel in line with totalXP, granting a
// level_<N> achievement for every level crossed. Level bonuses feed
// back into totalXP, so the loop runs until no new level is crossed
// or the iteration cap is hit. Levels never go down.
func settleLevel(a *model.UserAnalytics, owned map[string]bool, cfg XPConfig, now time.Time) []model.UserAchievement {
	var granted []model.UserAchievement

	for i := 0; i < maxSettleIterations; i++ {
		target := a.TotalXP/shared.XPPerLevel + 1
		if target <= a.CurrentLevel {
			break
		}

		for level := a.CurrentLevel + 1; level <= target; level++ {
			spec := achievementSpec{
				id:       fmt.Sprintf("level_%d", level),
				title:    fmt.Sprintf("Reached Level %d", level),
				category: shared.AchievementCategoryLevel,
				icon:     "trophy",
				xp:       cfg.LevelUpBonus,
			}
			if ach := grantAchievement(a, owned, spec, now); ach != nil {
				granted = append(granted, *ach)
			}
		}
		a.CurrentLevel = target
	}

	a.XPToNextLevel = a.CurrentLevel*shared.XPPerLevel - a.TotalXP
	return granted
}

// applyXP adds XP and settles levels.
func applyXP(a *model.UserAnalytics, xp int, owned map[string]bool, cfg XPConfig, now time.Time) []model.UserAchievement {
	a.TotalXP += xp
	return settleLevel(a, owned, cfg, now)
}

// updateStreak advances the daily streak for an activity on day (a
// UTC-truncated date). Same-day activity is a no-op, the next day
// extends, a gap resets to 1 and an out-of-order date changes
// nothing. lastActiveDate never moves backwards.
func updateStreak(a *model.UserAnalytics, day time.Time) {
	if a.LastActiveDate == nil {
		a.CurrentStreak = 1
		a.LastActiveDate = &day
	} else {
		last := truncateDay(*a.LastActiveDate)
		daysDiff := int(day.Sub(last).Hours() / 24)

		switch {
		case daysDiff == 0:
			// same day, streak unchanged
		case daysDiff == 1:
			a.CurrentStreak++
			a.LastActiveDate = &day
		case daysDiff < 0:
			// backfilled activity, streak unchanged
		default:
			a.CurrentStreak = 1
			a.LastActiveDate = &day
		}
	}

	if a.CurrentStreak > a.LongestStreak {
		a.LongestStreak = a.CurrentStreak
	}
}

// streakAchievements awards the exact-length streak milestones.
func streakAchievements(a *model.UserAnalytics, owned map[string]bool, cfg XPConfig, now time.Time) []model.UserAchievement {
	var specs []achievementSpec

	if a.CurrentStreak == 7 {
		specs = append(specs, achievementSpec{
			id:       "week_streak",
			title:    "Week Warrior",
			category: shared.AchievementCategoryStreak,
			icon:     "flame",
			xp:       cfg.WeekStreakBonus,
		})
	}
	if a.CurrentStreak == 30 {
		specs = append(specs, achievementSpec{
			id:       "month_streak",
			title:    "Monthly Master",
			category: shared.AchievementCategoryStreak,
			icon:     "calendar",
			xp:       cfg.MonthStreakBonus,
		})
	}

	var granted []model.UserAchievement
	for _, spec := range specs {
		if ach := grantAchievement(a, owned, spec, now); ach != nil {
			granted = append(granted, *ach)
		}
	}
	return granted
}

// milestoneAchievements awards the counter-based milestones: total
// session counts, first completed goal and ten solved challenges.
func milestoneAchievements(a *model.UserAnalytics, owned map[string]bool, now time.Time) []model.UserAchievement {
	var specs []achievementSpec

	if a.TotalSessions >= 10 {
		specs = append(specs, achievementSpec{
			id:       "sessions_10",
			title:    "Getting Into Rhythm",
			category: shared.AchievementCategorySession,
			icon:     "spark",
			xp:       25,
		})
	}
	if a.TotalSessions >= 100 {
		specs = append(specs, achievementSpec{
			id:       "sessions_100",
			title:    "Centurion",
			category: shared.AchievementCategorySession,
			icon:     "medal",
			xp:       200,
		})
	}
	if a.Performance.GoalsCompleted >= 1 {
		specs = append(specs, achievementSpec{
			id:       "first_goal",
			title:    "Goal Getter",
			category: shared.AchievementCategoryGoal,
			icon:     "target",
			xp:       25,
		})
	}
	solved := a.Performance.ChallengesSolvedEasy + a.Performance.ChallengesSolvedMedium + a.Performance.ChallengesSolvedHard
	if solved >= 10 {
		specs = append(specs, achievementSpec{
			id:       "challenges_10",
			title:    "Problem Solver",
			category: shared.AchievementCategoryChallenge,
			icon:     "code",
			xp:       100,
		})
	}

	var granted []model.UserAchievement
	for _, spec := range specs {
		if ach := grantAchievement(a, owned, spec, now); ach != nil {
			granted = append(granted, *ach)
		}
	}
	return granted
}

// applyActivity folds one activity into the rollup row: running
// totals, streak, XP and every achievement the new state unlocks.
// Returns the newly granted achievements.
func applyActivity(a *model.UserAnalytics, owned map[string]bool, cfg XPConfig, day time.Time, minutes, xp int, mutate func(*model.UserAnalytics), now time.Time) []model.UserAchievement {
	a.TotalTimeSpent += minutes
	a.TotalSessions++
	a.TotalActivitiesCompleted++

	if mutate != nil {
		mutate(a)
	}

	updateStreak(a, day)

	var granted []model.UserAchievement
	granted = append(granted, streakAchievements(a, owned, cfg, now)...)
	granted = append(granted, milestoneAchievements(a, owned, now)...)
	granted = append(granted, applyXP(a, xp, owned, cfg, now)...)
	// streak and milestone rewards may have crossed a level themselves
	granted = append(granted, settleLevel(a, owned, cfg, now)...)

	return granted
}

// ==================== RECORDER ====================

// maxVersionRetries bounds the optimistic-concurrency retry loop.
const maxVersionRetries = 3

// activityEvent is one thing a user did, plus any domain counters it
// should bump on the rollup row.
type activityEvent struct {
	userID       string
	activityType string
	day          time.Time
	minutes      int
	xp           int
	mutate       func(*model.UserAnalytics)
}

// RecordActivity is the public generic recorder behind POST /activity.
func (svc *AnalyticsService) RecordActivity(userID string, req dto.RecordActivityRequest) (*dto.AnalyticsResponse, error) {
	day := truncateDay(time.Now())
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, shared.NewBadRequestError(err, "Invalid date, expected YYYY-MM-DD")
		}
		day = truncateDay(parsed)
	}

	if !shared.IsKnownActivityType(req.ActivityType) {
		log.WithFields(log.Fields{
			"user_id":       userID,
			"activity_type": req.ActivityType,
		}).Warn("Unknown activity type, counting toward aggregates only")
	}

	analytics, granted, err := svc.record(activityEvent{
		userID:       userID,
		activityType: req.ActivityType,
		day:          day,
		minutes:      req.MinutesSpent,
		xp:           req.XPEarned,
	})
	if err != nil {
		return nil, err
	}

	return svc.toAnalyticsResponse(analytics, granted), nil
}

// record runs one activity through the engine and persists the result
// atomically: conditional versioned save of the rollup row, ON
// CONFLICT upsert of the daily bucket and the achievement grants, all
// in one transaction. A lost version race re-reads and retries a
// bounded number of times.
func (svc *AnalyticsService) record(ev activityEvent) (*model.UserAnalytics, []model.UserAchievement, error) {
	now := time.Now()

	for attempt := 1; attempt <= maxVersionRetries; attempt++ {
		analytics, err := svc.sqlSvc.Analytics().GetOrCreateAnalytics(ev.userID)
		if err != nil {
			return nil, nil, svc.sqlSvc.HandleError(err)
		}

		owned, err := svc.ownedAchievements(ev.userID)
		if err != nil {
			return nil, nil, svc.sqlSvc.HandleError(err)
		}

		granted := applyActivity(analytics, owned, svc.xp, ev.day, ev.minutes, ev.xp, ev.mutate, now)

		dayXP := ev.xp
		for _, ach := range granted {
			dayXP += ach.XPReward
		}

		err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
			txRepo := repositories.NewAnalyticsRepository(tx)

			if err := txRepo.UpsertDailyActivity(analytics.ID, ev.userID, ev.day, ev.activityType, ev.minutes, dayXP); err != nil {
				return err
			}
			for i := range granted {
				if err := txRepo.CreateUserAchievement(&granted[i]); err != nil {
					return err
				}
			}
			return txRepo.SaveAnalytics(analytics)
		})

		if errors.Is(err, repositories.ErrVersionConflict) {
			if svc.monitoringSvc != nil {
				svc.monitoringSvc.RecordVersionConflict()
			}
			log.WithFields(log.Fields{
				"user_id": ev.userID,
				"attempt": attempt,
			}).Debug("Analytics version conflict, retrying")
			continue
		}
		if err != nil {
			return nil, nil, svc.sqlSvc.HandleError(err)
		}

		if svc.monitoringSvc != nil {
			svc.monitoringSvc.RecordActivityRecorded(ev.activityType)
			svc.monitoringSvc.RecordAchievementsGranted(len(granted))
		}
		return analytics, granted, nil
	}

	return nil, nil, shared.NewConflictError(nil, "Too many concurrent updates, try again")
}

func (svc *AnalyticsService) ownedAchievements(userID string) (map[string]bool, error) {
	achievements, err := svc.sqlSvc.Analytics().GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(achievements))
	for _, ach := range achievements {
		owned[ach.AchievementID] = true
	}
	return owned, nil
}

// ==================== DOMAIN RECORDERS ====================

// RecordGoalCompletion awards priority XP for a completed goal and
// counts it as a goalTracking activity. Returns the activity XP.
func (svc *AnalyticsService) RecordGoalCompletion(userID, priority string) (int, error) {
	xp, ok := svc.xp.GoalCompletion[priority]
	if !ok {
		xp = svc.xp.GoalCompletion[shared.PriorityMedium]
	}

	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityGoalTracking,
		day:          truncateDay(time.Now()),
		xp:           xp,
		mutate: func(a *model.UserAnalytics) {
			a.Performance.GoalsCompleted++
			if a.Performance.GoalsTotal > 0 {
				a.Performance.GoalCompletionRate = float64(a.Performance.GoalsCompleted) / float64(a.Performance.GoalsTotal) * 100
			}
		},
	})
	return xp, err
}

// NoteGoalCreated bumps the goal total counters outside the activity
// path; creating a goal is not itself practice.
func (svc *AnalyticsService) NoteGoalCreated(userID string) {
	for attempt := 1; attempt <= maxVersionRetries; attempt++ {
		analytics, err := svc.sqlSvc.Analytics().GetOrCreateAnalytics(userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to load analytics for goal counter")
			return
		}

		analytics.Performance.GoalsTotal++
		if analytics.Performance.GoalsTotal > 0 {
			analytics.Performance.GoalCompletionRate = float64(analytics.Performance.GoalsCompleted) / float64(analytics.Performance.GoalsTotal) * 100
		}

		err = svc.sqlSvc.Analytics().SaveAnalytics(analytics)
		if errors.Is(err, repositories.ErrVersionConflict) {
			continue
		}
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("Failed to bump goal counter")
		}
		return
	}
}

// RecordChallengeSolve awards difficulty XP for a first solve and
// counts a codingChallenges activity.
func (svc *AnalyticsService) RecordChallengeSolve(userID, difficulty string, minutes int) (int, error) {
	xp, ok := svc.xp.ChallengeSolve[difficulty]
	if !ok {
		xp = svc.xp.ChallengeSolve[shared.DifficultyEasy]
	}

	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityCodingChallenges,
		day:          truncateDay(time.Now()),
		minutes:      minutes,
		xp:           xp,
		mutate: func(a *model.UserAnalytics) {
			switch difficulty {
			case shared.DifficultyMedium:
				a.Performance.ChallengesSolvedMedium++
			case shared.DifficultyHard:
				a.Performance.ChallengesSolvedHard++
			default:
				a.Performance.ChallengesSolvedEasy++
			}
		},
	})
	return xp, err
}

// RecordChallengeAttempt counts failed attempts as practice time with
// no XP.
func (svc *AnalyticsService) RecordChallengeAttempt(userID string, minutes int) error {
	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityCodingChallenges,
		day:          truncateDay(time.Now()),
		minutes:      minutes,
	})
	return err
}

// RecordInterviewSession awards round(rating * per-point) XP and
// keeps the incremental rating average current.
func (svc *AnalyticsService) RecordInterviewSession(userID string, rating float64, duration int) (int, error) {
	xp := int(math.Round(rating * svc.xp.InterviewPerRatingPoint))

	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityInterviewPractice,
		day:          truncateDay(time.Now()),
		minutes:      duration,
		xp:           xp,
		mutate: func(a *model.UserAnalytics) {
			a.Performance.InterviewSessions++
			a.Performance.InterviewRatingSum += rating
			a.Performance.InterviewAvgRating = a.Performance.InterviewRatingSum / float64(a.Performance.InterviewSessions)
		},
	})
	return xp, err
}

// RecordResumeActivity counts resume work as an activity.
func (svc *AnalyticsService) RecordResumeActivity(userID string, xp int) error {
	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityResumeBuilding,
		day:          truncateDay(time.Now()),
		xp:           xp,
	})
	return err
}

// ==================== SKILLS ====================

var skillTierThresholds = []struct {
	tier  string
	hours float64
}{
	{shared.SkillTierExpert, 200},
	{shared.SkillTierAdvanced, 75},
	{shared.SkillTierIntermediate, 20},
	{shared.SkillTierBeginner, 0},
}

func skillTierFor(hours float64) string {
	for _, t := range skillTierThresholds {
		if hours >= t.hours {
			return t.tier
		}
	}
	return shared.SkillTierBeginner
}

// PracticeSkill records a practice session against a named skill and
// counts it as courseLearning activity.
func (svc *AnalyticsService) PracticeSkill(userID string, req dto.PracticeSkillRequest) (*dto.SkillProgressResponse, error) {
	skill, err := svc.sqlSvc.Analytics().GetSkill(userID, req.SkillName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svc.sqlSvc.HandleError(err)
		}
		skill = &model.SkillProgress{
			UserID:    userID,
			SkillName: req.SkillName,
			Tier:      shared.SkillTierBeginner,
			CreatedAt: time.Now(),
		}
	}

	now := time.Now()
	skill.PracticeHours += float64(req.MinutesSpent) / 60
	skill.Progress += req.ProgressDelta
	if skill.Progress > 100 {
		skill.Progress = 100
	}
	skill.Tier = skillTierFor(skill.PracticeHours)
	skill.LastPracticed = &now

	if err := svc.saveSkill(skill); err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if err := svc.recordPractice(userID, req.MinutesSpent); err != nil {
		return nil, err
	}

	return &dto.SkillProgressResponse{
		SkillName:     skill.SkillName,
		Tier:          skill.Tier,
		Progress:      skill.Progress,
		PracticeHours: skill.PracticeHours,
		LastPracticed: skill.LastPracticed,
	}, nil
}

func (svc *AnalyticsService) saveSkill(skill *model.SkillProgress) error {
	if skill.ID == "" {
		skill.ID = uuid.New().String()
	}
	return svc.sqlSvc.Analytics().SaveSkill(skill)
}

func (svc *AnalyticsService) recordPractice(userID string, minutes int) error {
	_, _, err := svc.record(activityEvent{
		userID:       userID,
		activityType: shared.ActivityCourseLearning,
		day:          truncateDay(time.Now()),
		minutes:      minutes,
	})
	return err
}

func (svc *AnalyticsService) GetUserSkills(userID string) ([]dto.SkillProgressResponse, error) {
	skills, err := svc.sqlSvc.Analytics().GetUserSkills(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.SkillProgressResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillProgressResponse{
			SkillName:     s.SkillName,
			Tier:          s.Tier,
			Progress:      s.Progress,
			PracticeHours: s.PracticeHours,
			LastPracticed: s.LastPracticed,
		})
	}
	return out, nil
}

// ==================== RESPONSES ====================

func (svc *AnalyticsService) toAnalyticsResponse(a *model.UserAnalytics, granted []model.UserAchievement) *dto.AnalyticsResponse {
	resp := &dto.AnalyticsResponse{
		UserID:                   a.UserID,
		TotalXP:                  a.TotalXP,
		CurrentLevel:             a.CurrentLevel,
		XPToNextLevel:            a.XPToNextLevel,
		CurrentStreak:            a.CurrentStreak,
		LongestStreak:            a.LongestStreak,
		LastActiveDate:           a.LastActiveDate,
		TotalTimeSpent:           a.TotalTimeSpent,
		TotalSessions:            a.TotalSessions,
		TotalActivitiesCompleted: a.TotalActivitiesCompleted,
	}
	for _, ach := range granted {
		unlocked := ach.UnlockedAt
		resp.NewAchievements = append(resp.NewAchievements, dto.AchievementResponse{
			ID:         ach.AchievementID,
			Title:      ach.Title,
			Category:   ach.Category,
			Icon:       ach.Icon,
			XPReward:   ach.XPReward,
			UnlockedAt: &unlocked,
		})
	}
	return resp
}
