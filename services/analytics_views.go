package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/model"
	"github.com/ascent-labs/ascent_api/shared"
)

// All views compute on read. Users with no analytics row get
// zero-valued responses rather than 404s.

const leaderboardCacheTTL = time.Minute

// GetAnalytics returns the rollup scalars for a user.
func (svc *AnalyticsService) GetAnalytics(userID string) (*dto.AnalyticsResponse, error) {
	analytics, err := svc.loadOrZero(userID)
	if err != nil {
		return nil, err
	}
	return svc.toAnalyticsResponse(analytics, nil), nil
}

func (svc *AnalyticsService) loadOrZero(userID string) (*model.UserAnalytics, error) {
	analytics, err := svc.sqlSvc.Analytics().GetAnalytics(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.UserAnalytics{
				UserID:        userID,
				CurrentLevel:  1,
				XPToNextLevel: shared.XPPerLevel,
			}, nil
		}
		return nil, svc.sqlSvc.HandleError(err)
	}
	return analytics, nil
}

// ==================== DASHBOARD ====================

func (svc *AnalyticsService) GetDashboard(userID string) (*dto.DashboardResponse, error) {
	analytics, err := svc.loadOrZero(userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Analytics: *svc.toAnalyticsResponse(analytics, nil),
	}

	if analytics.ID != "" {
		today := truncateDay(time.Now())
		from := today.AddDate(0, 0, -6)
		days, err := svc.sqlSvc.Analytics().GetDailyActivities(analytics.ID, from, today)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		resp.LastWeek = toDailyResponses(days)
	}

	goalCounts, err := svc.sqlSvc.Goals().CountGoalsByStatus(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	resp.Goals = dto.GoalCountsResponse{
		Active:    goalCounts[shared.GoalStatusActive],
		Completed: goalCounts[shared.GoalStatusCompleted],
		Abandoned: goalCounts[shared.GoalStatusAbandoned],
	}
	resp.Goals.Total = resp.Goals.Active + resp.Goals.Completed + resp.Goals.Abandoned

	total, avgRating, _, err := svc.sqlSvc.Interviews().GetAggregates(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	resp.Interviews = dto.InterviewSummary{TotalSessions: total, AvgRating: avgRating}

	skills, err := svc.sqlSvc.Analytics().GetTopSkills(userID, 5)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for _, s := range skills {
		resp.TopSkills = append(resp.TopSkills, dto.SkillProgressResponse{
			SkillName:     s.SkillName,
			Tier:          s.Tier,
			Progress:      s.Progress,
			PracticeHours: s.PracticeHours,
			LastPracticed: s.LastPracticed,
		})
	}

	recent, err := svc.sqlSvc.Analytics().GetRecentAchievements(userID, 3)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	for _, ach := range recent {
		unlocked := ach.UnlockedAt
		resp.RecentAchievements = append(resp.RecentAchievements, dto.AchievementResponse{
			ID:         ach.AchievementID,
			Title:      ach.Title,
			Category:   ach.Category,
			Icon:       ach.Icon,
			XPReward:   ach.XPReward,
			UnlockedAt: &unlocked,
		})
	}

	resp.Insights = buildInsights(skills, resp.LastWeek)
	return resp, nil
}

func toDailyResponses(days []model.DailyActivity) []dto.DailyActivityResponse {
	out := make([]dto.DailyActivityResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailyActivityResponse{
			Date:                d.ActivityDate.Format("2006-01-02"),
			XPEarned:            d.XPEarned,
			TimeSpent:           d.TimeSpent,
			SessionsCount:       d.SessionsCount,
			ActivitiesCompleted: d.ActivitiesCompleted,
			Buckets: map[string]int{
				shared.ActivityInterviewPractice: d.InterviewPracticeCount,
				shared.ActivityCodingChallenges:  d.CodingChallengesCount,
				shared.ActivityResumeBuilding:    d.ResumeBuildingCount,
				shared.ActivityGoalTracking:      d.GoalTrackingCount,
				shared.ActivityCourseLearning:    d.CourseLearningCount,
				shared.ActivityNetworking:        d.NetworkingCount,
			},
		})
	}
	return out
}

func buildInsights(skills []model.SkillProgress, lastWeek []dto.DailyActivityResponse) dto.LearningInsights {
	insights := dto.LearningInsights{}

	if len(skills) > 0 {
		insights.StrongestSkill = skills[0].SkillName
		weakest := skills[len(skills)-1]
		if weakest.SkillName != insights.StrongestSkill {
			insights.FocusSuggestion = fmt.Sprintf("Spend more time on %s to round out your profile", weakest.SkillName)
		}
	}

	bestXP := 0
	for _, day := range lastWeek {
		if day.ActivitiesCompleted > 0 {
			insights.ActiveDaysInWeek++
		}
		if day.XPEarned > bestXP {
			bestXP = day.XPEarned
			insights.MostActiveDay = day.Date
		}
	}
	return insights
}

// ==================== LEADERBOARD ====================

// GetLeaderboard returns the top page for the sort key plus the
// requesting user's own rank. The top page is cached briefly in
// Redis; ranks are always computed fresh.
func (svc *AnalyticsService) GetLeaderboard(userID, sortBy string, limit int) (*dto.LeaderboardResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if _, ok := map[string]bool{
		"total_xp": true, "current_level": true, "current_streak": true,
		"goals_completed": true, "challenges_solved": true,
	}[sortBy]; !ok {
		sortBy = "total_xp"
	}

	resp := &dto.LeaderboardResponse{SortBy: sortBy}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", sortBy, limit)
	ctx := context.Background()

	var cached []dto.LeaderboardEntry
	if err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		resp.TopUsers = cached
	} else {
		rows, err := svc.sqlSvc.Analytics().GetLeaderboard(sortBy, limit)
		if err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}

		for i, row := range rows {
			resp.TopUsers = append(resp.TopUsers, dto.LeaderboardEntry{
				UserID:        row.UserID,
				Username:      row.Username,
				Rank:          i + 1,
				TotalXP:       row.TotalXP,
				CurrentLevel:  row.CurrentLevel,
				CurrentStreak: row.CurrentStreak,
			})
		}

		if err := svc.redisSvc.Set(ctx, cacheKey, resp.TopUsers, leaderboardCacheTTL); err != nil {
			log.WithError(err).Debug("Failed to cache leaderboard page")
		}
	}

	if userID != "" {
		entry, err := svc.currentUserEntry(userID, sortBy)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, svc.sqlSvc.HandleError(err)
			}
		} else {
			resp.CurrentUser = entry
		}
	}

	return resp, nil
}

func (svc *AnalyticsService) currentUserEntry(userID, sortBy string) (*dto.LeaderboardEntry, error) {
	analytics, err := svc.sqlSvc.Analytics().GetAnalytics(userID)
	if err != nil {
		return nil, err
	}

	rank, err := svc.sqlSvc.Analytics().GetUserRank(userID, sortBy)
	if err != nil {
		return nil, err
	}

	user, err := svc.sqlSvc.Users().GetUser(userID)
	if err != nil {
		return nil, err
	}

	return &dto.LeaderboardEntry{
		UserID:        userID,
		Username:      user.Username,
		Rank:          rank,
		TotalXP:       analytics.TotalXP,
		CurrentLevel:  analytics.CurrentLevel,
		CurrentStreak: analytics.CurrentStreak,
	}, nil
}

// ==================== STATISTICS ====================

func (svc *AnalyticsService) GetGoalStats(userID string) (*dto.GoalStatsResponse, error) {
	statusCounts, err := svc.sqlSvc.Goals().CountGoalsByStatus(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	byCategory, err := svc.sqlSvc.Goals().CountGoalsByCategory(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	byPriority, err := svc.sqlSvc.Goals().CountGoalsByPriority(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.GoalStatsResponse{
		Active:     statusCounts[shared.GoalStatusActive],
		Completed:  statusCounts[shared.GoalStatusCompleted],
		Abandoned:  statusCounts[shared.GoalStatusAbandoned],
		ByCategory: byCategory,
		ByPriority: byPriority,
	}
	resp.Total = resp.Active + resp.Completed + resp.Abandoned
	if resp.Total > 0 {
		resp.CompletionRate = float64(resp.Completed) / float64(resp.Total) * 100
	}
	return resp, nil
}

func (svc *AnalyticsService) GetInterviewStats(userID string) (*dto.InterviewStatsResponse, error) {
	total, avgRating, totalMinutes, err := svc.sqlSvc.Interviews().GetAggregates(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	byType, err := svc.sqlSvc.Interviews().CountSessionsByType(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return &dto.InterviewStatsResponse{
		TotalSessions: total,
		AvgRating:     avgRating,
		TotalMinutes:  totalMinutes,
		ByType:        byType,
	}, nil
}

func (svc *AnalyticsService) GetCodingStats(userID string) (*dto.CodingStatsResponse, error) {
	total, solved, err := svc.sqlSvc.Challenges().CountSubmissions(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	byDifficulty, err := svc.sqlSvc.Challenges().CountSolvedByDifficulty(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	byCategory, err := svc.sqlSvc.Challenges().CountSolvedByCategory(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	resp := &dto.CodingStatsResponse{
		TotalSubmissions: int(total),
		Solved:           int(solved),
		ByDifficulty:     byDifficulty,
		ByCategory:       byCategory,
	}
	if total > 0 {
		resp.AcceptanceRate = float64(solved) / float64(total) * 100
	}
	return resp, nil
}

func (svc *AnalyticsService) GetAchievements(userID string) ([]dto.AchievementResponse, error) {
	achievements, err := svc.sqlSvc.Analytics().GetUserAchievements(userID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	out := make([]dto.AchievementResponse, 0, len(achievements))
	for _, ach := range achievements {
		unlocked := ach.UnlockedAt
		out = append(out, dto.AchievementResponse{
			ID:         ach.AchievementID,
			Title:      ach.Title,
			Category:   ach.Category,
			Icon:       ach.Icon,
			XPReward:   ach.XPReward,
			UnlockedAt: &unlocked,
		})
	}
	return out, nil
}
