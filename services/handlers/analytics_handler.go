package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/shared"
)

type AnalyticsHandler struct {
	analyticsSvc AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsSvc AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// @Summary Record an activity
// @Description Fold one activity into the user's analytics: daily bucket, XP, streak and achievements
// @Tags analytics
// @Accept json
// @Produce json
// @Security Bearer
// @Param activityRequest body dto.RecordActivityRequest true "Activity details"
// @Success 200 {object} shared.Response{data=dto.AnalyticsResponse}
// @Router /api/v1/activity [post]
func (h *AnalyticsHandler) RecordActivity(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.analyticsSvc.RecordActivity(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Activity recorded", resp)
}

// @Summary Get own analytics
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.AnalyticsResponse}
// @Router /api/v1/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetAnalytics(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get dashboard
// @Description Rollup view: analytics scalars, last-7-day activity, goal counts, interview summary, top skills, recent achievements and insights
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.DashboardResponse}
// @Router /api/v1/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetDashboard(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get leaderboard
// @Tags analytics
// @Produce json
// @Security Bearer
// @Param sort_by query string false "Sort field" Enums(total_xp, current_level, current_streak, goals_completed, challenges_solved)
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *AnalyticsHandler) GetLeaderboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	sortBy := c.Query("sort_by", "total_xp")
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	resp, err := h.analyticsSvc.GetLeaderboard(userID, sortBy, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List own achievements
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.AchievementResponse}
// @Router /api/v1/achievements [get]
func (h *AnalyticsHandler) GetAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetAchievements(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Record a skill practice session
// @Tags skills
// @Accept json
// @Produce json
// @Security Bearer
// @Param practiceRequest body dto.PracticeSkillRequest true "Practice details"
// @Success 200 {object} shared.Response{data=dto.SkillProgressResponse}
// @Router /api/v1/skills/practice [post]
func (h *AnalyticsHandler) PracticeSkill(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.PracticeSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.analyticsSvc.PracticeSkill(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Practice recorded", resp)
}

// @Summary List own skills
// @Tags skills
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=[]dto.SkillProgressResponse}
// @Router /api/v1/skills [get]
func (h *AnalyticsHandler) GetSkills(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetUserSkills(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Goal statistics
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.GoalStatsResponse}
// @Router /api/v1/stats/goals [get]
func (h *AnalyticsHandler) GetGoalStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetGoalStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Interview statistics
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.InterviewStatsResponse}
// @Router /api/v1/stats/interviews [get]
func (h *AnalyticsHandler) GetInterviewStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetInterviewStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Coding statistics
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.CodingStatsResponse}
// @Router /api/v1/stats/coding [get]
func (h *AnalyticsHandler) GetCodingStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.analyticsSvc.GetCodingStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
