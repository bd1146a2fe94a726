package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/shared"
)

type GoalHandler struct {
	goalSvc GoalServiceInterface
}

func NewGoalHandler(goalSvc GoalServiceInterface) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param goalRequest body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} shared.Response{data=dto.GoalResponse}
// @Router /api/v1/goals [post]
func (h *GoalHandler) CreateGoal(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.goalSvc.CreateGoal(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Goal created", resp)
}

// @Summary List goals
// @Tags goals
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status" Enums(active, completed, abandoned)
// @Success 200 {object} shared.Response{data=[]dto.GoalResponse}
// @Router /api/v1/goals [get]
func (h *GoalHandler) ListGoals(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.goalSvc.ListGoals(userID, c.Query("status"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a goal
// @Tags goals
// @Produce json
// @Security Bearer
// @Param goalId path string true "Goal ID"
// @Success 200 {object} shared.Response{data=dto.GoalResponse}
// @Router /api/v1/goals/{goalId} [get]
func (h *GoalHandler) GetGoal(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.goalSvc.GetGoal(userID, c.Params("goalId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security Bearer
// @Param goalId path string true "Goal ID"
// @Param updateRequest body dto.UpdateGoalRequest true "Fields to update"
// @Success 200 {object} shared.Response{data=dto.GoalResponse}
// @Router /api/v1/goals/{goalId} [put]
func (h *GoalHandler) UpdateGoal(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.goalSvc.UpdateGoal(userID, c.Params("goalId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Goal updated", resp)
}

// @Summary Complete a goal
// @Description Marks the goal completed and awards priority-based XP
// @Tags goals
// @Produce json
// @Security Bearer
// @Param goalId path string true "Goal ID"
// @Success 200 {object} shared.Response{data=dto.GoalResponse}
// @Router /api/v1/goals/{goalId}/complete [post]
func (h *GoalHandler) CompleteGoal(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, xp, err := h.goalSvc.CompleteGoal(userID, c.Params("goalId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Goal completed", fiber.Map{
		"goal":       resp,
		"xp_awarded": xp,
	})
}

// @Summary Toggle a milestone
// @Tags goals
// @Produce json
// @Security Bearer
// @Param goalId path string true "Goal ID"
// @Param index path int true "Milestone index"
// @Success 200 {object} shared.Response{data=dto.GoalResponse}
// @Router /api/v1/goals/{goalId}/milestones/{index} [post]
func (h *GoalHandler) ToggleMilestone(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid milestone index")
	}

	resp, err := h.goalSvc.ToggleMilestone(userID, c.Params("goalId"), index)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Milestone toggled", resp)
}

// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Security Bearer
// @Param goalId path string true "Goal ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/goals/{goalId} [delete]
func (h *GoalHandler) DeleteGoal(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.goalSvc.DeleteGoal(userID, c.Params("goalId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Goal deleted", nil)
}
