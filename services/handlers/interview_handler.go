package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/shared"
)

type InterviewHandler struct {
	interviewSvc InterviewServiceInterface
}

func NewInterviewHandler(interviewSvc InterviewServiceInterface) *InterviewHandler {
	return &InterviewHandler{interviewSvc: interviewSvc}
}

// @Summary Complete an interview practice session
// @Description Stores the session and awards rating-based XP
// @Tags interviews
// @Accept json
// @Produce json
// @Security Bearer
// @Param sessionRequest body dto.CompleteInterviewRequest true "Session details"
// @Success 201 {object} shared.Response{data=dto.InterviewSessionResponse}
// @Router /api/v1/interviews [post]
func (h *InterviewHandler) CompleteSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.interviewSvc.CompleteSession(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Session recorded", resp)
}

// @Summary List interview sessions
// @Tags interviews
// @Produce json
// @Security Bearer
// @Param limit query int false "Max sessions to return"
// @Success 200 {object} shared.Response{data=[]dto.InterviewSessionResponse}
// @Router /api/v1/interviews [get]
func (h *InterviewHandler) ListSessions(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.interviewSvc.ListSessions(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get an interview session
// @Tags interviews
// @Produce json
// @Security Bearer
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=dto.InterviewSessionResponse}
// @Router /api/v1/interviews/{sessionId} [get]
func (h *InterviewHandler) GetSession(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.interviewSvc.GetSession(userID, c.Params("sessionId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
