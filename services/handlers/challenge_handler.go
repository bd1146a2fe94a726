package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/shared"
)

type ChallengeHandler struct {
	challengeSvc ChallengeServiceInterface
}

func NewChallengeHandler(challengeSvc ChallengeServiceInterface) *ChallengeHandler {
	return &ChallengeHandler{challengeSvc: challengeSvc}
}

// @Summary List coding challenges
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param difficulty query string false "Filter by difficulty" Enums(easy, medium, hard)
// @Param category query string false "Filter by category"
// @Success 200 {object} shared.Response{data=[]dto.ChallengeResponse}
// @Router /api/v1/challenges [get]
func (h *ChallengeHandler) ListChallenges(c *fiber.Ctx) error {
	resp, err := h.challengeSvc.ListChallenges(c.Query("difficulty"), c.Query("category"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get a coding challenge
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param slug path string true "Challenge slug"
// @Success 200 {object} shared.Response{data=dto.ChallengeResponse}
// @Router /api/v1/challenges/{slug} [get]
func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	resp, err := h.challengeSvc.GetChallenge(c.Params("slug"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Submit a challenge attempt
// @Description First solve awards difficulty XP; repeats record practice only
// @Tags challenges
// @Accept json
// @Produce json
// @Security Bearer
// @Param challengeId path string true "Challenge ID"
// @Param submitRequest body dto.SubmitChallengeRequest true "Submission details"
// @Success 201 {object} shared.Response{data=dto.SubmissionResponse}
// @Router /api/v1/challenges/{challengeId}/submit [post]
func (h *ChallengeHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.challengeSvc.Submit(userID, c.Params("challengeId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Submission recorded", resp)
}

// @Summary List own submissions
// @Tags challenges
// @Produce json
// @Security Bearer
// @Param limit query int false "Max submissions to return"
// @Success 200 {object} shared.Response{data=[]dto.SubmissionResponse}
// @Router /api/v1/submissions [get]
func (h *ChallengeHandler) ListSubmissions(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	resp, err := h.challengeSvc.ListSubmissions(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
