package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/ascent-labs/ascent_api/dto"
	"github.com/ascent-labs/ascent_api/shared"
)

type ChatHandler struct {
	chatSvc ChatServiceInterface
}

func NewChatHandler(chatSvc ChatServiceInterface) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// @Summary Ask the career assistant
// @Description Proxies to the assistant provider; degrades to canned guidance when the provider is unavailable
// @Tags chat
// @Accept json
// @Produce json
// @Security Bearer
// @Param chatRequest body dto.ChatRequest true "Message"
// @Success 200 {object} shared.Response{data=dto.ChatResponse}
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.chatSvc.Chat(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
