package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

// ChatHandler exposes the assistant over JSON.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Transcript GET /api/chat.
func (h *ChatHandler) Transcript(c *fiber.Ctx) error {
	transcript, err := h.chat.Transcript(c.UserContext(), visitorID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTranscriptResponse(transcript)})
}

// Send POST /api/chat.
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	transcript, err := h.chat.HandleMessage(c.UserContext(), visitorID(c), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTranscriptResponse(transcript)})
}
