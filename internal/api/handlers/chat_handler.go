package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/chat"
	"github.com/gemma3n-site/backend/pkg/logger"
)

type ChatHandler struct {
	generator chat.Generator
}

func NewChatHandler(generator chat.Generator) *ChatHandler {
	return &ChatHandler{
		generator: generator,
	}
}

func (h *ChatHandler) HandleGenerate(c *fiber.Ctx) error {
	var req chat.Params

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse generate request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Prompt is required",
		})
	}

	result, err := h.generator.Generate(c.Context(), req)
	if err != nil {
		logger.Error("Failed to generate response", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate response",
		})
	}

	return c.JSON(fiber.Map{
		"content":       result.Content,
		"usage":         result.Usage,
		"finish_reason": result.FinishReason,
	})
}
