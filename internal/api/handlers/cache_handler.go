package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/offline"
	"github.com/gemma3n-site/backend/pkg/logger"
)

// CacheHandler exposes the offline controller's control channel over HTTP.
type CacheHandler struct {
	controller *offline.Controller
}

func NewCacheHandler(controller *offline.Controller) *CacheHandler {
	return &CacheHandler{
		controller: controller,
	}
}

// HandleMessage accepts a control message ({"type": ..., "payload": ...})
// and dispatches it to the controller. Unknown types are acknowledged and
// ignored, matching the controller's own tolerance.
func (h *CacheHandler) HandleMessage(c *fiber.Ctx) error {
	var req struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload,omitempty"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse control message", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "type is required",
		})
	}

	msg := offline.Message{
		Type:    req.Type,
		Payload: req.Payload,
	}

	if err := h.controller.HandleMessage(c.Context(), msg); err != nil {
		logger.Error("Failed to handle control message",
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to handle message",
		})
	}

	return c.JSON(fiber.Map{
		"status": "accepted",
		"type":   req.Type,
	})
}

// GetStatus reports the controller lifecycle phase.
func (h *CacheHandler) GetStatus(c *fiber.Ctx) error {
	phase := "new"
	switch h.controller.Phase() {
	case offline.PhaseInstalled:
		phase = "installed"
	case offline.PhaseActive:
		phase = "active"
	}

	return c.JSON(fiber.Map{
		"phase": phase,
	})
}
