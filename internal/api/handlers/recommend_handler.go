package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/recommend"
	"github.com/gemma3n-site/backend/pkg/logger"
)

type RecommendHandler struct {
	engine *recommend.Engine
}

func NewRecommendHandler(engine *recommend.Engine) *RecommendHandler {
	return &RecommendHandler{
		engine: engine,
	}
}

// HandleRecommend scores the catalog against the submitted hardware and
// preferences and returns the full ranking plus the top pick.
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req recommend.UserInput

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse recommendation request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.UseCase == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "use_case is required",
		})
	}

	scores := h.engine.Recommend(req)
	if len(scores) == 0 {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "No models available",
		})
	}

	return c.JSON(fiber.Map{
		"recommendation": scores[0],
		"ranking":        scores,
	})
}

func (h *RecommendHandler) GetModels(c *fiber.Ctx) error {
	useCase := c.Query("use_case")
	if useCase != "" {
		return c.JSON(fiber.Map{
			"models": h.engine.ModelsByUseCase(useCase),
		})
	}

	return c.JSON(fiber.Map{
		"models": h.engine.Models(),
	})
}

func (h *RecommendHandler) GetModel(c *fiber.Ctx) error {
	id := c.Params("id")

	model, ok := h.engine.ModelByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Model not found",
		})
	}

	return c.JSON(model)
}

// GetProfiles returns the hardware and use-case profiles that drive the
// selector UI.
func (h *RecommendHandler) GetProfiles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"hardware":  h.engine.HardwareProfiles(),
		"use_cases": h.engine.UseCaseProfiles(),
	})
}
