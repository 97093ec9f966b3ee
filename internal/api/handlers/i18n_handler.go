package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gemma3n-site/backend/internal/i18n"
)

type I18nHandler struct {
	translator *i18n.Translator
	routes     *i18n.RouteMapping
}

func NewI18nHandler(translator *i18n.Translator, routes *i18n.RouteMapping) *I18nHandler {
	return &I18nHandler{
		translator: translator,
		routes:     routes,
	}
}

// GetTable returns the full UI string table for a language, merged over the
// default language so every key resolves.
func (h *I18nHandler) GetTable(c *fiber.Ctx) error {
	lang := i18n.Language(c.Params("lang"))
	if !i18n.IsSupported(lang) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unsupported language",
		})
	}

	return c.JSON(fiber.Map{
		"lang":    lang,
		"strings": h.translator.Table(lang),
	})
}

// GetRoute resolves a path's counterpart in every supported language, for
// the language switcher.
func (h *I18nHandler) GetRoute(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "path is required",
		})
	}

	return c.JSON(fiber.Map{
		"path":       path,
		"lang":       i18n.LangFromPath(path),
		"alternates": h.routes.AlternateRoutes(path),
	})
}
