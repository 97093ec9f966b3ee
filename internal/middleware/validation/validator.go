package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	MaxPromptLength     int
	AllowedContentTypes []string
	Logger              *zap.Logger
}

// Middleware validates request bodies before they reach the handlers. Only
// the endpoints with free-form input get inspected.
func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxPromptLength == 0 {
		cfg.MaxPromptLength = 5000
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == "POST" || c.Method() == "PUT" {
			contentType := c.Get("Content-Type")
			if contentType != "" {
				allowed := false
				for _, allowedType := range cfg.AllowedContentTypes {
					if strings.Contains(contentType, allowedType) {
						allowed = true
						break
					}
				}
				if !allowed {
					return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
						"error": "Unsupported content type",
					})
				}
			}
		}

		path := c.Path()

		if strings.Contains(path, "/api/v1/generate") {
			var req map[string]interface{}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON format",
				})
			}

			prompt, ok := req["prompt"].(string)
			if !ok || prompt == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Prompt is required and must be a string",
				})
			}

			if len(prompt) > cfg.MaxPromptLength {
				cfg.Logger.Warn("Oversized prompt rejected",
					zap.String("ip", c.IP()),
					zap.Int("length", len(prompt)),
				)
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Prompt exceeds maximum length",
				})
			}
		}

		if strings.Contains(path, "/api/v1/recommend") {
			var req map[string]interface{}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON format",
				})
			}

			if ram, ok := req["ram"].(float64); ok && ram < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "RAM must be non-negative",
				})
			}
		}

		if strings.Contains(path, "/api/v1/cache/message") {
			var req map[string]interface{}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON format",
				})
			}

			if payload, ok := req["payload"].(map[string]interface{}); ok {
				if urls, ok := payload["urls"].([]interface{}); ok {
					for _, u := range urls {
						s, ok := u.(string)
						if !ok || !isRootRelative(s) {
							return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
								"error": "Precache URLs must be root-relative paths",
							})
						}
					}
				}
			}
		}

		return c.Next()
	}
}

// isRootRelative accepts only same-origin paths, so the control channel can
// never be used to pull arbitrary hosts into the cache.
func isRootRelative(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//")
}
