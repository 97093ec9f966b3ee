package gateway

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/offline"
	"github.com/gemma3n-site/backend/pkg/logger"
)

type Config struct {
	Controller *offline.Controller
	// SkipPrefixes are paths served by the app itself, never proxied.
	SkipPrefixes []string
}

// Handler routes every page and asset request through the offline
// controller. It is registered as the catch-all after the API routes.
func Handler(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, prefix := range cfg.SkipPrefixes {
			if strings.HasPrefix(c.Path(), prefix) {
				return c.Next()
			}
		}

		req, err := toRequest(c)
		if err != nil {
			logger.Warn("Failed to build gateway request", zap.Error(err))
			return c.Status(fiber.StatusBadRequest).SendString("Bad request")
		}

		resp := cfg.Controller.HandleRequest(c.Context(), req)

		for key, values := range resp.Header {
			for _, v := range values {
				c.Append(key, v)
			}
		}
		return c.Status(resp.StatusCode).Send(resp.Body)
	}
}

func toRequest(c *fiber.Ctx) (*offline.Request, error) {
	u, err := url.ParseRequestURI(c.OriginalURL())
	if err != nil {
		return nil, err
	}

	header := make(http.Header)
	c.Request().Header.VisitAll(func(key, value []byte) {
		header.Add(string(key), string(value))
	})

	return &offline.Request{
		Method: c.Method(),
		URL:    u,
		Header: header,
		Mode:   c.Get("Sec-Fetch-Mode"),
	}, nil
}
