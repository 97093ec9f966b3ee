package security

import (
	"github.com/gofiber/fiber/v2"
)

type HeadersConfig struct {
	UpstreamOrigin string
	IsDevelopment  bool
}

// HeadersMiddleware sets the security headers for both the API surface and
// the proxied pages. The CSP mirrors what the static site itself ships, with
// the upstream origin allowed for connections.
func HeadersMiddleware(cfg HeadersConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if !cfg.IsDevelopment {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		connectSrc := "'self'"
		if cfg.UpstreamOrigin != "" {
			connectSrc += " " + cfg.UpstreamOrigin
		}

		csp := "default-src 'self'; " +
			"script-src 'self' 'unsafe-inline'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"img-src 'self' data: https:; " +
			"font-src 'self' data:; " +
			"connect-src " + connectSrc + "; " +
			"frame-ancestors 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
		c.Set("Content-Security-Policy", csp)

		return c.Next()
	}
}
