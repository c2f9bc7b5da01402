package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS allows cross-origin reads and creates on the JSON API. origins is a
// comma separated allow-list; "*" or "" allows any origin.
func CORS(origins string) fiber.Handler {
	allowed := make(map[string]struct{})
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" && o != "*" {
			allowed[o] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		switch {
		case len(allowed) == 0:
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
				c.Vary(fiber.HeaderOrigin)
			}
		}
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Origin, Content-Type, Accept, X-Request-ID")
		c.Set(fiber.HeaderAccessControlExposeHeaders, "Content-Length, Content-Type, X-Request-ID")
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
