package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestObserver receives one call per finished request.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics reports every request to obs, labelled by the matched route pattern
// so ids do not explode label cardinality.
func Metrics(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		obs.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
