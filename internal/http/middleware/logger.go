package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Logger creates a logging middleware using zap. Requests for skipPaths are
// logged at debug level only.
func Logger(logger *zap.Logger, skipPaths ...string) fiber.Handler {
	quiet := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		quiet[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if rid := GetRequestID(c); rid != "" {
			fields = append(fields, zap.String("request_id", rid))
		}

		switch {
		case err != nil:
			logger.Error("request error", append(fields, zap.Error(err))...)
		case hasPath(quiet, c.Path()):
			logger.Debug("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		return err
	}
}

func hasPath(set map[string]struct{}, path string) bool {
	_, ok := set[path]
	return ok
}
