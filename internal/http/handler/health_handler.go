package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint.
type HealthHandler struct {
	logger   *zap.Logger
	postgres Pinger
}

// NewHealthHandler creates a health handler. A nil pinger skips the database check.
func NewHealthHandler(logger *zap.Logger, postgres Pinger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{logger: logger, postgres: postgres}
}

// Register wires the health route onto the provided router.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.Health)
}

// Health is a simple endpoint so we know the service and its database are up.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	status := fiber.StatusOK
	body := fiber.Map{
		"service": "GifBoard",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	if h.postgres != nil {
		ctx, cancel := context.WithTimeout(userContext(c), healthPingTimeout)
		defer cancel()

		if err := h.postgres.Ping(ctx); err != nil {
			h.logger.Warn("postgres health check failed", zap.Error(err))
			status = fiber.StatusServiceUnavailable
			body["status"] = "degraded"
			body["postgres"] = "unreachable"
		} else {
			body["postgres"] = "ok"
		}
	}

	return c.Status(status).JSON(body)
}
