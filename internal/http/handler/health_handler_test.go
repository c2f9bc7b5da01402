package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name   string
		pinger Pinger
		status int
		want   string
	}{
		{name: "no database", pinger: nil, status: fiber.StatusOK, want: `"status":"ok"`},
		{name: "database up", pinger: pingerFunc(func(context.Context) error { return nil }), status: fiber.StatusOK, want: `"postgres":"ok"`},
		{name: "database down", pinger: pingerFunc(func(context.Context) error { return errors.New("refused") }), status: fiber.StatusServiceUnavailable, want: `"postgres":"unreachable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			NewHealthHandler(nil, tt.pinger).Register(app)

			status, raw := doJSON(t, app, http.MethodGet, "/health", "")
			assert.Equal(t, tt.status, status)
			assert.Contains(t, string(raw), tt.want)
		})
	}
}

func TestPageHandler_Index(t *testing.T) {
	app := fiber.New()
	NewPageHandler(nil).Register(app)

	status, raw := doJSON(t, app, http.MethodGet, "/", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `id="gif-form"`)
}
