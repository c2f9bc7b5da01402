package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/GifBoard/internal/http/view"
	"go.uber.org/zap"
)

// PageHandler serves the single-page gif client.
type PageHandler struct {
	logger *zap.Logger
}

// NewPageHandler creates a page handler.
func NewPageHandler(logger *zap.Logger) *PageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{logger: logger}
}

// Register wires the page route onto the provided router.
func (h *PageHandler) Register(router fiber.Router) {
	router.Get("/", h.Index)
}

// Index renders the gif form and list shell; the list itself is fetched client side.
func (h *PageHandler) Index(c *fiber.Ctx) error {
	html, err := view.RenderIndexPage(view.IndexPageData{
		Title:   "Gifs",
		GifsURL: "/api/v1/gifs",
	})
	if err != nil {
		h.logger.Error("failed to render index page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to render page",
		})
	}

	return c.
		Type("html", "utf-8").
		SendString(html)
}
