package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/sifan077/GifBoard/internal/app/model"
	"github.com/sifan077/GifBoard/internal/app/repository"
	"github.com/sifan077/GifBoard/internal/app/service"
	"go.uber.org/zap"
)

// GifDeps groups dependencies required by gif API handlers.
type GifDeps struct {
	Logger     *zap.Logger
	GifService service.GifService
}

// GifHandler implements the /api/v1/gifs endpoints.
type GifHandler struct {
	logger     *zap.Logger
	gifService service.GifService
}

// NewGifHandler creates a gif handler with the provided dependencies.
func NewGifHandler(deps GifDeps) *GifHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GifHandler{
		logger:     logger,
		gifService: deps.GifService,
	}
}

// Register wires gif routes onto the provided router.
func (h *GifHandler) Register(router fiber.Router) {
	api := router.Group("/api/v1")
	{
		gifs := api.Group("/gifs")
		{
			gifs.Get("/", h.ListGifs)
			gifs.Post("/", h.CreateGif)
			gifs.Get("/:id", h.GetGif)
		}
	}
}

// GifParams carries the permitted gif attributes.
type GifParams struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Likes *int   `json:"likes,omitempty"`
}

// CreateGifRequest is the POST body. Attributes are normally nested under
// "gif"; a flat body is accepted as well.
type CreateGifRequest struct {
	Gif *GifParams `json:"gif"`
	GifParams
}

func (r CreateGifRequest) params() GifParams {
	if r.Gif != nil {
		return *r.Gif
	}
	return r.GifParams
}

// GifResponse is the JSON representation of a gif.
type GifResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Likes int    `json:"likes"`
}

func toGifResponse(gif model.Gif) GifResponse {
	return GifResponse{
		ID:    gif.ID,
		Name:  gif.Name,
		URL:   gif.URL,
		Likes: gif.Likes,
	}
}

// ListGifs handles GET /api/v1/gifs
func (h *GifHandler) ListGifs(c *fiber.Ctx) error {
	gifs, err := h.gifService.ListGifs(userContext(c))
	if err != nil {
		h.logger.Error("failed to list gifs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list gifs",
		})
	}

	return c.JSON(lo.Map(gifs, func(gif model.Gif, _ int) GifResponse {
		return toGifResponse(gif)
	}))
}

// CreateGif handles POST /api/v1/gifs
func (h *GifHandler) CreateGif(c *fiber.Ctx) error {
	var req CreateGifRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	params := req.params()
	gif, err := h.gifService.CreateGif(userContext(c), service.CreateGifInput{
		Name:  params.Name,
		URL:   params.URL,
		Likes: params.Likes,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"errors": verr.Messages(),
			})
		}
		h.logger.Error("failed to create gif", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create gif",
		})
	}

	return c.JSON(toGifResponse(*gif))
}

// GetGif handles GET /api/v1/gifs/:id
func (h *GifHandler) GetGif(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "gif not found",
		})
	}

	gif, err := h.gifService.GetGif(userContext(c), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrGifNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "gif not found",
			})
		}
		h.logger.Error("failed to get gif", zap.Error(err), zap.Int("id", id))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to get gif",
		})
	}

	return c.JSON(toGifResponse(*gif))
}

func userContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}
