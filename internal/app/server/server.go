package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sifan077/GifBoard/internal/app/service"
	inthttp "github.com/sifan077/GifBoard/internal/http/handler"
	"github.com/sifan077/GifBoard/internal/http/middleware"
	"go.uber.org/zap"
)

// Dependencies bundles infrastructure dependencies required by the HTTP server.
type Dependencies struct {
	Logger      *zap.Logger
	Postgres    inthttp.Pinger
	Gifs        service.GifService
	Metrics     middleware.RequestObserver
	CORSOrigins string
}

// Server wraps the Fiber application and its dependencies.
type Server struct {
	app  *fiber.App
	deps Dependencies
}

// New creates a new HTTP server instance with default routes.
func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "GifBoard",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:  app,
		deps: deps,
	}

	s.registerMiddleware()
	s.registerRoutes()
	return s
}

// App exposes the underlying Fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts the Fiber server on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the Fiber server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerMiddleware() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.deps.Logger, "/health"))
	if s.deps.Metrics != nil {
		s.app.Use(middleware.Metrics(s.deps.Metrics))
	}
	// innermost, so the 500 it writes is still logged and counted
	s.app.Use(middleware.Recovery(s.deps.Logger))
	s.app.Use("/api", middleware.CORS(s.deps.CORSOrigins))
}

func (s *Server) registerRoutes() {
	inthttp.NewHealthHandler(s.deps.Logger, s.deps.Postgres).Register(s.app)
	inthttp.NewGifHandler(inthttp.GifDeps{
		Logger:     s.deps.Logger,
		GifService: s.deps.Gifs,
	}).Register(s.app)
	inthttp.NewPageHandler(s.deps.Logger).Register(s.app)
}
