package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/delivery/http/handler"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/delivery/http/middleware"
)

// Server is the Fiber HTTP server for the read API and scrape control.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	campgroundHandler *handler.CampgroundHandler
	scrapeHandler     *handler.ScrapeHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	campgroundHandler *handler.CampgroundHandler,
	scrapeHandler *handler.ScrapeHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Dyrt Campground Scraper",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		campgroundHandler: campgroundHandler,
		scrapeHandler:     scrapeHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Campground routes
	api.Get("/campgrounds", s.campgroundHandler.List)
	api.Get("/campgrounds/:id", s.campgroundHandler.GetByID)

	// Scrape routes
	api.Post("/scrape/run", s.scrapeHandler.TriggerRun)
	api.Get("/scrape/logs", s.scrapeHandler.ListLogs)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
