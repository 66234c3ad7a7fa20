package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/covid-dashboard/internal/config"
	"github.com/covid-dashboard/internal/delivery/http/handler"
	"github.com/covid-dashboard/internal/delivery/http/middleware"
	"github.com/covid-dashboard/internal/pkg/errors"
	"github.com/covid-dashboard/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	pageHandler      *handler.PageHandler
	layoutHandler    *handler.LayoutHandler
	figureHandler    *handler.FigureHandler
	dashboardHandler *handler.DashboardHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	pageHandler *handler.PageHandler,
	layoutHandler *handler.LayoutHandler,
	figureHandler *handler.FigureHandler,
	dashboardHandler *handler.DashboardHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "COVID-19 Dashboard",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		pageHandler:      pageHandler,
		layoutHandler:    layoutHandler,
		figureHandler:    figureHandler,
		dashboardHandler: dashboardHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (для тестов)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Dashboard page
	s.app.Get("/", s.pageHandler.RenderDashboard)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Layout routes
	api.Get("/layout", s.layoutHandler.GetLayout)
	api.Get("/date-range", s.layoutHandler.GetDateRange)

	// Figure routes
	api.Get("/boundaries.geojson", s.figureHandler.GetBoundaries)
	api.Get("/summary", s.figureHandler.GetSummary)
	api.Get("/summary/world", s.figureHandler.GetWorldSummary)
	api.Get("/charts/metric", s.figureHandler.GetMetricChart)
	api.Get("/maps/choropleth", s.figureHandler.GetChoropleth)

	// Session routes
	sessions := api.Group("/sessions")
	sessions.Post("", s.dashboardHandler.CreateSession)
	sessions.Get("/:id", s.dashboardHandler.GetSession)
	sessions.Delete("/:id", s.dashboardHandler.DeleteSession)
	sessions.Post("/:id/events", s.dashboardHandler.ApplyEvent)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		appErr = errors.ErrInternalServer

		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			code = fe.Code
			appErr = errors.New(httpErrorCode(code), fe.Message, code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "INVALID_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
