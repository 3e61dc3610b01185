package api

import (
	"errors"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/rocksolid/rocksolid/api/mcp"
	"github.com/rocksolid/rocksolid/pkg/eventstream/nop"
	"github.com/rocksolid/rocksolid/pkg/logger"
	"github.com/rocksolid/rocksolid/pkg/storage"
)

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server is the API server for routines and skills.
type Server struct {
	config Config
	storer storage.Driver
	logger *zap.Logger
	app    *fiber.App
}

// NewServer creates a new API server.
// The storer is injected to allow sharing with other components.
func NewServer(config Config, storer storage.Driver, log *zap.Logger) (*Server, error) {
	if storer == nil {
		return nil, errors.New("storage driver is required")
	}
	if config.Publisher == nil {
		config.Publisher = nop.NewPublisher()
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config: config,
		storer: storer,
		logger: logger.OrNop(log),
		app:    app,
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	app.Get("/ping", s.handlePing)

	app.Get("/routines", s.handleListRoutines)
	app.Post("/routines", s.handleCreateRoutine)
	app.Get("/routines/:id", s.handleGetRoutine)
	app.Delete("/routines/:id", s.handleDeleteRoutine)

	app.Get("/v1/skills", s.handleSearchSkills)
	app.Get("/v1/skills/:ref", s.handleGetSkill)
	app.Get("/v1/yoga", s.handleYoga)
	app.Get("/v1/yoga/:route", s.handleYoga)

	mcpServer, err := mcp.NewServer(mcp.Config{
		Searcher: config.Searcher,
		Noop:     config.Searcher == nil,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, err
	}
	app.All("/mcp", adaptor.HTTPHandler(mcpServer.Handler()))

	return s, nil
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
