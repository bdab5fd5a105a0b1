// Package router builds the fiber application shared by the long-running
// server and the serverless entry point.
package router

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "github.com/bigexperiment/youtube-transcript-Api/docs"
	"github.com/bigexperiment/youtube-transcript-Api/handlers"
	"github.com/bigexperiment/youtube-transcript-Api/middleware"
	"github.com/bigexperiment/youtube-transcript-Api/utils"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Handler *handlers.ApplicationHandler
	Logger  logrus.FieldLogger
	// MCP is mounted at /mcp when non-nil.
	MCP http.Handler
}

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
)

// New returns the configured fiber app.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "youtube-transcript-api",
		DisableStartupMessage: true,
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		ErrorHandler:          errorHandler(deps.Logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(middleware.RequestLogger(deps.Logger))

	h := deps.Handler
	app.Get("/", h.Home)
	app.Get("/health", h.Health)
	app.Get("/metrics", h.GetMetrics)
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	app.Get("/transcript", h.GetTranscript)
	app.Get("/transcript/text", h.GetTranscriptText)
	app.Post("/transcript/batch", h.BatchTranscripts)

	if deps.MCP != nil {
		app.All("/mcp", adaptor.HTTPHandler(deps.MCP))
	}

	app.Use(func(c *fiber.Ctx) error {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Not found")
	})
	return app
}

func errorHandler(logger logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			logger.WithError(err).Error("Unhandled error")
		}
		return utils.RespondWithError(c, code, err.Error())
	}
}
