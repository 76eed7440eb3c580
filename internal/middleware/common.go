package middleware

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Config customises the middleware registration pipeline.
type Config struct {
	Logger *zerolog.Logger
	// AllowOrigins lists the front-end origins allowed to send the session
	// cookie. Empty means any origin, without credentials.
	AllowOrigins string
}

const accessLogFormat = "${time} ${locals:" + localCorrelationID + "} ${status} ${method} ${path} ${latency}\n"

// Register attaches recovery, correlation, metrics, access logging and CORS,
// in that order, ahead of every route.
func Register(app *fiber.App, cfg Config) {
	base := zerolog.New(io.Discard)
	if cfg.Logger != nil {
		base = *cfg.Logger
	}

	origins := strings.TrimSpace(cfg.AllowOrigins)
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Logger != nil}))
	app.Use(CorrelationID())
	app.Use(Observability(base))
	app.Use(logger.New(logger.Config{Format: accessLogFormat}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + CorrelationHeader,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		ExposeHeaders:    CorrelationHeader,
	}))
}
