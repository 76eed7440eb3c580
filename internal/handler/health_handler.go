package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/asdos-web/internal/config"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Environment  string    `json:"environment"`
	VerifyTokens bool      `json:"verifyTokens"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:       "ok",
			Timestamp:    time.Now().UTC(),
			Service:      cfg.AppName,
			Environment:  cfg.AppEnv,
			VerifyTokens: cfg.JWTSecret != "",
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}

// Unauthorized is the landing route for users whose role may not open a dashboard.
func Unauthorized() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusForbidden, "you are not allowed to open this page")
	}
}
