package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/honor"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/token"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// actorFromContext rebuilds the signed-in user from what the route guard stored.
func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:    localString(c, middleware.LocalUserID),
		Role:  token.Role(localString(c, middleware.LocalRole)),
		Token: localString(c, middleware.LocalToken),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

func validationDetails(err error) []FieldError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{Field: lowerFirst(fe.Field()), Rule: fe.Tag()})
	}
	return details
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// respondError maps service and backend failures to the JSON envelope.
// fallback is the message used for unexpected errors.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	var apiErr *backend.APIError

	switch {
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusUnprocessableEntity, "validation failed", validationDetails(err))
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrLocked), errors.Is(err, service.ErrLowonganClosed):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, backend.ErrInvalidID),
		errors.Is(err, honor.ErrInvalidTime),
		errors.Is(err, honor.ErrInvalidPeriod):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return utils.Fail(c, apiErr.StatusCode, apiErr.Message(), apiErr.Messages)
		}
		requestLogger(logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusBadGateway, apiErr.Message())
	case errors.Is(err, backend.ErrUnavailable):
		requestLogger(logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusBadGateway, "backend unavailable")
	default:
		requestLogger(logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
