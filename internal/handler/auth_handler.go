package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/session"
	"github.com/noah-isme/asdos-web/internal/token"
	"github.com/noah-isme/asdos-web/internal/utils"
)

// AuthHandler signs users in and out and reports the current session.
type AuthHandler struct {
	auth     service.AuthService
	sessions *session.Manager
	limiter  fiber.Handler
	logger   zerolog.Logger
}

// NewAuthHandler constructs the handler. limiter guards the login form and may be nil.
func NewAuthHandler(auth service.AuthService, sessions *session.Manager, limiter fiber.Handler, logger zerolog.Logger) *AuthHandler {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.limiter, h.login)
	router.Post("/register", h.register)
	router.Post("/logout", h.logout)
	router.Get("/session", h.current)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	result, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to sign in")
	}

	tok, err := h.sessions.Set(c, result.Token)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("backend issued an unusable token")
		return utils.SendError(c, fiber.StatusBadGateway, "backend issued an unusable token")
	}

	message := result.Message
	if message == "" {
		message = "login successful"
	}
	return utils.SendSuccess(c, message, sessionResponse(tok))
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	message, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "failed to register")
	}
	if message == "" {
		message = "registration successful"
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, message, fiber.Map{"login": middleware.LoginPath})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.sessions.Clear(c)
	return utils.SendSuccess(c, "logged out", dto.SessionResponse{})
}

func (h *AuthHandler) current(c *fiber.Ctx) error {
	tok, err := h.sessions.Current(c)
	if err != nil {
		return utils.SendSuccess(c, "no active session", dto.SessionResponse{})
	}
	return utils.SendSuccess(c, "session active", sessionResponse(tok))
}

func sessionResponse(tok token.Token) dto.SessionResponse {
	response := dto.SessionResponse{
		Authenticated: true,
		Subject:       tok.Subject(),
		Role:          string(tok.Role()),
		UserID:        tok.UserID(),
		Dashboard:     middleware.DashboardFor(tok.Role()),
	}
	if exp := tok.ExpiresAt(); !exp.IsZero() {
		response.ExpiresAt = &exp
	}
	return response
}
