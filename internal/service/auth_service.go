package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
)

// AuthBackend is the slice of the backend client used for sign-in.
type AuthBackend interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error)
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
}

// AuthService signs users in and registers students.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error)
	Register(ctx context.Context, req dto.RegisterRequest) (string, error)
}

type authService struct {
	backend   AuthBackend
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(backend AuthBackend, validate *validator.Validate, logger zerolog.Logger) AuthService {
	return &authService{
		backend:   backend,
		validator: validate,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResult{}, err
	}

	result, err := s.backend.Login(ctx, req)
	if err != nil {
		return dto.LoginResult{}, err
	}
	if strings.TrimSpace(result.Token) == "" {
		s.logger.Error().Str("username", req.Username).Msg("backend accepted login without a token")
		return dto.LoginResult{}, ErrInvalidInput
	}

	s.logger.Info().Str("username", req.Username).Msg("login accepted")
	return result, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	req.FullName = cleanText(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.NIM = strings.TrimSpace(req.NIM)
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}

	message, err := s.backend.Register(ctx, req)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", req.Username).Msg("student registered")
	return message, nil
}
