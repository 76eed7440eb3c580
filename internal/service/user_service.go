package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

// UserBackend is the slice of the backend client used for account management.
type UserBackend interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	GetUser(ctx context.Context, token, id string) (models.User, error)
	CreateUser(ctx context.Context, token string, req dto.UserRequest) (models.User, error)
	UpdateUser(ctx context.Context, token, id string, req dto.UserRequest) (models.User, error)
	DeleteUser(ctx context.Context, token, id string) error
}

// UserService manages accounts from the admin dashboard.
type UserService interface {
	List(ctx context.Context, actor Actor) ([]models.User, error)
	Get(ctx context.Context, actor Actor, id string) (models.User, error)
	Create(ctx context.Context, actor Actor, req dto.UserRequest) (models.User, error)
	Update(ctx context.Context, actor Actor, id string, req dto.UserRequest) (models.User, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	backend   UserBackend
	activity  ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs the user management service.
func NewUserService(backend UserBackend, activity ActivityService, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		backend:   backend,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) List(ctx context.Context, actor Actor) ([]models.User, error) {
	return s.backend.ListUsers(ctx, actor.Token)
}

func (s *userService) Get(ctx context.Context, actor Actor, id string) (models.User, error) {
	return s.backend.GetUser(ctx, actor.Token, id)
}

func (s *userService) Create(ctx context.Context, actor Actor, req dto.UserRequest) (models.User, error) {
	req = normalizeUserRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, err
	}

	user, err := s.backend.CreateUser(ctx, actor.Token, req)
	if err != nil {
		return models.User{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "user.created",
		EntityType: models.EntityUser,
		EntityID:   user.ID,
		Metadata:   map[string]interface{}{"role": req.Role, "username": req.Username, "password": req.Password},
	})
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor Actor, id string, req dto.UserRequest) (models.User, error) {
	req = normalizeUserRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return models.User{}, err
	}

	user, err := s.backend.UpdateUser(ctx, actor.Token, id, req)
	if err != nil {
		return models.User{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "user.updated",
		EntityType: models.EntityUser,
		EntityID:   id,
		Metadata:   map[string]interface{}{"role": req.Role},
	})
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	if id == actor.ID {
		return ErrForbidden
	}
	if err := s.backend.DeleteUser(ctx, actor.Token, id); err != nil {
		return err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "user.deleted",
		EntityType: models.EntityUser,
		EntityID:   id,
	})
	return nil
}

func normalizeUserRequest(req dto.UserRequest) dto.UserRequest {
	req.FullName = cleanText(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.NIM = strings.TrimSpace(req.NIM)
	req.NIP = strings.TrimSpace(req.NIP)
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	return req
}
