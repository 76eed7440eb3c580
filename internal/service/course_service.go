package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

// CourseBackend is the slice of the backend client used for course management.
type CourseBackend interface {
	ListCourses(ctx context.Context, token string) ([]models.MataKuliah, error)
	CreateCourse(ctx context.Context, token string, req dto.CourseRequest) (models.MataKuliah, error)
	UpdateCourse(ctx context.Context, token, kode string, req dto.CourseRequest) (models.MataKuliah, error)
	DeleteCourse(ctx context.Context, token, kode string) error
}

// CourseService manages mata kuliah from the admin dashboard.
type CourseService interface {
	List(ctx context.Context, actor Actor) ([]models.MataKuliah, error)
	Create(ctx context.Context, actor Actor, req dto.CourseRequest) (models.MataKuliah, error)
	Update(ctx context.Context, actor Actor, kode string, req dto.CourseRequest) (models.MataKuliah, error)
	Delete(ctx context.Context, actor Actor, kode string) error
}

type courseService struct {
	backend   CourseBackend
	activity  ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(backend CourseBackend, activity ActivityService, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		backend:   backend,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, actor Actor) ([]models.MataKuliah, error) {
	return s.backend.ListCourses(ctx, actor.Token)
}

func (s *courseService) Create(ctx context.Context, actor Actor, req dto.CourseRequest) (models.MataKuliah, error) {
	req = normalizeCourseRequest(req)
	if err := s.validator.Struct(req); err != nil {
		return models.MataKuliah{}, err
	}

	course, err := s.backend.CreateCourse(ctx, actor.Token, req)
	if err != nil {
		return models.MataKuliah{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "course.created",
		EntityType: models.EntityCourse,
		EntityID:   req.Kode,
		Metadata:   map[string]interface{}{"nama": req.Nama},
	})
	return course, nil
}

func (s *courseService) Update(ctx context.Context, actor Actor, kode string, req dto.CourseRequest) (models.MataKuliah, error) {
	req = normalizeCourseRequest(req)
	if req.Kode == "" {
		req.Kode = strings.ToUpper(strings.TrimSpace(kode))
	}
	if err := s.validator.Struct(req); err != nil {
		return models.MataKuliah{}, err
	}

	course, err := s.backend.UpdateCourse(ctx, actor.Token, kode, req)
	if err != nil {
		return models.MataKuliah{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "course.updated",
		EntityType: models.EntityCourse,
		EntityID:   kode,
	})
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, actor Actor, kode string) error {
	if err := s.backend.DeleteCourse(ctx, actor.Token, kode); err != nil {
		return err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "course.deleted",
		EntityType: models.EntityCourse,
		EntityID:   kode,
	})
	return nil
}

func normalizeCourseRequest(req dto.CourseRequest) dto.CourseRequest {
	req.Kode = strings.ToUpper(strings.TrimSpace(req.Kode))
	req.Nama = cleanText(req.Nama)
	req.Deskripsi = cleanText(req.Deskripsi)
	return req
}
