package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

// LowonganBackend is the slice of the backend client for vacancies and applications.
type LowonganBackend interface {
	ListLowongan(ctx context.Context, token string, filter backend.LowonganFilter) ([]models.Lowongan, error)
	GetLowongan(ctx context.Context, token, id string) (models.Lowongan, error)
	CreateLowongan(ctx context.Context, token string, req dto.LowonganRequest) (models.Lowongan, error)
	UpdateLowongan(ctx context.Context, token, id string, req dto.LowonganRequest) (models.Lowongan, error)
	DeleteLowongan(ctx context.Context, token, id string) error
	CreateLamaran(ctx context.Context, token string, req dto.LamaranRequest) (models.Lamaran, error)
	ListLamaranByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Lamaran, error)
	ListLamaranByLowongan(ctx context.Context, token, lowonganID string) ([]models.Lamaran, error)
	GetLamaran(ctx context.Context, token, id string) (models.Lamaran, error)
	UpdateLamaranStatus(ctx context.Context, token, id string, status models.Status) (models.Lamaran, error)
}

// LowonganService lists vacancies for students and manages them for lecturers.
type LowonganService interface {
	ListOpen(ctx context.Context, actor Actor) ([]models.Lowongan, error)
	ListMine(ctx context.Context, actor Actor) ([]models.Lowongan, error)
	Create(ctx context.Context, actor Actor, req dto.LowonganRequest) (models.Lowongan, error)
	Update(ctx context.Context, actor Actor, id string, req dto.LowonganRequest) (models.Lowongan, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type lowonganService struct {
	backend   LowonganBackend
	activity  ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewLowonganService constructs the vacancy service.
func NewLowonganService(backend LowonganBackend, activity ActivityService, validate *validator.Validate, logger zerolog.Logger) LowonganService {
	return &lowonganService{
		backend:   backend,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "lowongan_service").Logger(),
	}
}

func (s *lowonganService) ListOpen(ctx context.Context, actor Actor) ([]models.Lowongan, error) {
	items, err := s.backend.ListLowongan(ctx, actor.Token, backend.LowonganFilter{})
	if err != nil {
		return nil, err
	}
	return openOnly(items), nil
}

func (s *lowonganService) ListMine(ctx context.Context, actor Actor) ([]models.Lowongan, error) {
	return s.backend.ListLowongan(ctx, actor.Token, backend.LowonganFilter{DosenID: actor.ID})
}

func (s *lowonganService) Create(ctx context.Context, actor Actor, req dto.LowonganRequest) (models.Lowongan, error) {
	req.Matkul = cleanText(req.Matkul)
	req.Term = strings.TrimSpace(req.Term)
	req.IDDosen = actor.ID
	if err := s.validator.Struct(req); err != nil {
		return models.Lowongan{}, err
	}

	item, err := s.backend.CreateLowongan(ctx, actor.Token, req)
	if err != nil {
		return models.Lowongan{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "lowongan.created",
		EntityType: models.EntityLowongan,
		EntityID:   item.ID,
		Metadata:   map[string]interface{}{"matkul": req.Matkul, "tahun": req.Tahun, "term": req.Term},
	})
	return item, nil
}

func (s *lowonganService) Update(ctx context.Context, actor Actor, id string, req dto.LowonganRequest) (models.Lowongan, error) {
	req.Matkul = cleanText(req.Matkul)
	req.Term = strings.TrimSpace(req.Term)
	req.IDDosen = actor.ID
	if err := s.validator.Struct(req); err != nil {
		return models.Lowongan{}, err
	}

	if _, err := ownedLowongan(ctx, s.backend, actor, id); err != nil {
		return models.Lowongan{}, err
	}

	item, err := s.backend.UpdateLowongan(ctx, actor.Token, id, req)
	if err != nil {
		return models.Lowongan{}, err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "lowongan.updated",
		EntityType: models.EntityLowongan,
		EntityID:   id,
		Metadata:   map[string]interface{}{"totalAsdosNeeded": req.TotalAsdosNeeded},
	})
	return item, nil
}

func (s *lowonganService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := ownedLowongan(ctx, s.backend, actor, id); err != nil {
		return err
	}
	if err := s.backend.DeleteLowongan(ctx, actor.Token, id); err != nil {
		return err
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "lowongan.deleted",
		EntityType: models.EntityLowongan,
		EntityID:   id,
	})
	return nil
}

// ownedLowongan loads a vacancy and checks that actor posted it.
func ownedLowongan(ctx context.Context, lowongan LowonganBackend, actor Actor, id string) (models.Lowongan, error) {
	item, err := lowongan.GetLowongan(ctx, actor.Token, id)
	if err != nil {
		return models.Lowongan{}, err
	}
	if item.IDDosen != actor.ID {
		return models.Lowongan{}, ErrForbidden
	}
	return item, nil
}

func openOnly(items []models.Lowongan) []models.Lowongan {
	open := make([]models.Lowongan, 0, len(items))
	for _, item := range items {
		if item.Open() {
			open = append(open, item)
		}
	}
	return open
}
