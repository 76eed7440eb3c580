package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/events"
	"github.com/noah-isme/asdos-web/internal/models"
)

// LamaranService handles applications to vacancies.
type LamaranService interface {
	Apply(ctx context.Context, actor Actor, lowonganID string, req dto.LamaranRequest) (models.Lamaran, error)
	ListMine(ctx context.Context, actor Actor) ([]models.Lamaran, error)
	ListForLowongan(ctx context.Context, actor Actor, lowonganID string) ([]models.Lamaran, error)
	Decide(ctx context.Context, actor Actor, id string, req dto.StatusRequest) (models.Lamaran, error)
}

type lamaranService struct {
	backend   LowonganBackend
	activity  ActivityService
	events    events.Publisher
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLamaranService constructs the application service.
func NewLamaranService(backend LowonganBackend, activity ActivityService, publisher events.Publisher, validate *validator.Validate, logger zerolog.Logger) LamaranService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &lamaranService{
		backend:   backend,
		activity:  activity,
		events:    publisher,
		validator: validate,
		logger:    logger.With().Str("component", "lamaran_service").Logger(),
		now:       time.Now,
	}
}

func (s *lamaranService) Apply(ctx context.Context, actor Actor, lowonganID string, req dto.LamaranRequest) (models.Lamaran, error) {
	req.IDLowongan = lowonganID
	req.IDMahasiswa = actor.ID
	if err := s.validator.Struct(req); err != nil {
		return models.Lamaran{}, err
	}

	lowongan, err := s.backend.GetLowongan(ctx, actor.Token, lowonganID)
	if err != nil {
		return models.Lamaran{}, err
	}
	if !lowongan.Open() {
		return models.Lamaran{}, ErrLowonganClosed
	}

	lamaran, err := s.backend.CreateLamaran(ctx, actor.Token, req)
	if err != nil {
		return models.Lamaran{}, err
	}

	s.logger.Info().Str("lowongan_id", lowonganID).Str("mahasiswa_id", actor.ID).Msg("lamaran submitted")
	return lamaran, nil
}

func (s *lamaranService) ListMine(ctx context.Context, actor Actor) ([]models.Lamaran, error) {
	return s.backend.ListLamaranByMahasiswa(ctx, actor.Token, actor.ID)
}

func (s *lamaranService) ListForLowongan(ctx context.Context, actor Actor, lowonganID string) ([]models.Lamaran, error) {
	if _, err := ownedLowongan(ctx, s.backend, actor, lowonganID); err != nil {
		return nil, err
	}
	return s.backend.ListLamaranByLowongan(ctx, actor.Token, lowonganID)
}

func (s *lamaranService) Decide(ctx context.Context, actor Actor, id string, req dto.StatusRequest) (models.Lamaran, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Lamaran{}, err
	}

	current, err := s.backend.GetLamaran(ctx, actor.Token, id)
	if err != nil {
		return models.Lamaran{}, err
	}
	if current.Status.Decided() {
		return models.Lamaran{}, ErrLocked
	}
	if _, err := ownedLowongan(ctx, s.backend, actor, current.IDLowongan); err != nil {
		return models.Lamaran{}, err
	}

	status := models.Status(req.Status)
	updated, err := s.backend.UpdateLamaranStatus(ctx, actor.Token, id, status)
	if err != nil {
		return models.Lamaran{}, err
	}

	if err := s.events.Publish(ctx, events.Decision{
		Kind:      events.KindLamaranDecided,
		EntityID:  id,
		Status:    string(status),
		ActorID:   actor.ID,
		SubjectID: current.IDMahasiswa,
		At:        s.now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("lamaran_id", id).Msg("failed to publish lamaran decision")
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "lamaran.decided",
		EntityType: models.EntityLamaran,
		EntityID:   id,
		Metadata:   map[string]interface{}{"status": string(status), "lowongan": current.IDLowongan},
	})
	return updated, nil
}
