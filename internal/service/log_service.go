package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/events"
	"github.com/noah-isme/asdos-web/internal/honor"
	"github.com/noah-isme/asdos-web/internal/models"
)

// LogBackend is the slice of the backend client used for work logs.
type LogBackend interface {
	CreateLog(ctx context.Context, token string, req dto.LogRequest) (models.Log, error)
	GetLog(ctx context.Context, token, id string) (models.Log, error)
	ListLogsByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Log, error)
	ListLogsByDosen(ctx context.Context, token, dosenID string) ([]models.Log, error)
	UpdateLog(ctx context.Context, token, id string, req dto.LogRequest) (models.Log, error)
	DeleteLog(ctx context.Context, token, id string) error
	UpdateLogStatus(ctx context.Context, token, id string, status models.Status) (models.Log, error)
}

// HonorInvalidator drops cached honor figures after a verification.
type HonorInvalidator interface {
	Invalidate(ctx context.Context, mahasiswaID, lowonganID string, period honor.Period)
}

// LogService handles work logs for students and their verification by lecturers.
type LogService interface {
	Create(ctx context.Context, actor Actor, req dto.LogRequest) (dto.LogView, error)
	ListMine(ctx context.Context, actor Actor) ([]dto.LogView, error)
	Update(ctx context.Context, actor Actor, id string, req dto.LogRequest) (dto.LogView, error)
	Delete(ctx context.Context, actor Actor, id string) error
	ListForDosen(ctx context.Context, actor Actor, status models.Status) ([]dto.LogView, error)
	Verify(ctx context.Context, actor Actor, id string, req dto.StatusRequest) (dto.LogView, error)
}

type logService struct {
	backend   LogBackend
	activity  ActivityService
	events    events.Publisher
	honor     HonorInvalidator
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewLogService constructs the work log service. honorCache may be nil.
func NewLogService(backend LogBackend, activity ActivityService, publisher events.Publisher, honorCache HonorInvalidator, validate *validator.Validate, logger zerolog.Logger) LogService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &logService{
		backend:   backend,
		activity:  activity,
		events:    publisher,
		honor:     honorCache,
		validator: validate,
		logger:    logger.With().Str("component", "log_service").Logger(),
		now:       time.Now,
	}
}

func (s *logService) Create(ctx context.Context, actor Actor, req dto.LogRequest) (dto.LogView, error) {
	req, err := s.prepare(req)
	if err != nil {
		return dto.LogView{}, err
	}
	req.IDMahasiswa = actor.ID
	req.Status = string(models.StatusMenunggu)

	created, err := s.backend.CreateLog(ctx, actor.Token, req)
	if err != nil {
		return dto.LogView{}, err
	}

	s.logger.Info().Str("log_id", created.ID).Str("mahasiswa_id", actor.ID).Msg("log submitted")
	return ViewLog(created), nil
}

func (s *logService) ListMine(ctx context.Context, actor Actor) ([]dto.LogView, error) {
	logs, err := s.backend.ListLogsByMahasiswa(ctx, actor.Token, actor.ID)
	if err != nil {
		return nil, err
	}
	return ViewLogs(logs), nil
}

func (s *logService) Update(ctx context.Context, actor Actor, id string, req dto.LogRequest) (dto.LogView, error) {
	req, err := s.prepare(req)
	if err != nil {
		return dto.LogView{}, err
	}

	current, err := s.editable(ctx, actor, id)
	if err != nil {
		return dto.LogView{}, err
	}
	req.IDMahasiswa = current.IDMahasiswa
	req.Status = string(current.Status)

	updated, err := s.backend.UpdateLog(ctx, actor.Token, id, req)
	if err != nil {
		return dto.LogView{}, err
	}
	return ViewLog(updated), nil
}

func (s *logService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.editable(ctx, actor, id); err != nil {
		return err
	}
	return s.backend.DeleteLog(ctx, actor.Token, id)
}

func (s *logService) ListForDosen(ctx context.Context, actor Actor, status models.Status) ([]dto.LogView, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	logs, err := s.backend.ListLogsByDosen(ctx, actor.Token, actor.ID)
	if err != nil {
		return nil, err
	}

	if status != "" {
		filtered := logs[:0]
		for _, entry := range logs {
			if entry.Status == status {
				filtered = append(filtered, entry)
			}
		}
		logs = filtered
	}
	return ViewLogs(logs), nil
}

func (s *logService) Verify(ctx context.Context, actor Actor, id string, req dto.StatusRequest) (dto.LogView, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LogView{}, err
	}

	current, err := s.backend.GetLog(ctx, actor.Token, id)
	if err != nil {
		return dto.LogView{}, err
	}
	if current.IDDosen != actor.ID {
		return dto.LogView{}, ErrForbidden
	}
	if current.Status != models.StatusMenunggu {
		return dto.LogView{}, ErrLocked
	}

	status := models.Status(req.Status)
	updated, err := s.backend.UpdateLogStatus(ctx, actor.Token, id, status)
	if err != nil {
		return dto.LogView{}, err
	}

	if s.honor != nil && status == models.StatusDiterima {
		if period, ok := periodOf(current.TanggalLog); ok {
			s.honor.Invalidate(ctx, current.IDMahasiswa, current.IDLowongan, period)
		}
	}

	if err := s.events.Publish(ctx, events.Decision{
		Kind:      events.KindLogVerified,
		EntityID:  id,
		Status:    string(status),
		ActorID:   actor.ID,
		SubjectID: current.IDMahasiswa,
		At:        s.now().UTC(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("log_id", id).Msg("failed to publish log verification")
	}

	recordQuietly(ctx, s.activity, s.logger, ActivityEntry{
		Actor:      actor,
		Action:     "log.verified",
		EntityType: models.EntityLog,
		EntityID:   id,
		Metadata:   map[string]interface{}{"status": string(status), "mahasiswa": current.IDMahasiswa},
	})
	return ViewLog(updated), nil
}

// prepare sanitises free text and checks both times before anything is sent.
func (s *logService) prepare(req dto.LogRequest) (dto.LogRequest, error) {
	req.Judul = cleanText(req.Judul)
	req.Keterangan = cleanText(req.Keterangan)
	req.Kategori = strings.ToUpper(strings.TrimSpace(req.Kategori))
	req.TanggalLog = strings.TrimSpace(req.TanggalLog)
	req.WaktuMulai = strings.TrimSpace(req.WaktuMulai)
	req.WaktuSelesai = strings.TrimSpace(req.WaktuSelesai)
	req.IDLowongan = strings.TrimSpace(req.IDLowongan)

	if err := s.validator.Struct(req); err != nil {
		return dto.LogRequest{}, err
	}
	if _, err := honor.DurationMinutes(req.WaktuMulai, req.WaktuSelesai); err != nil {
		return dto.LogRequest{}, err
	}
	return req, nil
}

// editable loads a log owned by actor that is still awaiting review.
func (s *logService) editable(ctx context.Context, actor Actor, id string) (models.Log, error) {
	current, err := s.backend.GetLog(ctx, actor.Token, id)
	if err != nil {
		return models.Log{}, err
	}
	if current.IDMahasiswa != actor.ID {
		return models.Log{}, ErrForbidden
	}
	if !current.Editable() {
		return models.Log{}, ErrLocked
	}
	return current, nil
}

// ViewLog attaches the display duration to a log. Logs with unparseable
// times get an empty duration.
func ViewLog(entry models.Log) dto.LogView {
	durasi, err := honor.CalculateDuration(entry.WaktuMulai, entry.WaktuSelesai)
	if err != nil {
		durasi = ""
	}
	return dto.LogView{Log: entry, Durasi: durasi}
}

// ViewLogs maps ViewLog over logs.
func ViewLogs(logs []models.Log) []dto.LogView {
	views := make([]dto.LogView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, ViewLog(entry))
	}
	return views
}

func periodOf(date string) (honor.Period, bool) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return honor.Period{}, false
	}
	return honor.Period{Month: int(day.Month()), Year: day.Year()}, true
}
