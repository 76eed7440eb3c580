package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/models"
	"github.com/noah-isme/asdos-web/internal/repository"
)

const (
	defaultActivityPageSize = 20
	maxActivityPageSize     = 100
)

// ActivityEntry captures the details required to persist an audit entry.
type ActivityEntry struct {
	Actor      Actor
	Action     string
	EntityType string
	EntityID   string
	Metadata   map[string]interface{}
}

// ActivityService records and lists dashboard mutations.
type ActivityService interface {
	Record(ctx context.Context, entry ActivityEntry) error
	List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
}

type activityService struct {
	repo   repository.ActivityRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity service. A nil repository turns
// recording off and makes listings empty.
func NewActivityService(repo repository.ActivityRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) error {
	if s.repo == nil {
		return nil
	}

	model := models.ActivityLog{
		ActorID:    entry.Actor.ID,
		ActorRole:  normalizeRole(string(entry.Actor.Role)),
		Action:     strings.ToLower(strings.TrimSpace(entry.Action)),
		EntityType: strings.ToLower(strings.TrimSpace(entry.EntityType)),
		EntityID:   entry.EntityID,
		Metadata:   sanitizeMetadata(entry.Metadata),
	}
	model.CorrelationID = middleware.CorrelationIDFromContext(ctx)

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).Str("action", model.Action).Msg("failed to persist activity log")
		return err
	}
	return nil
}

func (s *activityService) List(ctx context.Context, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	size := req.PageSize
	if size <= 0 {
		size = defaultActivityPageSize
	}
	if size > maxActivityPageSize {
		size = maxActivityPageSize
	}

	response := dto.ActivityListResponse{Items: []models.ActivityLog{}, Page: page, PageSize: size}
	if s.repo == nil {
		return response, nil
	}

	entries, total, err := s.repo.List(ctx, repository.ActivityFilter{
		Page:       page,
		PageSize:   size,
		ActorID:    strings.TrimSpace(req.ActorID),
		EntityType: strings.ToLower(strings.TrimSpace(req.EntityType)),
	})
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	response.Items = entries
	response.Total = total
	return response, nil
}

// recordQuietly stores an audit entry without failing the caller; the change
// it describes has already been applied by the backend.
func recordQuietly(ctx context.Context, activity ActivityService, logger zerolog.Logger, entry ActivityEntry) {
	if activity == nil {
		return
	}
	if err := activity.Record(ctx, entry); err != nil {
		logger.Warn().Err(err).Str("action", entry.Action).Str("entity_id", entry.EntityID).Msg("activity not recorded")
	}
}

func sanitizeMetadata(metadata map[string]interface{}) datatypes.JSONMap {
	sanitized := datatypes.JSONMap{}
	for key, value := range metadata {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "token") {
			sanitized[key] = "***"
			continue
		}
		sanitized[key] = value
	}
	return sanitized
}

func normalizeRole(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return "system"
	}
	return r
}
