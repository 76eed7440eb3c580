package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/honor"
	"github.com/noah-isme/asdos-web/internal/models"
)

// HonorBackend is the slice of the backend client used for honor figures.
type HonorBackend interface {
	ListLogsByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Log, error)
	Honor(ctx context.Context, token string, query dto.HonorQuery) (float64, error)
}

// HonorService computes a student's monthly honor.
type HonorService interface {
	Summary(ctx context.Context, actor Actor, period honor.Period) (honor.Summary, error)
	Invalidate(ctx context.Context, mahasiswaID, lowonganID string, period honor.Period)
}

type honorService struct {
	backend HonorBackend
	cache   *redis.Client
	ttl     time.Duration
	rate    float64
	logger  zerolog.Logger
}

// NewHonorService constructs the honor service. cache may be nil.
func NewHonorService(backend HonorBackend, cache *redis.Client, ttl time.Duration, rate float64, logger zerolog.Logger) HonorService {
	return &honorService{
		backend: backend,
		cache:   cache,
		ttl:     ttl,
		rate:    rate,
		logger:  logger.With().Str("component", "honor_service").Logger(),
	}
}

func (s *honorService) Summary(ctx context.Context, actor Actor, period honor.Period) (honor.Summary, error) {
	if err := period.Validate(); err != nil {
		return honor.Summary{}, err
	}

	logs, err := s.backend.ListLogsByMahasiswa(ctx, actor.Token, actor.ID)
	if err != nil {
		return honor.Summary{}, err
	}

	fetch := func(ctx context.Context, lowonganID string) (float64, error) {
		return s.fetch(ctx, actor, lowonganID, period)
	}
	return honor.Aggregate(ctx, fetch, period, honor.AcceptedVacancies(logs), s.rate)
}

func (s *honorService) fetch(ctx context.Context, actor Actor, lowonganID string, period honor.Period) (float64, error) {
	key := honorCacheKey(actor.ID, lowonganID, period)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		switch {
		case err == nil:
			if amount, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				s.logger.Debug().Str("key", key).Msg("honor cache hit")
				return amount, nil
			}
		case !errors.Is(err, redis.Nil):
			s.logger.Warn().Err(err).Msg("failed to read honor cache")
		}
	}

	amount, err := s.backend.Honor(ctx, actor.Token, dto.HonorQuery{
		IDMahasiswa: actor.ID,
		IDLowongan:  lowonganID,
		Bulan:       period.Month,
		Tahun:       period.Year,
	})
	if err != nil {
		return 0, err
	}

	if s.cache != nil && s.ttl > 0 {
		value := strconv.FormatFloat(amount, 'f', -1, 64)
		if err := s.cache.Set(ctx, key, value, s.ttl).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to write honor cache")
		}
	}
	return amount, nil
}

func (s *honorService) Invalidate(ctx context.Context, mahasiswaID, lowonganID string, period honor.Period) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, honorCacheKey(mahasiswaID, lowonganID, period)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("mahasiswa_id", mahasiswaID).Msg("failed to invalidate honor cache")
	}
}

func honorCacheKey(mahasiswaID, lowonganID string, period honor.Period) string {
	return fmt.Sprintf("honor:%s:%s:%04d-%02d", mahasiswaID, lowonganID, period.Year, period.Month)
}
