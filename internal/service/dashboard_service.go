package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

const recentActivityLimit = 5

// DashboardBackend is the union of reads the landing pages need.
type DashboardBackend interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	ListCourses(ctx context.Context, token string) ([]models.MataKuliah, error)
	ListLowongan(ctx context.Context, token string, filter backend.LowonganFilter) ([]models.Lowongan, error)
	ListLamaranByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Lamaran, error)
	ListLogsByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Log, error)
	ListLogsByDosen(ctx context.Context, token, dosenID string) ([]models.Log, error)
}

// DashboardService builds the per-role landing pages. Every section is loaded
// concurrently and a failing section never fails the page.
type DashboardService interface {
	Admin(ctx context.Context, actor Actor) dto.AdminDashboard
	Student(ctx context.Context, actor Actor) dto.StudentDashboard
	Lecturer(ctx context.Context, actor Actor) dto.LecturerDashboard
}

type dashboardService struct {
	backend  DashboardBackend
	activity ActivityService
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard aggregator.
func NewDashboardService(backend DashboardBackend, activity ActivityService, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		backend:  backend,
		activity: activity,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Admin(ctx context.Context, actor Actor) dto.AdminDashboard {
	var result dto.AdminDashboard
	parts := newSettled(ctx, s.logger)

	parts.run("users", func(ctx context.Context) error {
		users, err := s.backend.ListUsers(ctx, actor.Token)
		if err != nil {
			return err
		}
		byRole := make(map[string]int)
		for _, user := range users {
			byRole[user.Role]++
		}
		result.UsersByRole = byRole
		return nil
	})
	parts.run("courses", func(ctx context.Context) error {
		courses, err := s.backend.ListCourses(ctx, actor.Token)
		if err != nil {
			return err
		}
		total := len(courses)
		result.TotalCourses = &total
		return nil
	})
	parts.run("lowongan", func(ctx context.Context) error {
		items, err := s.backend.ListLowongan(ctx, actor.Token, backend.LowonganFilter{})
		if err != nil {
			return err
		}
		total, open := len(items), len(openOnly(items))
		result.TotalLowongan = &total
		result.OpenLowongan = &open
		return nil
	})
	if s.activity != nil {
		parts.run("activity", func(ctx context.Context) error {
			page, err := s.activity.List(ctx, dto.ActivityListRequest{Page: 1, PageSize: recentActivityLimit})
			if err != nil {
				return err
			}
			result.RecentActivity = page.Items
			return nil
		})
	}

	result.Errors = parts.wait()
	return result
}

func (s *dashboardService) Student(ctx context.Context, actor Actor) dto.StudentDashboard {
	var result dto.StudentDashboard
	parts := newSettled(ctx, s.logger)

	parts.run("lowongan", func(ctx context.Context) error {
		items, err := s.backend.ListLowongan(ctx, actor.Token, backend.LowonganFilter{})
		if err != nil {
			return err
		}
		result.OpenLowongan = openOnly(items)
		return nil
	})
	parts.run("lamaran", func(ctx context.Context) error {
		items, err := s.backend.ListLamaranByMahasiswa(ctx, actor.Token, actor.ID)
		if err != nil {
			return err
		}
		counts := &dto.StatusCount{}
		for _, item := range items {
			counts.Add(item.Status)
		}
		result.Lamaran = counts
		return nil
	})
	parts.run("logs", func(ctx context.Context) error {
		logs, err := s.backend.ListLogsByMahasiswa(ctx, actor.Token, actor.ID)
		if err != nil {
			return err
		}
		counts := &dto.StatusCount{}
		for _, entry := range logs {
			counts.Add(entry.Status)
		}
		result.Logs = counts
		return nil
	})

	result.Errors = parts.wait()
	return result
}

func (s *dashboardService) Lecturer(ctx context.Context, actor Actor) dto.LecturerDashboard {
	var result dto.LecturerDashboard
	parts := newSettled(ctx, s.logger)

	parts.run("lowongan", func(ctx context.Context) error {
		items, err := s.backend.ListLowongan(ctx, actor.Token, backend.LowonganFilter{DosenID: actor.ID})
		if err != nil {
			return err
		}
		result.Lowongan = items
		return nil
	})
	parts.run("logs", func(ctx context.Context) error {
		logs, err := s.backend.ListLogsByDosen(ctx, actor.Token, actor.ID)
		if err != nil {
			return err
		}
		pending := make([]models.Log, 0, len(logs))
		for _, entry := range logs {
			if entry.Status == models.StatusMenunggu {
				pending = append(pending, entry)
			}
		}
		result.PendingLogs = ViewLogs(pending)
		return nil
	})

	result.Errors = parts.wait()
	return result
}

// settled runs named sections concurrently and collects their failures
// instead of cancelling the others.
type settled struct {
	ctx    context.Context
	logger zerolog.Logger
	wg     sync.WaitGroup
	mu     sync.Mutex
	errs   map[string]string
}

func newSettled(ctx context.Context, logger zerolog.Logger) *settled {
	return &settled{ctx: ctx, logger: logger}
}

// run starts fn. Sections write disjoint fields of the result, so only the
// error map is locked.
func (s *settled) run(name string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := fn(s.ctx); err != nil {
			s.logger.Warn().Err(err).Str("section", name).Msg("dashboard section failed")
			s.mu.Lock()
			if s.errs == nil {
				s.errs = make(map[string]string)
			}
			s.errs[name] = sectionError(err)
			s.mu.Unlock()
		}
	}()
}

func (s *settled) wait() map[string]string {
	s.wg.Wait()
	return s.errs
}

func sectionError(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	if errors.Is(err, backend.ErrUnavailable) {
		return "backend unavailable"
	}
	return "failed to load"
}
