package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/honor"
	"github.com/noah-isme/asdos-web/internal/models"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mini, client
}

func seedHonorLogs(fake *fakeBackend) {
	fake.logs["log-1"] = models.Log{ID: "log-1", Status: models.StatusDiterima, IDLowongan: "low-a", IDMahasiswa: studentActor.ID}
	fake.logs["log-2"] = models.Log{ID: "log-2", Status: models.StatusDiterima, IDLowongan: "low-a", IDMahasiswa: studentActor.ID}
	fake.logs["log-3"] = models.Log{ID: "log-3", Status: models.StatusDiterima, IDLowongan: "low-b", IDMahasiswa: studentActor.ID}
	fake.logs["log-4"] = models.Log{ID: "log-4", Status: models.StatusMenunggu, IDLowongan: "low-c", IDMahasiswa: studentActor.ID}
	fake.honor["low-a"] = 55000
	fake.honor["low-b"] = 13750
	fake.honor["low-c"] = 99999
}

func TestHonorServiceSummarySumsAcceptedVacancies(t *testing.T) {
	fake := newFakeBackend()
	seedHonorLogs(fake)
	svc := NewHonorService(fake, nil, 0, 27500, testLogger())

	summary, err := svc.Summary(context.Background(), studentActor, honor.Period{Month: 3, Year: 2025})
	require.NoError(t, err)
	require.Equal(t, 68750.0, summary.TotalHonor)
	require.Equal(t, 2.5, summary.TotalHours)
	require.Len(t, summary.Items, 2)
	require.Equal(t, "low-a", summary.Items[0].LowonganID)
	require.Equal(t, 2.0, summary.Items[0].Hours)
	require.Equal(t, 2, fake.honorCalls)
}

func TestHonorServiceRejectsInvalidPeriod(t *testing.T) {
	svc := NewHonorService(newFakeBackend(), nil, 0, 27500, testLogger())

	_, err := svc.Summary(context.Background(), studentActor, honor.Period{Month: 13, Year: 2025})
	require.ErrorIs(t, err, honor.ErrInvalidPeriod)
}

func TestHonorServiceCachesFigures(t *testing.T) {
	mini, client := newTestRedis(t)
	fake := newFakeBackend()
	seedHonorLogs(fake)
	svc := NewHonorService(fake, client, time.Minute, 27500, testLogger())
	period := honor.Period{Month: 3, Year: 2025}

	_, err := svc.Summary(context.Background(), studentActor, period)
	require.NoError(t, err)
	require.Equal(t, 2, fake.honorCalls)
	require.True(t, mini.Exists("honor:mhs-1:low-a:2025-03"))

	summary, err := svc.Summary(context.Background(), studentActor, period)
	require.NoError(t, err)
	require.Equal(t, 2, fake.honorCalls)
	require.Equal(t, 68750.0, summary.TotalHonor)

	svc.Invalidate(context.Background(), studentActor.ID, "low-a", period)
	require.False(t, mini.Exists("honor:mhs-1:low-a:2025-03"))

	_, err = svc.Summary(context.Background(), studentActor, period)
	require.NoError(t, err)
	require.Equal(t, 3, fake.honorCalls)
}

func TestHonorServicePropagatesBackendFailure(t *testing.T) {
	fake := newFakeBackend()
	seedHonorLogs(fake)
	fake.errs["Honor"] = backend.ErrUnavailable
	svc := NewHonorService(fake, nil, 0, 27500, testLogger())

	_, err := svc.Summary(context.Background(), studentActor, honor.Period{Month: 3, Year: 2025})
	require.ErrorIs(t, err, backend.ErrUnavailable)
}
