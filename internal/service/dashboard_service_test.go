package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/models"
)

func TestDashboardAdminSettlesFailedSections(t *testing.T) {
	fake := newFakeBackend()
	seedLowongan(fake)
	fake.users = []models.User{{ID: "u1", Role: "STUDENT"}, {ID: "u2", Role: "STUDENT"}, {ID: "u3", Role: "LECTURER"}}
	fake.errs["ListCourses"] = &backend.APIError{StatusCode: http.StatusInternalServerError, Messages: []string{"database down"}}
	repo := &memoryActivityRepo{}
	activity := NewActivityService(repo, testLogger())
	require.NoError(t, activity.Record(context.Background(), ActivityEntry{Actor: adminActor, Action: "user.created", EntityType: "user"}))

	svc := NewDashboardService(fake, activity, testLogger())
	result := svc.Admin(context.Background(), adminActor)

	require.Equal(t, map[string]int{"STUDENT": 2, "LECTURER": 1}, result.UsersByRole)
	require.Nil(t, result.TotalCourses)
	require.Equal(t, "database down", result.Errors["courses"])
	require.NotNil(t, result.TotalLowongan)
	require.Equal(t, 2, *result.TotalLowongan)
	require.Equal(t, 1, *result.OpenLowongan)
	require.Len(t, result.RecentActivity, 1)
}

func TestDashboardStudentCountsStatuses(t *testing.T) {
	fake := newFakeBackend()
	seedLowongan(fake)
	fake.lamaran["lam-1"] = models.Lamaran{ID: "lam-1", Status: models.StatusDiterima, IDMahasiswa: studentActor.ID}
	fake.lamaran["lam-2"] = models.Lamaran{ID: "lam-2", Status: models.StatusMenunggu, IDMahasiswa: studentActor.ID}
	fake.errs["ListLogsByMahasiswa"] = backend.ErrUnavailable

	result := NewDashboardService(fake, nil, testLogger()).Student(context.Background(), studentActor)

	require.Len(t, result.OpenLowongan, 1)
	require.NotNil(t, result.Lamaran)
	require.Equal(t, 1, result.Lamaran.Diterima)
	require.Equal(t, 1, result.Lamaran.Menunggu)
	require.Nil(t, result.Logs)
	require.Equal(t, "backend unavailable", result.Errors["logs"])
}

func TestDashboardLecturerListsPendingLogs(t *testing.T) {
	fake := newFakeBackend()
	seedLowongan(fake)
	fake.logs["log-1"] = models.Log{ID: "log-1", Status: models.StatusMenunggu, IDDosen: lecturerActor.ID, WaktuMulai: "13:00", WaktuSelesai: "15:15"}
	fake.logs["log-2"] = models.Log{ID: "log-2", Status: models.StatusDiterima, IDDosen: lecturerActor.ID}

	result := NewDashboardService(fake, nil, testLogger()).Lecturer(context.Background(), lecturerActor)

	require.Empty(t, result.Errors)
	require.Len(t, result.Lowongan, 1)
	require.Len(t, result.PendingLogs, 1)
	require.Equal(t, "2 jam 15 menit", result.PendingLogs[0].Durasi)
}
