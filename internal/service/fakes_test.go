package service

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/events"
	"github.com/noah-isme/asdos-web/internal/models"
	"github.com/noah-isme/asdos-web/internal/repository"
	"github.com/noah-isme/asdos-web/internal/token"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

var (
	studentActor  = Actor{ID: "mhs-1", Role: token.RoleStudent, Token: "student-token"}
	lecturerActor = Actor{ID: "dsn-1", Role: token.RoleLecturer, Token: "lecturer-token"}
	adminActor    = Actor{ID: "adm-1", Role: token.RoleAdmin, Token: "admin-token"}
)

var errNotFound = &backend.APIError{StatusCode: http.StatusNotFound, Messages: []string{"not found"}}

// fakeBackend is an in-memory stand-in for the REST backend. errs forces a
// method to fail by name.
type fakeBackend struct {
	mu         sync.Mutex
	users      []models.User
	courses    []models.MataKuliah
	lowongan   map[string]models.Lowongan
	lamaran    map[string]models.Lamaran
	logs       map[string]models.Log
	honor      map[string]float64
	honorCalls int
	created    []dto.LogRequest
	errs       map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		lowongan: map[string]models.Lowongan{},
		lamaran:  map[string]models.Lamaran{},
		logs:     map[string]models.Log{},
		honor:    map[string]float64{},
		errs:     map[string]error{},
	}
}

func (f *fakeBackend) fail(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[method]
}

func (f *fakeBackend) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResult, error) {
	if err := f.fail("Login"); err != nil {
		return dto.LoginResult{}, err
	}
	return dto.LoginResult{Token: "issued." + req.Username + ".sig"}, nil
}

func (f *fakeBackend) Register(ctx context.Context, req dto.RegisterRequest) (string, error) {
	if err := f.fail("Register"); err != nil {
		return "", err
	}
	return "Registrasi berhasil", nil
}

func (f *fakeBackend) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	if err := f.fail("ListUsers"); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeBackend) GetUser(ctx context.Context, token, id string) (models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, errNotFound
}

func (f *fakeBackend) CreateUser(ctx context.Context, token string, req dto.UserRequest) (models.User, error) {
	user := models.User{ID: "u-" + req.Username, Email: req.Email, Username: req.Username, FullName: req.FullName, Role: req.Role}
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeBackend) UpdateUser(ctx context.Context, token, id string, req dto.UserRequest) (models.User, error) {
	return models.User{ID: id, Email: req.Email, Username: req.Username, FullName: req.FullName, Role: req.Role}, nil
}

func (f *fakeBackend) DeleteUser(ctx context.Context, token, id string) error {
	return f.fail("DeleteUser")
}

func (f *fakeBackend) ListCourses(ctx context.Context, token string) ([]models.MataKuliah, error) {
	if err := f.fail("ListCourses"); err != nil {
		return nil, err
	}
	return f.courses, nil
}

func (f *fakeBackend) CreateCourse(ctx context.Context, token string, req dto.CourseRequest) (models.MataKuliah, error) {
	course := models.MataKuliah{Kode: req.Kode, Nama: req.Nama, Deskripsi: req.Deskripsi}
	f.courses = append(f.courses, course)
	return course, nil
}

func (f *fakeBackend) UpdateCourse(ctx context.Context, token, kode string, req dto.CourseRequest) (models.MataKuliah, error) {
	return models.MataKuliah{Kode: kode, Nama: req.Nama, Deskripsi: req.Deskripsi}, nil
}

func (f *fakeBackend) DeleteCourse(ctx context.Context, token, kode string) error {
	return f.fail("DeleteCourse")
}

func (f *fakeBackend) ListLowongan(ctx context.Context, token string, filter backend.LowonganFilter) ([]models.Lowongan, error) {
	if err := f.fail("ListLowongan"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]models.Lowongan, 0, len(f.lowongan))
	for _, item := range f.lowongan {
		if filter.DosenID == "" || item.IDDosen == filter.DosenID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeBackend) GetLowongan(ctx context.Context, token, id string) (models.Lowongan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.lowongan[id]
	if !ok {
		return models.Lowongan{}, errNotFound
	}
	return item, nil
}

func (f *fakeBackend) CreateLowongan(ctx context.Context, token string, req dto.LowonganRequest) (models.Lowongan, error) {
	item := models.Lowongan{
		ID:               "low-new",
		Matkul:           req.Matkul,
		Tahun:            req.Tahun,
		Term:             models.Term(req.Term),
		TotalAsdosNeeded: req.TotalAsdosNeeded,
		IDDosen:          req.IDDosen,
	}
	f.lowongan[item.ID] = item
	return item, nil
}

func (f *fakeBackend) UpdateLowongan(ctx context.Context, token, id string, req dto.LowonganRequest) (models.Lowongan, error) {
	item := f.lowongan[id]
	item.Matkul = req.Matkul
	item.TotalAsdosNeeded = req.TotalAsdosNeeded
	f.lowongan[id] = item
	return item, nil
}

func (f *fakeBackend) DeleteLowongan(ctx context.Context, token, id string) error {
	delete(f.lowongan, id)
	return nil
}

func (f *fakeBackend) CreateLamaran(ctx context.Context, token string, req dto.LamaranRequest) (models.Lamaran, error) {
	item := models.Lamaran{ID: "lam-new", Sks: req.Sks, Ipk: req.Ipk, Status: models.StatusMenunggu, IDMahasiswa: req.IDMahasiswa, IDLowongan: req.IDLowongan}
	f.lamaran[item.ID] = item
	return item, nil
}

func (f *fakeBackend) ListLamaranByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Lamaran, error) {
	if err := f.fail("ListLamaranByMahasiswa"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []models.Lamaran
	for _, item := range f.lamaran {
		if item.IDMahasiswa == mahasiswaID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeBackend) ListLamaranByLowongan(ctx context.Context, token, lowonganID string) ([]models.Lamaran, error) {
	var items []models.Lamaran
	for _, item := range f.lamaran {
		if item.IDLowongan == lowonganID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeBackend) GetLamaran(ctx context.Context, token, id string) (models.Lamaran, error) {
	item, ok := f.lamaran[id]
	if !ok {
		return models.Lamaran{}, errNotFound
	}
	return item, nil
}

func (f *fakeBackend) UpdateLamaranStatus(ctx context.Context, token, id string, status models.Status) (models.Lamaran, error) {
	item := f.lamaran[id]
	item.Status = status
	f.lamaran[id] = item
	return item, nil
}

func (f *fakeBackend) CreateLog(ctx context.Context, token string, req dto.LogRequest) (models.Log, error) {
	f.created = append(f.created, req)
	entry := models.Log{
		ID:           "log-new",
		Judul:        req.Judul,
		Keterangan:   req.Keterangan,
		Kategori:     models.LogKategori(req.Kategori),
		TanggalLog:   req.TanggalLog,
		WaktuMulai:   req.WaktuMulai,
		WaktuSelesai: req.WaktuSelesai,
		Status:       models.Status(req.Status),
		IDLowongan:   req.IDLowongan,
		IDMahasiswa:  req.IDMahasiswa,
	}
	f.logs[entry.ID] = entry
	return entry, nil
}

func (f *fakeBackend) GetLog(ctx context.Context, token, id string) (models.Log, error) {
	entry, ok := f.logs[id]
	if !ok {
		return models.Log{}, errNotFound
	}
	return entry, nil
}

func (f *fakeBackend) listLogs(match func(models.Log) bool) []models.Log {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []models.Log
	for _, entry := range f.logs {
		if match(entry) {
			items = append(items, entry)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (f *fakeBackend) ListLogsByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Log, error) {
	if err := f.fail("ListLogsByMahasiswa"); err != nil {
		return nil, err
	}
	return f.listLogs(func(entry models.Log) bool { return entry.IDMahasiswa == mahasiswaID }), nil
}

func (f *fakeBackend) ListLogsByDosen(ctx context.Context, token, dosenID string) ([]models.Log, error) {
	if err := f.fail("ListLogsByDosen"); err != nil {
		return nil, err
	}
	return f.listLogs(func(entry models.Log) bool { return entry.IDDosen == dosenID }), nil
}

func (f *fakeBackend) UpdateLog(ctx context.Context, token, id string, req dto.LogRequest) (models.Log, error) {
	entry := f.logs[id]
	entry.Judul = req.Judul
	entry.WaktuMulai = req.WaktuMulai
	entry.WaktuSelesai = req.WaktuSelesai
	f.logs[id] = entry
	return entry, nil
}

func (f *fakeBackend) DeleteLog(ctx context.Context, token, id string) error {
	delete(f.logs, id)
	return nil
}

func (f *fakeBackend) UpdateLogStatus(ctx context.Context, token, id string, status models.Status) (models.Log, error) {
	entry := f.logs[id]
	entry.Status = status
	f.logs[id] = entry
	return entry, nil
}

func (f *fakeBackend) Honor(ctx context.Context, token string, query dto.HonorQuery) (float64, error) {
	if err := f.fail("Honor"); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.honorCalls++
	return f.honor[query.IDLowongan], nil
}

type memoryActivityRepo struct {
	mu      sync.Mutex
	entries []models.ActivityLog
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uint64(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityFilter) ([]models.ActivityLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := append([]models.ActivityLog(nil), m.entries...)
	if len(entries) > filter.PageSize {
		entries = entries[:filter.PageSize]
	}
	return entries, int64(len(m.entries)), nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Decision
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Decision) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
