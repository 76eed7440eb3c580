package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

const (
	lowonganRoute = "api/lowongan"
	lamaranRoute  = "api/lamaran"
)

// LowonganFilter narrows vacancy listings.
type LowonganFilter struct {
	DosenID string
}

// ListLowongan returns vacancies, optionally only those of one lecturer.
func (c *Client) ListLowongan(ctx context.Context, token string, filter LowonganFilter) ([]models.Lowongan, error) {
	query := url.Values{}
	if filter.DosenID != "" {
		query.Set("idDosen", filter.DosenID)
	}

	var items []models.Lowongan
	err := c.do(ctx, call{endpoint: "lowongan.list", method: http.MethodGet, path: segments(lowonganRoute), query: query, token: token}, &items)
	return items, err
}

// GetLowongan returns one vacancy.
func (c *Client) GetLowongan(ctx context.Context, token, id string) (models.Lowongan, error) {
	var item models.Lowongan
	err := c.do(ctx, call{endpoint: "lowongan.get", method: http.MethodGet, path: segments(lowonganRoute, id), token: token}, &item)
	return item, err
}

// CreateLowongan posts a vacancy.
func (c *Client) CreateLowongan(ctx context.Context, token string, req dto.LowonganRequest) (models.Lowongan, error) {
	var item models.Lowongan
	err := c.do(ctx, call{endpoint: "lowongan.create", method: http.MethodPost, path: segments(lowonganRoute), token: token, body: req}, &item)
	return item, err
}

// UpdateLowongan replaces a vacancy's details.
func (c *Client) UpdateLowongan(ctx context.Context, token, id string, req dto.LowonganRequest) (models.Lowongan, error) {
	var item models.Lowongan
	err := c.do(ctx, call{endpoint: "lowongan.update", method: http.MethodPut, path: segments(lowonganRoute, id), token: token, body: req}, &item)
	return item, err
}

// DeleteLowongan removes a vacancy.
func (c *Client) DeleteLowongan(ctx context.Context, token, id string) error {
	return c.do(ctx, call{endpoint: "lowongan.delete", method: http.MethodDelete, path: segments(lowonganRoute, id), token: token}, nil)
}

// CreateLamaran submits an application.
func (c *Client) CreateLamaran(ctx context.Context, token string, req dto.LamaranRequest) (models.Lamaran, error) {
	var item models.Lamaran
	err := c.do(ctx, call{endpoint: "lamaran.create", method: http.MethodPost, path: segments(lamaranRoute), token: token, body: req}, &item)
	return item, err
}

// ListLamaranByMahasiswa returns a student's applications.
func (c *Client) ListLamaranByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Lamaran, error) {
	var items []models.Lamaran
	err := c.do(ctx, call{endpoint: "lamaran.by_mahasiswa", method: http.MethodGet, path: segments(lamaranRoute+"/mahasiswa", mahasiswaID), token: token}, &items)
	return items, err
}

// ListLamaranByLowongan returns the applications to one vacancy.
func (c *Client) ListLamaranByLowongan(ctx context.Context, token, lowonganID string) ([]models.Lamaran, error) {
	var items []models.Lamaran
	err := c.do(ctx, call{endpoint: "lamaran.by_lowongan", method: http.MethodGet, path: segments(lamaranRoute+"/lowongan", lowonganID), token: token}, &items)
	return items, err
}

// GetLamaran returns one application.
func (c *Client) GetLamaran(ctx context.Context, token, id string) (models.Lamaran, error) {
	var item models.Lamaran
	err := c.do(ctx, call{endpoint: "lamaran.get", method: http.MethodGet, path: segments(lamaranRoute, id), token: token}, &item)
	return item, err
}

// UpdateLamaranStatus accepts or rejects an application.
func (c *Client) UpdateLamaranStatus(ctx context.Context, token, id string, status models.Status) (models.Lamaran, error) {
	var item models.Lamaran
	err := c.do(ctx, call{
		endpoint: "lamaran.status",
		method:   http.MethodPatch,
		path:     segments(lamaranRoute, id, "status"),
		token:    token,
		body:     dto.StatusRequest{Status: string(status)},
	}, &item)
	return item, err
}
