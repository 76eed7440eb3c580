package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/models"
)

const logRoute = "api/log"

// CreateLog submits a work log.
func (c *Client) CreateLog(ctx context.Context, token string, req dto.LogRequest) (models.Log, error) {
	var item models.Log
	err := c.do(ctx, call{endpoint: "log.create", method: http.MethodPost, path: segments(logRoute), token: token, body: req}, &item)
	return item, err
}

// GetLog returns one work log.
func (c *Client) GetLog(ctx context.Context, token, id string) (models.Log, error) {
	var item models.Log
	err := c.do(ctx, call{endpoint: "log.get", method: http.MethodGet, path: segments(logRoute, id), token: token}, &item)
	return item, err
}

// ListLogsByMahasiswa returns a student's logs.
func (c *Client) ListLogsByMahasiswa(ctx context.Context, token, mahasiswaID string) ([]models.Log, error) {
	var items []models.Log
	err := c.do(ctx, call{endpoint: "log.by_mahasiswa", method: http.MethodGet, path: segments(logRoute+"/mahasiswa", mahasiswaID), token: token}, &items)
	return items, err
}

// ListLogsByDosen returns the logs awaiting or past a lecturer's review.
func (c *Client) ListLogsByDosen(ctx context.Context, token, dosenID string) ([]models.Log, error) {
	var items []models.Log
	err := c.do(ctx, call{endpoint: "log.by_dosen", method: http.MethodGet, path: segments(logRoute+"/dosen", dosenID), token: token}, &items)
	return items, err
}

// UpdateLog replaces a pending log.
func (c *Client) UpdateLog(ctx context.Context, token, id string, req dto.LogRequest) (models.Log, error) {
	var item models.Log
	err := c.do(ctx, call{endpoint: "log.update", method: http.MethodPut, path: segments(logRoute, id), token: token, body: req}, &item)
	return item, err
}

// DeleteLog removes a pending log.
func (c *Client) DeleteLog(ctx context.Context, token, id string) error {
	return c.do(ctx, call{endpoint: "log.delete", method: http.MethodDelete, path: segments(logRoute, id), token: token}, nil)
}

// UpdateLogStatus records a lecturer's verification decision.
func (c *Client) UpdateLogStatus(ctx context.Context, token, id string, status models.Status) (models.Log, error) {
	var item models.Log
	err := c.do(ctx, call{
		endpoint: "log.status",
		method:   http.MethodPatch,
		path:     segments(logRoute, id, "status"),
		token:    token,
		body:     dto.StatusRequest{Status: string(status)},
	}, &item)
	return item, err
}

// Honor returns the backend-computed honor for one student, vacancy and month.
func (c *Client) Honor(ctx context.Context, token string, query dto.HonorQuery) (float64, error) {
	values := url.Values{}
	values.Set("idMahasiswa", query.IDMahasiswa)
	values.Set("idLowongan", query.IDLowongan)
	values.Set("bulan", strconv.Itoa(query.Bulan))
	values.Set("tahun", strconv.Itoa(query.Tahun))

	var raw json.RawMessage
	if err := c.do(ctx, call{endpoint: "log.honor", method: http.MethodGet, path: segments(logRoute+"/honor"), query: values, token: token}, &raw); err != nil {
		return 0, err
	}
	return parseHonor(raw)
}

// parseHonor accepts either a bare number or an object with an honor field.
func parseHonor(raw json.RawMessage) (float64, error) {
	var amount float64
	if err := json.Unmarshal(raw, &amount); err == nil {
		return amount, nil
	}

	var wrapped struct {
		Honor *float64 `json:"honor"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Honor == nil {
		return 0, fmt.Errorf("%w: honor response has no amount", ErrUnavailable)
	}
	return *wrapped.Honor, nil
}
