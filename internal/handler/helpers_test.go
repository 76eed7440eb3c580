package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/backend"
	"github.com/noah-isme/asdos-web/internal/middleware"
	"github.com/noah-isme/asdos-web/internal/token"
)

const (
	studentID  = "1d7c2a1e-3f4b-4c5d-8e9f-0a1b2c3d4e5f"
	lecturerID = "2e8d3b2f-4a5c-4d6e-9fa0-1b2c3d4e5f60"
	adminID    = "3f9e4c3a-5b6d-4e7f-a0b1-2c3d4e5f6071"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

// newBackend starts a fake REST backend serving mux and returns a client for it.
func newBackend(t *testing.T, mux *http.ServeMux) *backend.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := backend.New(backend.Config{BaseURL: server.URL, Timeout: 2 * time.Second, Logger: zerolog.Nop()})
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// asUser stands in for the route guard, storing an identity in Locals.
func asUser(id string, role token.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, id)
		c.Locals(middleware.LocalRole, string(role))
		c.Locals(middleware.LocalToken, "bearer-"+strings.ToLower(string(role)))
		return c.Next()
	}
}

func signedToken(t *testing.T, role token.Role, userID string, exp time.Time) string {
	t.Helper()
	raw, err := token.Encode(
		map[string]interface{}{"alg": "HS256", "typ": "JWT"},
		map[string]interface{}{
			"sub":    "user-" + strings.ToLower(string(role)),
			"role":   string(role),
			"userId": userID,
			"iat":    exp.Add(-time.Hour).Unix(),
			"exp":    exp.Unix(),
		},
		"c2ln",
	)
	require.NoError(t, err)
	return raw
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
