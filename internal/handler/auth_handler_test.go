package handler_test

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/dto"
	"github.com/noah-isme/asdos-web/internal/handler"
	"github.com/noah-isme/asdos-web/internal/service"
	"github.com/noah-isme/asdos-web/internal/session"
	"github.com/noah-isme/asdos-web/internal/token"
)

func newAuthApp(t *testing.T, loginReply func(w http.ResponseWriter)) *fiber.App {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		loginReply(w)
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"accept","message":"Registrasi berhasil"}`)
	})

	codec, err := token.NewCodec("")
	require.NoError(t, err)

	authService := service.NewAuthService(newBackend(t, mux), testValidator(), zerolog.Nop())
	app := fiber.New()
	handler.NewAuthHandler(authService, session.NewManager(codec, false), nil, zerolog.Nop()).Register(app.Group("/auth"))
	return app
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_LoginSetsSessionCookie(t *testing.T) {
	raw := signedToken(t, token.RoleAdmin, adminID, time.Now().Add(time.Hour))
	app := newAuthApp(t, func(w http.ResponseWriter) {
		writeJSON(w, http.StatusOK, `{"status":"accept","message":"Login berhasil","token":"`+raw+`"}`)
	})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"username":"admin","password":"secret"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.Equal(t, raw, cookie.Value)
	require.True(t, cookie.HttpOnly)

	var body envelope
	decodeResponse(t, resp, &body)
	require.Equal(t, "Login berhasil", body.Message)

	var data dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.True(t, data.Authenticated)
	require.Equal(t, "ADMIN", data.Role)
	require.Equal(t, "/dashboard/admin", data.Dashboard)
}

func TestAuthHandler_LoginRejectsExpiredBackendToken(t *testing.T) {
	raw := signedToken(t, token.RoleStudent, studentID, time.Now().Add(-time.Minute))
	app := newAuthApp(t, func(w http.ResponseWriter) {
		writeJSON(w, http.StatusOK, `{"status":"accept","token":"`+raw+`"}`)
	})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"username":"m","password":"p"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	require.Nil(t, sessionCookie(resp))
}

func TestAuthHandler_LoginPassesBackendRejection(t *testing.T) {
	app := newAuthApp(t, func(w http.ResponseWriter) {
		writeJSON(w, http.StatusUnauthorized, `{"status":"reject","message":"Username atau password salah"}`)
	})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"username":"m","password":"wrong"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body envelope
	decodeResponse(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "Username atau password salah", body.Message)
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	app := newAuthApp(t, func(w http.ResponseWriter) {
		t.Error("backend must not be called")
	})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/login", `{"username":""}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var body envelope
	decodeResponse(t, resp, &body)
	require.Contains(t, string(body.Details), `"field":"username"`)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/auth/login", `{`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Register(t *testing.T) {
	app := newAuthApp(t, func(w http.ResponseWriter) {})

	resp, err := app.Test(jsonRequest(http.MethodPost, "/auth/register",
		`{"fullName":"Ayu","email":"ayu@ui.ac.id","username":"ayu","nim":"2106123456","password":"rahasia123"}`), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestAuthHandler_SessionAndLogout(t *testing.T) {
	app := newAuthApp(t, func(w http.ResponseWriter) {})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/auth/session", ""), -1)
	require.NoError(t, err)
	var body envelope
	decodeResponse(t, resp, &body)
	require.JSONEq(t, `{"authenticated":false}`, string(body.Data))

	raw := signedToken(t, token.RoleLecturer, lecturerID, time.Now().Add(time.Hour))
	req := jsonRequest(http.MethodGet, "/auth/session", "")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: raw})
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	decodeResponse(t, resp, &body)
	var data dto.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.True(t, data.Authenticated)
	require.Equal(t, "/dashboard/dosen", data.Dashboard)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/auth/logout", ""), -1)
	require.NoError(t, err)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	require.Empty(t, cookie.Value)
}

func TestAuthHandler_SessionContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("testdata", "session.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile("file://" + filepath.ToSlash(schemaPath))
	require.NoError(t, err)

	app := newAuthApp(t, func(w http.ResponseWriter) {})
	req := jsonRequest(http.MethodGet, "/auth/session", "")
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: signedToken(t, token.RoleStudent, studentID, time.Now().Add(time.Hour))})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload interface{}
	decodeResponse(t, resp, &payload)
	require.NoError(t, schema.Validate(payload))
}
