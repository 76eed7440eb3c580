package utils_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/asdos-web/internal/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Details json.RawMessage `json:"details"`
}

func call(t *testing.T, handler fiber.Handler) (int, envelope) {
	t.Helper()
	app := fiber.New()
	app.All("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestOKCarriesMeta(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return utils.OK(c, []string{"low-1", "low-2"}, "", fiber.Map{"total": 2})
	})

	require.Equal(t, fiber.StatusOK, status)
	require.True(t, body.Success)
	require.Equal(t, "success", body.Message)
	require.JSONEq(t, `["low-1","low-2"]`, string(body.Data))
	require.JSONEq(t, `{"total":2}`, string(body.Meta))
}

func TestSendSuccessWithStatusCreated(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "log submitted", fiber.Map{"id": "log-1", "status": "MENUNGGU"})
	})

	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, "log submitted", body.Message)
	require.JSONEq(t, `{"id":"log-1","status":"MENUNGGU"}`, string(body.Data))
}

func TestSendSuccessOmitsNilData(t *testing.T) {
	_, body := call(t, func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "log deleted", nil)
	})

	require.True(t, body.Success)
	require.Nil(t, body.Data)
}

func TestFailCarriesFieldDetails(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, "validation failed", []fiber.Map{{"field": "waktuMulai", "rule": "required"}})
	})

	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.False(t, body.Success)
	require.JSONEq(t, `[{"field":"waktuMulai","rule":"required"}]`, string(body.Details))
	require.Nil(t, body.Data)
}

func TestSendErrorDefaultsMessage(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusBadGateway, "")
	})

	require.Equal(t, fiber.StatusBadGateway, status)
	require.Equal(t, "error", body.Message)
	require.Nil(t, body.Details)
}
