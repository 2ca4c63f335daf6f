package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiberErrorHandler_EnvelopeSeragam(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FiberErrorHandler})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusForbidden, "Akses khusus admin")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("kabel kendor")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/forbidden", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, sonic.Unmarshal(raw, &env))
	assert.Equal(t, fiber.StatusForbidden, env.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Akses khusus admin", env.Message)

	// error biasa tidak membocorkan detail internal
	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(raw, &env))
	assert.Equal(t, "error", env.Status)
	assert.NotContains(t, env.Message, "kabel kendor")
}
