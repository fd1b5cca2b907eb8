package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"team-formation/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(log *zap.Logger) *fiber.App {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log).Middleware())
	app.Use(NewErrorMiddleware(log).Middleware())

	app.Get("/ok", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "", "fine")
	})
	app.Get("/client", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusUnprocessableEntity, "team too small", map[string]int{"min": 2}, nil)
	})
	app.Get("/server", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "disk on fire", nil, errors.New("EIO"))
	})
	app.Get("/fiber", func(c fiber.Ctx) error {
		return fiber.ErrNotFound
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("boom")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("unexpected")
	})
	return app
}

func call(t *testing.T, app *fiber.App, target string, header map[string]string) (*http.Response, response.SemanticResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestErrorMiddleware(t *testing.T) {
	app := newTestApp(zap.NewNop())

	cases := []struct {
		target  string
		status  int
		message string
	}{
		{"/ok", http.StatusOK, response.MessageOK},
		{"/client", http.StatusUnprocessableEntity, "team too small"},
		{"/server", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/fiber", http.StatusNotFound, "Not Found"},
		{"/plain", http.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", http.StatusInternalServerError, response.MessageInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			resp, body := call(t, app, tc.target, nil)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestErrorMiddleware_KeepsClientData(t *testing.T) {
	app := newTestApp(zap.NewNop())

	_, body := call(t, app, "/client", nil)
	assert.Equal(t, map[string]any{"min": float64(2)}, body.Data)
}

func TestErrorMiddleware_LogsServerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newTestApp(zap.New(core))

	call(t, app, "/server", map[string]string{HeaderRequestID: "rid-1"})

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "rid-1", failed[0].ContextMap()["request_id"])
	assert.Contains(t, failed[0].ContextMap()["error"], "EIO")

	access := logs.FilterMessage("http access").All()
	require.Len(t, access, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), access[0].ContextMap()["status"])
}

func TestAccessLog_RequestID(t *testing.T) {
	app := newTestApp(zap.NewNop())

	resp, _ := call(t, app, "/ok", map[string]string{HeaderRequestID: "given"})
	assert.Equal(t, "given", resp.Header.Get(HeaderRequestID))

	resp, _ = call(t, app, "/ok", nil)
	assert.Len(t, resp.Header.Get(HeaderRequestID), 36)
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := NewAppError(fiber.StatusConflict, "conflict", nil, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "conflict: root", err.Error())

	var nilErr *AppError
	assert.Equal(t, "", nilErr.Error())
	assert.NoError(t, nilErr.Unwrap())
}
