package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/http/handlers"
)

// Internal failures answer with a generic body and never leak details.
func TestErrorHandlerHidesInternals(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	app.Get("/err", func(c *fiber.Ctx) error {
		return errors.New("db timeout: secret trace")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusInternalServerError, "pq: password authentication failed")
	})

	entries := captureLogs(t, func() {
		for _, path := range []string{"/err", "/boom"} {
			code, raw := call(t, app, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusInternalServerError, code)
			assert.JSONEq(t, `{"message":"Server error"}`, string(raw))
			assert.NotContains(t, string(raw), "secret")
			assert.NotContains(t, string(raw), "password")
		}
	})
	e, ok := findAction(entries, "server.error")
	require.True(t, ok)
	assert.Contains(t, e.Err, "secret trace")
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	app := newApp(t, memoryBackend(t))

	code, raw := call(t, app, http.MethodPost, "/api/products", `{"name": "x", "price": `)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.JSONEq(t, `{"message":"Invalid request payload"}`, string(raw))
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	app := newApp(t, memoryBackend(t))
	code, raw := call(t, app, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, string(raw), `"message"`)
}
