package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationsAreAudited(t *testing.T) {
	app := newApp(t, memoryBackend(t))

	entries := captureLogs(t, func() {
		code, _ := call(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Hats"})
		require.Equal(t, http.StatusOK, code)
		code, _ = call(t, app, http.MethodPut, "/api/orders/1", map[string]any{"status": "cancelled"})
		require.Equal(t, http.StatusOK, code)
		code, _ = call(t, app, http.MethodPost, "/api/orders", map[string]any{"user_id": 2})
		require.Equal(t, http.StatusOK, code)
	})

	for _, action := range []string{"category.create", "order.status", "order.place"} {
		e, ok := findAction(entries, action)
		require.True(t, ok, action)
		assert.True(t, e.Audit, action)
		assert.NotEmpty(t, e.ReqID, action)
	}
	e, _ := findAction(entries, "order.status")
	assert.Equal(t, "cancelled", e.Fields["status"])
}

func TestValidationFailureIsLogged(t *testing.T) {
	app := newApp(t, memoryBackend(t))

	entries := captureLogs(t, func() {
		code, _ := call(t, app, http.MethodPost, "/api/products", map[string]any{"name": "x", "price": -5})
		require.Equal(t, http.StatusBadRequest, code)
	})
	e, ok := findAction(entries, "validation.fail")
	require.True(t, ok)
	assert.Equal(t, "price must be at least 0", e.Fields["reason"])
}
