package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

func memoryBackend(t *testing.T) *repos.Backend {
	t.Helper()
	return repos.SelectBackend(context.Background(), config.Config{DBDriver: "sqlite"}, repos.NewMemoryStore())
}

func sqliteBackend(t *testing.T) *repos.Backend {
	t.Helper()
	cfg := config.Config{
		DBDriver:       "sqlite",
		DBDSN:          filepath.Join(t.TempDir(), "shop.db"),
		ConnectTimeout: 5 * time.Second,
	}
	b := repos.SelectBackend(context.Background(), cfg, repos.NewMemoryStore())
	require.Equal(t, repos.ModeSQL, b.Mode)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newApp(t *testing.T, b *repos.Backend) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(requestid.New())
	handlers.NewDeps(b).Register(app, config.Config{LoginRateMax: 100})
	return app
}

// call sends a JSON request and returns the status and raw body.
func call(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			r = strings.NewReader(v)
		default:
			b, err := json.Marshal(v)
			require.NoError(t, err)
			r = bytes.NewReader(b)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type logEntry struct {
	Action string         `json:"action"`
	Level  string         `json:"level"`
	Audit  bool           `json:"audit"`
	ReqID  string         `json:"req_id"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

// captureLogs redirects the app logger while fn runs and returns the parsed lines.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf lockedBuf
	require.NoError(t, applog.Setup(&buf, "debug"))
	defer func() { _ = applog.Setup(os.Stdout, "info") }()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.b.String()), "\n") {
		var e logEntry
		if line != "" && json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findAction(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
