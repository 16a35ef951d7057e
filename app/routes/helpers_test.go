package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"blogspot/app/repositories"
	"blogspot/app/services"
	"blogspot/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestStore(t *testing.T, driver string) *repositories.Store {
	t.Helper()
	cfg := config.StorageConfig{Driver: driver, InMemory: true}
	if driver == config.DriverSQLite {
		cfg.DSN = filepath.Join(t.TempDir(), "blogspot.db")
	}
	store, err := repositories.Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestRouter(t *testing.T, store *repositories.Store, mutate ...func(*Config)) http.Handler {
	t.Helper()
	cfg := Config{
		Posts:    services.NewPostService(store.Posts),
		Comments: services.NewCommentService(store.Comments, store.Posts),
		Logger:   zap.NewNop(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return SetupRoutes(cfg)
}

func request(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dst), rr.Body.String())
}

// forEachBackend runs fn against a fresh router on every storage backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, h http.Handler)) {
	for _, driver := range []string{config.DriverBadger, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			fn(t, setupTestRouter(t, setupTestStore(t, driver)))
		})
	}
}
