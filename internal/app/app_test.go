package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

const mascara = `{"id":1,"title":"Essence Mascara","price":9.99,"thumbnail":"t.png","category":"beauty"}`

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"products":[`+mascara+`],"total":1,"skip":0,"limit":12}`)
	})
	mux.HandleFunc("GET /products/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, mascara)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	return &config.Config{
		Environment:     "test",
		HTTPPort:        0,
		CatalogBaseURL:  catalogServer(t).URL,
		CatalogTimeout:  2 * time.Second,
		CatalogPageSize: 12,
		StorageBackend:  backend,
		SQLitePath:      filepath.Join(t.TempDir(), "storefront.db"),
	}
}

func serve(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewApp_MemoryBackend(t *testing.T) {
	a, err := NewApp(testConfig(t, config.BackendMemory), testLogger())
	require.NoError(t, err)

	rec := serve(t, a.Handler(), http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Essence Mascara")

	rec = serve(t, a.Handler(), http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "catalog")

	assert.NoError(t, a.Shutdown())
}

func TestNewApp_SQLiteSurvivesRestart(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	a, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	rec := serve(t, a.Handler(), http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, a.Shutdown())

	db, err := sqlite.Open(cfg.SQLitePath)
	require.NoError(t, err)
	raw, ok, err := db.Get(context.Background(), storage.CartKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"quantity":1`)
	require.NoError(t, db.Close())

	b, err := NewApp(cfg, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })

	require.Eventually(t, func() bool {
		rec := serve(t, b.Handler(), http.MethodGet, "/api/v1/cart", "")
		return bytes.Contains(rec.Body.Bytes(), []byte(`"total_items":1`))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewApp_UnknownBackend(t *testing.T) {
	_, err := NewApp(testConfig(t, "etcd"), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown storage backend "etcd"`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := NewApp(testConfig(t, config.BackendMemory), testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOpenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t, config.BackendRedis)
	cfg.RedisAddr = mr.Addr()

	store, err := OpenStore(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", "v"))
	assert.NoError(t, store.Ping(context.Background()))
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t, config.BackendRedis)
	cfg.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := OpenStore(ctx, cfg, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}

func TestStore_MemoryPingAndClose(t *testing.T) {
	store, err := OpenStore(context.Background(), testConfig(t, config.BackendMemory), testLogger())
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
	assert.NoError(t, store.Close())
}
