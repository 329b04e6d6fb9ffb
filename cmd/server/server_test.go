package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dfx-site/internal/config"
	"dfx-site/internal/rpc"
	"dfx-site/services"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListenAddrs(t *testing.T) {
	got := ParseListenAddrs(" :8080, ,unix:/tmp/dfx.sock,127.0.0.1:9000")
	want := []ListenAddr{
		{Network: "tcp", Address: ":8080"},
		{Network: "unix", Address: "/tmp/dfx.sock"},
		{Network: "tcp", Address: "127.0.0.1:9000"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseListenAddrs mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, ParseListenAddrs(""))
}

func TestCreateListeners(t *testing.T) {
	sock := filepath.Join(t.TempDir(), "dfx.sock")
	listeners, err := CreateListeners([]ListenAddr{
		{Network: "tcp", Address: "127.0.0.1:0"},
		{Network: "unix", Address: sock},
		{Network: "tcp", Address: "256.0.0.1:1"},
	})
	assert.Error(t, err, "the bad address is reported")
	require.Len(t, listeners, 2)
	for _, l := range listeners {
		l.Close()
	}
}

func newTestServer(t *testing.T, metrics bool) (*config.AppConfig, *services.Server) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/catalog.yaml", []byte("software:\n  - name: Foo\n    page: main\n"), 0644))
	store, err := services.NewCatalogStore(fs, "/catalog.yaml")
	require.NoError(t, err)

	cfg := &config.AppConfig{
		Site:    config.SiteConfig{ContactAnchor: "./#contact"},
		Metrics: config.MetricsConfig{Enabled: metrics, Path: "/metrics"},
	}
	return cfg, services.NewServer(cfg, services.NewSite(cfg.Site, fs, store))
}

func TestNewRouter(t *testing.T) {
	cfg, srv := newTestServer(t, true)
	router, err := NewRouter(cfg, srv)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "site_request_total")
}

func TestNewRouterWithoutMetrics(t *testing.T) {
	cfg, srv := newTestServer(t, false)
	router, err := NewRouter(cfg, srv)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	listeners, err := CreateListeners([]ListenAddr{{Network: "tcp", Address: "127.0.0.1:0"}})
	require.NoError(t, err)
	addr := listeners[0].Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "pong")
		}), listeners)
	}()

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeTrustsUnixSocketForAdmin(t *testing.T) {
	cfg, srv := newTestServer(t, false)
	cfg.Server.AdminSecret = "s3cret"
	router, err := NewRouter(cfg, srv)
	require.NoError(t, err)

	sock := filepath.Join(t.TempDir(), "dfx.sock")
	listeners, err := CreateListeners([]ListenAddr{
		{Network: "unix", Address: sock},
		{Network: "tcp", Address: "127.0.0.1:0"},
	})
	require.NoError(t, err)
	require.Len(t, listeners, 2)
	tcpAddr := listeners[1].Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, router, listeners) }()
	defer func() {
		cancel()
		<-done
	}()

	local := rpc.NewHTTPClient(rpc.ConfigFromAddress("unix:" + sock))
	defer local.Close()
	resp, err := local.Post("/api/v1/reload", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "no token needed on the Unix socket")

	remote := rpc.NewHTTPClient(rpc.ConfigFromAddress(tcpAddr))
	defer remote.Close()
	resp, err = remote.Post("/api/v1/reload", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
