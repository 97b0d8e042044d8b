package bootstrap

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webmall/internal/config"
)

const catalogJSON = `[{"id": "set", "tasks": [{"id": "t1", "correct_answer": {"answers": ["{{SHOP1_URL}}/product/a"]}}]}]`

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(catalogJSON), 0o600))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(`SHOP1_URL=http://shop1.example.com
SHOP2_URL=http://shop2.example.com
SHOP3_URL=http://shop3.example.com
SHOP4_URL=http://shop4.example.com
FRONTEND_URL=http://frontend.example.com
`), 0o600))

	settings := config.DefaultSettings()
	settings.TaskSetPath = catalogPath
	settings.EnvFile = envPath
	settings.Port = "0"
	settings.Log.Level = "error"
	return settings
}

func noEnv(string) (string, bool) { return "", false }

func TestNewServerWiresRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := NewServer(testSettings(t),
		WithShopOptions(config.WithEnv(noEnv)),
		WithRegistry(prometheus.NewRegistry()),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"t1"`)
}

func TestNewServerFailsOnMissingShopURL(t *testing.T) {
	settings := testSettings(t)
	settings.EnvFile = ""

	_, err := NewServer(settings, WithShopOptions(config.WithEnv(noEnv)), WithRegistry(prometheus.NewRegistry()))
	require.ErrorContains(t, err, "SHOP1_URL")
}

func TestNewServerFailsOnUnknownWeighting(t *testing.T) {
	settings := testSettings(t)
	settings.Weighting = "unknown"

	_, err := NewServer(settings, WithShopOptions(config.WithEnv(noEnv)), WithRegistry(prometheus.NewRegistry()))
	require.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, err := NewServer(testSettings(t), WithShopOptions(config.WithEnv(noEnv)), WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, listener) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServerRejectsUnknownExporter(t *testing.T) {
	settings := testSettings(t)
	settings.Tracing.Enabled = true
	settings.Tracing.Exporter = "carrier-pigeon"

	_, err := NewServer(settings, WithShopOptions(config.WithEnv(noEnv)), WithRegistry(prometheus.NewRegistry()))
	require.ErrorContains(t, err, "tracing")
}
