package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/applitest/testrunner-mcp/internal/logging"
	httpadapter "github.com/applitest/testrunner-mcp/pkg/adapters/http"
	"github.com/applitest/testrunner-mcp/pkg/adapters/mcp"
	"github.com/applitest/testrunner-mcp/pkg/adapters/memory"
	"github.com/applitest/testrunner-mcp/pkg/catalog"
	"github.com/applitest/testrunner-mcp/pkg/observability"
	"github.com/applitest/testrunner-mcp/pkg/session"
	"github.com/applitest/testrunner-mcp/pkg/tools"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := session.NewRegistry()
	info := catalog.NewInfo("", "1.2.3")
	s := mcp.NewServer(tools.NewDispatcher(memory.New(), registry), info)

	reg := prometheus.NewRegistry()
	observability.RegisterSessionGauge(reg, registry)

	srv := httptest.NewServer(httpadapter.NewHandler(s, info,
		httpadapter.WithGatherer(reg),
		httpadapter.WithClock(func() time.Time { return fixedNow }),
		httpadapter.WithBaseURL("http://localhost:4000"),
	))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{
		"status": "healthy",
		"timestamp": "2026-01-02T03:04:05Z",
		"server": "test-runner-proxy-server",
		"version": "1.2.3"
	}`, body)
}

func TestAPIInfo(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv.URL+"/api/info")

	var info struct {
		Server    catalog.Info      `json:"server"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &info))
	assert.Equal(t, "1.2.3", info.Server.Version)
	assert.Len(t, info.Server.Tools, 5)
	assert.Equal(t, "/mcp", info.Endpoints["mcp"])
	assert.Equal(t, "/", info.Endpoints["dashboard"])
	assert.Equal(t, "/metrics", info.Endpoints["metrics"])
}

func TestDashboard(t *testing.T) {
	srv := newTestServer(t)

	resp, body := get(t, srv.URL+"/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<strong>do-step</strong>")
	assert.Contains(t, body, "<strong>generate-test-scenario-prompt</strong>")
	assert.Contains(t, body, `"url": "http://localhost:4000/mcp"`)
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	_, body := get(t, srv.URL+"/metrics")

	assert.Contains(t, body, "testrunner_session_open 0")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/mcp", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestStreamableMCP(t *testing.T) {
	srv := newTestServer(t)

	msg := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/mcp", strings.NewReader(msg))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"test-runner-proxy-server"`)
}

func TestServe_GracefulShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- httpadapter.Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logging.NewNop())
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(httpadapter.ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
