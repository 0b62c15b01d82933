package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathgen-hq/mathgen/pkg/config"
	"mathgen-hq/mathgen/pkg/expr"
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/server/middleware"
	"mathgen-hq/mathgen/pkg/service"
	"mathgen-hq/mathgen/pkg/telemetry/metrics"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, http.Handler) {
	t.Helper()
	cfg := config.NewDefault()
	if mutate != nil {
		mutate(cfg)
	}
	gen := service.New(expr.Options{})
	srv := New(cfg, gen).WithMetrics(metrics.NewCollector(cfg.Telemetry.Metrics, nil))
	return srv, srv.Handler()
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) middleware.ErrorResponse {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func TestGenerate(t *testing.T) {
	_, handler := newTestServer(t, nil)

	w := do(handler, http.MethodPost, "/v1/generate", `{"expression": "2x^2", "language": "js"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var result service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "javascript", result.Language)
	assert.Equal(t, "2*Math.pow(x, 2)", result.Code)
	assert.Positive(t, result.Nodes)
}

func TestGenerate_DefaultLanguage(t *testing.T) {
	_, handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Output.DefaultLanguage = "python"
	})

	w := do(handler, http.MethodPost, "/v1/generate", `{"expression": "a(b+1)", "variables": ["a"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result service.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "python", result.Language)
	assert.Equal(t, "a*(b+1)", result.Code)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown function", `{"expression": "f(x)", "language": "python"}`, http.StatusBadRequest, "UnknownFunction"},
		{"unknown language", `{"expression": "x", "language": "cobol"}`, http.StatusBadRequest, "UnknownLanguage"},
		{"unmatched group", `{"expression": "(x", "language": "go"}`, http.StatusBadRequest, "UnmatchedBeginGroup"},
		{"unknown character", `{"expression": "x $ y", "language": "go"}`, http.StatusBadRequest, "UnknownCharacter"},
		{"invalid json", `{"expression": `, http.StatusBadRequest, "InvalidRequest"},
		{"too large", `{"expression": "` + strings.Repeat("x+", 64) + `x", "language": "go"}`, http.StatusRequestEntityTooLarge, "BodyTooLarge"},
	}

	_, handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.MaxBodyBytes = 100
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(handler, http.MethodPost, "/v1/generate", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestGenerate_ErrorPosition(t *testing.T) {
	_, handler := newTestServer(t, nil)

	w := do(handler, http.MethodPost, "/v1/generate", `{"expression": "x $ y", "language": "python"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeError(t, w)
	require.NotNil(t, resp.Error.Position)
	assert.Equal(t, 2, *resp.Error.Position)
	assert.Equal(t, "lexical", resp.Error.Type)
}

func TestGenerate_RequestErrors(t *testing.T) {
	_, handler := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/generate", strings.NewReader("x"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = do(handler, http.MethodPost, "/v1/generate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeError(t, w).Error.Code)

	w = do(handler, http.MethodGet, "/v1/generate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestParse(t *testing.T) {
	_, handler := newTestServer(t, nil)

	w := do(handler, http.MethodPost, "/v1/parse", `{"expression": "y = 2x"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ParseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Tree)
	assert.Equal(t, "equation", resp.Tree.Kind)
	assert.Equal(t, "variable", resp.Tree.Left.Kind)
	assert.Equal(t, "y", resp.Tree.Left.Name)
	assert.Equal(t, 5, resp.Nodes)
	assert.NotEmpty(t, resp.Expression)
}

func TestParse_Error(t *testing.T) {
	_, handler := newTestServer(t, nil)

	w := do(handler, http.MethodPost, "/v1/parse", `{"expression": "x)"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UnmatchedEndGroup", decodeError(t, w).Error.Code)
}

func TestLanguages(t *testing.T) {
	_, handler := newTestServer(t, nil)

	w := do(handler, http.MethodGet, "/v1/languages", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp LanguagesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	aliases := map[string][]string{}
	for _, l := range resp.Languages {
		aliases[l.Name] = l.Aliases
	}
	assert.Contains(t, aliases, "python")
	assert.Contains(t, aliases, "javascript")
	assert.Contains(t, aliases, "php")
	assert.Contains(t, aliases["python"], "py")
	assert.Contains(t, aliases["go"], "golang")
}

func TestHealthAndMetrics(t *testing.T) {
	_, handler := newTestServer(t, nil)

	assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, "/health", "").Code)

	ready := do(handler, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, ready.Code, ready.Body.String())

	version := do(handler, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, version.Code)
	assert.Contains(t, version.Body.String(), "python")

	do(handler, http.MethodGet, "/v1/languages", "")
	m := do(handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), `mathgen_http_requests_total{code="200",method="GET",route="/v1/languages"} 1`)
}

func TestMetricsDisabled(t *testing.T) {
	_, handler := newTestServer(t, func(cfg *config.Config) {
		disabled := false
		cfg.Telemetry.Metrics.Enabled = &disabled
	})
	assert.Equal(t, http.StatusNotFound, do(handler, http.MethodGet, "/metrics", "").Code)
}

func TestRateLimit(t *testing.T) {
	_, handler := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1}
	})

	assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, "/v1/languages", "").Code)

	limited := do(handler, http.MethodGet, "/v1/languages", "")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "RateLimited", decodeError(t, limited).Error.Code)

	assert.Equal(t, http.StatusOK, do(handler, http.MethodGet, "/health", "").Code, "probes are not rate limited")
}

func TestErrorResponse(t *testing.T) {
	list := exprErrors.NewErrorList()
	list.Add(exprErrors.NewUnknownFunction("foo", ast.Position(0), nil))
	list.Add(exprErrors.NewUnknownConstant("bar", ast.Position(7), nil, false))

	status, resp := errorResponse(list)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UnknownFunction", resp.Error.Code)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "UnknownConstant", resp.Errors[1].Code)
	require.NotNil(t, resp.Errors[1].Position)
	assert.Equal(t, 7, *resp.Errors[1].Position)

	status, resp = errorResponse(errors.New("disk on fire"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal", resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "disk")
}

func TestServer_StartShutdown(t *testing.T) {
	srv, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Server.ListenAddress = "127.0.0.1:0"
		cfg.Server.ShutdownTimeout = time.Second
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	require.Eventually(t, srv.IsRunning, 2*time.Second, 10*time.Millisecond)
	assert.Error(t, srv.Start(ctx), "second start must fail")

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.False(t, srv.IsRunning())
}
