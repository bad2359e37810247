package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/taskroute"
	"github.com/aretw0/taskroute/internal/testutils"
	httpadapter "github.com/aretw0/taskroute/pkg/adapters/http"
	"github.com/aretw0/taskroute/pkg/domain"
	"github.com/aretw0/taskroute/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, replies []testutils.Reply, opts ...httpadapter.Option) http.Handler {
	t.Helper()
	router, err := taskroute.New(testutils.NewScriptedGenerator(replies...))
	require.NoError(t, err)
	return httpadapter.NewHandler(router, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := newHandler(t, nil)
	rec := do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(httpadapter.RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	h := newHandler(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(httpadapter.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(httpadapter.RequestIDHeader))
}

func TestRun(t *testing.T) {
	t.Run("Translate", func(t *testing.T) {
		h := newHandler(t, []testutils.Reply{
			testutils.Text(`{"agent": "translate", "input": "Bonjour le monde"}`),
			testutils.Text("Hello world"),
		})
		rec := do(t, h, http.MethodPost, "/run", `{"task":"Can you translate this?","input":"Bonjour le monde"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"agent":"translate","input":"Bonjour le monde","result":"Hello world"}`, rec.Body.String())
	})

	t.Run("CalculateLocally", func(t *testing.T) {
		h := newHandler(t, []testutils.Reply{
			testutils.Text(`{"agent": "calculate", "input": "12 * 8 - 6"}`),
		})
		rec := do(t, h, http.MethodPost, "/run", `{"task":"What is 12 * 8 - 6?","input":"12 * 8 - 6"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"agent":"calculate","input":"12 * 8 - 6","result":"90"}`, rec.Body.String())
	})

	t.Run("EmptyStringsAreAllowed", func(t *testing.T) {
		h := newHandler(t, []testutils.Reply{
			testutils.Text(`{"agent": "summarize", "input": ""}`),
			testutils.Text("nothing to summarize"),
		})
		rec := do(t, h, http.MethodPost, "/run", `{"task":"","input":""}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestRun_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"MalformedJSON", `{"task":`, "Invalid request body"},
		{"MissingTask", `{"input":"x"}`, "Both 'task' and 'input' are required"},
		{"MissingInput", `{"task":"x"}`, "Both 'task' and 'input' are required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(t, nil)
			rec := do(t, h, http.MethodPost, "/run", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRun_InputTooLarge(t *testing.T) {
	h := newHandler(t, nil, httpadapter.WithMaxInputSize(8))
	rec := do(t, h, http.MethodPost, "/run", `{"task":"short","input":"this is far too long"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid input")
}

func TestRun_GeneratorFailure(t *testing.T) {
	h := newHandler(t, []testutils.Reply{testutils.Fail(errors.New("upstream 503"))})
	rec := do(t, h, http.MethodPost, "/run", `{"task":"t","input":"i"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream 503")
}

type failingRouter struct{}

func (failingRouter) Route(context.Context, string, string) (*domain.Response, error) {
	return nil, domain.ErrIncompleteState
}

func (failingRouter) Inspect() []domain.Node { return nil }

func TestRun_InternalFailure(t *testing.T) {
	h := httpadapter.NewHandler(failingRouter{})
	rec := do(t, h, http.MethodPost, "/run", `{"task":"t","input":"i"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"request state is incomplete"}`, rec.Body.String())
}

func TestGraph(t *testing.T) {
	h := newHandler(t, nil)

	rec := do(t, h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"Manager"`)
	assert.Contains(t, rec.Body.String(), `"kind":"start"`)

	rec = do(t, h, http.MethodGet, "/graph/mermaid", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "graph TD\n"))
	assert.NotContains(t, rec.Body.String(), "classDef")

	rec = do(t, h, http.MethodGet, "/graph/mermaid?agent=calculate", "")
	assert.Contains(t, rec.Body.String(), "class Calculator current;")
}

func TestInfoAndDocs(t *testing.T) {
	h := newHandler(t, nil, httpadapter.WithVersion("9.9.9"))

	rec := do(t, h, http.MethodGet, "/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"app":"taskroute-http","version":"9.9.9","api_version":"1.0.0"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "operationId: run")

	rec = do(t, h, http.MethodGet, "/swagger", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SwaggerUIBundle")
}

func TestGetSwagger(t *testing.T) {
	doc, err := httpadapter.GetSwagger()
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/run"))
}

func TestCORSPreflight(t *testing.T) {
	h := newHandler(t, nil)
	rec := do(t, h, http.MethodOptions, "/run", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := newHandler(t, nil, httpadapter.WithMetrics(m, reg))

	do(t, h, http.MethodGet, "/healthz", "")
	do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/healthz", "200")))

	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "taskroute_http_requests_total")
}

func TestMetrics_NotExposedWithoutGatherer(t *testing.T) {
	h := newHandler(t, nil)
	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(newHandler(t, []testutils.Reply{
		testutils.Text(`{"agent": "summarize", "input": "long text"}`),
		testutils.Text("short"),
	}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/run", "application/json", strings.NewReader(`{"task":"Please summarize","input":"long text"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"agent":"summarize","input":"long text","result":"short"}`, string(body))
}
