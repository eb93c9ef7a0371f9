package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

const pyramidJSON = `{"kind":"pyramid","levels":[{"name":"Leads","value":100},{"name":"Deals","value":20}]}`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, nil)
	t.Cleanup(func() { runner.Close() })
	return New(runner, opts...)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	assert.NoError(t, err, "request id should be a UUID")
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "trace-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 100))
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.NotEqual(t, strings.Repeat("x", 100), rec.Header().Get(HeaderRequestID))
}

func TestComponents(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		count  int
		first  string
	}{
		{"all", "/v1/components", 20, "table"},
		{"search", "/v1/components?q=flow", 1, "sankey-chart"},
		{"category", "/v1/components?category=Metrics", 1, "headline"},
		{"search and category", "/v1/components?q=chart&category=Layout", 0, ""},
		{"category all", "/v1/components?category=All", 20, "table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, tt.target, "", "")
			require.Equal(t, http.StatusOK, rec.Code)

			var list componentList
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
			assert.Equal(t, tt.count, list.Count)
			assert.Len(t, list.Components, tt.count)
			assert.NotNil(t, list.Components)
			if tt.first != "" {
				assert.Equal(t, tt.first, list.Components[0].ID)
			}
			assert.Equal(t, "All", list.Categories[0])
		})
	}
}

func TestComponentsBadQuery(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/v1/components?q=%07", "", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errors.ErrCodeInvalidInput, body.Error.Code)
	assert.NotEmpty(t, body.RequestID)
}

func TestComponent(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/components/waterfall-chart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"waterfall"`)

	rec = do(t, s, http.MethodGet, "/v1/components/does-not-exist", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeComponentNotFound, decodeError(t, rec).Error.Code)
}

func TestComponentDocs(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v1/components/sankey-chart/docs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "miss", rec.Header().Get(HeaderCache))
	page := rec.Body.String()
	assert.Contains(t, page, "<h1")
	assert.Contains(t, page, "Preview")
	assert.Contains(t, page, "<svg")

	rec = do(t, s, http.MethodGet, "/v1/components/sankey-chart/docs", "", "")
	assert.Equal(t, "hit", rec.Header().Get(HeaderCache))
	assert.Equal(t, page, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/v1/components/sankey-chart/docs?preview=false", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<svg")

	rec = do(t, s, http.MethodGet, "/v1/components/table/docs", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<svg")
}

func TestLayout(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/layout?width=300&height=200", "application/json", pyramidJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "miss", rec.Header().Get(HeaderCache))

	scene, err := dsio.ReadScene(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 300.0, scene.Width)
	assert.Equal(t, 200.0, scene.Height)
	assert.Equal(t, 6, scene.Len())

	rec = do(t, s, http.MethodPost, "/v1/layout?width=300&height=200", "application/json", pyramidJSON)
	assert.Equal(t, "hit", rec.Header().Get(HeaderCache))
}

func TestLayoutYAML(t *testing.T) {
	s := newTestServer(t)
	body := "kind: waterfall\nsteps:\n  - {name: Start, value: 1000}\n  - {name: Cost, value: -300}\n"

	rec := do(t, s, http.MethodPost, "/v1/layout", "application/yaml", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	scene, err := dsio.ReadScene(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DefaultWidth, scene.Width)
}

func TestRender(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/v1/render?style=dark", "application/json", pyramidJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<svg"))
	id := rec.Header().Get(HeaderRenderID)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, "miss", rec.Header().Get(HeaderCache))

	rec = do(t, s, http.MethodPost, "/v1/render?style=dark", "application/json", pyramidJSON)
	assert.Equal(t, "hit", rec.Header().Get(HeaderCache))
	assert.Equal(t, id, rec.Header().Get(HeaderRenderID))

	rec = do(t, s, http.MethodPost, "/v1/render?format=json", "application/json", pyramidJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestRenderNodelink(t *testing.T) {
	s := newTestServer(t)
	body := `{"kind":"radial","nodes":[{"id":"a"},{"id":"b"}],"links":[{"source":"a","target":"b","value":3}]}`

	rec := do(t, s, http.MethodPost, "/v1/render?type=nodelink&format=dot", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/vnd.graphviz")
	assert.Contains(t, rec.Body.String(), "digraph")
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(t)
	dangling := `{"kind":"sankey","nodes":[{"id":"a"}],"links":[{"source":"a","target":"b","value":1}]}`

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		status      int
		code        errors.Code
	}{
		{"bad format", "/v1/render?format=gif", "application/json", pyramidJSON, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad style", "/v1/render?style=neon", "application/json", pyramidJSON, http.StatusBadRequest, errors.ErrCodeInvalidStyle},
		{"bad width", "/v1/render?width=wide", "application/json", pyramidJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad json", "/v1/render", "application/json", `{"kind":`, http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"unknown kind", "/v1/render", "application/json", `{"kind":"gauge"}`, http.StatusBadRequest, errors.ErrCodeInvalidKind},
		{"bad content type", "/v1/render", "text/csv", "a,b", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"strict dangling", "/v1/render?strict=true", "application/json", dangling, http.StatusUnprocessableEntity, errors.ErrCodeDanglingLink},
		{"dot for chart", "/v1/render?format=dot", "application/json", pyramidJSON, http.StatusUnprocessableEntity, errors.ErrCodeUnsupported},
		{"layout for bar", "/v1/layout", "application/json", `{"kind":"bar","levels":[{"name":"a","value":1}]}`, http.StatusUnprocessableEntity, errors.ErrCodeUnsupported},
		{"NaN step", "/v1/render", "application/yaml", "kind: waterfall\nsteps:\n  - {name: a, value: .nan}\n", http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"infinite level", "/v1/layout", "application/yaml", "kind: pyramid\nlevels:\n  - {name: a, value: .inf}\n", http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"ramp markup", "/v1/render", "application/json", `{"kind":"heatmap","matrix":[[1,2]],"ramp":["#fff\" onload=\"alert(1)","#000"]}`, http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"palette markup", "/v1/render?palette=%23fff%22onload%3D%22x", "application/json", pyramidJSON, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"oversized dataset canvas", "/v1/render", "application/json", `{"kind":"geo","size":{"width":1e9,"height":10}}`, http.StatusBadRequest, errors.ErrCodeInvalidSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Error.Code)
		})
	}
}

func TestRenderWidthOnly(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/v1/render?width=800", "application/json", pyramidJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `width="800" height="400"`)
}

func TestRenderConfiguredRamp(t *testing.T) {
	s := newTestServer(t, WithRamp([]string{"#123456", "#abcdef"}))

	rec := do(t, s, http.MethodPost, "/v1/render", "application/json", `{"kind":"heatmap","matrix":[[0,1]]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `fill="#abcdef"`)

	rec = do(t, s, http.MethodPost, "/v1/render", "application/json", `{"kind":"heatmap","matrix":[[0,1]],"ramp":["#000000","#ff0000"]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `fill="#ff0000"`)
	assert.NotContains(t, rec.Body.String(), "#abcdef")
}

func TestBodyTooLarge(t *testing.T) {
	s := newTestServer(t, WithMaxBodySize(16))
	rec := do(t, s, http.MethodPost, "/v1/render", "application/json", pyramidJSON)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "request body too large", decodeError(t, rec).Error.Message)
}

func TestRouting(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/v2/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.ErrCodeNotFound, decodeError(t, rec).Error.Code)

	rec = do(t, s, http.MethodGet, "/v1/render", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSize, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeDanglingLink, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNetwork, "x"), http.StatusServiceUnavailable},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New(errors.ErrCodeInvalidDataset, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
		{&http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), "%v", tt.err)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.codes = append(h.codes, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	s := newTestServer(t)
	do(t, s, http.MethodGet, "/v1/components/bullet-chart", "", "")
	do(t, s, http.MethodGet, "/nope", "", "")

	assert.Equal(t, []string{"/v1/components/{id}", "unmatched"}, hooks.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, hooks.codes)
}
