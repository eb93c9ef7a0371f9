package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/observability"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func sankeyDataset() *chart.Dataset {
	return &chart.Dataset{
		Kind:  chart.KindSankey,
		Title: "Energy",
		Nodes: []chart.Node{{ID: "coal"}, {ID: "grid"}, {ID: "homes"}},
		Links: []chart.Link{
			{Source: "coal", Target: "grid", Value: 80},
			{Source: "grid", Target: "homes", Value: 60},
		},
	}
}

func TestRunnerExecuteCaches(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, sankeyDataset(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache, got %+v", first.CacheInfo)
	}
	if first.Scene == nil || first.Stats.Shapes != first.Scene.Len() {
		t.Fatalf("scene missing or shape count wrong: %+v", first.Stats)
	}
	if first.Stats.Items != 3 {
		t.Errorf("Items = %d, want 3", first.Stats.Items)
	}
	if !bytes.HasPrefix(first.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg")
	}
	if !json.Valid(first.Artifacts[FormatJSON]) {
		t.Errorf("json artifact is not valid JSON")
	}

	second, err := r.Execute(ctx, sankeyDataset(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache, got %+v", second.CacheInfo)
	}
	if second.RenderID != first.RenderID {
		t.Errorf("RenderID changed: %s != %s", second.RenderID, first.RenderID)
	}
	if !bytes.Equal(second.Artifacts[FormatSVG], first.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from the rendered one")
	}
	if second.DatasetHash != first.DatasetHash {
		t.Error("dataset hash is not stable")
	}
}

func TestRunnerExecuteRefresh(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, sankeyDataset(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(ctx, sankeyDataset(), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh should bypass cache reads, got %+v", res.CacheInfo)
	}
}

func TestRunnerExecuteOptionsChangeKeys(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, sankeyDataset(), Options{}); err != nil {
		t.Fatal(err)
	}
	dark, err := r.Execute(ctx, sankeyDataset(), Options{Style: "dark"})
	if err != nil {
		t.Fatal(err)
	}
	if !dark.CacheInfo.LayoutHit {
		t.Error("a style change should reuse the cached layout")
	}
	if dark.CacheInfo.RenderHit {
		t.Error("a style change should re-render")
	}

	resized, err := r.Execute(ctx, sankeyDataset(), Options{Width: 900, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	if resized.CacheInfo.LayoutHit {
		t.Error("a size change should recompute the layout")
	}
	if resized.Scene.Width != 900 || resized.Scene.Height != 300 {
		t.Errorf("scene size = %gx%g", resized.Scene.Width, resized.Scene.Height)
	}
}

func TestRunnerExecuteStrict(t *testing.T) {
	r := newTestRunner(t)
	ds := sankeyDataset()
	ds.Links = append(ds.Links, chart.Link{Source: "grid", Target: "nowhere", Value: 5})

	if _, err := r.Execute(context.Background(), ds, Options{Strict: true}); !errors.Is(err, errors.ErrCodeDanglingLink) {
		t.Errorf("strict Execute err = %v, want DANGLING_LINK", err)
	}

	res, err := r.Execute(context.Background(), ds, Options{})
	if err != nil {
		t.Fatalf("lenient Execute: %v", err)
	}
	if res.Stats.Dangling != 1 {
		t.Errorf("Dangling = %d, want 1", res.Stats.Dangling)
	}
}

func TestRunnerExecuteInvalid(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	tests := []struct {
		name string
		ds   *chart.Dataset
		opts Options
		want errors.Code
	}{
		{"unknown kind", &chart.Dataset{Kind: "gauge"}, Options{}, errors.ErrCodeInvalidKind},
		{"duplicate node", &chart.Dataset{Kind: chart.KindRadial, Nodes: []chart.Node{{ID: "a"}, {ID: "a"}}}, Options{}, errors.ErrCodeInvalidDataset},
		{"bad format", sankeyDataset(), Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"dot without nodelink", sankeyDataset(), Options{Formats: []string{FormatDOT}}, errors.ErrCodeUnsupported},
		{"nodelink for pyramid", &chart.Dataset{Kind: chart.KindPyramid, Levels: []chart.Level{{Name: "a", Value: 1}}},
			Options{Type: TypeNodelink, Formats: []string{FormatDOT}}, errors.ErrCodeUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Execute(ctx, tt.ds, tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestRunnerExecuteNodelink(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Execute(context.Background(), sankeyDataset(), Options{
		Type:    TypeNodelink,
		Formats: []string{FormatDOT, FormatJSON},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Scene != nil {
		t.Error("node-link output should skip the layout stage")
	}
	dot := string(res.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph") || !strings.Contains(dot, "->") {
		t.Errorf("dot output missing graph or edges:\n%s", dot)
	}
	var doc struct {
		Type string `json:"type"`
		DOT  string `json:"dot"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Type != TypeNodelink || doc.DOT != dot {
		t.Errorf("json = %+v", doc)
	}
}

func TestRunnerExecuteBasic(t *testing.T) {
	r := newTestRunner(t)
	ds := &chart.Dataset{
		Kind:   chart.KindBar,
		Title:  "Quarterly",
		Levels: []chart.Level{{Name: "Q1", Value: 10}, {Name: "Q2", Value: 14}, {Name: "Q3", Value: 9}},
	}
	res, err := r.Execute(context.Background(), ds, Options{Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Scene != nil {
		t.Error("basic charts have no scene")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact missing <svg")
	}
	var back chart.Dataset
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &back); err != nil {
		t.Fatal(err)
	}
	if back.Kind != chart.KindBar || len(back.Levels) != 3 {
		t.Errorf("json dataset = %+v", back)
	}
}

func TestRunnerLayoutAndRender(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	ds := &chart.Dataset{Kind: chart.KindPyramid, Levels: []chart.Level{{Name: "a", Value: 5}, {Name: "b", Value: 10}}}

	scene, err := r.Layout(ctx, ds, Options{})
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(ctx, scene, ds.Kind, Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatal(err)
	}
	if len(out[FormatSVG]) == 0 {
		t.Error("empty svg")
	}
	if _, err := r.Render(ctx, scene, ds.Kind, Options{Type: TypeNodelink}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render nodelink err = %v", err)
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu       sync.Mutex
	layouts  int
	renders  int
	lastKind string
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, kind string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
	h.lastKind = kind
}

func (h *countingHooks) OnRenderComplete(context.Context, string, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders++
}

func TestRunnerHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}
	for range 2 {
		if _, err := r.Execute(ctx, sankeyDataset(), opts); err != nil {
			t.Fatal(err)
		}
	}

	if hooks.layouts != 1 {
		t.Errorf("layouts = %d, want 1 (second run cached)", hooks.layouts)
	}
	if hooks.renders != 2 {
		t.Errorf("renders = %d, want 2", hooks.renders)
	}
	if hooks.lastKind != string(chart.KindSankey) {
		t.Errorf("lastKind = %q", hooks.lastKind)
	}
}

func TestRenderID(t *testing.T) {
	a, b := RenderID("abc"), RenderID("abc")
	if a != b {
		t.Error("RenderID is not deterministic")
	}
	if RenderID("abd") == a {
		t.Error("different hashes should give different ids")
	}
	if len(a) != 36 {
		t.Errorf("RenderID %q is not a UUID", a)
	}
}
