package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "scene:1"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "scene:1", []byte(`{"width":10}`), time.Hour); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "scene:1")
	if err != nil || !hit || string(data) != `{"width":10}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Overwrite keeps a single entry.
	if err := c.Set(ctx, "scene:1", []byte("v2"), 0); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := c.Get(ctx, "scene:1"); string(data) != "v2" {
		t.Errorf("after overwrite Get = %q", data)
	}

	if err := c.Delete(ctx, "scene:1"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "scene:1"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "scene:1"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry reported as hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Clear left %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}

	a, err := HashJSON(map[string]int{"b": 2, "a": 1})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := HashJSON(map[string]int{"a": 1, "b": 2})
	if a != b {
		t.Error("HashJSON depends on map insertion order")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON of a func should fail")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	s1 := k.SceneKey("h", SceneKeyOpts{Kind: "sankey", Width: 400, Height: 300})
	if !strings.HasPrefix(s1, "scene:") {
		t.Errorf("SceneKey = %q", s1)
	}
	if s1 != k.SceneKey("h", SceneKeyOpts{Kind: "sankey", Width: 400, Height: 300}) {
		t.Error("SceneKey not deterministic")
	}

	sceneVariants := []SceneKeyOpts{
		{Kind: "radial", Width: 400, Height: 300},
		{Kind: "sankey", Width: 401, Height: 300},
		{Kind: "sankey", Width: 400, Height: 300, Placement: "layered"},
	}
	for _, o := range sceneVariants {
		if k.SceneKey("h", o) == s1 {
			t.Errorf("SceneKey(%+v) collides with base key", o)
		}
	}
	if k.SceneKey("other", SceneKeyOpts{Kind: "sankey", Width: 400, Height: 300}) == s1 {
		t.Error("different dataset hash gives the same scene key")
	}

	a1 := k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Style: "simple"})
	artifactVariants := []ArtifactKeyOpts{
		{Format: "png", Style: "simple"},
		{Format: "svg", Style: "dark"},
		{Format: "svg", Style: "simple", Title: "x"},
		{Format: "svg", Style: "simple", Type: "nodelink"},
		{Format: "svg", Style: "simple", Detailed: true},
		{Format: "svg", Style: "simple", Scale: 3},
	}
	for _, o := range artifactVariants {
		if k.ArtifactKey("h", o) == a1 {
			t.Errorf("ArtifactKey(%+v) collides with base key", o)
		}
	}

	if got := k.DocKey("heatmap", false); got != "doc:heatmap" {
		t.Errorf("DocKey = %q", got)
	}
	if got := k.DocKey("heatmap", true); got != "doc:heatmap:preview" {
		t.Errorf("DocKey preview = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "v1:")
	if got := scoped.DocKey("table", false); got != "v1:doc:table" {
		t.Errorf("DocKey = %q", got)
	}
	if got := scoped.SceneKey("h", SceneKeyOpts{}); !strings.HasPrefix(got, "v1:scene:") {
		t.Errorf("SceneKey = %q", got)
	}
	if got := scoped.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "v1:artifact:") {
		t.Errorf("ArtifactKey = %q", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.DocKey("x", false); got != "p:doc:x" {
		t.Errorf("nil inner DocKey = %q", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message not preserved: %s", err)
	}
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	defer func(d time.Duration) { retryBaseDelay = d }(retryBaseDelay)
	retryBaseDelay = time.Millisecond
	ctx := context.Background()

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"success", 0, true, 1, false},
		{"non-retryable", 5, false, 1, true},
		{"recovers", 1, true, 2, false},
		{"gives up", 5, true, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(ErrNetwork)
				}
				return ErrNotFound
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
