package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
	"github.com/matzehuels/chartkit/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeScene    = "scene"
	keyTypeArtifact = "artifact"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses [cache.DefaultKeyer] and a nil logger uses the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute validates the dataset, lays it out (unless the output is a basic
// or node-link chart) and renders every requested format.
func (r *Runner) Execute(ctx context.Context, ds *chart.Dataset, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	dangling, err := CheckLinks(ds, opts.Strict)
	if err != nil {
		return nil, err
	}
	if dangling > 0 {
		opts.Logger.Warn("dropping dangling links", "count", dangling)
	}

	dsHash, err := cache.HashJSON(ds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	result := &Result{
		Dataset:     ds,
		DatasetHash: dsHash,
		Stats:       Stats{Items: Items(ds), Dangling: dangling},
	}
	target := Target{Kind: ds.Kind, Title: opts.ResolveTitle(ds), Size: opts.CanvasSize(ds)}
	sourceHash := dsHash

	if opts.IsNodelink() || ds.Kind.IsBasic() {
		target.Dataset = ds
	} else {
		start := time.Now()
		scene, hit, err := r.LayoutWithCacheInfo(ctx, ds, opts)
		if err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
		result.Scene = &scene
		result.Stats.Shapes = scene.Len()
		result.Stats.LayoutTime = time.Since(start)
		result.CacheInfo.LayoutHit = hit
		opts.Logger.Info("computed layout",
			"kind", ds.Kind, "shapes", scene.Len(), "cached", hit, "duration", result.Stats.LayoutTime)

		target.Scene = &scene
		if sourceHash, err = cache.HashJSON(scene); err != nil {
			return nil, err
		}
	}
	target.ID = RenderID(sourceHash)
	result.RenderID = target.ID

	start := time.Now()
	artifacts, hit, err := r.renderWithCacheInfo(ctx, target, sourceHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats, "type", opts.Type, "cached", hit, "duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo returns the scene for ds, from the cache when
// possible, and whether it was a cache hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, ds *chart.Dataset, opts Options) (geom.Scene, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return geom.Scene{}, false, err
	}
	r.applyLogger(&opts)
	if _, err := CheckLinks(ds, opts.Strict); err != nil {
		return geom.Scene{}, false, err
	}

	dsHash, err := cache.HashJSON(ds)
	if err != nil {
		return geom.Scene{}, false, err
	}
	key := r.Keyer.SceneKey(dsHash, opts.SceneKeyOpts(ds))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("scene cache read failed", "error", err)
		} else if hit {
			var scene geom.Scene
			if err := json.Unmarshal(data, &scene); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeScene)
				return scene, true, nil
			}
			opts.Logger.Debug("discarding unreadable cached scene", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeScene)
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(ds.Kind), Items(ds))
	start := time.Now()
	scene, err := GenerateScene(ds, opts)
	hooks.OnLayoutComplete(ctx, string(ds.Kind), scene.Len(), time.Since(start), err)
	if err != nil {
		return geom.Scene{}, false, err
	}

	if data, err := json.Marshal(scene); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLScene); err != nil {
			opts.Logger.Warn("scene cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeScene, len(data))
		}
	}
	return scene, false, nil
}

// Layout is [Runner.LayoutWithCacheInfo] without the cache information.
func (r *Runner) Layout(ctx context.Context, ds *chart.Dataset, opts Options) (geom.Scene, error) {
	scene, _, err := r.LayoutWithCacheInfo(ctx, ds, opts)
	return scene, err
}

// Render paints an existing scene into every requested format.
func (r *Runner) Render(ctx context.Context, scene geom.Scene, kind chart.Kind, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	if opts.IsNodelink() {
		return nil, errors.New(errors.ErrCodeUnsupported, "node-link output needs the dataset, use Execute")
	}
	h, err := cache.HashJSON(scene)
	if err != nil {
		return nil, err
	}
	t := Target{Kind: kind, Title: opts.Title, ID: RenderID(h), Scene: &scene,
		Size: chart.Size{Width: scene.Width, Height: scene.Height}}
	artifacts, _, err := r.renderWithCacheInfo(ctx, t, h, opts)
	return artifacts, err
}

// renderWithCacheInfo renders t into opts.Formats. It reports a hit only
// when every format came from the cache.
func (r *Runner) renderWithCacheInfo(ctx context.Context, t Target, sourceHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true
	for _, format := range opts.Formats {
		keyOpts := opts.ArtifactKeyOpts(format, t.Title)
		if t.Scene == nil {
			keyOpts.Width, keyOpts.Height = t.Size.Width, t.Size.Height
		}
		key := r.Keyer.ArtifactKey(sourceHash, keyOpts)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Warn("artifact cache read failed", "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
		}
		allHit = false

		hooks := observability.Pipeline()
		hooks.OnRenderStart(ctx, string(t.Kind), format)
		start := time.Now()
		data, err := RenderFormat(ctx, t, format, opts)
		hooks.OnRenderComplete(ctx, string(t.Kind), format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("artifact cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	return artifacts, allHit && len(opts.Formats) > 0, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}
