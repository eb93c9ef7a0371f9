package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/catalog"
	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/observability"
)

const keyTypeDoc = "doc"

// Preview renders the first example of a renderable component as SVG.
func (r *Runner) Preview(ctx context.Context, c catalog.Component, opts Options) ([]byte, error) {
	if !c.Renderable() || len(c.Examples) == 0 {
		return nil, nil
	}
	ds, err := dsio.ReadDataset(strings.NewReader(c.Examples[0].Code), dsio.FormatYAML)
	if err != nil {
		return nil, err
	}
	opts = opts.Clone()
	opts.Type = TypeChart
	opts.Formats = []string{FormatSVG}
	res, err := r.Execute(ctx, ds, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts[FormatSVG], nil
}

// ComponentDoc returns the HTML docs page for c, from the cache when
// possible. With preview set, renderable components embed a rendering of
// their first example; a failing preview is logged and left out.
func (r *Runner) ComponentDoc(ctx context.Context, c catalog.Component, preview bool, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	preview = preview && c.Renderable() && len(c.Examples) > 0
	key := r.Keyer.DocKey(c.ID, preview)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			opts.Logger.Warn("doc cache read failed", "error", err)
		} else if hit {
			observability.Cache().OnCacheHit(ctx, keyTypeDoc)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeDoc)
	}

	var docOpts []catalog.DocOption
	if preview {
		svg, err := r.Preview(ctx, c, opts)
		if err != nil {
			opts.Logger.Warn("preview failed", "component", c.ID, "error", err)
		} else {
			docOpts = append(docOpts, catalog.WithPreview(svg))
		}
	}
	page, err := catalog.RenderDoc(c, docOpts...)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, page, cache.TTLDoc); err != nil {
		opts.Logger.Warn("doc cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, keyTypeDoc, len(page))
	}
	return page, false, nil
}
