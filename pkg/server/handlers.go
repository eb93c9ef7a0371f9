package server

import (
	"bytes"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/catalog"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// Response headers set by the layout and render endpoints.
const (
	HeaderCache    = "X-Cache"
	HeaderRenderID = "X-Render-Id"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Get().Version})
}

type componentList struct {
	Components []catalog.Component `json:"components"`
	Count      int                 `json:"count"`
	Categories []string            `json:"categories"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	components, err := catalog.Search(q.Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if category := q.Get("category"); category != "" && category != catalog.AllCategories {
		filtered := components[:0]
		for _, c := range components {
			if c.Category == category {
				filtered = append(filtered, c)
			}
		}
		components = filtered
	}
	if components == nil {
		components = []catalog.Component{}
	}
	writeJSON(w, http.StatusOK, componentList{
		Components: components,
		Count:      len(components),
		Categories: catalog.Categories(),
	})
}

func (s *Server) handleComponent(w http.ResponseWriter, r *http.Request) {
	c, err := catalog.ByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleComponentDocs serves the HTML docs page. Renderable components get
// a preview of their first example unless preview=false.
func (s *Server) handleComponentDocs(w http.ResponseWriter, r *http.Request) {
	c, err := catalog.ByID(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.defaults.Clone()
	opts.Logger = s.logger
	preview := r.URL.Query().Get("preview") != "false"

	page, hit, err := s.runner.ComponentDoc(r.Context(), c, preview, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, page, hit)
}

func writeHTML(w http.ResponseWriter, page []byte, hit bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(HeaderCache, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ds, err := s.decodeDataset(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	scene, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), ds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := dsio.WriteScene(&buf, scene); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderCache, cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleRender renders a single format into the response body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ds, err := s.decodeDataset(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), ds, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(HeaderRenderID, res.RenderID)
	w.Header().Set(HeaderCache, cacheStatus(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// decodeDataset reads the request body as a dataset, picking the decoder
// from the Content-Type.
func (s *Server) decodeDataset(w http.ResponseWriter, r *http.Request) (*chart.Dataset, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	format := dsio.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad Content-Type")
		}
		switch mt {
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = dsio.FormatYAML
		case "application/toml", "text/toml":
			format = dsio.FormatTOML
		case "application/json", "text/json":
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mt)
		}
	}
	ds, err := dsio.ReadDataset(r.Body, format)
	if err != nil {
		return nil, err
	}
	if ds.Kind == chart.KindHeatmap && len(ds.Ramp) == 0 && len(s.ramp) > 0 {
		ds.Ramp = slices.Clone(s.ramp)
	}
	return ds, nil
}

// options builds pipeline options from the server defaults and the query
// string. The format parameter is handled by the caller.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := s.defaults.Clone()
	opts.Logger = s.logger

	var err error
	floatParam := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, perr, "invalid %s %q", name, v)
				return
			}
			*dst = f
		}
	}
	boolParam := func(name string, dst *bool) {
		if v := q.Get(name); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = errors.Wrap(errors.ErrCodeInvalidInput, perr, "invalid %s %q", name, v)
				return
			}
			*dst = b
		}
	}
	stringParam := func(name string, dst *string) {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}

	floatParam("width", &opts.Width)
	floatParam("height", &opts.Height)
	floatParam("scale", &opts.Scale)
	boolParam("strict", &opts.Strict)
	boolParam("detailed", &opts.Detailed)
	boolParam("refresh", &opts.Refresh)
	stringParam("placement", &opts.Placement)
	stringParam("type", &opts.Type)
	stringParam("style", &opts.Style)
	stringParam("title", &opts.Title)
	stringParam("rankdir", &opts.RankDir)
	if v := q.Get("palette"); v != "" {
		opts.Palette = strings.Split(v, ",")
	}
	return opts, err
}
