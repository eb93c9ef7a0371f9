package pipeline

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/chartkit/pkg/catalog"
)

func TestRunnerPreview(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	for _, c := range catalog.Renderable() {
		if len(c.Examples) == 0 {
			continue
		}
		svg, err := r.Preview(ctx, c, Options{})
		if err != nil {
			t.Errorf("%s: %v", c.ID, err)
			continue
		}
		if !bytes.Contains(svg, []byte("<svg")) {
			t.Errorf("%s: preview is not SVG", c.ID)
		}
	}

	table, err := catalog.ByID("table")
	if err != nil {
		t.Fatal(err)
	}
	if svg, err := r.Preview(ctx, table, Options{}); svg != nil || err != nil {
		t.Errorf("non-renderable preview = %d bytes, %v", len(svg), err)
	}
}

func TestRunnerComponentDoc(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	c, err := catalog.ByID("pyramid-chart")
	if err != nil {
		t.Fatal(err)
	}

	page, hit, err := r.ComponentDoc(ctx, c, true, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first doc render should miss the cache")
	}
	if !bytes.Contains(page, []byte("<svg")) {
		t.Error("doc page should embed the preview")
	}

	again, hit, err := r.ComponentDoc(ctx, c, true, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit || !bytes.Equal(again, page) {
		t.Error("second doc render should come from the cache")
	}

	plain, hit, err := r.ComponentDoc(ctx, c, false, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("preview and plain pages must use different keys")
	}
	if bytes.Contains(plain, []byte("<svg")) {
		t.Error("plain page should not embed a preview")
	}
}
