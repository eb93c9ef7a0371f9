package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
width = 800
height = 500
style = "dark"
palette = ["#0ea5e9", "#f97316"]
placement = "layered"
ramp = ["#eff6ff", "#1d4ed8"]
cache = "none"

[server]
addr = ":9090"
max_body_size = 1024
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 500 || cfg.Style != "dark" || cfg.Placement != "layered" {
		t.Errorf("config = %+v", cfg)
	}
	if len(cfg.Palette) != 2 || len(cfg.Ramp) != 2 {
		t.Errorf("palette = %v, ramp = %v", cfg.Palette, cfg.Ramp)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxBodySize != 1024 {
		t.Errorf("server = %+v", cfg.Server)
	}

	opts := cfg.Options()
	if opts.Width != 800 || opts.Style != "dark" || opts.Placement != "layered" {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("optional missing config: %v", err)
	}
	if cfg.Width != 0 || cfg.Style != "" {
		t.Errorf("missing config = %+v, want zero", cfg)
	}

	if _, err := LoadConfig(path, true); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("required missing config error = %v", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `width = `, errors.ErrCodeInvalidInput},
		{"unknown key", `colour = "red"`, errors.ErrCodeInvalidInput},
		{"negative width", `width = -300`, errors.ErrCodeInvalidSize},
		{"oversized height", `height = 90000`, errors.ErrCodeInvalidSize},
		{"palette markup", `palette = ['#fff" onload="x']`, errors.ErrCodeInvalidInput},
		{"named ramp color", `ramp = ["blue"]`, errors.ErrCodeInvalidInput},
		{"style", `style = "neon"`, errors.ErrCodeInvalidStyle},
		{"placement", `placement = "spiral"`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body), true)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfigWidthOnly(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `width = 800`), true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 0 {
		t.Errorf("config = %+v", cfg)
	}

	dir, dataset := testEnv(t)
	path := writeConfig(t, "width = 800\ncache = \"none\"")
	base := filepath.Join(dir, "wide")
	if _, err := execute(t, "--config", path, "render", dataset, "-o", base); err != nil {
		t.Fatalf("render with width-only config: %v", err)
	}
	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), `width="800" height="400"`) {
		t.Errorf("canvas not 800x400: %.120s", svg)
	}
}

func TestRootCommandConfigFlag(t *testing.T) {
	dir, dataset := testEnv(t)
	cfg := writeConfig(t, `style = "neon"`)

	_, err := execute(t, "--config", cfg, "render", dataset)
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("bad config error = %v", err)
	}

	_, err = execute(t, "--config", filepath.Join(dir, "absent.toml"), "render", dataset)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config error = %v", err)
	}
}

func TestRootCommandDefaultConfig(t *testing.T) {
	dir, dataset := testEnv(t)
	cfgDir := filepath.Join(dir, "config", appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, configFileName), []byte("cache = \"none\"\nwidth = 320\nheight = 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "render", dataset, "-f", "json"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cache", appName)); !os.IsNotExist(err) {
		t.Errorf("cache = \"none\" still created the cache directory")
	}
}
