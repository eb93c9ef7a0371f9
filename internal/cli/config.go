package cli

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

const configFileName = "config.toml"

// Config holds defaults read from the TOML config file. Command-line flags
// override every field.
//
//	width = 800
//	height = 500
//	style = "dark"
//	palette = ["#0ea5e9", "#f97316"]
//	placement = "layered"
//	ramp = ["#eff6ff", "#1d4ed8"]
//	cache = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Style     string   `toml:"style"`
	Palette   []string `toml:"palette"`
	Placement string   `toml:"placement"`
	// Ramp is the heatmap color ramp used when a dataset has none.
	Ramp []string `toml:"ramp"`
	// Cache is a backend spec: file, none, redis://… or mongodb://…
	Cache  string       `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxBodySize int64  `toml:"max_body_size"`
}

// LoadConfig reads and validates the config file at path. A missing file
// yields the zero config unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the configured size, colors, style and placement.
// Width and height may be set independently.
func (c Config) Validate() error {
	if err := pipeline.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if err := errors.ValidateColors(c.Palette); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "palette")
	}
	if err := errors.ValidateColors(c.Ramp); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "ramp")
	}
	if c.Style != "" {
		if err := pipeline.ValidateStyle(c.Style); err != nil {
			return err
		}
	}
	if c.Placement != "" {
		if err := pipeline.ValidatePlacement(c.Placement); err != nil {
			return err
		}
	}
	return nil
}

// Options returns pipeline options seeded from the config.
func (c Config) Options() pipeline.Options {
	return pipeline.Options{
		Width:     c.Width,
		Height:    c.Height,
		Style:     c.Style,
		Palette:   c.Palette,
		Placement: c.Placement,
	}
}
