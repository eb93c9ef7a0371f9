package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
)

// Format is a dataset file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// ReadDataset decodes a dataset from r and validates it.
// ReadDataset does not close r.
func ReadDataset(r io.Reader, f Format) (*chart.Dataset, error) {
	var ds chart.Dataset
	var err error
	switch f {
	case FormatJSON, "":
		err = json.NewDecoder(r).Decode(&ds)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&ds)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&ds)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode %s dataset", orJSON(f))
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// ImportDataset reads the dataset file at path, choosing the decoder from
// its extension.
func ImportDataset(path string) (*chart.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := ReadDataset(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadScene decodes a scene written by [WriteScene] or the JSON sink.
func ReadScene(r io.Reader) (geom.Scene, error) {
	var s geom.Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return geom.Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	return s, nil
}

// ImportScene reads a scene JSON file.
func ImportScene(path string) (geom.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return geom.Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}

func orJSON(f Format) Format {
	if f == "" {
		return FormatJSON
	}
	return f
}
