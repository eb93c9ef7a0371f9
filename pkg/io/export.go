package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/geom"
)

// WriteDataset encodes ds to w in the given format.
func WriteDataset(w io.Writer, ds *chart.Dataset, f Format) error {
	switch f {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ds)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(ds)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown dataset format %q", f)
	}
}

// ExportDataset writes ds to path, choosing the encoder from its extension.
func ExportDataset(ds *chart.Dataset, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteDataset(w, ds, FormatFromPath(path))
	})
}

// WriteScene encodes a scene as indented JSON.
func WriteScene(w io.Writer, s geom.Scene) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ExportScene writes a scene JSON file.
func ExportScene(s geom.Scene, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteScene(w, s) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
