// Package io reads and writes chart datasets and computed scenes.
//
// # Dataset Files
//
// A dataset is one chart's input, tagged with its kind:
//
//	{
//	  "kind": "sankey",
//	  "title": "Energy flow",
//	  "size": {"width": 400, "height": 300},
//	  "nodes": [{"id": "coal"}, {"id": "power", "value": 120}],
//	  "links": [{"source": "coal", "target": "power", "value": 80}]
//	}
//
// The same structure can be written as YAML (.yaml, .yml) or TOML (.toml);
// the format is chosen from the file extension by [FormatFromPath].
//
// # Import
//
// Use [ImportDataset] to read a file, or [ReadDataset] to read from any
// io.Reader. Both validate the dataset with [chart.Dataset.Validate], so a
// successfully imported dataset has a known kind, a positive size (when
// given) and unique node ids.
//
//	ds, err := io.ImportDataset("flows.yaml")
//
// # Export
//
// [ExportDataset] and [WriteDataset] encode a dataset in any of the three
// formats. [ExportScene] and [WriteScene] store a computed [geom.Scene] as
// JSON; [ImportScene] reads it back, including the output of the JSON sink.
//
// [chart.Dataset.Validate]: github.com/matzehuels/chartkit/pkg/chart.Dataset.Validate
// [geom.Scene]: github.com/matzehuels/chartkit/pkg/geom.Scene
package io
