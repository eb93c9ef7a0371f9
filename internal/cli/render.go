package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// stdoutPath selects standard input or output in place of a file.
const stdoutPath = "-"

// pipelineFlags holds the flags shared by render and layout. Flags left
// unset fall back to the config file, then to pipeline defaults.
type pipelineFlags struct {
	width, height float64
	style         string
	palette       string
	placement     string
	inputFormat   string
	strict        bool
	noCache       bool
	refresh       bool
}

// bind registers the layout and input flags.
func (f *pipelineFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", 0, "canvas width (default: dataset size)")
	fs.Float64Var(&f.height, "height", 0, "canvas height (default: dataset size)")
	fs.StringVar(&f.placement, "placement", pipeline.DefaultPlacement, "sankey node placement: grid, layered")
	fs.StringVar(&f.inputFormat, "input-format", "", "dataset encoding when reading stdin: json, yaml, toml")
	fs.BoolVar(&f.strict, "strict", false, "fail on links that reference unknown nodes")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results (still writes the cache)")
}

// bindStyle registers the color flags.
func (f *pipelineFlags) bindStyle(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.style, "style", pipeline.DefaultStyle, "color style: simple, dark")
	fs.StringVar(&f.palette, "palette", "", "series colors, comma-separated (e.g. #0ea5e9,#f97316)")
}

// options merges the config defaults with the flags the user set.
func (f *pipelineFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	opts := cfg.Options().Clone()
	fs := cmd.Flags()
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("style") {
		opts.Style = f.style
	}
	if fs.Changed("palette") {
		opts.Palette = splitList(f.palette)
	}
	if fs.Changed("placement") {
		opts.Placement = f.placement
	}
	opts.Strict = f.strict
	opts.Refresh = f.refresh
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		formats string
		typ     string
		title   string
		rankDir string
		detail  bool
		scale   float64
	)

	cmd := &cobra.Command{
		Use:   "render [dataset]",
		Short: "Render a dataset to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a dataset file (JSON, YAML or TOML) to one or more formats.

With a single format, -o names the output file ("-" writes to stdout). With
several formats, -o is a base path and each format gets its own extension.

Node-link output (-t nodelink) draws radial and sankey datasets as a
Graphviz diagram and also supports the dot format.

Results are cached; see 'chartkit cache'.`,
		Example: `  chartkit render sales.yaml
  chartkit render flows.json -f svg,png --style dark --placement layered
  chartkit render deps.json -t nodelink -f dot -o -
  cat data.yaml | chartkit render - --input-format yaml -o chart.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			opts.Formats = parseFormats(formats)
			opts.Type = typ
			opts.Title = title
			opts.RankDir = rankDir
			opts.Detailed = detail
			opts.Scale = scale
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, flags)
		},
	}

	flags.bind(cmd)
	flags.bindStyle(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVarP(&typ, "type", "t", pipeline.DefaultType, "output type: chart, nodelink")
	cmd.Flags().StringVar(&title, "title", "", "override the dataset title")
	cmd.Flags().StringVar(&rankDir, "rankdir", "", "Graphviz rank direction for nodelink output (LR, TB, ...)")
	cmd.Flags().BoolVar(&detail, "detailed", false, "label nodelink edges with values")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG pixel density")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.Formats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("type", cobra.FixedCompletions(pipeline.Types, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions([]string{"simple", "dark"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender loads the dataset, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, flags pipelineFlags) error {
	toStdout := output == stdoutPath
	if toStdout && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}

	ds, err := c.loadDataset(input, flags.inputFormat)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded dataset", "input", input, "summary", ds.Summary())

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s chart...", ds.Kind))
	spinner.Start()

	result, err := runner.Execute(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(input, output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("render complete", "render_id", result.RenderID)

	printSuccess("Rendered %s", ds.Summary())
	for _, format := range opts.Formats {
		printFile(paths[format], len(result.Artifacts[format]))
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	if result.Stats.Dangling > 0 {
		printNewline()
		printNextStep("Reject dangling links", "chartkit render --strict "+input)
	}
	return nil
}

// loadDataset reads a dataset file, or stdin for "-", and applies the
// configured heatmap ramp.
func (c *CLI) loadDataset(input, inputFormat string) (*chart.Dataset, error) {
	var (
		ds  *chart.Dataset
		err error
	)
	if input == stdoutPath {
		ds, err = dsio.ReadDataset(os.Stdin, dsio.Format(inputFormat))
	} else {
		ds, err = dsio.ImportDataset(input)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", input, err)
	}
	if ds.Kind == chart.KindHeatmap && len(ds.Ramp) == 0 && len(c.Config.Ramp) > 0 {
		ds.Ramp = slices.Clone(c.Config.Ramp)
	}
	return ds, nil
}

// outputPaths maps each format to its output file. A single format writes
// to output as given; several formats share output as a base path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path. Without an output it strips the
// extension from input; known format extensions are stripped from output.
// Stdin input renders to "chart".
func basePath(output, input string) string {
	if output == "" {
		if input == stdoutPath {
			return "chart"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
