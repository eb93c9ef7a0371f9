package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	dsio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  pipelineFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset]",
		Short: "Compute chart geometry without rendering",
		Long: `Compute the geometry of a dataset and write it as a scene JSON file.

The scene lists every positioned shape (circles, rects, polygons, paths,
lines, text) with style tokens instead of colors, so any renderer can draw
it. Only geometry kinds (radial, pyramid, waterfall, sankey, heatmap, geo,
bullet) have a layout.

Results are cached; see 'chartkit cache'.`,
		Example: `  chartkit layout flows.json --placement layered
  chartkit layout grid.yaml --width 400 --height 200 -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, flags)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (default: <input>.scene.json, "-" for stdout)`)

	return cmd
}

// runLayout loads the dataset, computes the scene and writes it.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, flags pipelineFlags) error {
	ds, err := c.loadDataset(input, flags.inputFormat)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", ds.Kind))
	spinner.Start()

	scene, cacheHit, err := runner.LayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == stdoutPath {
		return dsio.WriteScene(os.Stdout, scene)
	}
	if output == "" {
		output = basePath("", input) + ".scene.json"
	}
	if err := dsio.ExportScene(scene, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	size := 0
	if fi, err := os.Stat(output); err == nil {
		size = int(fi.Size())
	}

	dangling, _ := pipeline.CheckLinks(ds, false)
	printSuccess("Layout complete: %s", ds.Summary())
	printFile(output, size)
	printStats(pipeline.Stats{Items: pipeline.Items(ds), Shapes: scene.Len(), Dangling: dangling}, cacheHit)
	printNewline()
	printNextStep("Render", "chartkit render "+input)

	return nil
}
