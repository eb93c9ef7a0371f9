package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		spec    string
		maxBody int64
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout, render and catalog HTTP API",
		Long: `Serve the chartkit HTTP API:

  GET  /healthz
  GET  /v1/components?q=&category=
  GET  /v1/components/{id}
  GET  /v1/components/{id}/docs
  POST /v1/layout
  POST /v1/render?format=svg

Config file defaults (size, style, palette, placement) apply to every
request; query parameters override them. With --trace, pipeline, cache and
HTTP spans are logged at debug level.`,
		Example: `  chartkit serve --addr :8080
  chartkit serve --cache redis://localhost:6379/0 --trace
  curl -X POST --data-binary @flows.json localhost:8080/v1/render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if !cmd.Flags().Changed("addr") && cfg.Addr != "" {
				addr = cfg.Addr
			}
			if !cmd.Flags().Changed("max-body") && cfg.MaxBodySize > 0 {
				maxBody = cfg.MaxBodySize
			}
			if !cmd.Flags().Changed("cache") {
				spec = c.Config.Cache
			}
			return c.runServe(cmd.Context(), addr, spec, maxBody, trace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&spec, "cache", "", "cache backend: file, none, redis://… or mongodb://… (default: config or file)")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&trace, "trace", false, "log OpenTelemetry spans for pipeline, cache and HTTP activity")

	return cmd
}

// runServe opens the cache, installs tracing hooks when asked, and serves
// until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, spec string, maxBody int64, trace bool) error {
	defaults := c.Config.Options()
	if err := defaults.ValidateAndSetDefaults(); err != nil {
		return err
	}

	cc, err := c.openCache(ctx, spec, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	if trace {
		shutdown, err := c.installTracing(ctx)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithAddr(addr),
		server.WithDefaults(c.Config.Options()),
		server.WithRamp(c.Config.Ramp),
		server.WithMaxBodySize(maxBody),
	)

	printSuccess("Serving on http://%s", srv.Addr())
	printDetail("cache: %s", cacheLabel(spec))
	return srv.ListenAndServe(ctx)
}

// installTracing routes every observability hook through OpenTelemetry,
// exporting spans to the logger. The returned func restores the no-op hooks.
func (c *CLI) installTracing(ctx context.Context) (func(), error) {
	tp, err := observability.NewLogTracerProvider(ctx, c.Logger, appName)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	otel.SetTracerProvider(tp)

	hooks, err := observability.NewOTelHooks(tp, otel.GetMeterProvider())
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init tracing hooks: %w", err)
	}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	c.Logger.Debug("tracing enabled")

	return func() {
		observability.Reset()
		if err := tp.Shutdown(context.Background()); err != nil {
			c.Logger.Warn("tracer shutdown", "error", err)
		}
	}, nil
}

func cacheLabel(spec string) string {
	if spec == "" {
		if dir, err := cacheDir(); err == nil {
			return "file (" + dir + ")"
		}
	}
	return cache.Describe(spec)
}
