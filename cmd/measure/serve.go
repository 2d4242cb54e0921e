package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/measure/internal/config"
	"github.com/vango-dev/measure/internal/errors"
	"github.com/vango-dev/measure/internal/live"
	"github.com/vango-dev/measure/internal/scenario"
	"github.com/vango-dev/measure/pkg/loop"
	"github.com/vango-dev/measure/pkg/measure"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port   int
		host   string
		repeat bool
	)

	cmd := &cobra.Command{
		Use:   "serve <scenario.yaml>",
		Short: "Replay a scenario in real time and stream it",
		Long: `Replay a scenario in real time on an event loop and stream every
step and channel change to websocket clients.

Endpoints:
  /ws       geometry stream (JSON messages)
  /state    latest step
  /healthz  liveness
  /metrics  Prometheus metrics (metrics.path in measure.json)

Examples:
  measure serve panel.yaml
  measure serve panel.yaml --port=8080 --repeat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			sc, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, cfg, sc, repeat, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
				return errors.FromError(err, "M030")
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from measure.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from measure.json)")
	cmd.Flags().BoolVar(&repeat, "repeat", false, "Replay the scenario until interrupted")

	return cmd
}

// serve runs the event loop, the HTTP server and the replay until ctx is
// done. Without repeat the server keeps running after the replay ends.
func serve(ctx context.Context, cfg *config.Config, sc *scenario.Scenario, repeat bool, out, logOut io.Writer) error {
	logger := newLogger(cfg, logOut)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	opts := cfg.MeasureOptions()
	if cfg.Metrics.Enabled {
		opts = append(opts, measure.WithMetrics(measure.NewMetrics(
			measure.WithNamespace(cfg.Metrics.Namespace),
			measure.WithRegistry(reg),
		)))
	}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	name := sc.Name
	if name == "" {
		name = sc.File()
	}
	hub := live.NewHub(name)
	server := live.New(hub, live.Config{
		Address:     cfg.Address(),
		MetricsPath: metricsPath,
		Gatherer:    reg,
		Logger:      logger,
	})
	eventLoop := loop.New(loop.Config{Logger: logger})

	success(out, "Streaming %q on ws://%s/ws", name, cfg.Address())
	if metricsPath != "" {
		info(out, "metrics at http://%s%s", cfg.Address(), metricsPath)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := eventLoop.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	g.Go(func() error {
		runner := scenario.NewRunner(sc,
			scenario.WithMeasureOptions(opts...),
			scenario.WithLogger(logger),
			scenario.WithHooks(hub.Hooks()),
			scenario.WithPace(cfg.Serve.StepInterval.D()),
		)
		driver := scenario.LoopDriver{Loop: eventLoop}
		for {
			report, err := runner.Run(ctx, driver)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				hub.PublishError(err)
				return err
			}
			hub.PublishDone(report)
			logger.Info("replay finished", "steps", len(report.Steps), "final", report.Final.String())
			if !repeat {
				return nil
			}
			if err := driver.Wait(ctx, cfg.Serve.StepInterval.D()); err != nil {
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
