package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/viewcore/internal/config"
	"github.com/vango-dev/viewcore/internal/todo"
	"github.com/vango-dev/viewcore/pkg/inspect"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live todo app to the inspector",
		Long: `Run the todo app with a one second clock and serve it over
HTTP. Events posted to /event or sent over /ws are delivered to the
tree, and every pass's patches stream back over /ws.

Examples:
  viewcore serve
  viewcore serve --port=8080
  viewcore serve -c viewcore.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Inspect.Port = port
			}
			if host != "" {
				cfg.Inspect.Host = host
			}
			return runServe(cmd.Context(), flags, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

func snapshotStore(cfg *config.Config) (inspect.SnapshotStore, error) {
	if cfg.UsesS3() {
		s3 := cfg.Inspect.S3
		return inspect.NewS3Store(inspect.NewS3Client(s3.Region, s3.Endpoint), s3.Bucket, s3.Prefix), nil
	}
	return inspect.NewFileStore(cfg.SnapshotPath())
}

func runServe(parent context.Context, flags *globalFlags, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := flags.logger()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	drv, vctx := newTodoDriver(cfg, todo.WithClock(time.Second), logger, reg)
	host := inspect.NewDriverHost(drv, vctx, logger)
	if err := drv.Start(); err != nil {
		return err
	}

	store, err := snapshotStore(cfg)
	if err != nil {
		return err
	}
	srv := inspect.NewServer(host,
		inspect.WithLogger(logger),
		inspect.WithStore(store),
		inspect.WithGatherer(reg),
		inspect.WithName(cfg.Name),
	)

	runErr := make(chan error, 1)
	go func() { runErr <- drv.Run(ctx) }()

	success("inspector at http://%s", cfg.Address())
	serveErr := srv.ListenAndServe(ctx, cfg.Address())

	stop()
	drv.Close()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return serveErr
}
