package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/viewcore/internal/config"
	"github.com/vango-dev/viewcore/internal/todo"
	"github.com/vango-dev/viewcore/pkg/driver"
	"github.com/vango-dev/viewcore/pkg/vdom"
	"github.com/vango-dev/viewcore/pkg/view"
)

type globalFlags struct {
	configPath string
	verbose    bool
	noColor    bool
}

// loadConfig reads --config, else a config in the working directory, else
// the defaults.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case f.configPath != "":
		cfg, err = config.LoadFile(f.configPath)
	case config.Exists("."):
		cfg, err = config.Load(".")
	default:
		cfg = config.New()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newTodoDriver wires the todo app to a vdom context according to cfg.
func newTodoDriver(cfg *config.Config, logic func(*todo.App) todo.Node, logger *slog.Logger, reg *prometheus.Registry) (*driver.Driver[todo.App, string, *vdom.Node], *vdom.Ctx) {
	ctx := vdom.NewCtx()
	ctx.Debug = cfg.Driver.DebugAssertions

	opts := []driver.Option{
		driver.WithLogger(logger),
		driver.WithQueueSize(cfg.Driver.QueueSize),
	}
	if cfg.Driver.Trace {
		opts = append(opts, driver.WithTracer(otel.Tracer("viewcore")))
	} else {
		opts = append(opts, driver.WithTracer(noop.NewTracerProvider().Tracer("viewcore")))
	}
	if reg != nil {
		opts = append(opts, driver.WithMetrics(driver.NewMetrics(
			driver.WithNamespace(cfg.Metrics.Namespace),
			driver.WithSubsystem(cfg.Metrics.Subsystem),
			driver.WithRegistry(reg),
		)))
	}

	drv := driver.New(&todo.App{}, logic, view.Context(ctx), opts...)
	return drv, ctx
}
