package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"decimal-calc/internal/calculator"
	"decimal-calc/internal/commands"
	"decimal-calc/internal/config"
	"decimal-calc/internal/observability"
	"decimal-calc/internal/operations"
	"decimal-calc/internal/plugins"
	"decimal-calc/internal/worker"
)

const shutdownTimeout = 5 * time.Second

// app bundles everything a command needs after startup.
type app struct {
	cfg      *config.Config
	registry *operations.Registry
	commands *commands.Dispatcher
	shutdown func(context.Context) error
}

// bootstrap loads configuration, sets up logging and telemetry, and builds
// the operation registry and command dispatcher with plugins installed.
func bootstrap(ctx context.Context, role observability.Role) (*app, error) {
	if err := loadDotEnv(dotEnvFiles(".env")...); err != nil {
		return nil, err
	}

	var cfg *config.Config
	var err error
	if path := os.Getenv("CALC_CONFIG"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := observability.InitLogger(cfg.IsDevelopment(), cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	observability.Logger.Info("configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("isolation", cfg.Isolation),
		zap.String("plugin_dir", cfg.PluginDir),
	)

	shutdown, err := initTelemetry(ctx, cfg, role)
	if err != nil {
		return nil, err
	}

	reg := operations.NewRegistry()
	disp := commands.NewDispatcher()
	loaded, failures := plugins.NewLoader(observability.Logger).Load(cfg.PluginDir, reg, disp)
	observability.Logger.Info("plugin discovery finished",
		zap.Int("loaded", len(loaded)),
		zap.Int("failed", len(failures)),
	)

	return &app{
		cfg:      cfg,
		registry: reg,
		commands: disp,
		shutdown: shutdown,
	}, nil
}

// initTelemetry initialises the OTel providers and the calculator's metric
// instruments.
func initTelemetry(ctx context.Context, cfg *config.Config, role observability.Role) (func(context.Context) error, error) {
	shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName, role)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}

// newSession builds a calculator session using the configured isolation.
func (a *app) newSession() (*calculator.Session, error) {
	var runner worker.Runner = worker.Inline{}
	if a.cfg.Isolation == config.IsolationProcess {
		p, err := worker.NewProcess(a.cfg.WorkerTimeout, observability.Logger)
		if err != nil {
			return nil, err
		}
		runner = p
	}
	return calculator.NewSession(a.registry, a.commands, runner)
}

func (a *app) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := a.shutdown(ctx); err != nil {
		observability.Logger.Warn("telemetry shutdown failed", zap.Error(err))
	}
	observability.Logger.Info("application shutdown")
	observability.SyncLogger()
}
