package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/texterhq/texter-go/internal/autosave"
	"github.com/texterhq/texter-go/internal/core/service"
	"github.com/texterhq/texter-go/internal/editor/config"
	"github.com/texterhq/texter-go/internal/infra/buildinfo"
	"github.com/texterhq/texter-go/internal/infra/confloader"
	"github.com/texterhq/texter-go/internal/infra/shutdown"
	"github.com/texterhq/texter-go/internal/recovery"
	"github.com/texterhq/texter-go/internal/storage/memory"
	"github.com/texterhq/texter-go/internal/storage/snapshot"
	"github.com/texterhq/texter-go/internal/storage/textfile"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
	"github.com/texterhq/texter-go/internal/telemetry/metric"
	"github.com/texterhq/texter-go/internal/ui"
)

func main() {
	app := &cli.App{
		Name:    "texter",
		Usage:   "terminal text editor with autosave and crash recovery",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file",
				EnvVars: []string{"TEXTER_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "snapshot-dir",
				Usage: "autosave snapshot directory",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()
	logger.SetDefault(log)

	log.Info("starting texter",
		"version", buildinfo.Get().Version,
		"snapshot_dir", cfg.Autosave.SnapshotDir,
		"autosave_interval", cfg.Autosave.Interval)

	metrics := metric.NewRegistry()

	// Storage gateways.
	snaps, err := snapshot.NewManager(snapshot.Config{
		Dir:    cfg.Autosave.SnapshotDir,
		Prefix: cfg.Autosave.Prefix,
	})
	if err != nil {
		return fmt.Errorf("init snapshot dir: %w", err)
	}
	store := memory.New(memory.WithMaxOpenDocuments(cfg.Editor.MaxOpenDocuments))
	files := textfile.New()

	// Scheduler and services.
	sched := autosave.New(store, snaps,
		autosave.WithInterval(cfg.Autosave.Interval),
		autosave.WithLogger(log),
		autosave.WithMetrics(metrics))

	rec := recovery.New(snaps,
		recovery.WithLogger(log),
		recovery.WithMetrics(metrics))

	editor := service.NewEditor(store, files, snaps, rec, sched,
		service.WithLogger(log),
		service.WithMetrics(metrics))

	// Graceful shutdown, hooks in reverse order.
	sh := shutdown.NewHandler(10 * time.Second)
	sh.OnShutdown(func(ctx context.Context) error {
		sched.Stop()
		return nil
	})

	if cfg.Metrics.Enabled {
		startMetricsServer(cfg.Metrics.Addr, metrics, sh, log)
	}

	if path := c.String("config"); path != "" {
		if err := watchConfig(path, sched, sh, log); err != nil {
			log.Warn("config watch unavailable", "error", err)
		}
	}

	go sh.Wait()

	// The recovery scan must precede the first autosave cycle: a cycle
	// would re-adopt orphans as live pairs.
	ctx := context.Background()
	count, err := editor.Startup(ctx)
	if err != nil {
		return fmt.Errorf("recovery scan: %w", err)
	}
	sched.Start()

	program := tea.NewProgram(ui.New(editor, count), tea.WithAltScreen())
	_, runErr := program.Run()

	sh.Trigger()
	<-sh.Done()

	if runErr != nil {
		return fmt.Errorf("ui: %w", runErr)
	}

	log.Info("texter stopped")
	return nil
}

// loadConfig merges defaults, file, environment, and flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	opts := []confloader.Option{}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Flags beat file and environment.
	overrides := map[string]any{}
	if v := c.String("log-level"); v != "" {
		overrides["log.level"] = v
	}
	if v := c.String("snapshot-dir"); v != "" {
		overrides["autosave.snapshot_dir"] = v
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	cfg = config.Sanitize(cfg)
	if err := config.Verify(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// initLogger builds the logger; with a file configured the UI keeps
// the terminal to itself.
func initLogger(cfg *config.Config) (logger.Logger, func(), error) {
	lcfg := logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}

	closeLog := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, err
		}
		lcfg.Output = f
		closeLog = func() { f.Close() }
	}

	log, err := logger.New(lcfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return log, closeLog, nil
}

// startMetricsServer exposes the Prometheus endpoint.
func startMetricsServer(addr string, metrics *metric.Registry, sh *shutdown.Handler, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	sh.OnShutdown(func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	go func() {
		log.Info("metrics listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server error", "error", err)
		}
	}()
}

// watchConfig hot-reloads log level and autosave interval on file change.
func watchConfig(path string, sched *autosave.Scheduler, sh *shutdown.Handler, log logger.Logger) error {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return err
	}

	w.OnChange(func(changed string) {
		fresh := config.Default()
		l := confloader.NewLoader(confloader.WithConfigFile(path))
		if err := l.Load(fresh); err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		fresh = config.Sanitize(fresh)

		logger.SetLevel(fresh.Log.Level)
		sched.SetInterval(fresh.Autosave.Interval)
		log.Info("config reloaded",
			"log_level", fresh.Log.Level,
			"autosave_interval", fresh.Autosave.Interval)
	})

	if err := w.Watch(path); err != nil {
		return err
	}
	w.StartAsync()

	sh.OnShutdown(func(ctx context.Context) error {
		return w.Stop()
	})

	return nil
}
