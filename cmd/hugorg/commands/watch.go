package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/hugorg/internal/config"
	"git.home.luguber.info/inful/hugorg/internal/convert"
	ferrors "git.home.luguber.info/inful/hugorg/internal/foundation/errors"
	"git.home.luguber.info/inful/hugorg/internal/metrics"
	"git.home.luguber.info/inful/hugorg/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	RunFlags `embed:""`

	Debounce    time.Duration `help:"Quiet period before changed files are converted (overrides watch.debounce)"`
	Resync      time.Duration `help:"Interval between full conversions, 0 disables (overrides watch.resync_interval)"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (overrides metrics.addr)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadRunConfig(root, &w.RunFlags)
	if err != nil {
		return err
	}
	cfg.Watch.Debounce = durationOr(w.Debounce, cfg.Watch.Debounce)
	cfg.Watch.ResyncInterval = durationOr(w.Resync, cfg.Watch.ResyncInterval)
	if w.MetricsAddr != "" {
		cfg.Metrics.Addr = w.MetricsAddr
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(g.Context)
	defer cancel()

	opts := []convert.Option{convert.WithLogger(g.Logger)}
	if store != nil {
		opts = append(opts, convert.WithStore(store))
	}
	if cfg.Metrics.Addr != "" {
		reg := prom.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, convert.WithRecorder(metrics.NewPrometheusRecorder(reg)))
		stop := serveMetrics(ctx, cfg, reg, g.Logger)
		defer stop()
	}
	runner := convert.NewRunner(*cfg, opts...)

	summary, err := runner.Run(ctx)
	if summary != nil {
		printSummary(g.Stdout, summary)
	}
	if err != nil {
		return err
	}

	watcher, err := watch.New(cfg.Source, runner, watch.Options{
		Debounce:       cfg.Watch.Debounce,
		ResyncInterval: cfg.Watch.ResyncInterval,
		Logger:         g.Logger,
		OnSummary:      func(s *convert.Summary) { printSummary(g.Stdout, s) },
	})
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to start watcher").Fatal().Build()
	}
	if err := watcher.Run(ctx); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "watcher stopped").Fatal().Build()
	}
	g.Logger.Info("Watch stopped")
	return nil
}

// serveMetrics starts the metrics endpoint and returns a function that shuts it down.
func serveMetrics(ctx context.Context, cfg *config.Config, reg *prom.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving metrics", "addr", cfg.Metrics.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}
