package app

import (
	"context"
	"fmt"
	"log/slog"

	"pagebuilder/internal/config"
	"pagebuilder/internal/dbclient"
	"pagebuilder/internal/publish"
	"pagebuilder/internal/service"
	"pagebuilder/internal/telemetry"
)

// engine bundles everything the desktop app and the standalone MCP server
// share: the document store, the layout service and its background jobs.
type engine struct {
	store   dbclient.Store
	layouts *service.LayoutService
	janitor *publish.Janitor
	metrics *telemetry.Metrics
	cancel  context.CancelFunc
}

// openEngine wires the layout service for cfg. opener presents published
// pages; nil only writes them to the publish directory.
func openEngine(ctx context.Context, cfg config.Config, logger *slog.Logger, emitter service.EventEmitter, opener publish.Opener) (*engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	policy, err := service.PolicyFromConfig(cfg.LoadPolicy)
	if err != nil {
		return nil, err
	}

	store, err := dbclient.NewDocumentStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	metrics := telemetry.NewMetrics()
	layouts := service.NewLayoutService(service.LayoutDeps{
		Store:    store,
		Renderer: publish.NewRenderer(),
		Surface:  publish.NewDirSurface(cfg.PublishDir, opener),
		Policy:   policy,
		Emitter:  emitter,
		Logger:   logger,
		Metrics:  metrics,
	})

	janitor := publish.NewJanitor(cfg.PublishDir, cfg.PublishRetention, cfg.PublishPruneSchedule, telemetry.Component(logger, "janitor"))
	if err := janitor.Start(); err != nil {
		store.Close()
		return nil, err
	}

	bgCtx, cancel := context.WithCancel(ctx)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(bgCtx, cfg.MetricsAddr, telemetry.Component(logger, "metrics")); err != nil {
				logger.Error("metrics listener stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
	}

	logger.Info("layout engine ready",
		"driver", cfg.StoreDriver,
		"policy", policy.String(),
		"publish_dir", cfg.PublishDir,
	)
	return &engine{
		store:   store,
		layouts: layouts,
		janitor: janitor,
		metrics: metrics,
		cancel:  cancel,
	}, nil
}

// localPath returns the SQLite file behind the store, if there is one.
func (e *engine) localPath() (string, bool) {
	p, ok := e.store.(interface{ Path() string })
	if !ok {
		return "", false
	}
	return p.Path(), true
}

// Close stops background jobs and releases the store.
func (e *engine) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	if e.janitor != nil {
		e.janitor.Stop()
	}
	return e.store.Close()
}
