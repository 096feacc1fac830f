package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/pkg/browser"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"pagebuilder/internal/config"
	"pagebuilder/internal/domain"
	"pagebuilder/internal/service"
	"pagebuilder/internal/telemetry"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx    context.Context
	logger *slog.Logger

	engine  *engine
	layouts *service.LayoutService
	watcher *storeWatcher

	// openURL presents a published page. Wails' BrowserOpenURL refuses
	// file:// locations, so pages go straight to the system browser.
	openURL func(url string) error

	// The composition being edited. Only this struct holds it between calls.
	mu          sync.Mutex
	composition domain.Composition
}

// New creates a new App.
func New() *App {
	return &App{composition: domain.NewComposition(), openURL: browser.OpenURL}
}

// newWithService builds an App around an already wired layout service.
func newWithService(ctx context.Context, layouts *service.LayoutService) *App {
	return &App{
		ctx:         ctx,
		logger:      slog.Default(),
		layouts:     layouts,
		composition: domain.NewComposition(),
		openURL:     browser.OpenURL,
	}
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	cfg, err := config.Load()
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Invalid configuration: %v", err)
		return
	}
	a.logger = telemetry.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	eng, err := openEngine(ctx, cfg, a.logger, wailsEmitter{}, a.openInBrowser)
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open layout store: %v", err)
		return
	}
	a.engine = eng
	a.layouts = eng.layouts

	// Another process (e.g. the standalone MCP server) may write the same
	// SQLite file; tell the frontend so it can refresh its layout list.
	if path, ok := eng.localPath(); ok {
		w, err := newStoreWatcher(path, func() {
			wailsRuntime.EventsEmit(ctx, service.EventLayoutsChanged)
		}, telemetry.Component(a.logger, "watcher"))
		if err != nil {
			wailsRuntime.LogErrorf(ctx, "Failed to watch layout store: %v", err)
		}
		a.watcher = w
	}
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			a.logger.Warn("close layout store", "error", err)
		}
	}
}

// openInBrowser hands a published page to the system browser. An error means
// nothing was opened.
func (a *App) openInBrowser(ctx context.Context, location string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.openURL == nil {
		return fmt.Errorf("no browser opener configured")
	}
	if err := a.openURL(location); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// wailsEmitter forwards service events to the frontend.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}
