// Package app wires the keycalc components together and runs the
// interactive calculator. It owns the component lifecycles and the main
// event loop.
package app

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keycalc/internal/config"
	"github.com/dshills/keycalc/internal/config/watcher"
	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/event"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/feedback"
	"github.com/dshills/keycalc/internal/renderer/view"
)

// Application is the central coordinator for all keycalc components.
type Application struct {
	mu sync.RWMutex

	// Configuration
	opts       Options
	cfg        config.Config
	configPath string

	// Core infrastructure
	logger    *Logger
	logCloser io.Closer
	bus       *event.Bus
	metrics   *Metrics

	// Calculator components
	engine     *engine.Engine
	formatter  *display.Formatter
	dispatcher *dispatcher.Dispatcher
	theme      view.Theme

	// Terminal components, set up by Run
	backend  backend.Backend
	renderer *view.Renderer
	watcher  *watcher.Watcher
	subs     *subscriptionManager

	wakeMu    sync.Mutex
	wakeTimer *time.Timer

	// State
	running      atomic.Bool
	closed       atomic.Bool
	shutdownOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty selects config.DefaultPath.
	ConfigPath string

	// ConfigRequired makes a missing configuration file an error.
	ConfigRequired bool

	// Overrides are command line values applied over the file and environment.
	Overrides config.Overrides

	// LogOutput receives log lines when the configuration names no log
	// file. Nil discards them.
	LogOutput io.Writer

	// LookupEnv reads environment variables. Nil uses os.LookupEnv.
	LookupEnv config.LookupEnv

	// WatchConfig reloads the configuration when the file changes.
	WatchConfig bool

	// Clock drives the visual feedback timers. Nil uses time.Now.
	Clock feedback.Clock
}

// New creates an Application and initializes every component that does
// not need a terminal.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}

	if err := newBootstrapper(app).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the display backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop.
// Blocks until the user quits or Shutdown is called.
func (app *Application) Run() error {
	if app.closed.Load() {
		return ErrShutdown
	}

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer b.Shutdown()
	defer app.stopWake()

	app.mu.Lock()
	app.renderer = view.New(b, app.formatter,
		view.WithTheme(app.theme),
		view.WithFeedback(app.cfg.FlashDuration(), app.cfg.PressDuration(), app.opts.Clock),
	)
	mouse := app.cfg.Mouse
	app.mu.Unlock()

	if mouse {
		b.EnableMouse()
	}

	if app.opts.WatchConfig {
		if err := app.startWatcher(b); err != nil {
			app.logComponentError("watcher", err)
		}
	}

	app.logger.Info("started (session %s)", app.engine.SessionID())
	app.draw()

	return app.eventLoop(b)
}

// Shutdown stops the event loop and releases resources.
// It is safe to call more than once and from any goroutine.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		app.closed.Store(true)

		app.stopWake()

		app.mu.RLock()
		b, w := app.backend, app.watcher
		app.mu.RUnlock()

		if w != nil {
			if err := w.Stop(); err != nil {
				app.logComponentError("watcher", err)
			}
		}
		if b != nil {
			b.Shutdown()
		}

		if app.subs != nil {
			app.subs.cleanup()
		}

		snap := app.metrics.Snapshot()
		app.logger.Debug("shutdown after %s: %d inputs, %d draws, %d reloads",
			snap.Uptime.Round(time.Millisecond), snap.Inputs(), snap.Draws, snap.Reloads)

		if app.logCloser != nil {
			_ = app.logCloser.Close()
		}
	})
}

// IsRunning returns true while the event loop runs.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// ConfigPath returns the configuration file path in use.
func (app *Application) ConfigPath() string {
	return app.configPath
}

// EventBus returns the event bus.
func (app *Application) EventBus() *event.Bus {
	return app.bus
}

// Engine returns the calculator engine.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Dispatcher returns the input dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Formatter returns the current display formatter.
func (app *Application) Formatter() *display.Formatter {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.formatter
}

// Renderer returns the renderer, or nil before Run.
func (app *Application) Renderer() *view.Renderer {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.renderer
}
