package app

import (
	"context"

	"github.com/dshills/keycalc/internal/config"
	"github.com/dshills/keycalc/internal/config/watcher"
	"github.com/dshills/keycalc/internal/event"
	"github.com/dshills/keycalc/internal/renderer/backend"
)

// startWatcher watches the config file and posts a reload request to the
// event loop on every change.
func (app *Application) startWatcher(b backend.Backend) error {
	logger := app.logger.WithComponent("watcher")

	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		logger.Warn("%v", err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(app.configPath); err != nil {
		_ = w.Stop()
		return err
	}

	w.OnChange(func(ev watcher.Event) {
		logger.Debug("%s %s", ev.Op, ev.Path)
		b.PostEvent(backend.WakeEvent(reloadRequest{path: ev.Path}))
	})
	if err := w.Start(); err != nil {
		_ = w.Stop()
		return err
	}

	app.mu.Lock()
	app.watcher = w
	app.mu.Unlock()
	logger.Debug("watching %s", app.configPath)
	return nil
}

// Reload re-reads the configuration and applies the locale, theme, keymap
// and log level. Feedback durations apply from the next Run. On error the
// running configuration is kept. A successful reload publishes config.reloaded.
func (app *Application) Reload() error {
	return app.reload("")
}

// reload is Reload with trigger recorded as the error context.
func (app *Application) reload(trigger string) error {
	cfg, err := app.loadConfig()
	if err == nil {
		err = app.applyConfig(cfg)
	}
	app.metrics.RecordReload(err)
	if err != nil {
		return NewOperationError("reload", app.configPath, err).WithContext(trigger)
	}

	return app.bus.Publish(context.Background(),
		event.New(event.TopicConfigReloaded, app.configPath, "app"))
}

// applyConfig builds every derived component before swapping any of them
// in, so a bad keymap or locale leaves the application unchanged.
func (app *Application) applyConfig(cfg config.Config) error {
	f, err := buildFormatter(cfg)
	if err != nil {
		return err
	}
	theme, err := buildTheme(cfg)
	if err != nil {
		return err
	}
	km, err := buildKeymap(cfg)
	if err != nil {
		return err
	}

	app.mu.Lock()
	mouseOn := cfg.Mouse && !app.cfg.Mouse
	app.cfg = cfg
	app.formatter = f
	app.theme = theme
	r, b := app.renderer, app.backend
	app.mu.Unlock()

	app.dispatcher.SetKeymap(km)
	app.logger.SetLevel(ParseLogLevel(cfg.LogLevel))

	if r != nil {
		r.SetFormatter(f)
		r.SetTheme(theme)
	}
	if mouseOn && b != nil {
		b.EnableMouse()
	}
	return nil
}
