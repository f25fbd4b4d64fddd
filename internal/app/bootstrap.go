package app

import (
	"io"

	"github.com/dshills/keycalc/internal/config"
	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/event"
	"github.com/dshills/keycalc/internal/input/keymap"
	"github.com/dshills/keycalc/internal/renderer/view"
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app       *Application
	initOrder []string
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{
		app:       app,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []struct {
		name string
		init func() error
	}{
		{"config", b.initConfig},
		{"logger", b.initLogger},
		{"eventBus", b.initEventBus},
		{"engine", b.initEngine},
		{"dispatcher", b.initDispatcher},
		{"subscriptions", b.initSubscriptions},
	}

	for _, step := range steps {
		if err := step.init(); err != nil {
			b.cleanup()
			return err
		}
		b.initOrder = append(b.initOrder, step.name)
	}
	return nil
}

// initConfig loads the configuration from every source.
func (b *bootstrapper) initConfig() error {
	b.app.configPath = b.app.opts.ConfigPath
	if b.app.configPath == "" {
		b.app.configPath = config.DefaultPath()
	}

	cfg, err := b.app.loadConfig()
	if err != nil {
		return NewComponentError("config", "load", err)
	}
	b.app.cfg = cfg
	return nil
}

// initLogger opens the log destination named by the configuration.
func (b *bootstrapper) initLogger() error {
	cfg := b.app.cfg

	var out io.Writer = io.Discard
	if b.app.opts.LogOutput != nil {
		out = b.app.opts.LogOutput
	}
	if cfg.LogFile != "" {
		f, err := OpenLogFile(cfg.LogFile)
		if err != nil {
			return NewComponentError("logger", cfg.LogFile, err)
		}
		b.app.logCloser = f
		out = f
	}

	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.LogLevel)
	lc.Output = out
	b.app.logger = NewLogger(lc)
	b.app.logger.Debug("config loaded from %s (locale %s)", b.app.configPath, cfg.Locale)
	return nil
}

func (b *bootstrapper) initEventBus() error {
	logger := b.app.logger.WithComponent("event")
	b.app.bus = event.NewBus(event.WithPanicHandler(func(ev event.Event, r any) {
		logger.Error("handler panic on %s: %v", ev.Topic, r)
	}))
	return nil
}

// initEngine creates the calculator engine and its formatter. Engine
// signals are published on the bus.
func (b *bootstrapper) initEngine() error {
	f, err := buildFormatter(b.app.cfg)
	if err != nil {
		return NewComponentError("formatter", b.app.cfg.Locale, err)
	}
	theme, err := buildTheme(b.app.cfg)
	if err != nil {
		return NewComponentError("theme", "", err)
	}

	notifier := event.NewNotifier(b.app.bus, "engine")
	logger := b.app.logger.WithComponent("engine")
	notifier.OnError = func(err error) {
		logger.Warn("signal delivery: %v", err)
	}

	b.app.engine = engine.New(engine.WithNotifier(notifier))
	b.app.formatter = f
	b.app.theme = theme
	return nil
}

// initDispatcher loads the keymap and creates the dispatcher.
func (b *bootstrapper) initDispatcher() error {
	km, err := buildKeymap(b.app.cfg)
	if err != nil {
		return NewComponentError("keymap", b.app.cfg.KeymapPath, err)
	}

	cfg := dispatcher.DefaultConfig()
	if ParseLogLevel(b.app.cfg.LogLevel) == LogLevelDebug {
		cfg = cfg.WithMetrics()
	}

	d := dispatcher.New(b.app.engine, km, cfg)
	logger := b.app.logger.WithComponent("dispatcher")
	d.AddPostHook(dispatcher.NewLoggingHook(logger.Debug))
	b.app.dispatcher = d
	return nil
}

func (b *bootstrapper) initSubscriptions() error {
	b.app.subs = newSubscriptionManager(b.app)
	if err := b.app.subs.setupSubscriptions(); err != nil {
		return NewComponentError("subscriptions", "setup", err)
	}
	return nil
}

// cleanup releases components in reverse initialization order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "subscriptions":
			b.app.subs.cleanup()
			b.app.subs = nil
		case "logger":
			if b.app.logCloser != nil {
				_ = b.app.logCloser.Close()
				b.app.logCloser = nil
			}
		}
	}
}

// loadConfig reads defaults, the config file and the environment, then
// applies the command line overrides.
func (app *Application) loadConfig() (config.Config, error) {
	var lopts []config.LoaderOption
	if app.opts.LookupEnv != nil {
		lopts = append(lopts, config.WithLookupEnv(app.opts.LookupEnv))
	}

	cfg, err := config.NewLoader(lopts...).Load(app.configPath, app.opts.ConfigRequired)
	if err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Apply(app.opts.Overrides)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildFormatter(cfg config.Config) (*display.Formatter, error) {
	return display.NewFormatter(cfg.Locale)
}

func buildTheme(cfg config.Config) (view.Theme, error) {
	return view.ThemeFromHex(cfg.Theme.Colors())
}

// buildKeymap merges the configured keymap file over the defaults.
func buildKeymap(cfg config.Config) (*keymap.Keymap, error) {
	km := keymap.Default()
	if cfg.KeymapPath == "" {
		return km, nil
	}

	over, err := keymap.LoadFile(cfg.KeymapPath)
	if err != nil {
		return nil, err
	}
	return km.Merge(over), nil
}
