package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dshills/keycalc/internal/renderer/core"
)

// Config holds every keycalc setting.
type Config struct {
	// Locale is the BCP 47 tag used for digit grouping (e.g. "en", "de-CH").
	Locale string `toml:"locale"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives log output. Empty means stderr outside the TUI and
	// no logging inside it.
	LogFile string `toml:"log_file"`

	// Mouse enables clicking keypad buttons.
	Mouse bool `toml:"mouse"`

	// KeymapPath points to a JSON keymap merged over the defaults.
	KeymapPath string `toml:"keymap"`

	// FlashMS is the error flash duration in milliseconds.
	FlashMS int `toml:"flash_ms"`

	// PressMS is the button highlight duration in milliseconds.
	PressMS int `toml:"press_ms"`

	Theme ThemeConfig `toml:"theme"`
}

// ThemeConfig holds hex colors. Empty fields keep the built-in color.
type ThemeConfig struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Border     string `toml:"border"`
	Display    string `toml:"display"`
	Error      string `toml:"error"`
	Operator   string `toml:"operator"`
	Accent     string `toml:"accent"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale:   "en",
		LogLevel: "info",
		Mouse:    true,
		FlashMS:  500,
		PressMS:  150,
	}
}

// FlashDuration returns FlashMS as a duration.
func (c Config) FlashDuration() time.Duration {
	return time.Duration(c.FlashMS) * time.Millisecond
}

// PressDuration returns PressMS as a duration.
func (c Config) PressDuration() time.Duration {
	return time.Duration(c.PressMS) * time.Millisecond
}

// Colors returns the non-empty theme colors keyed by name.
func (t ThemeConfig) Colors() map[string]string {
	colors := make(map[string]string)
	for name, v := range t.fields() {
		if *v != "" {
			colors[name] = *v
		}
	}
	return colors
}

func (t *ThemeConfig) fields() map[string]*string {
	return map[string]*string{
		"background": &t.Background,
		"foreground": &t.Foreground,
		"border":     &t.Border,
		"display":    &t.Display,
		"error":      &t.Error,
		"operator":   &t.Operator,
		"accent":     &t.Accent,
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks every setting and returns all failures joined.
// Each failure is a *ValidationError matching ErrValidationFailed.
func (c Config) Validate() error {
	var errs []error
	fail := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	if _, err := language.Parse(c.Locale); err != nil {
		fail("locale", "not a BCP 47 language tag", c.Locale)
	}
	if !logLevels[strings.ToLower(c.LogLevel)] {
		fail("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.FlashMS <= 0 {
		fail("flash_ms", "must be positive", c.FlashMS)
	}
	if c.PressMS <= 0 {
		fail("press_ms", "must be positive", c.PressMS)
	}
	for name, v := range c.Theme.fields() {
		if *v == "" {
			continue
		}
		if _, err := core.ColorFromHex(*v); err != nil {
			fail("theme."+name, "not a hex color", *v)
		}
	}
	return errors.Join(errs...)
}

// Overrides holds command line values. Empty strings and nil pointers leave
// the loaded value unchanged.
type Overrides struct {
	Locale     string
	LogLevel   string
	LogFile    string
	KeymapPath string
	Mouse      *bool
}

// Apply returns c with the non-empty overrides applied.
func (c Config) Apply(o Overrides) Config {
	if o.Locale != "" {
		c.Locale = o.Locale
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.KeymapPath != "" {
		c.KeymapPath = o.KeymapPath
	}
	if o.Mouse != nil {
		c.Mouse = *o.Mouse
	}
	return c
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/keycalc/config.toml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keycalc", "config.toml")
}

// ResolvePath expands environment variables and a leading "~" in p and makes
// relative paths relative to baseDir.
func ResolvePath(p, baseDir string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	if !filepath.IsAbs(p) && baseDir != "" {
		p = filepath.Join(baseDir, p)
	}
	return filepath.Clean(p)
}

// Loader reads configuration through a FileSystem and an environment lookup.
type Loader struct {
	fs     FileSystem
	lookup LookupEnv
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system used to read config files.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithLookupEnv sets the environment lookup function.
func WithLookupEnv(lookup LookupEnv) LoaderOption {
	return func(l *Loader) {
		l.lookup = lookup
	}
}

// NewLoader creates a loader over the OS file system and environment.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{fs: DefaultFS(), lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load builds a configuration from defaults, the file at path and the
// environment, then validates it. A missing file is not an error unless
// required is true. The keymap path is resolved relative to the file.
func (l *Loader) Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		found, err := l.loadFile(path, &cfg)
		if err != nil {
			return Config{}, err
		}
		if !found && required {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		cfg.KeymapPath = ResolvePath(cfg.KeymapPath, filepath.Dir(path))
		cfg.LogFile = ResolvePath(cfg.LogFile, filepath.Dir(path))
	}

	if err := applyEnv(&cfg, l.lookup); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
