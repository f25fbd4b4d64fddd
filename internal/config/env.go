package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every keycalc environment variable.
const EnvPrefix = "KEYCALC_"

// LookupEnv reports the value of an environment variable.
type LookupEnv func(key string) (string, bool)

// envSetter applies one environment value to a config.
type envSetter func(c *Config, v string) error

func stringSetter(field func(c *Config) *string) envSetter {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func intSetter(field func(c *Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

// parseBool accepts true/false, yes/no, on/off and 1/0.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// envMapping returns the environment variable mappings.
func envMapping() map[string]envSetter {
	m := map[string]envSetter{
		"LOCALE":    stringSetter(func(c *Config) *string { return &c.Locale }),
		"LOG_LEVEL": stringSetter(func(c *Config) *string { return &c.LogLevel }),
		"LOG_FILE":  stringSetter(func(c *Config) *string { return &c.LogFile }),
		"KEYMAP":    stringSetter(func(c *Config) *string { return &c.KeymapPath }),
		"FLASH_MS":  intSetter(func(c *Config) *int { return &c.FlashMS }),
		"PRESS_MS":  intSetter(func(c *Config) *int { return &c.PressMS }),
		"MOUSE": func(c *Config, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return err
			}
			c.Mouse = b
			return nil
		},
	}
	var t ThemeConfig
	for name := range t.fields() {
		m["THEME_"+strings.ToUpper(name)] = stringSetter(func(c *Config) *string {
			return c.Theme.fields()[name]
		})
	}
	return m
}

// applyEnv overrides cfg with KEYCALC_* variables.
// Empty values are treated as set.
func applyEnv(cfg *Config, lookup LookupEnv) error {
	if lookup == nil {
		return nil
	}
	for suffix, set := range envMapping() {
		name := EnvPrefix + suffix
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return &ValidationError{Path: name, Message: err.Error(), Value: v}
		}
	}
	return nil
}
