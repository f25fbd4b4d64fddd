package view

import (
	"fmt"

	"github.com/dshills/keycalc/internal/renderer/core"
)

// Theme holds the colors used to draw the calculator.
type Theme struct {
	Background core.Color
	Foreground core.Color
	Border     core.Color
	Display    core.Color
	Error      core.Color
	Operator   core.Color
	Accent     core.Color
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background: core.ColorDefault,
		Foreground: core.MustColorFromHex("#d0d0d0"),
		Border:     core.MustColorFromHex("#6c6c6c"),
		Display:    core.MustColorFromHex("#ffffff"),
		Error:      core.MustColorFromHex("#ff5f5f"),
		Operator:   core.MustColorFromHex("#ffaf00"),
		Accent:     core.MustColorFromHex("#5fafff"),
	}
}

// ThemeFromHex builds a theme from hex color strings keyed by field name
// ("background", "foreground", "border", "display", "error", "operator",
// "accent"). Missing keys keep the default.
func ThemeFromHex(colors map[string]string) (Theme, error) {
	t := DefaultTheme()
	fields := map[string]*core.Color{
		"background": &t.Background,
		"foreground": &t.Foreground,
		"border":     &t.Border,
		"display":    &t.Display,
		"error":      &t.Error,
		"operator":   &t.Operator,
		"accent":     &t.Accent,
	}
	for name, hex := range colors {
		dst, ok := fields[name]
		if !ok {
			return Theme{}, fmt.Errorf("unknown theme color %q", name)
		}
		c, err := core.ColorFromHex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("theme color %q: %w", name, err)
		}
		*dst = c
	}
	return t, nil
}
