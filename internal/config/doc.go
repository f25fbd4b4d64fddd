// Package config loads and validates keycalc settings.
//
// Settings come from four sources, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← KEYCALC_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/keycalc/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Configuration File
//
//	locale = "de"
//	log_level = "info"
//	mouse = true
//	keymap = "~/.config/keycalc/keymap.json"
//	flash_ms = 500
//	press_ms = 150
//
//	[theme]
//	display = "#ffffff"
//	error = "#ff5f5f"
//
// Unknown keys are rejected so typos surface as parse errors.
//
// # Environment Variables
//
//	KEYCALC_LOCALE, KEYCALC_LOG_LEVEL, KEYCALC_LOG_FILE, KEYCALC_MOUSE,
//	KEYCALC_KEYMAP, KEYCALC_FLASH_MS, KEYCALC_PRESS_MS,
//	KEYCALC_THEME_<COLOR> (e.g. KEYCALC_THEME_ERROR)
//
// The watcher sub-package reports changes to the file for live reload.
package config
