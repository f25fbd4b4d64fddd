package app

import (
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/key"
	"github.com/dshills/keycalc/internal/renderer/backend"
)

// convertToKeyEvent converts a backend.Event to a key.Event.
func convertToKeyEvent(ev backend.Event) key.Event {
	mods := key.ModNone
	if ev.Mod.Has(backend.ModCtrl) {
		mods = mods.With(key.ModCtrl)
	}
	if ev.Mod.Has(backend.ModAlt) {
		mods = mods.With(key.ModAlt)
	}
	if ev.Mod.Has(backend.ModShift) {
		mods = mods.With(key.ModShift)
	}
	if ev.Mod.Has(backend.ModMeta) {
		mods = mods.With(key.ModMeta)
	}

	k := mapBackendKey(ev.Key)
	if k == key.KeyRune {
		return key.NewRuneEvent(ev.Rune, mods).Canonical()
	}
	return key.NewSpecialEvent(k, mods)
}

// mapBackendKey maps a backend.Key to a key.Key.
func mapBackendKey(bk backend.Key) key.Key {
	switch bk {
	case backend.KeyRune:
		return key.KeyRune
	case backend.KeyEscape:
		return key.KeyEscape
	case backend.KeyEnter:
		return key.KeyEnter
	case backend.KeyTab:
		return key.KeyTab
	case backend.KeyBackspace:
		return key.KeyBackspace
	case backend.KeyDelete:
		return key.KeyDelete
	case backend.KeyUp:
		return key.KeyUp
	case backend.KeyDown:
		return key.KeyDown
	case backend.KeyLeft:
		return key.KeyLeft
	case backend.KeyRight:
		return key.KeyRight
	default:
		return key.KeyNone
	}
}

// ButtonLabel returns the keypad label for an engine input, so that typed
// keys highlight the button they correspond to.
func ButtonLabel(in engine.Input) (string, bool) {
	switch in.Kind {
	case engine.InputDigit:
		return string(in.Digit), true
	case engine.InputOperator:
		return in.Op.String(), in.Op.Valid()
	case engine.InputClear:
		return "C", true
	case engine.InputDelete:
		return "DEL", true
	case engine.InputEquals:
		return "=", true
	default:
		return "", false
	}
}
