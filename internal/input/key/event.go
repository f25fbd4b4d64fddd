package key

import (
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Timestamp: time.Now()}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsModified returns true if Ctrl, Alt or Meta is held.
// Shift is part of the character for rune events.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// String returns the canonical form of the event.
// Unmodified characters are the character itself ("7", "+");
// everything else uses Vim notation ("<CR>", "<C-c>", "<BS>").
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Modifiers.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Modifiers.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Modifiers.Has(ModMeta) {
		parts = append(parts, "D")
	}
	if e.Modifiers.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			parts = append(parts, "Space")
		} else {
			parts = append(parts, string(unicode.ToLower(e.Rune)))
		}
	case KeyEnter:
		parts = append(parts, "CR")
	default:
		parts = append(parts, e.Key.String())
	}
	return "<" + strings.Join(parts, "-") + ">"
}

// Equals returns true if two events represent the same key press.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Rune == other.Rune && e.Modifiers == other.Modifiers
}

// Matches checks if this event matches a key specification.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Canonical().Equals(parsed.Canonical())
}

// Canonical drops Shift from character events, since the character
// already reflects it.
func (e Event) Canonical() Event {
	if e.IsRune() && e.Modifiers.Has(ModShift) {
		e.Modifiers = e.Modifiers.Without(ModShift)
	}
	if e.Modifiers.Has(ModCtrl) && e.IsRune() {
		e.Rune = unicode.ToLower(e.Rune)
	}
	return e
}
