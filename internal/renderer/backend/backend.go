// Package backend provides the display surface the calculator draws on.
//
// Terminal renders through tcell; NullBackend keeps cells in memory and is
// driven by posted events, for tests and headless runs.
package backend

import "github.com/dshills/keycalc/internal/renderer/core"

// EventType identifies the type of backend event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	// EventWake is a synthetic event used to wake the event loop, e.g.
	// when a feedback timer expires or the config file changed.
	EventWake
	// EventClosed is returned by PollEvent once the backend is shut down.
	EventClosed
)

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
)

// Event represents a backend event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Wake event payload
	Data any
}

// KeyEvent returns a key event for a character.
func KeyEvent(r rune, mod ModMask) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r, Mod: mod}
}

// SpecialKeyEvent returns a key event for a special key.
func SpecialKeyEvent(k Key, mod ModMask) Event {
	return Event{Type: EventKey, Key: k, Mod: mod}
}

// ClickEvent returns a left-button mouse event at column x, row y.
func ClickEvent(x, y int) Event {
	return Event{Type: EventMouse, MouseX: x, MouseY: y, MouseButton: MouseLeft}
}

// WakeEvent returns a wake event carrying data.
func WakeEvent(data any) Event {
	return Event{Type: EventWake, Data: data}
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// PollEvent returns EventClosed afterwards.
	Shutdown()

	// Size returns the current dimensions in cells.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the screen are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	PollEvent() Event

	// PostEvent posts a synthetic key or wake event to the event queue.
	// It never blocks; the event may be dropped if the queue is full.
	PostEvent(event Event)

	// EnableMouse enables mouse event reporting.
	EnableMouse()

	// Beep produces an audible or visual bell.
	Beep()
}
