// Package key provides key event types and parsing for calculator input.
//
//   - Key: identifies a special key or KeyRune for characters
//   - Modifier: modifier key bit set (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press
//
// # Key Specifications
//
// Keymaps name keys with specification strings:
//
//   - Characters: "7", ".", "+", "^"
//   - Special keys: "Enter", "Escape", "Backspace", "Delete"
//   - With modifiers: "Ctrl+C"
//   - Vim-style: "<C-c>", "<CR>", "<Esc>", "<BS>"
//
// A lone "+" is the plus character, not a modifier separator.
// Every event has one canonical form, returned by Event.String, which
// keymaps use as their lookup key.
package key
