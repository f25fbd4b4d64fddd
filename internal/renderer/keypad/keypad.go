// Package keypad lays out the calculator button grid and maps screen
// positions back to buttons.
package keypad

import "github.com/dshills/keycalc/internal/renderer/core"

// Grid dimensions.
const (
	Rows = 5
	Cols = 4
)

// Kind classifies a button for styling.
type Kind int

const (
	KindDigit Kind = iota
	KindOperator
	KindFunction
	KindEquals
)

// Button is one keypad key.
type Button struct {
	Label string
	Kind  Kind
	Row   int
	Col   int
}

var grid = [Rows][Cols]string{
	{"C", "DEL", "%", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"^", "0", ".", "="},
}

func kindOf(label string) Kind {
	switch label {
	case "C", "DEL":
		return KindFunction
	case "=":
		return KindEquals
	case "%", "÷", "×", "-", "+", "^":
		return KindOperator
	}
	return KindDigit
}

// Layout positions the buttons inside a screen area.
// The zero value is not usable; call New.
type Layout struct {
	buttons []Button
	rects   []core.ScreenRect
}

// New creates a layout with the standard button grid.
func New() *Layout {
	l := &Layout{
		buttons: make([]Button, 0, Rows*Cols),
		rects:   make([]core.ScreenRect, Rows*Cols),
	}
	for r, row := range grid {
		for c, label := range row {
			l.buttons = append(l.buttons, Button{Label: label, Kind: kindOf(label), Row: r, Col: c})
		}
	}
	return l
}

// Buttons returns the buttons in row-major order.
func (l *Layout) Buttons() []Button {
	return l.buttons
}

// Arrange divides area into the button grid. Spare columns and rows go to
// the last column and row so the grid always fills the area.
func (l *Layout) Arrange(area core.ScreenRect) {
	cw := area.Width() / Cols
	rh := area.Height() / Rows
	for i, b := range l.buttons {
		left := area.Left + b.Col*cw
		top := area.Top + b.Row*rh
		right := left + cw
		bottom := top + rh
		if b.Col == Cols-1 {
			right = area.Right
		}
		if b.Row == Rows-1 {
			bottom = area.Bottom
		}
		l.rects[i] = core.ScreenRect{Top: top, Left: left, Bottom: bottom, Right: right}
	}
}

// Rect returns the screen rectangle of the button at index i.
func (l *Layout) Rect(i int) core.ScreenRect {
	if i < 0 || i >= len(l.rects) {
		return core.ScreenRect{}
	}
	return l.rects[i]
}

// Index returns the index of the button with the given label.
func (l *Layout) Index(label string) (int, bool) {
	for i, b := range l.buttons {
		if b.Label == label {
			return i, true
		}
	}
	return -1, false
}

// HitTest returns the button under column x, row y.
func (l *Layout) HitTest(x, y int) (Button, bool) {
	for i, r := range l.rects {
		if !r.IsEmpty() && r.Contains(x, y) {
			return l.buttons[i], true
		}
	}
	return Button{}, false
}
