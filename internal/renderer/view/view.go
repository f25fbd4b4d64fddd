// Package view draws the calculator: a bordered display panel with the
// pending expression and the current value, and the keypad below it.
package view

import (
	"sync"
	"time"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/core"
	"github.com/dshills/keycalc/internal/renderer/feedback"
	"github.com/dshills/keycalc/internal/renderer/keypad"
)

const (
	// MaxWidth caps the drawn width in columns.
	MaxWidth = 40

	// PanelHeight is the display panel height including borders.
	PanelHeight = 4

	ellipsis = '…'
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the color theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// WithFeedback sets the flash and press durations and the clock they run on.
// A nil clock uses time.Now.
func WithFeedback(flash, press time.Duration, now feedback.Clock) Option {
	return func(r *Renderer) {
		r.flash = feedback.NewFlash(flash, now)
		r.press = feedback.NewPress(press, now)
	}
}

// Renderer draws calculator states to a backend.
// A Renderer is safe for concurrent use.
type Renderer struct {
	mu        sync.Mutex
	backend   backend.Backend
	formatter *display.Formatter
	layout    *keypad.Layout
	theme     Theme
	flash     *feedback.Flash
	press     *feedback.Press
	panel     core.ScreenRect
	last      engine.State
}

// New creates a renderer drawing to b with numbers formatted by f.
func New(b backend.Backend, f *display.Formatter, opts ...Option) *Renderer {
	r := &Renderer{
		backend:   b,
		formatter: f,
		layout:    keypad.New(),
		theme:     DefaultTheme(),
		last:      engine.NewState(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.flash == nil {
		r.flash = feedback.NewFlash(0, nil)
	}
	if r.press == nil {
		r.press = feedback.NewPress(0, nil)
	}
	return r
}

// SetTheme replaces the theme. It takes effect on the next Draw.
func (r *Renderer) SetTheme(t Theme) {
	r.mu.Lock()
	r.theme = t
	r.mu.Unlock()
}

// SetFormatter replaces the number formatter.
func (r *Renderer) SetFormatter(f *display.Formatter) {
	r.mu.Lock()
	r.formatter = f
	r.mu.Unlock()
}

// Theme returns the current theme.
func (r *Renderer) Theme() Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// Layout returns the keypad layout as arranged by the last Draw.
func (r *Renderer) Layout() *keypad.Layout {
	return r.layout
}

// Flash starts the error flash.
func (r *Renderer) Flash() {
	r.flash.Trigger()
}

// Pressed highlights the keypad button with label.
func (r *Renderer) Pressed(label string) {
	r.press.Trigger(label)
}

// NextExpiry returns how long until a visual cue ends, or 0 when no cue is
// active. Callers redraw after this delay.
func (r *Renderer) NextExpiry() time.Duration {
	f := r.flash.Remaining()
	p := r.press.Remaining()
	switch {
	case f == 0:
		return p
	case p == 0:
		return f
	}
	return min(f, p)
}

// HitTest returns the keypad button label at column x, row y.
func (r *Renderer) HitTest(x, y int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.layout.HitTest(x, y)
	return b.Label, ok
}

// Redraw draws the state passed to the last Draw call.
func (r *Renderer) Redraw() {
	r.mu.Lock()
	s := r.last
	r.mu.Unlock()
	r.Draw(s)
}

// Draw renders s and flushes the backend.
func (r *Renderer) Draw(s engine.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = s
	r.backend.Clear()

	w, h := r.backend.Size()
	area := core.RectFromSize(0, 0, h, min(w, MaxWidth))
	if area.Width() < 4 || area.Height() < PanelHeight {
		r.layout.Arrange(core.ScreenRect{})
		r.backend.Show()
		return
	}

	bg := core.DefaultStyle().WithBackground(r.theme.Background)
	r.backend.Fill(area, core.Cell{Rune: ' ', Width: 1, Style: bg})

	r.panel, area = area.SplitTop(PanelHeight)
	r.drawPanel(s)

	r.layout.Arrange(area)
	r.drawKeypad()

	r.backend.Show()
}

func (r *Renderer) drawPanel(s engine.State) {
	p := r.panel
	border := core.NewStyle(r.theme.Border).WithBackground(r.theme.Background)
	r.drawBox(p, border)

	text := p.Inset(1, 2, 1, 2)
	if text.IsEmpty() {
		return
	}

	previous, current := r.formatter.Lines(s)

	prevStyle := core.NewStyle(r.theme.Foreground).WithBackground(r.theme.Background).Dim()
	r.drawRight(text.Top, text.Left, text.Right, previous, prevStyle)

	fg := r.theme.Display
	if s.IsError() {
		fg = r.theme.Error
	}
	if k := r.flash.Intensity(); k > 0 {
		fg = fg.Blend(r.theme.Error, k)
	}
	curStyle := core.NewStyle(fg).WithBackground(r.theme.Background).Bold()
	r.drawRight(text.Top+1, text.Left, text.Right, current, curStyle)
}

func (r *Renderer) drawBox(rect core.ScreenRect, style core.Style) {
	top, bottom := rect.Top, rect.Bottom-1
	left, right := rect.Left, rect.Right-1

	for x := left + 1; x < right; x++ {
		r.backend.SetCell(x, top, core.NewStyledCell('─', style))
		r.backend.SetCell(x, bottom, core.NewStyledCell('─', style))
	}
	for y := top + 1; y < bottom; y++ {
		r.backend.SetCell(left, y, core.NewStyledCell('│', style))
		r.backend.SetCell(right, y, core.NewStyledCell('│', style))
	}
	r.backend.SetCell(left, top, core.NewStyledCell('┌', style))
	r.backend.SetCell(right, top, core.NewStyledCell('┐', style))
	r.backend.SetCell(left, bottom, core.NewStyledCell('└', style))
	r.backend.SetCell(right, bottom, core.NewStyledCell('┘', style))
}

// drawRight writes s right-aligned in columns [left, right) of row y.
// Text wider than the space loses its leading columns to an ellipsis so
// the least significant digits stay visible.
func (r *Renderer) drawRight(y, left, right int, s string, style core.Style) {
	width := right - left
	if width <= 0 || s == "" {
		return
	}
	cells := fitRight(core.CellsFromString(s, style), width, style)
	x := right - len(cells)
	for i, c := range cells {
		r.backend.SetCell(x+i, y, c)
	}
}

func fitRight(cells []core.Cell, width int, style core.Style) []core.Cell {
	if len(cells) <= width {
		return cells
	}
	kept := cells[len(cells)-(width-1):]
	out := make([]core.Cell, 0, width)
	out = append(out, core.NewStyledCell(ellipsis, style))
	for i, c := range kept {
		if i == 0 && c.IsContinuation() {
			c = core.NewStyledCell(' ', style)
		}
		out = append(out, c)
	}
	return out
}

func (r *Renderer) buttonStyle(b keypad.Button) core.Style {
	fg := r.theme.Foreground
	switch b.Kind {
	case keypad.KindOperator:
		fg = r.theme.Operator
	case keypad.KindFunction, keypad.KindEquals:
		fg = r.theme.Accent
	}
	style := core.NewStyle(fg).WithBackground(r.theme.Background)
	if b.Kind == keypad.KindEquals {
		style = style.Bold()
	}
	return style
}

func (r *Renderer) drawKeypad() {
	pressed := r.press.Active()
	for i, b := range r.layout.Buttons() {
		rect := r.layout.Rect(i)
		if rect.IsEmpty() {
			continue
		}
		style := r.buttonStyle(b)
		if b.Label == pressed {
			style = style.Reverse()
			r.backend.Fill(rect, core.Cell{Rune: ' ', Width: 1, Style: style})
		}

		cells := core.CellsFromString(b.Label, style)
		if len(cells) > rect.Width() {
			cells = cells[:rect.Width()]
		}
		x := rect.Left + (rect.Width()-len(cells))/2
		y := rect.Top + rect.Height()/2
		for j, c := range cells {
			r.backend.SetCell(x+j, y, c)
		}
	}
}
