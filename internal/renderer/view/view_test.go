package view

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/renderer/backend"
	"github.com/dshills/keycalc/internal/renderer/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func newFormatter(t *testing.T, locale string) *display.Formatter {
	t.Helper()
	f, err := display.NewFormatter(locale)
	if err != nil {
		t.Fatalf("NewFormatter(%q) error: %v", locale, err)
	}
	return f
}

func newRenderer(t *testing.T, w, h int) (*Renderer, *backend.NullBackend, *fakeClock) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	if err := b.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := New(b, newFormatter(t, "en"), WithFeedback(0, 0, clock.now))
	return r, b, clock
}

func TestDrawPanel(t *testing.T) {
	r, b, _ := newRenderer(t, 40, 14)

	r.Draw(engine.State{Current: "3", Previous: "1234", Operation: engine.OpAdd})

	if got := b.Row(0); !strings.HasPrefix(got, "┌") || !strings.HasSuffix(got, "┐") {
		t.Errorf("Row(0) = %q, expected top border", got)
	}
	if got := b.Row(1); !strings.HasSuffix(got, "1,234 + │") {
		t.Errorf("Row(1) = %q, expected previous line", got)
	}
	if got := b.Row(2); !strings.HasSuffix(got, " 3 │") {
		t.Errorf("Row(2) = %q, expected current line", got)
	}
	if got := b.Row(3); !strings.HasPrefix(got, "└") {
		t.Errorf("Row(3) = %q, expected bottom border", got)
	}
	if b.ShowCount() != 1 {
		t.Errorf("ShowCount() = %d, expected 1", b.ShowCount())
	}

	cur := b.GetCell(37, 2)
	if !cur.Style.Attributes.Has(core.AttrBold) {
		t.Error("current line should be bold")
	}
	prev := b.GetCell(37, 1)
	if !prev.Style.Attributes.Has(core.AttrDim) {
		t.Error("previous line should be dim")
	}
}

func TestDrawNoPending(t *testing.T) {
	r, b, _ := newRenderer(t, 40, 14)

	r.Draw(engine.NewState())

	if got := strings.Trim(b.Row(1), "│ "); got != "" {
		t.Errorf("previous line = %q, expected empty", got)
	}
	if got := b.Row(2); !strings.HasSuffix(got, " 0 │") {
		t.Errorf("Row(2) = %q, expected 0", got)
	}
}

func TestDrawKeypad(t *testing.T) {
	r, b, _ := newRenderer(t, 40, 14)
	r.Draw(engine.NewState())

	rows := map[int][]string{
		5:  {"C", "DEL", "%", "÷"},
		7:  {"7", "8", "9", "×"},
		9:  {"4", "5", "6", "-"},
		11: {"1", "2", "3", "+"},
		13: {"^", "0", ".", "="},
	}
	for y, want := range rows {
		got := strings.Fields(b.Row(y))
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("Row(%d) = %v, expected %v", y, got, want)
		}
	}

	if label, ok := r.HitTest(4, 5); !ok || label != "C" {
		t.Errorf("HitTest(4, 5) = %q, %v; expected C", label, ok)
	}
	if label, ok := r.HitTest(39, 13); !ok || label != "=" {
		t.Errorf("HitTest(39, 13) = %q, %v; expected =", label, ok)
	}
	if _, ok := r.HitTest(4, 1); ok {
		t.Error("HitTest on the display panel should miss")
	}
}

func TestDrawCapsWidth(t *testing.T) {
	r, b, _ := newRenderer(t, 80, 14)
	r.Draw(engine.NewState())

	if got := core.StringWidth(b.Row(0)); got != MaxWidth {
		t.Errorf("panel width = %d, expected %d", got, MaxWidth)
	}
	if _, ok := r.HitTest(50, 13); ok {
		t.Error("HitTest beyond the capped width should miss")
	}
}

func TestDrawTruncatesLeft(t *testing.T) {
	r, b, _ := newRenderer(t, 12, 14)

	r.Draw(engine.State{Current: "1234567"})

	if got := b.Row(2); got != "│ …234,567 │" {
		t.Errorf("Row(2) = %q, expected %q", got, "│ …234,567 │")
	}
}

func TestDrawTooSmall(t *testing.T) {
	r, b, _ := newRenderer(t, 3, 3)
	r.Draw(engine.NewState())

	if b.ShowCount() != 1 {
		t.Errorf("ShowCount() = %d, expected 1", b.ShowCount())
	}
	if _, ok := r.HitTest(0, 0); ok {
		t.Error("HitTest should miss when nothing is drawn")
	}
}

func TestFlash(t *testing.T) {
	r, b, clock := newRenderer(t, 40, 14)
	theme := r.Theme()

	r.Flash()
	r.Draw(engine.NewState())
	if got := b.GetCell(37, 2).Style.Foreground; !got.Equals(theme.Error) {
		t.Errorf("flash foreground = %v, expected %v", got, theme.Error)
	}
	if got := r.NextExpiry(); got != 500*time.Millisecond {
		t.Errorf("NextExpiry() = %v, expected 500ms", got)
	}

	clock.t = clock.t.Add(500 * time.Millisecond)
	r.Redraw()
	if got := b.GetCell(37, 2).Style.Foreground; !got.Equals(theme.Display) {
		t.Errorf("foreground after flash = %v, expected %v", got, theme.Display)
	}
	if got := r.NextExpiry(); got != 0 {
		t.Errorf("NextExpiry() = %v, expected 0", got)
	}
}

func TestErrorState(t *testing.T) {
	r, b, _ := newRenderer(t, 40, 14)
	theme := r.Theme()

	r.Draw(engine.State{Current: engine.DivideByZeroMessage, Complete: true})

	if got := b.Row(2); !strings.HasSuffix(got, engine.DivideByZeroMessage+" │") {
		t.Errorf("Row(2) = %q, expected error message", got)
	}
	if got := b.GetCell(37, 2).Style.Foreground; !got.Equals(theme.Error) {
		t.Errorf("error foreground = %v, expected %v", got, theme.Error)
	}
}

func TestPressed(t *testing.T) {
	r, b, clock := newRenderer(t, 40, 14)

	r.Pressed("7")
	r.Draw(engine.NewState())

	cell := b.GetCell(4, 7)
	if cell.Rune != '7' || !cell.Style.Attributes.Has(core.AttrReverse) {
		t.Errorf("pressed cell = %+v, expected reversed 7", cell)
	}
	if got := r.NextExpiry(); got != 150*time.Millisecond {
		t.Errorf("NextExpiry() = %v, expected 150ms", got)
	}

	clock.t = clock.t.Add(200 * time.Millisecond)
	r.Redraw()
	if b.GetCell(4, 7).Style.Attributes.Has(core.AttrReverse) {
		t.Error("highlight should expire")
	}
}

func TestThemeFromHex(t *testing.T) {
	theme, err := ThemeFromHex(map[string]string{"error": "#ff0000", "accent": "00ff00"})
	if err != nil {
		t.Fatalf("ThemeFromHex() error: %v", err)
	}
	if !theme.Error.Equals(core.ColorRed) {
		t.Errorf("Error = %v, expected %v", theme.Error, core.ColorRed)
	}
	if !theme.Accent.Equals(core.ColorFromRGB(0, 255, 0)) {
		t.Errorf("Accent = %v, expected #00FF00", theme.Accent)
	}
	if !theme.Display.Equals(DefaultTheme().Display) {
		t.Errorf("Display = %v, expected default", theme.Display)
	}

	if _, err := ThemeFromHex(map[string]string{"nope": "#fff"}); err == nil {
		t.Error("expected error for unknown color name")
	}
	if _, err := ThemeFromHex(map[string]string{"error": "#zz"}); err == nil {
		t.Error("expected error for invalid hex")
	}
}
