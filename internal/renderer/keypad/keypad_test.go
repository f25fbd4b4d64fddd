package keypad

import (
	"testing"

	"github.com/dshills/keycalc/internal/renderer/core"
)

func TestButtons(t *testing.T) {
	l := New()
	buttons := l.Buttons()

	if len(buttons) != Rows*Cols {
		t.Fatalf("len(Buttons()) = %d, expected %d", len(buttons), Rows*Cols)
	}

	want := []string{
		"C", "DEL", "%", "÷",
		"7", "8", "9", "×",
		"4", "5", "6", "-",
		"1", "2", "3", "+",
		"^", "0", ".", "=",
	}
	for i, b := range buttons {
		if b.Label != want[i] {
			t.Errorf("button %d = %q, expected %q", i, b.Label, want[i])
		}
	}

	kinds := map[string]Kind{"7": KindDigit, ".": KindDigit, "×": KindOperator, "^": KindOperator, "C": KindFunction, "DEL": KindFunction, "=": KindEquals}
	for label, kind := range kinds {
		i, ok := l.Index(label)
		if !ok {
			t.Fatalf("Index(%q) not found", label)
		}
		if buttons[i].Kind != kind {
			t.Errorf("%q kind = %v, expected %v", label, buttons[i].Kind, kind)
		}
	}
}

func TestArrangeAndHitTest(t *testing.T) {
	l := New()
	l.Arrange(core.RectFromSize(4, 0, 10, 20))

	tests := []struct {
		x, y  int
		label string
		ok    bool
	}{
		{0, 4, "C", true},
		{4, 5, "C", true},
		{5, 4, "DEL", true},
		{19, 4, "÷", true},
		{0, 6, "7", true},
		{12, 9, "6", true},
		{7, 13, "0", true},
		{19, 13, "=", true},
		{0, 3, "", false},
		{20, 4, "", false},
		{0, 14, "", false},
	}

	for _, tt := range tests {
		b, ok := l.HitTest(tt.x, tt.y)
		if ok != tt.ok || b.Label != tt.label {
			t.Errorf("HitTest(%d, %d) = %q, %v; expected %q, %v", tt.x, tt.y, b.Label, ok, tt.label, tt.ok)
		}
	}
}

func TestArrangeSpareSpace(t *testing.T) {
	l := New()
	l.Arrange(core.RectFromSize(0, 0, 12, 22))

	i, _ := l.Index("=")
	r := l.Rect(i)
	if r.Right != 22 || r.Bottom != 12 {
		t.Errorf("last button rect = %+v, expected to reach the area edge", r)
	}
	i, _ = l.Index("C")
	if r := l.Rect(i); r.Width() != 5 || r.Height() != 2 {
		t.Errorf("first button rect = %+v, expected 5x2", r)
	}

	if r := l.Rect(99); !r.IsEmpty() {
		t.Errorf("Rect(99) = %+v, expected empty", r)
	}
}

func TestHitTestBeforeArrange(t *testing.T) {
	l := New()
	if _, ok := l.HitTest(0, 0); ok {
		t.Error("HitTest before Arrange should miss")
	}
}
