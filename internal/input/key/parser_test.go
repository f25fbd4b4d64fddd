package key

import (
	"errors"
	"testing"
)

func TestParseCharacters(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
	}{
		{"7", '7'},
		{".", '.'},
		{"+", '+'},
		{"-", '-'},
		{"^", '^'},
		{"×", '×'},
		{"q", 'q'},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != KeyRune || ev.Rune != tt.wantRune || ev.Modifiers != ModNone {
			t.Errorf("Parse(%q) = %#v, want rune %q", tt.spec, ev, tt.wantRune)
		}
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec    string
		wantKey Key
		wantMod Modifier
	}{
		{"Enter", KeyEnter, ModNone},
		{"return", KeyEnter, ModNone},
		{"<CR>", KeyEnter, ModNone},
		{"Escape", KeyEscape, ModNone},
		{"<Esc>", KeyEscape, ModNone},
		{"Backspace", KeyBackspace, ModNone},
		{"<BS>", KeyBackspace, ModNone},
		{"Delete", KeyDelete, ModNone},
		{"<Del>", KeyDelete, ModNone},
		{"Alt+Enter", KeyEnter, ModAlt},
		{"<S-Tab>", KeyTab, ModShift},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Key != tt.wantKey {
			t.Errorf("Parse(%q) key = %v, want %v", tt.spec, ev.Key, tt.wantKey)
		}
		if ev.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) modifiers = %v, want %v", tt.spec, ev.Modifiers, tt.wantMod)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec     string
		wantRune rune
		wantMod  Modifier
	}{
		{"Ctrl+C", 'c', ModCtrl},
		{"ctrl+c", 'c', ModCtrl},
		{"<C-c>", 'c', ModCtrl},
		{"Ctrl++", '+', ModCtrl},
		{"<C-->", '-', ModCtrl},
		{"Ctrl+Alt+x", 'x', ModCtrl | ModAlt},
		{"<C-Space>", ' ', ModCtrl},
	}

	for _, tt := range tests {
		ev, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if ev.Rune != tt.wantRune || ev.Modifiers != tt.wantMod {
			t.Errorf("Parse(%q) = %q %v, want %q %v", tt.spec, ev.Rune, ev.Modifiers, tt.wantRune, tt.wantMod)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"Hyper+c", ErrInvalidSpec},
		{"<X-c>", ErrInvalidSpec},
		{"NotAKey", ErrInvalidSpec},
		{"<>", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"Enter", "<CR>"},
		{"<cr>", "<CR>"},
		{"Escape", "<Esc>"},
		{"Backspace", "<BS>"},
		{"Delete", "<Del>"},
		{"Ctrl+C", "<C-c>"},
		{"<C-c>", "<C-c>"},
		{"+", "+"},
		{"Shift+A", "A"},
		{"Space", "<Space>"},
		{"7", "7"},
	}

	for _, tt := range tests {
		got, err := NormalizeSpec(tt.spec)
		if err != nil {
			t.Errorf("NormalizeSpec(%q) error = %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestEventMatches(t *testing.T) {
	ev := NewRuneEvent('C', ModCtrl|ModShift)
	if !ev.Matches("Ctrl+C") {
		t.Error("expected Ctrl+Shift+C event to match Ctrl+C")
	}
	if NewRuneEvent('+', ModNone).Matches("Ctrl++") {
		t.Error("plain + should not match Ctrl++")
	}
	if !NewSpecialEvent(KeyEnter, ModNone).Matches("<CR>") {
		t.Error("Enter should match <CR>")
	}
	if NewSpecialEvent(KeyEnter, ModNone).Matches("bogus key") {
		t.Error("invalid spec should never match")
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid spec")
		}
	}()
	MustParse("")
}

func TestModifierString(t *testing.T) {
	if got := (ModCtrl | ModAlt).String(); got != "Ctrl+Alt" {
		t.Errorf("String() = %q, want %q", got, "Ctrl+Alt")
	}
	if got := ModNone.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
	if !(ModCtrl | ModShift).Without(ModShift).Has(ModCtrl) {
		t.Error("Without removed the wrong modifier")
	}
}
