package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/keycalc/internal/input/key"
)

func TestDefaultBindings(t *testing.T) {
	km := Default()

	tests := []struct {
		spec   string
		action string
		op     string
	}{
		{"0", ActionDigit, ""},
		{"9", ActionDigit, ""},
		{".", ActionDigit, ""},
		{"+", ActionOperator, "+"},
		{"-", ActionOperator, "-"},
		{"%", ActionOperator, "%"},
		{"*", ActionOperator, "×"},
		{"/", ActionOperator, "÷"},
		{"^", ActionOperator, "^"},
		{"Enter", ActionEquals, ""},
		{"=", ActionEquals, ""},
		{"Backspace", ActionDelete, ""},
		{"Delete", ActionClear, ""},
		{"Escape", ActionClear, ""},
		{"q", ActionQuit, ""},
		{"Ctrl+C", ActionQuit, ""},
	}

	for _, tt := range tests {
		b, ok := km.LookupSpec(tt.spec)
		if !ok {
			t.Errorf("LookupSpec(%q) not found", tt.spec)
			continue
		}
		if b.Action != tt.action {
			t.Errorf("LookupSpec(%q).Action = %q, want %q", tt.spec, b.Action, tt.action)
		}
		if op, _ := b.StringArg("op"); op != tt.op {
			t.Errorf("LookupSpec(%q) op = %q, want %q", tt.spec, op, tt.op)
		}
	}

	if err := km.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLookupUnbound(t *testing.T) {
	km := Default()
	for _, spec := range []string{"a", "Tab", "<C-x>", "Ctrl++"} {
		if b, ok := km.LookupSpec(spec); ok {
			t.Errorf("LookupSpec(%q) = %+v, want no binding", spec, b)
		}
	}
}

func TestLookupEvent(t *testing.T) {
	km := Default()

	b, ok := km.Lookup(key.NewRuneEvent('C', key.ModCtrl|key.ModShift))
	if !ok || b.Action != ActionQuit {
		t.Errorf("Lookup(Ctrl+Shift+C) = %+v, %v; want %s", b, ok, ActionQuit)
	}
	b, ok = km.Lookup(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	if !ok || b.Action != ActionEquals {
		t.Errorf("Lookup(Enter) = %+v, %v; want %s", b, ok, ActionEquals)
	}
}

func TestLaterBindingWins(t *testing.T) {
	km := NewKeymap("test").
		Add("x", ActionClear).
		AddOp("x", "×")

	b, ok := km.LookupSpec("x")
	if !ok || b.Action != ActionOperator {
		t.Errorf("LookupSpec(x) = %+v, want operator binding", b)
	}
}

func TestLiteralKeymapLookup(t *testing.T) {
	km := &Keymap{Bindings: []Binding{
		{Keys: "<CR>", Action: ActionClear},
		{Keys: "Enter", Action: ActionEquals},
	}}

	b, ok := km.LookupSpec("Return")
	if !ok || b.Action != ActionEquals {
		t.Errorf("LookupSpec(Return) = %+v, want %s", b, ActionEquals)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	over := NewKeymap("user").WithSource("user.json").
		AddOp("x", "×").
		Add("Escape", ActionQuit)

	merged := base.Merge(over)

	if b, _ := merged.LookupSpec("x"); b.Action != ActionOperator {
		t.Errorf("merged x = %+v, want operator", b)
	}
	if b, _ := merged.LookupSpec("Escape"); b.Action != ActionQuit {
		t.Errorf("merged Escape = %q, want %q", b.Action, ActionQuit)
	}
	if b, _ := merged.LookupSpec("Delete"); b.Action != ActionClear {
		t.Errorf("merged Delete = %q, want %q", b.Action, ActionClear)
	}
	if merged.Source != "user.json" {
		t.Errorf("merged Source = %q, want %q", merged.Source, "user.json")
	}

	if b, _ := base.LookupSpec("Escape"); b.Action != ActionClear {
		t.Error("Merge modified the base keymap")
	}
	if _, ok := base.LookupSpec("x"); ok {
		t.Error("Merge added bindings to the base keymap")
	}
}

func TestCloneIsDeep(t *testing.T) {
	km := NewKeymap("test").AddOp("+", "+")
	clone := km.Clone()
	clone.Bindings[0].Args["op"] = "-"

	if op, _ := km.Bindings[0].StringArg("op"); op != "+" {
		t.Errorf("original op = %q after clone mutation, want %q", op, "+")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		keymap  *Keymap
		wantErr bool
	}{
		{"valid", NewKeymap("ok").Add("7", ActionDigit), false},
		{"empty keys", &Keymap{Bindings: []Binding{{Action: ActionDigit}}}, true},
		{"empty action", &Keymap{Bindings: []Binding{{Keys: "7"}}}, true},
		{"bad keys", NewKeymap("bad").Add("Hyper+7", ActionDigit), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.keymap.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadJSON(t *testing.T) {
	data := []byte(`{
		"name": "custom",
		"bindings": [
			{"keys": "x", "action": "calc.operator", "args": {"op": "×"}},
			{"keys": "<C-l>", "action": "calc.clear", "description": "clear screen"},
			{"keys": "n", "action": "calc.digit", "args": {"digit": "9"}}
		]
	}`)

	km, err := LoadJSON(data)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if km.Name != "custom" {
		t.Errorf("Name = %q, want %q", km.Name, "custom")
	}
	if len(km.Bindings) != 3 {
		t.Fatalf("len(Bindings) = %d, want 3", len(km.Bindings))
	}

	b, ok := km.LookupSpec("x")
	if !ok {
		t.Fatal("x not bound")
	}
	if op, _ := b.StringArg("op"); op != "×" {
		t.Errorf("x op = %q, want ×", op)
	}
	if b, _ := km.LookupSpec("Ctrl+L"); b.Description != "clear screen" {
		t.Errorf("Ctrl+L description = %q", b.Description)
	}
	if b, _ := km.LookupSpec("n"); b.Args["digit"] != "9" {
		t.Errorf("n digit arg = %v, want 9", b.Args["digit"])
	}
}

func TestLoadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{"bindings": [`},
		{"bindings not array", `{"bindings": {}}`},
		{"missing action", `{"bindings": [{"keys": "x"}]}`},
		{"bad key spec", `{"bindings": [{"keys": "Hyper+x", "action": "calc.clear"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJSON([]byte(tt.data))
			if !errors.Is(err, ErrInvalidKeymap) {
				t.Errorf("LoadJSON() error = %v, want ErrInvalidKeymap", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.json")
	if err := os.WriteFile(path, []byte(`{"bindings":[{"keys":"x","action":"calc.clear"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	km, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if km.Source != path {
		t.Errorf("Source = %q, want %q", km.Source, path)
	}
	if km.Name != "user" {
		t.Errorf("Name = %q, want %q", km.Name, "user")
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
}
