package keymap

import (
	"fmt"
	"maps"

	"github.com/dshills/keycalc/internal/input/key"
)

// Keymap holds calculator key bindings.
// A keymap is safe for concurrent lookups once it is no longer modified.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined ("default", a file path).
	Source string

	// Bindings are the key-to-action mappings, in precedence order.
	Bindings []Binding

	index map[string]int
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, action string) *Keymap {
	return k.AddBinding(NewBinding(keys, action))
}

// AddOp adds a calc.operator binding for op.
func (k *Keymap) AddOp(keys, op string) *Keymap {
	return k.AddBinding(NewBinding(keys, ActionOperator).WithArgs(map[string]any{"op": op}))
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(b Binding) *Keymap {
	if k.index == nil {
		k.index = make(map[string]int)
	}
	k.Bindings = append(k.Bindings, b)
	if canon, err := key.NormalizeSpec(b.Keys); err == nil {
		k.index[canon] = len(k.Bindings) - 1
	}
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Action == "" {
			return fmt.Errorf("binding %d (%s): empty action", i, b.Keys)
		}
		if _, err := key.Parse(b.Keys); err != nil {
			return fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
	}
	return nil
}

// Lookup returns the binding for a key event.
// Bindings whose keys do not parse are never matched.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	canon := ev.Canonical().String()
	if k.index == nil {
		// Built as a literal; fall back to a scan, last binding wins.
		for i := len(k.Bindings) - 1; i >= 0; i-- {
			if c, err := key.NormalizeSpec(k.Bindings[i].Keys); err == nil && c == canon {
				return k.Bindings[i], true
			}
		}
		return Binding{}, false
	}
	i, ok := k.index[canon]
	if !ok {
		return Binding{}, false
	}
	return k.Bindings[i], true
}

// LookupSpec parses spec and looks it up.
func (k *Keymap) LookupSpec(spec string) (Binding, bool) {
	ev, err := key.Parse(spec)
	if err != nil {
		return Binding{}, false
	}
	return k.Lookup(ev)
}

// Merge returns a new keymap with the bindings of k followed by those of
// over, so that over wins on conflicts. Neither input is modified.
func (k *Keymap) Merge(over *Keymap) *Keymap {
	merged := k.Clone()
	if over == nil {
		return merged
	}
	if over.Source != "" {
		merged.Source = over.Source
	}
	for _, b := range over.Bindings {
		if b.Args != nil {
			b.Args = maps.Clone(b.Args)
		}
		merged.AddBinding(b)
	}
	return merged
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Source:   k.Source,
		Bindings: make([]Binding, 0, len(k.Bindings)),
	}
	for _, b := range k.Bindings {
		if b.Args != nil {
			b.Args = maps.Clone(b.Args)
		}
		clone.AddBinding(b)
	}
	return clone
}

// Default returns the built-in calculator keymap.
func Default() *Keymap {
	km := NewKeymap("default").WithSource("default")

	for _, d := range "0123456789." {
		km.Add(string(d), ActionDigit)
	}

	km.AddOp("+", "+").
		AddOp("-", "-").
		AddOp("%", "%").
		AddOp("*", "×").
		AddOp("×", "×").
		AddOp("/", "÷").
		AddOp("÷", "÷").
		AddOp("^", "^")

	km.Add("Enter", ActionEquals).
		Add("=", ActionEquals).
		Add("Backspace", ActionDelete).
		Add("Delete", ActionClear).
		Add("Escape", ActionClear).
		Add("q", ActionQuit).
		Add("<C-c>", ActionQuit)

	return km
}
