package keymap

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ErrInvalidKeymap is returned when a keymap document is malformed.
var ErrInvalidKeymap = errors.New("invalid keymap")

// LoadFile loads a keymap from a JSON file.
func LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	km, err := LoadJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if km.Source == "" {
		km.Source = path
	}
	return km, nil
}

// LoadJSON parses a keymap document.
func LoadJSON(data []byte) (*Keymap, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidKeymap)
	}

	doc := gjson.ParseBytes(data)
	bindings := doc.Get("bindings")
	if bindings.Exists() && !bindings.IsArray() {
		return nil, fmt.Errorf("%w: bindings must be an array", ErrInvalidKeymap)
	}

	km := NewKeymap(doc.Get("name").String()).WithSource(doc.Get("source").String())
	if km.Name == "" {
		km.Name = "user"
	}

	var parseErr error
	bindings.ForEach(func(idx, item gjson.Result) bool {
		b := Binding{
			Keys:        item.Get("keys").String(),
			Action:      item.Get("action").String(),
			Description: item.Get("description").String(),
		}
		if args := item.Get("args"); args.IsObject() {
			b.Args = make(map[string]any)
			args.ForEach(func(k, v gjson.Result) bool {
				b.Args[k.String()] = v.Value()
				return true
			})
		}
		if b.Keys == "" || b.Action == "" {
			parseErr = fmt.Errorf("%w: binding %d needs keys and action", ErrInvalidKeymap, idx.Int())
			return false
		}
		km.AddBinding(b)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if err := km.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeymap, err)
	}
	return km, nil
}
