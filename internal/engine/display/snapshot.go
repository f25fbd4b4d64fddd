package display

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keycalc/internal/engine"
)

// Snapshot renders a state as a compact JSON document:
//
//	{"session":"…","current":"19","previous":"","operation":"","complete":true,
//	 "phase":"result-shown","display":{"previous":"","current":"19"}}
func (f *Formatter) Snapshot(sessionID string, s engine.State) ([]byte, error) {
	prevLine, curLine := f.Lines(s)

	fields := []struct {
		path  string
		value any
	}{
		{"session", sessionID},
		{"current", s.Current},
		{"previous", s.Previous},
		{"operation", s.Operation.String()},
		{"complete", s.Complete},
		{"phase", s.Phase().String()},
		{"display.previous", prevLine},
		{"display.current", curLine},
	}

	doc := []byte("{}")
	for _, field := range fields {
		var err error
		doc, err = sjson.SetBytes(doc, field.path, field.value)
		if err != nil {
			return nil, fmt.Errorf("snapshot field %s: %w", field.path, err)
		}
	}
	return doc, nil
}

// Pretty indents a JSON document, adding terminal colours when color is true.
func Pretty(doc []byte, color bool) []byte {
	out := pretty.Pretty(doc)
	if color {
		out = pretty.Color(out, nil)
	}
	return out
}
