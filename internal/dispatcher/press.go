package dispatcher

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/keycalc/internal/input/key"
)

// SplitKeys splits a key string into key specifications.
// Each character is one key, "<...>" groups name one special key and
// whitespace is ignored: "12+7<CR>" is 1, 2, +, 7, Enter.
// A "<" with no closing ">" is the literal character.
func SplitKeys(s string) []string {
	var specs []string
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}
		if r == '<' {
			if end := strings.IndexByte(s[i+1:], '>'); end > 0 {
				specs = append(specs, s[i:i+end+2])
				i += end + 2
				continue
			}
		}
		specs = append(specs, string(r))
		i += size
	}
	return specs
}

// Press dispatches every key in keys, in order.
// It stops early on a malformed key or ErrQuit and returns the results so far.
// Engine display signals do not stop the sequence.
func (d *Dispatcher) Press(keys string) ([]Result, error) {
	specs := SplitKeys(keys)
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			return results, fmt.Errorf("key %q: %w", spec, err)
		}
		res := d.HandleKey(ev)
		results = append(results, res)
		if errors.Is(res.Err, ErrQuit) {
			return results, ErrQuit
		}
	}
	return results, nil
}
