// Package display renders calculator operands as human-readable strings.
//
// The integer part of an operand is grouped by thousands according to the
// configured locale; the decimal part is reattached exactly as entered so
// that trailing zeros typed by the user stay visible.
package display

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dshills/keycalc/internal/engine"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// Formatter converts engine operands to display strings.
// A Formatter is safe for concurrent use.
type Formatter struct {
	mu      sync.Mutex
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter creates a formatter for a BCP 47 locale such as "en" or "de-CH".
// An empty locale selects DefaultLocale.
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}, nil
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Format renders an operand string.
//
// The divide-by-zero sentinel is returned unchanged. Otherwise the integer
// part is grouped ("1234567" becomes "1,234,567" in English) and the decimal
// part, if any, is appended after a ".". An empty or invalid integer part
// renders as "0".
func (f *Formatter) Format(operand string) string {
	if operand == engine.DivideByZeroMessage {
		return operand
	}

	intPart, decPart, hasDec := strings.Cut(operand, ".")
	integer := f.formatInteger(intPart)
	if hasDec {
		return integer + "." + decPart
	}
	return integer
}

// formatInteger groups the integer part of an operand.
func (f *Formatter) formatInteger(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return "0"
	}
	if math.IsInf(v, 0) {
		return sign + "∞"
	}

	f.mu.Lock()
	grouped := f.printer.Sprintf("%v", number.Decimal(math.Trunc(v), number.MaxFractionDigits(0)))
	f.mu.Unlock()
	return sign + grouped
}

// Lines returns the previous-expression line and the current-value line.
// The previous line is empty unless an operation is pending.
func (f *Formatter) Lines(s engine.State) (previous, current string) {
	current = f.Format(s.Current)
	if s.Pending() {
		previous = f.Format(s.Previous) + " " + s.Operation.String()
	}
	return previous, current
}
