package engine

import (
	"math"
	"strconv"
	"strings"
)

// exponentThreshold is the magnitude from which integral results switch to
// exponent notation.
const exponentThreshold = 1e21

// FormatResult renders a computed value as an operand string.
//
// Fractional values are rounded so that integer and fractional digits
// together stay near MaxDigits, with at most MaxDecimalPlaces decimals;
// trailing zeros and a lone trailing decimal point are removed. Integral
// values render exactly, switching to exponent form at 1e21.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if v == math.Trunc(v) {
		return formatIntegral(v)
	}

	places := MaxDigits - integerDigits(v)
	places = max(0, min(MaxDecimalPlaces, places))

	out := strconv.FormatFloat(v, 'f', places, 64)
	if strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	if out == "-0" {
		out = "0"
	}
	return out
}

// formatIntegral renders an integral value.
func formatIntegral(v float64) string {
	if v == 0 {
		// Collapses negative zero.
		return "0"
	}
	if math.Abs(v) < exponentThreshold {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'e', -1, 64)
}

// integerDigits counts the digits of the integer part of v, ignoring sign.
func integerDigits(v float64) int {
	return len(strconv.FormatFloat(math.Trunc(math.Abs(v)), 'f', 0, 64))
}
