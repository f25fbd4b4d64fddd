package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AppendDigit appends a digit or decimal point to the current operand.
//
// After a completed calculation the operand restarts from "0". A second
// decimal point returns ErrDuplicateDecimal and a thirteenth digit returns
// ErrMaxDigits; in both cases the offending rune is not kept.
func AppendDigit(s State, r rune) (State, error) {
	if r != '.' && (r < '0' || r > '9') {
		return s, fmt.Errorf("%w: %q", ErrInvalidInput, r)
	}

	if s.Complete {
		s.Current = DefaultOperand
		s.Complete = false
	}

	if r == '.' && strings.ContainsRune(s.Current, '.') {
		return s, ErrDuplicateDecimal
	}

	if s.Current == DefaultOperand && r != '.' {
		s.Current = string(r)
	} else {
		s.Current += string(r)
	}

	if CountDigits(s.Current) > MaxDigits {
		s.Current = s.Current[:len(s.Current)-1]
		return s, ErrMaxDigits
	}

	return s, nil
}

// ChooseOperation commits the current operand as the left-hand side of op.
// A pending operation is evaluated first, so chains run left to right.
func ChooseOperation(s State, op Operation) (State, error) {
	next, _, err := chooseOperation(s, op)
	return next, err
}

// chooseOperation reports whether a pending operation was evaluated.
func chooseOperation(s State, op Operation) (State, bool, error) {
	if !op.Valid() {
		return s, false, fmt.Errorf("%w: %q", ErrUnknownOperation, string(op))
	}

	s.Complete = false
	if s.Current == "" {
		return s, false, nil
	}

	computed := false
	var err error
	if s.Previous != "" {
		// Division by zero still takes the operator: the sentinel becomes
		// the left-hand operand and err is passed on as the signal.
		s, computed, err = calculate(s)
		s.Complete = false
	}

	s.Operation = op
	s.Previous = s.Current
	s.Current = DefaultOperand
	return s, computed, err
}

// Calculate applies the pending operation to the previous and current operands.
//
// Calculate is a no-op when no operation is pending or an operand does not
// parse. Division by zero resets the state, shows DivideByZeroMessage and
// returns ErrDivideByZero.
func Calculate(s State) (State, error) {
	next, _, err := calculate(s)
	return next, err
}

// calculate reports whether a result was produced.
func calculate(s State) (State, bool, error) {
	prev, err := strconv.ParseFloat(s.Previous, 64)
	if err != nil {
		return s, false, nil
	}
	cur, err := strconv.ParseFloat(s.Current, 64)
	if err != nil {
		return s, false, nil
	}

	var result float64
	switch s.Operation {
	case OpAdd:
		result = prev + cur
	case OpSubtract:
		result = prev - cur
	case OpMultiply:
		result = prev * cur
	case OpDivide:
		if cur == 0 {
			s = NewState()
			s.Current = DivideByZeroMessage
			s.Complete = true
			return s, false, ErrDivideByZero
		}
		result = prev / cur
	case OpModulo:
		result = math.Mod(prev, cur)
	case OpPower:
		result = math.Pow(prev, cur)
	default:
		return s, false, nil
	}

	s.Current = FormatResult(result)
	s.Operation = OpNone
	s.Previous = ""
	s.Complete = true
	return s, true, nil
}

// DeleteLast removes the last character of the current operand.
// After a completed calculation it clears everything instead.
func DeleteLast(s State) State {
	if s.Complete {
		return Clear()
	}
	if len(s.Current) > 1 {
		s.Current = s.Current[:len(s.Current)-1]
	} else {
		s.Current = DefaultOperand
	}
	return s
}

// Clear returns the initial state.
func Clear() State {
	return NewState()
}

// CountDigits returns the number of ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
