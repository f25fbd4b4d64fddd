package engine

import (
	"errors"
	"fmt"
)

// Errors returned by engine operations.
var (
	// ErrInvalidEntry indicates keyboard entry was rejected and the operand left unchanged.
	ErrInvalidEntry = errors.New("invalid entry")

	// ErrDuplicateDecimal indicates a second decimal point in one operand.
	ErrDuplicateDecimal = fmt.Errorf("%w: duplicate decimal point", ErrInvalidEntry)

	// ErrMaxDigits indicates the operand digit limit was exceeded.
	ErrMaxDigits = fmt.Errorf("%w: more than %d digits", ErrInvalidEntry, MaxDigits)

	// ErrDivideByZero indicates a division with a zero divisor.
	ErrDivideByZero = errors.New("divide by zero")

	// ErrInvalidInput indicates a rune that is neither a digit nor a decimal point.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownOperation indicates an operator symbol outside the supported set.
	ErrUnknownOperation = errors.New("unknown operation")
)
