package engine

import "fmt"

// InputKind identifies an abstract input event.
type InputKind int

// Input kinds.
const (
	InputNone InputKind = iota
	InputDigit
	InputOperator
	InputClear
	InputDelete
	InputEquals
)

// String returns the input kind name.
func (k InputKind) String() string {
	switch k {
	case InputDigit:
		return "digit"
	case InputOperator:
		return "operator"
	case InputClear:
		return "clear"
	case InputDelete:
		return "delete"
	case InputEquals:
		return "equals"
	default:
		return "none"
	}
}

// Input is a discrete input event forwarded to the engine.
type Input struct {
	Kind InputKind

	// Digit is the rune for InputDigit ('0'-'9' or '.').
	Digit rune

	// Op is the operator for InputOperator.
	Op Operation
}

// Fixed inputs without arguments.
var (
	ClearInput  = Input{Kind: InputClear}
	DeleteInput = Input{Kind: InputDelete}
	EqualsInput = Input{Kind: InputEquals}
)

// DigitInput creates a digit input.
func DigitInput(r rune) Input {
	return Input{Kind: InputDigit, Digit: r}
}

// OperatorInput creates an operator input.
func OperatorInput(op Operation) Input {
	return Input{Kind: InputOperator, Op: op}
}

// String returns a readable form such as "digit(7)" or "operator(+)".
func (in Input) String() string {
	switch in.Kind {
	case InputDigit:
		return fmt.Sprintf("digit(%c)", in.Digit)
	case InputOperator:
		return fmt.Sprintf("operator(%s)", in.Op)
	default:
		return in.Kind.String()
	}
}

// Apply dispatches in to the matching operation.
func Apply(s State, in Input) (State, error) {
	next, _, err := apply(s, in)
	return next, err
}

// apply reports whether the input produced a computed result.
func apply(s State, in Input) (State, bool, error) {
	switch in.Kind {
	case InputDigit:
		next, err := AppendDigit(s, in.Digit)
		return next, false, err
	case InputOperator:
		return chooseOperation(s, in.Op)
	case InputEquals:
		return calculate(s)
	case InputDelete:
		return DeleteLast(s), false, nil
	case InputClear:
		return Clear(), false, nil
	default:
		return s, false, fmt.Errorf("%w: %s", ErrInvalidInput, in)
	}
}
