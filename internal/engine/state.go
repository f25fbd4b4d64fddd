package engine

import "fmt"

// Engine limits and sentinel values.
const (
	// DefaultOperand is the value of the current operand after a reset.
	DefaultOperand = "0"

	// DivideByZeroMessage replaces the current operand after a division by zero.
	DivideByZeroMessage = "Cannot divide by zero"

	// MaxDigits is the maximum number of digit characters in an entered operand.
	MaxDigits = 12

	// MaxDecimalPlaces caps the fractional digits of a computed result.
	MaxDecimalPlaces = 10
)

// Operation is a binary operator awaiting its right-hand operand.
type Operation string

// Supported operations.
const (
	OpNone     Operation = ""
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "×"
	OpDivide   Operation = "÷"
	OpModulo   Operation = "%"
	OpPower    Operation = "^"
)

// Operations lists the supported operations in keypad order.
var Operations = []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo, OpPower}

// ParseOperation converts a symbol to an Operation.
// The ASCII aliases "*" and "/" are accepted for multiply and divide.
func ParseOperation(symbol string) (Operation, error) {
	switch symbol {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSubtract, nil
	case "×", "*":
		return OpMultiply, nil
	case "÷", "/":
		return OpDivide, nil
	case "%":
		return OpModulo, nil
	case "^":
		return OpPower, nil
	default:
		return OpNone, fmt.Errorf("%w: %q", ErrUnknownOperation, symbol)
	}
}

// Valid returns true if o is one of the supported operations.
func (o Operation) Valid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo, OpPower:
		return true
	default:
		return false
	}
}

// String returns the display symbol.
func (o Operation) String() string {
	return string(o)
}

// State is the complete calculator state.
// The zero value is not valid; use NewState.
type State struct {
	// Current is the operand being typed or the most recent result.
	// Never empty.
	Current string

	// Previous is the committed left-hand operand.
	// Empty means no operation is pending.
	Previous string

	// Operation is the pending operator, OpNone when nothing is pending.
	Operation Operation

	// Complete is true right after a result (or error) was produced.
	Complete bool
}

// NewState returns the initial state.
func NewState() State {
	return State{Current: DefaultOperand}
}

// Pending returns true if an operation is waiting for its right-hand operand.
func (s State) Pending() bool {
	return s.Operation != OpNone
}

// IsError returns true if the state shows the divide-by-zero sentinel.
func (s State) IsError() bool {
	return s.Current == DivideByZeroMessage
}

// IsReset returns true if s equals the initial state.
func (s State) IsReset() bool {
	return s == NewState()
}

// Phase is the implicit phase of the input state machine.
type Phase int

// Input phases.
const (
	PhaseEnteringFirst Phase = iota
	PhaseOperatorSelected
	PhaseEnteringSecond
	PhaseResultShown
	PhaseErrorShown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEnteringFirst:
		return "entering-first"
	case PhaseOperatorSelected:
		return "operator-selected"
	case PhaseEnteringSecond:
		return "entering-second"
	case PhaseResultShown:
		return "result-shown"
	case PhaseErrorShown:
		return "error-shown"
	default:
		return "unknown"
	}
}

// Phase derives the state machine phase from the state fields.
// A pending operation with an untouched "0" operand counts as operator-selected.
func (s State) Phase() Phase {
	switch {
	case s.Complete && s.IsError():
		return PhaseErrorShown
	case s.Complete:
		return PhaseResultShown
	case s.Pending() && s.Current == DefaultOperand:
		return PhaseOperatorSelected
	case s.Pending():
		return PhaseEnteringSecond
	default:
		return PhaseEnteringFirst
	}
}

// String returns a compact debug representation.
func (s State) String() string {
	return fmt.Sprintf("{current:%q previous:%q op:%q complete:%t}", s.Current, s.Previous, string(s.Operation), s.Complete)
}
