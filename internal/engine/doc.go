// Package engine provides the calculator engine for keycalc.
//
// The engine holds four pieces of state (current operand, previous operand,
// pending operation and a completion flag) and mutates them in response to
// discrete input events: digit, operator, clear, delete and equals.
//
// # Pure Operations
//
// Every operation is available as a pure function that takes a State and
// returns the next State:
//
//	s := engine.NewState()
//	s, _ = engine.AppendDigit(s, '1')
//	s, _ = engine.AppendDigit(s, '2')
//	s, _ = engine.ChooseOperation(s, engine.OpAdd)
//	s, _ = engine.AppendDigit(s, '7')
//	s, _ = engine.Calculate(s) // s.Current == "19"
//
// # Engine
//
// Engine wraps a State for interactive use. It serialises access, tags the
// session with an ID and reports signals to an optional Notifier:
//
//	e := engine.New(engine.WithNotifier(engine.NotifierFunc(func(sig engine.Signal) {
//		if sig.Kind == engine.SignalInvalidInput {
//			// flash the display
//		}
//	})))
//	_ = e.Apply(engine.DigitInput('5'))
//
// # Errors
//
// Errors returned by the engine are display signals, never fatal failures.
// ErrInvalidEntry (wrapped by ErrDuplicateDecimal and ErrMaxDigits) means the
// input was rejected; ErrDivideByZero means the state was replaced by the
// DivideByZeroMessage sentinel. Operands that fail to parse make Calculate a
// silent no-op.
//
// Chained operations evaluate strictly left to right; there is no operator
// precedence and no grouping.
package engine
