// Package dispatcher turns key presses and keypad clicks into calculator inputs.
//
// A key event is looked up in the keymap; the binding's action is converted
// to an engine.Input and applied to the calculator:
//
//	calc.digit     -> engine.DigitInput (key rune, or args.digit)
//	calc.operator  -> engine.OperatorInput (args.op, or the key rune)
//	calc.equals    -> engine.EqualsInput
//	calc.delete    -> engine.DeleteInput
//	calc.clear     -> engine.ClearInput
//	app.quit       -> ErrQuit, the engine is not touched
//
// Keypad buttons are dispatched by label ("7", "×", "C", "DEL", "=").
//
// Pre-dispatch hooks may veto an action; post-dispatch hooks observe every
// Result. When enabled, Metrics records per-action counts and timings.
package dispatcher
