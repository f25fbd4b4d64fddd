// Package keymap maps key specifications to calculator actions.
//
// A Keymap is an ordered list of bindings. When two bindings name the same
// key, the later one wins, so overrides are applied by appending them to
// a copy of the defaults (see Merge).
//
// # Actions
//
//	calc.digit     - append a digit or "." (from the key rune or args.digit)
//	calc.operator  - choose an operation (args.op: + - × ÷ % ^)
//	calc.equals    - calculate
//	calc.delete    - delete the last character
//	calc.clear     - reset the calculator
//	app.quit       - leave the interactive session
//
// # File Format
//
// Override files are JSON:
//
//	{
//	  "name": "user",
//	  "bindings": [
//	    {"keys": "x", "action": "calc.operator", "args": {"op": "×"}},
//	    {"keys": "<C-l>", "action": "calc.clear"}
//	  ]
//	}
package keymap
