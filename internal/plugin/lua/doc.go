// Package lua runs calculator scripts on a sandboxed gopher-lua runtime.
//
// # State
//
// The State type manages a Lua runtime with sandboxing:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer state.Close()
//
//	if err := state.DoFile("script.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Sandbox
//
// Only the base, table, string and math libraries are opened. The sandbox
// removes the functions that load code from disk or strings (dofile,
// loadfile, load, loadstring, require, module), sends print to a
// configurable writer and caps the number of host calls per execution.
// Every execution runs under a deadline.
//
// # calc module
//
// InstallCalc exposes a calculator to scripts:
//
//	calc.digit("7")           -- digits or "."; several at once: calc.digit("12.5")
//	calc.op("+")              -- + - * / × ÷ % ^
//	calc.equals()
//	calc.clear()
//	calc.delete()
//	calc.press("12+7=")       -- keys through the keymap
//	local prev, cur = calc.display()
//	local st = calc.state()   -- {current=, previous=, operation=, complete=, error=}
//	calc.on("calc.result", function(ev) print(ev.payload.current) end)
package lua
