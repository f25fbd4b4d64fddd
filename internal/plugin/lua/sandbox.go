package lua

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	callLimit int64
	callCount atomic.Int64

	output io.Writer
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, callLimit int64, output io.Writer) *Sandbox {
	if output == nil {
		output = io.Discard
	}
	return &Sandbox{
		L:         L,
		callLimit: callLimit,
		output:    output,
	}
}

// Install sets up the sandbox restrictions.
func (s *Sandbox) Install() {
	dangerousFuncs := []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
		"require",
		"module",
		"setfenv",
		"getfenv",
		"newproxy",
		"_printregs",
	}
	for _, name := range dangerousFuncs {
		s.L.SetGlobal(name, lua.LNil)
	}

	s.installPrint()
}

// installPrint replaces print with a version writing to the sandbox output.
func (s *Sandbox) installPrint() {
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, top)
		for i := 1; i <= top; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(s.output, strings.Join(parts, "\t"))
		return 0
	}))
}

// ResetCallCount resets the host call counter.
func (s *Sandbox) ResetCallCount() {
	s.callCount.Store(0)
}

// CallCount returns the current host call count.
func (s *Sandbox) CallCount() int64 {
	return s.callCount.Load()
}

// LimitExceeded reports whether the call budget was exhausted.
func (s *Sandbox) LimitExceeded() bool {
	return s.callLimit > 0 && s.callCount.Load() > s.callLimit
}

// Charged wraps fn so each call counts against the limit. Calls beyond the
// limit raise a Lua error.
func (s *Sandbox) Charged(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		if s.callLimit > 0 && s.callCount.Add(1) > s.callLimit {
			L.RaiseError("host call limit of %d exceeded", s.callLimit)
			return 0
		}
		return fn(L)
	}
}
