package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/event"
)

// ModuleName is the global name of the calculator module.
const ModuleName = "calc"

// ErrNoBus is raised by calc.on when no event bus was configured.
var ErrNoBus = errors.New("calc.on requires an event bus")

// CalcOption configures InstallCalc.
type CalcOption func(*Calc)

// WithBus lets scripts subscribe to events with calc.on.
func WithBus(bus *event.Bus) CalcOption {
	return func(c *Calc) {
		c.bus = bus
	}
}

// Calc is the calc module bound to one state.
type Calc struct {
	state      *State
	dispatcher *dispatcher.Dispatcher
	formatter  *display.Formatter
	bus        *event.Bus

	mu   sync.Mutex
	subs map[string]*event.Subscription
}

// InstallCalc registers the calc module on s. Inputs go to d's calculator
// and calc.press translates keys through d's keymap.
func InstallCalc(s *State, d *dispatcher.Dispatcher, f *display.Formatter, opts ...CalcOption) (*Calc, error) {
	if s.IsClosed() {
		return nil, ErrStateClosed
	}

	c := &Calc{
		state:      s,
		dispatcher: d,
		formatter:  f,
		subs:       make(map[string]*event.Subscription),
	}
	for _, opt := range opts {
		opt(c)
	}

	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"digit":   c.luaDigit,
		"op":      c.luaOp,
		"equals":  c.luaEquals,
		"clear":   c.luaClear,
		"delete":  c.luaDelete,
		"press":   c.luaPress,
		"display": c.luaDisplay,
		"state":   c.luaState,
		"on":      c.luaOn,
		"off":     c.luaOff,
	})
	return c, nil
}

// Close removes every subscription made by the script.
func (c *Calc) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*event.Subscription)
	c.mu.Unlock()

	if c.bus == nil {
		return
	}
	for _, sub := range subs {
		_ = c.bus.Unsubscribe(sub)
	}
}

func (c *Calc) calculator() dispatcher.Calculator {
	return c.dispatcher.Calculator()
}

// pushResult returns true, or false and the error message.
func pushResult(L *lua.LState, err error) int {
	if err == nil {
		L.Push(lua.LTrue)
		return 1
	}
	L.Push(lua.LFalse)
	L.Push(lua.LString(err.Error()))
	return 2
}

func (c *Calc) luaDigit(L *lua.LState) int {
	digits := L.CheckString(1)
	if digits == "" {
		L.ArgError(1, "expected at least one digit")
		return 0
	}

	var first error
	for _, r := range digits {
		if err := c.calculator().Apply(engine.DigitInput(r)); err != nil && first == nil {
			first = err
		}
	}
	return pushResult(L, first)
}

func (c *Calc) luaOp(L *lua.LState) int {
	op, err := engine.ParseOperation(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	return pushResult(L, c.calculator().Apply(engine.OperatorInput(op)))
}

func (c *Calc) luaEquals(L *lua.LState) int {
	return pushResult(L, c.calculator().Apply(engine.EqualsInput))
}

func (c *Calc) luaClear(L *lua.LState) int {
	return pushResult(L, c.calculator().Apply(engine.ClearInput))
}

func (c *Calc) luaDelete(L *lua.LState) int {
	return pushResult(L, c.calculator().Apply(engine.DeleteInput))
}

func (c *Calc) luaPress(L *lua.LState) int {
	results, err := c.dispatcher.Press(L.CheckString(1))
	if err != nil && !errors.Is(err, dispatcher.ErrQuit) {
		L.RaiseError("%s", err.Error())
		return 0
	}

	var first error
	for _, res := range results {
		if res.Err != nil && !errors.Is(res.Err, dispatcher.ErrQuit) {
			first = res.Err
			break
		}
	}
	return pushResult(L, first)
}

func (c *Calc) luaDisplay(L *lua.LState) int {
	prev, cur := c.formatter.Lines(c.calculator().State())
	L.Push(lua.LString(prev))
	L.Push(lua.LString(cur))
	return 2
}

func (c *Calc) luaState(L *lua.LState) int {
	s := c.calculator().State()
	L.Push(ToLuaValue(L, map[string]any{
		"current":   s.Current,
		"previous":  s.Previous,
		"operation": s.Operation.String(),
		"complete":  s.Complete,
		"error":     s.IsError(),
		"phase":     s.Phase().String(),
	}))
	return 1
}

// luaOn subscribes fn to a topic pattern and returns the subscription ID.
// The handler receives {topic=, source=, id=, payload={...}}.
func (c *Calc) luaOn(L *lua.LState) int {
	pattern := L.CheckString(1)
	fn := L.CheckFunction(2)
	if c.bus == nil {
		L.RaiseError("%s", ErrNoBus.Error())
		return 0
	}

	sub, err := c.bus.Subscribe(pattern, func(_ context.Context, ev event.Event) error {
		return c.state.callback(func() error {
			arg := ToLuaValue(c.state.L, map[string]any{
				"topic":  ev.Topic,
				"source": ev.Metadata.Source,
				"id":     ev.Metadata.ID,
			}).(*lua.LTable)
			arg.RawSetString("payload", ToLuaValue(c.state.L, ev.Payload))
			if err := c.state.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, arg); err != nil {
				return fmt.Errorf("calc.on(%q): %w", pattern, err)
			}
			return nil
		})
	})
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	c.mu.Lock()
	c.subs[sub.ID()] = sub
	c.mu.Unlock()

	L.Push(lua.LString(sub.ID()))
	return 1
}

func (c *Calc) luaOff(L *lua.LState) int {
	id := L.CheckString(1)

	c.mu.Lock()
	sub, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()

	if !ok || c.bus == nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(c.bus.Unsubscribe(sub) == nil))
	return 1
}
