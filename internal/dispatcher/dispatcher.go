package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/input/key"
	"github.com/dshills/keycalc/internal/input/keymap"
)

// Calculator is the engine surface the dispatcher drives.
type Calculator interface {
	Apply(in engine.Input) error
	State() engine.State
}

// Result describes the outcome of one dispatch.
type Result struct {
	// Action is the bound action name, empty if nothing was bound.
	Action string

	// Input is the engine input that was applied.
	Input engine.Input

	// Handled is true when a binding or button was found.
	Handled bool

	// Err is the engine display signal (engine.ErrInvalidEntry,
	// engine.ErrDivideByZero), ErrQuit, or a dispatch failure.
	Err error
}

// Dispatcher routes key events and button presses to a Calculator.
type Dispatcher struct {
	mu sync.RWMutex

	calc   Calculator
	keymap *keymap.Keymap
	config Config

	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a dispatcher. A nil keymap means keymap.Default().
func New(calc Calculator, km *keymap.Keymap, config Config) *Dispatcher {
	if km == nil {
		km = keymap.Default()
	}
	d := &Dispatcher{
		calc:   calc,
		keymap: km,
		config: config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a dispatcher with the default keymap and configuration.
func NewWithDefaults(calc Calculator) *Dispatcher {
	return New(calc, nil, DefaultConfig())
}

// SetKeymap replaces the keymap.
func (d *Dispatcher) SetKeymap(km *keymap.Keymap) {
	if km == nil {
		km = keymap.Default()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keymap = km
}

// Keymap returns the current keymap.
func (d *Dispatcher) Keymap() *keymap.Keymap {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.keymap
}

// Calculator returns the calculator being driven.
func (d *Dispatcher) Calculator() Calculator {
	return d.calc
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// HandleKey dispatches a key event through the keymap.
// Unbound keys return a Result with Handled false and no error.
func (d *Dispatcher) HandleKey(ev key.Event) Result {
	b, ok := d.Keymap().Lookup(ev)
	if !ok {
		return Result{}
	}
	r := ev.Rune
	if !ev.IsRune() {
		r = 0
	}
	return d.Dispatch(b, r)
}

// HandleButton dispatches a keypad button by its label.
func (d *Dispatcher) HandleButton(label string) Result {
	b, ok := ButtonBinding(label)
	if !ok {
		return Result{Err: fmt.Errorf("%w: %q", ErrUnknownButton, label)}
	}
	r, _ := utf8.DecodeRuneInString(label)
	return d.Dispatch(b, r)
}

// Dispatch executes a binding. r is the rune that triggered it, or 0.
func (d *Dispatcher) Dispatch(b keymap.Binding, r rune) Result {
	start := time.Now()
	res := Result{Action: b.Action, Handled: true}

	if !d.runPreHooks(&b) {
		res.Err = ErrActionCancelled
		d.finish(b, &res, start)
		return res
	}

	if b.Action == keymap.ActionQuit {
		res.Err = ErrQuit
		d.finish(b, &res, start)
		return res
	}

	in, err := ToInput(b, r)
	if err != nil {
		res.Err = err
		d.finish(b, &res, start)
		return res
	}
	res.Input = in

	if d.config.RecoverFromPanic {
		res.Err = d.applyWithRecovery(in)
	} else {
		res.Err = d.calc.Apply(in)
	}

	d.finish(b, &res, start)
	return res
}

func (d *Dispatcher) finish(b keymap.Binding, res *Result, start time.Time) {
	d.runPostHooks(b, res)
	if d.metrics != nil {
		d.metrics.RecordDispatch(b.Action, time.Since(start), res.Err)
	}
}

func (d *Dispatcher) applyWithRecovery(in engine.Input) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			err = fmt.Errorf("%w: %s: %v\n%s", ErrPanic, in, r, stack[:n])
			if d.metrics != nil {
				d.metrics.RecordPanic(in.Kind.String())
			}
		}
	}()
	return d.calc.Apply(in)
}

// ToInput converts a binding to an engine input.
// r is the triggering rune, used when args do not name the digit or operator.
func ToInput(b keymap.Binding, r rune) (engine.Input, error) {
	switch b.Action {
	case keymap.ActionDigit:
		if s, ok := b.StringArg("digit"); ok {
			digit, size := utf8.DecodeRuneInString(s)
			if size != len(s) {
				return engine.Input{}, fmt.Errorf("%w: digit %q", ErrInvalidArgs, s)
			}
			r = digit
		}
		if r == 0 {
			return engine.Input{}, fmt.Errorf("%w: %s needs a digit", ErrInvalidArgs, b.Action)
		}
		return engine.DigitInput(r), nil

	case keymap.ActionOperator:
		sym, ok := b.StringArg("op")
		if !ok {
			if r == 0 {
				return engine.Input{}, fmt.Errorf("%w: %s needs an op", ErrInvalidArgs, b.Action)
			}
			sym = string(r)
		}
		op, err := engine.ParseOperation(sym)
		if err != nil {
			return engine.Input{}, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
		}
		return engine.OperatorInput(op), nil

	case keymap.ActionEquals:
		return engine.EqualsInput, nil
	case keymap.ActionDelete:
		return engine.DeleteInput, nil
	case keymap.ActionClear:
		return engine.ClearInput, nil
	}
	return engine.Input{}, fmt.Errorf("%w: %q", ErrUnknownAction, b.Action)
}

// ButtonBinding returns the binding for a keypad label.
func ButtonBinding(label string) (keymap.Binding, bool) {
	switch label {
	case "C":
		return keymap.NewBinding(label, keymap.ActionClear), true
	case "DEL":
		return keymap.NewBinding(label, keymap.ActionDelete), true
	case "=":
		return keymap.NewBinding(label, keymap.ActionEquals), true
	case ".", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return keymap.NewBinding(label, keymap.ActionDigit), true
	}
	if op, err := engine.ParseOperation(label); err == nil {
		return keymap.NewBinding(label, keymap.ActionOperator).
			WithArgs(map[string]any{"op": op.String()}), true
	}
	return keymap.Binding{}, false
}
