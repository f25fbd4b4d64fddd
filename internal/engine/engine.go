package engine

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// SignalKind identifies an engine signal.
type SignalKind int

// Signal kinds.
const (
	// SignalInvalidInput reports rejected entry (duplicate decimal point,
	// digit limit, unknown rune or operator).
	SignalInvalidInput SignalKind = iota + 1

	// SignalDivideByZero reports that the error sentinel is now shown.
	SignalDivideByZero

	// SignalResult reports a computed result, from equals or a chained operator.
	SignalResult

	// SignalCleared reports an explicit clear.
	SignalCleared
)

// String returns the signal name.
func (k SignalKind) String() string {
	switch k {
	case SignalInvalidInput:
		return "invalid"
	case SignalDivideByZero:
		return "divzero"
	case SignalResult:
		return "result"
	case SignalCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Signal describes a notable outcome of an input.
type Signal struct {
	Kind      SignalKind
	SessionID string
	Input     Input
	State     State
	Err       error
}

// Notifier receives engine signals.
// Notify is called synchronously, after the state was updated.
type Notifier interface {
	Notify(sig Signal)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(sig Signal)

// Notify calls f(sig).
func (f NotifierFunc) Notify(sig Signal) {
	f(sig)
}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSessionID sets the session identifier instead of a random UUID.
func WithSessionID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

// WithNotifier sets the signal receiver.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithState sets the initial state.
func WithState(s State) Option {
	return func(e *Engine) {
		if s.Current != "" {
			e.state = s
		}
	}
}

// Engine owns one calculator State for a session.
// All methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	id       string
	state    State
	notifier Notifier
}

// New creates an engine in the initial state.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:    uuid.NewString(),
		state: NewState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SessionID returns the session identifier.
func (e *Engine) SessionID() string {
	return e.id
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Apply runs one input against the engine state.
// The returned error is a display signal; the state is always updated.
func (e *Engine) Apply(in Input) error {
	e.mu.Lock()
	next, computed, err := apply(e.state, in)
	e.state = next
	notifier := e.notifier
	e.mu.Unlock()

	if notifier == nil {
		return err
	}

	sig := Signal{
		SessionID: e.id,
		Input:     in,
		State:     next,
		Err:       err,
	}
	switch {
	case errors.Is(err, ErrDivideByZero):
		sig.Kind = SignalDivideByZero
	case err != nil:
		sig.Kind = SignalInvalidInput
	case computed:
		sig.Kind = SignalResult
	case in.Kind == InputClear:
		sig.Kind = SignalCleared
	default:
		return nil
	}
	notifier.Notify(sig)
	return err
}

// AppendDigit appends a digit or decimal point.
func (e *Engine) AppendDigit(r rune) error {
	return e.Apply(DigitInput(r))
}

// ChooseOperation selects the pending operation.
func (e *Engine) ChooseOperation(op Operation) error {
	return e.Apply(OperatorInput(op))
}

// Calculate evaluates the pending operation.
func (e *Engine) Calculate() error {
	return e.Apply(EqualsInput)
}

// DeleteLast removes the last entered character.
func (e *Engine) DeleteLast() {
	_ = e.Apply(DeleteInput)
}

// Clear resets the engine to its initial state.
func (e *Engine) Clear() {
	_ = e.Apply(ClearInput)
}
