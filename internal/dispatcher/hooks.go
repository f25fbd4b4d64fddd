package dispatcher

import "github.com/dshills/keycalc/internal/input/keymap"

// PreDispatchHook is called before a binding is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(b *keymap.Binding) bool
}

// PostDispatchHook is called after every dispatch, including cancelled ones.
type PostDispatchHook interface {
	PostDispatch(b keymap.Binding, res *Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(b *keymap.Binding) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(b *keymap.Binding) bool {
	return f(b)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(b keymap.Binding, res *Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(b keymap.Binding, res *Result) {
	f(b, res)
}

// AddPreHook registers a pre-dispatch hook.
func (d *Dispatcher) AddPreHook(h PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, h)
}

// AddPostHook registers a post-dispatch hook.
func (d *Dispatcher) AddPostHook(h PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, h)
}

func (d *Dispatcher) runPreHooks(b *keymap.Binding) bool {
	d.mu.RLock()
	hooks := d.preHooks
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(b) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(b keymap.Binding, res *Result) {
	d.mu.RLock()
	hooks := d.postHooks
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(b, res)
	}
}

// LoggingHook logs every dispatch through a printf-style function.
type LoggingHook struct {
	LogFunc func(format string, args ...any)
}

// NewLoggingHook creates a new logging hook.
func NewLoggingHook(logFunc func(format string, args ...any)) *LoggingHook {
	return &LoggingHook{LogFunc: logFunc}
}

// PostDispatch logs the action and its outcome.
func (h *LoggingHook) PostDispatch(b keymap.Binding, res *Result) {
	if h.LogFunc == nil {
		return
	}
	if res.Err != nil {
		h.LogFunc("dispatch %s (%s): %v", b.Action, b.Keys, res.Err)
		return
	}
	h.LogFunc("dispatch %s (%s) -> %s", b.Action, b.Keys, res.Input)
}
