package dispatcher

// Config controls how the dispatcher applies calculator inputs.
type Config struct {
	// EnableMetrics times every dispatched action.
	EnableMetrics bool

	// RecoverFromPanic turns a panicking Calculator.Apply into a Result
	// error instead of crashing the event loop.
	RecoverFromPanic bool
}

// DefaultConfig recovers from calculator panics and skips metrics.
func DefaultConfig() Config {
	return Config{RecoverFromPanic: true}
}

// WithMetrics returns c with action timing enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns c with panic recovery set to recover.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
