package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution exceeds its deadline.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrCallLimit is returned when a script makes too many host calls.
	ErrCallLimit = errors.New("lua host call limit exceeded")

	// ErrNotFunction is returned when calling a global that is not a function.
	ErrNotFunction = errors.New("not a function")
)
