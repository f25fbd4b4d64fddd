package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrQuit is returned for the app.quit action.
	ErrQuit = errors.New("dispatcher: quit requested")

	// ErrUnknownAction indicates a binding names an action the dispatcher does not know.
	ErrUnknownAction = errors.New("dispatcher: unknown action")

	// ErrInvalidArgs indicates a binding's args cannot be converted to an input.
	ErrInvalidArgs = errors.New("dispatcher: invalid action arguments")

	// ErrUnknownButton indicates a keypad label with no action.
	ErrUnknownButton = errors.New("dispatcher: unknown button")

	// ErrActionCancelled indicates the action was cancelled by a hook.
	ErrActionCancelled = errors.New("dispatcher: action cancelled by hook")

	// ErrPanic indicates the calculator panicked while applying an input.
	ErrPanic = errors.New("dispatcher: handler panic")
)
