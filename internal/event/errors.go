package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTopic is returned for an empty topic or pattern.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned by Subscribe when the handler is nil.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned by Unsubscribe for an unknown or
	// already removed subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic wraps the value recovered from a panicking handler.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HandlerError is one subscriber's failure while Publish delivered an event.
// Publish joins them, so errors.As finds each one.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: subscription %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
