package event

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/tidwall/match"
)

// HandlerFunc handles a delivered event.
type HandlerFunc func(ctx context.Context, ev Event) error

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, recovered any)

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithPanicHandler sets the function called when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *Bus) {
		b.panicHandler = h
	}
}

// Stats contains bus delivery counters.
type Stats struct {
	EventsPublished  uint64
	EventsDelivered  uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
	ActiveSubscribes int
}

// Bus delivers events to subscribers synchronously.
// A Bus is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID atomic.Uint64

	panicHandler PanicHandler

	eventsPublished atomic.Uint64
	eventsDelivered atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for events whose topic matches pattern.
func (b *Bus) Subscribe(pattern string, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	if pattern == "" {
		return nil, ErrInvalidTopic
	}
	if fn == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{
		id:      "sub-" + strconv.FormatUint(b.nextID.Add(1), 10),
		pattern: pattern,
		handler: fn,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			s.cancelled.Store(true)
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching subscription in subscription order.
// Handler errors and panics do not stop delivery; they are returned joined.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if ev.Topic == "" {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	matching := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.matches(ev.Topic) {
			matching = append(matching, sub)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range matching {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if sub.once && !sub.fired.CompareAndSwap(false, true) {
			continue
		}
		if err := b.deliver(ctx, sub, ev); err != nil {
			errs = append(errs, &HandlerError{SubscriptionID: sub.id, Topic: ev.Topic, Err: err})
		}
		if sub.once {
			_ = b.Unsubscribe(sub)
		}
	}
	return errors.Join(errs...)
}

// deliver runs one handler with panic recovery.
func (b *Bus) deliver(ctx context.Context, sub *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(ev, r)
			}
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()

	if err := sub.handler(ctx, ev); err != nil {
		b.handlerErrors.Add(1)
		return err
	}
	b.eventsDelivered.Add(1)
	return nil
}

// Stats returns a snapshot of the delivery counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		EventsDelivered:  b.eventsDelivered.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
		ActiveSubscribes: active,
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// Once makes the subscription cancel itself after its first delivery.
func Once() SubscriptionOption {
	return func(s *Subscription) {
		s.once = true
	}
}

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id        string
	pattern   string
	handler   HandlerFunc
	once      bool
	fired     atomic.Bool
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() string {
	return s.pattern
}

// IsActive returns true until the subscription is removed.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *Subscription) matches(topic string) bool {
	if s.cancelled.Load() {
		return false
	}
	return s.pattern == topic || match.Match(topic, s.pattern)
}
