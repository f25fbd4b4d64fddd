package app

import (
	"context"
	"sync"

	"github.com/dshills/keycalc/internal/event"
)

// subscriptionManager owns the application's bus subscriptions.
type subscriptionManager struct {
	app    *Application
	logger *Logger

	mu   sync.Mutex
	subs []*event.Subscription
}

func newSubscriptionManager(app *Application) *subscriptionManager {
	return &subscriptionManager{
		app:    app,
		logger: app.logger.WithComponent("subscriptions"),
	}
}

// setupSubscriptions connects engine signals and reload notifications to
// the renderer and the log.
func (sm *subscriptionManager) setupSubscriptions() error {
	handlers := []struct {
		pattern string
		fn      event.HandlerFunc
	}{
		{event.TopicCalcInvalid, sm.handleRejected},
		{event.TopicCalcDivZero, sm.handleRejected},
		{event.TopicCalcResult, sm.handleResult},
		{event.TopicConfigReloaded, sm.handleConfigReloaded},
	}

	for _, h := range handlers {
		sub, err := sm.app.bus.Subscribe(h.pattern, h.fn)
		if err != nil {
			sm.cleanup()
			return err
		}
		sm.addSubscription(sub)
	}
	return nil
}

func (sm *subscriptionManager) addSubscription(sub *event.Subscription) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.subs = append(sm.subs, sub)
}

// cleanup removes every subscription.
func (sm *subscriptionManager) cleanup() {
	sm.mu.Lock()
	subs := sm.subs
	sm.subs = nil
	sm.mu.Unlock()

	for _, sub := range subs {
		_ = sm.app.bus.Unsubscribe(sub)
	}
}

// handleRejected flashes the display and beeps for invalid entry and
// division by zero.
func (sm *subscriptionManager) handleRejected(_ context.Context, ev event.Event) error {
	if p, ok := ev.Payload.(event.CalcPayload); ok {
		sm.logger.Debug("%s: %s rejected: %s", ev.Topic, p.Input, p.Error)
	}

	sm.app.mu.RLock()
	r, b := sm.app.renderer, sm.app.backend
	sm.app.mu.RUnlock()

	if r != nil {
		r.Flash()
	}
	if b != nil {
		b.Beep()
	}
	return nil
}

func (sm *subscriptionManager) handleResult(_ context.Context, ev event.Event) error {
	if p, ok := ev.Payload.(event.CalcPayload); ok {
		sm.logger.Debug("result %s", p.Current)
	}
	return nil
}

func (sm *subscriptionManager) handleConfigReloaded(_ context.Context, ev event.Event) error {
	sm.logger.Info("configuration reloaded from %v", ev.Payload)
	return nil
}
