package event

import (
	"context"

	"github.com/dshills/keycalc/internal/engine"
)

// CalcPayload is the payload of every calc.* event.
type CalcPayload struct {
	SessionID string
	Input     string
	Current   string
	Previous  string
	Operation string
	Complete  bool
	Error     string
}

// Fields returns the payload as a map keyed by lower-case field name.
func (p CalcPayload) Fields() map[string]any {
	return map[string]any{
		"session_id": p.SessionID,
		"input":      p.Input,
		"current":    p.Current,
		"previous":   p.Previous,
		"operation":  p.Operation,
		"complete":   p.Complete,
		"error":      p.Error,
	}
}

// TopicForSignal returns the topic published for an engine signal.
func TopicForSignal(kind engine.SignalKind) string {
	switch kind {
	case engine.SignalInvalidInput:
		return TopicCalcInvalid
	case engine.SignalDivideByZero:
		return TopicCalcDivZero
	case engine.SignalResult:
		return TopicCalcResult
	case engine.SignalCleared:
		return TopicCalcCleared
	}
	return ""
}

// Notifier publishes engine signals on a bus.
type Notifier struct {
	bus    *Bus
	source string

	// OnError receives errors returned by subscribers. Optional.
	OnError func(err error)
}

// NewNotifier creates an engine notifier publishing as source.
func NewNotifier(bus *Bus, source string) *Notifier {
	return &Notifier{bus: bus, source: source}
}

// Notify implements engine.Notifier.
func (n *Notifier) Notify(sig engine.Signal) {
	topic := TopicForSignal(sig.Kind)
	if topic == "" {
		return
	}

	payload := CalcPayload{
		SessionID: sig.SessionID,
		Input:     sig.Input.String(),
		Current:   sig.State.Current,
		Previous:  sig.State.Previous,
		Operation: sig.State.Operation.String(),
		Complete:  sig.State.Complete,
	}
	if sig.Err != nil {
		payload.Error = sig.Err.Error()
	}

	if err := n.bus.Publish(context.Background(), New(topic, payload, n.source)); err != nil && n.OnError != nil {
		n.OnError(err)
	}
}
