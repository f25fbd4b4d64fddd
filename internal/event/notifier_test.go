package event

import (
	"context"
	"testing"

	"github.com/dshills/keycalc/internal/engine"
)

func TestNotifier(t *testing.T) {
	bus := NewBus()
	var got []Event
	_, _ = bus.Subscribe("calc.*", func(_ context.Context, ev Event) error {
		got = append(got, ev)
		return nil
	})

	eng := engine.New(engine.WithSessionID("s1"), engine.WithNotifier(NewNotifier(bus, "engine")))

	_ = eng.AppendDigit('1')
	_ = eng.AppendDigit('.')
	_ = eng.AppendDigit('.')
	_ = eng.ChooseOperation(engine.OpDivide)
	_ = eng.AppendDigit('0')
	_ = eng.Calculate()
	eng.Clear()

	topics := []string{TopicCalcInvalid, TopicCalcDivZero, TopicCalcCleared}
	if len(got) != len(topics) {
		t.Fatalf("got %d events, expected %d", len(got), len(topics))
	}
	for i, topic := range topics {
		if got[i].Topic != topic {
			t.Errorf("event %d topic = %q, expected %q", i, got[i].Topic, topic)
		}
		if got[i].Metadata.Source != "engine" {
			t.Errorf("event %d source = %q, expected engine", i, got[i].Metadata.Source)
		}
	}

	p, ok := got[1].Payload.(CalcPayload)
	if !ok {
		t.Fatalf("payload type = %T, expected CalcPayload", got[1].Payload)
	}
	if p.SessionID != "s1" || p.Current != engine.DivideByZeroMessage || !p.Complete || p.Error == "" {
		t.Errorf("divzero payload = %+v", p)
	}
	if p.Fields()["current"] != engine.DivideByZeroMessage {
		t.Errorf("Fields()[current] = %v", p.Fields()["current"])
	}
}

func TestNotifierResult(t *testing.T) {
	bus := NewBus()
	var results []CalcPayload
	_, _ = bus.Subscribe(TopicCalcResult, func(_ context.Context, ev Event) error {
		results = append(results, ev.Payload.(CalcPayload))
		return nil
	})

	eng := engine.New(engine.WithNotifier(NewNotifier(bus, "engine")))
	_ = eng.AppendDigit('1')
	_ = eng.AppendDigit('2')
	_ = eng.ChooseOperation(engine.OpAdd)
	_ = eng.AppendDigit('7')
	_ = eng.Calculate()

	if len(results) != 1 || results[0].Current != "19" {
		t.Errorf("results = %+v, expected one result of 19", results)
	}
}

func TestTopicForSignal(t *testing.T) {
	if got := TopicForSignal(engine.SignalKind(0)); got != "" {
		t.Errorf("TopicForSignal(0) = %q, expected empty", got)
	}
	if got := TopicForSignal(engine.SignalResult); got != TopicCalcResult {
		t.Errorf("TopicForSignal(result) = %q, expected %q", got, TopicCalcResult)
	}
}
