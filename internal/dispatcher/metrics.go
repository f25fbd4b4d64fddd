package dispatcher

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dshills/keycalc/internal/engine"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	actionMetrics map[string]*ActionMetrics

	totalDispatches uint64
	totalRejected   uint64
	totalDivByZero  uint64
	totalFailures   uint64
	totalPanics     uint64
	totalDuration   time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	DispatchCount uint64
	SignalCount   uint64
	FailureCount  uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[string]*ActionMetrics),
	}
}

// RecordDispatch records one dispatch and classifies its error.
// Engine signals (rejected entry, divide by zero) are not failures.
func (m *Metrics) RecordDispatch(action string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	am := m.actionMetrics[action]
	if am == nil {
		am = &ActionMetrics{Name: action}
		m.actionMetrics[action] = am
	}
	am.DispatchCount++
	am.TotalDuration += duration
	am.LastDispatch = time.Now()
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}

	switch {
	case err == nil, errors.Is(err, ErrQuit):
	case errors.Is(err, engine.ErrInvalidEntry), errors.Is(err, engine.ErrInvalidInput):
		m.totalRejected++
		am.SignalCount++
	case errors.Is(err, engine.ErrDivideByZero):
		m.totalDivByZero++
		am.SignalCount++
	default:
		m.totalFailures++
		am.FailureCount++
	}
}

// RecordPanic records a panic recovery.
func (m *Metrics) RecordPanic(input string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// ActionStats returns a copy of the metrics for one action, or nil.
func (m *Metrics) ActionStats(action string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actionMetrics[action]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most dispatched actions.
func (m *Metrics) TopActions(n int) []ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		actions = append(actions, *am)
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].DispatchCount != actions[j].DispatchCount {
			return actions[i].DispatchCount > actions[j].DispatchCount
		}
		return actions[i].Name < actions[j].Name
	})

	if n > len(actions) {
		n = len(actions)
	}
	return actions[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[string]*ActionMetrics)
	m.totalDispatches = 0
	m.totalRejected = 0
	m.totalDivByZero = 0
	m.totalFailures = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	TotalDispatches uint64
	TotalRejected   uint64
	TotalDivByZero  uint64
	TotalFailures   uint64
	TotalPanics     uint64
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := MetricsSnapshot{
		TotalDispatches: m.totalDispatches,
		TotalRejected:   m.totalRejected,
		TotalDivByZero:  m.totalDivByZero,
		TotalFailures:   m.totalFailures,
		TotalPanics:     m.totalPanics,
		ActionCount:     len(m.actionMetrics),
		Timestamp:       time.Now(),
	}
	if m.totalDispatches > 0 {
		s.AverageDuration = m.totalDuration / time.Duration(m.totalDispatches)
	}
	return s
}
