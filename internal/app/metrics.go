package app

import (
	"sync/atomic"
	"time"
)

// Metrics counts event loop activity.
type Metrics struct {
	// Redraws
	drawCount   atomic.Uint64
	drawTotalNs atomic.Int64
	drawMaxNs   atomic.Int64

	// Input handling
	keyCount     atomic.Uint64
	clickCount   atomic.Uint64
	missedClicks atomic.Uint64
	inputTotalNs atomic.Int64

	// Wake events from timers and the config watcher
	wakeCount   atomic.Uint64
	reloadCount atomic.Uint64
	reloadFails atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordDraw records one redraw.
func (m *Metrics) RecordDraw(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.drawCount.Add(1)
	m.drawTotalNs.Add(ns)

	for {
		old := m.drawMaxNs.Load()
		if ns <= old || m.drawMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordKey records a key event and its handling time.
func (m *Metrics) RecordKey(duration time.Duration) {
	m.keyCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
}

// RecordClick records a mouse click. hit is false when the click missed
// every keypad button.
func (m *Metrics) RecordClick(duration time.Duration, hit bool) {
	m.clickCount.Add(1)
	m.inputTotalNs.Add(duration.Nanoseconds())
	if !hit {
		m.missedClicks.Add(1)
	}
}

// RecordWake records a wake event.
func (m *Metrics) RecordWake() {
	m.wakeCount.Add(1)
}

// RecordReload records a configuration reload attempt.
func (m *Metrics) RecordReload(err error) {
	m.reloadCount.Add(1)
	if err != nil {
		m.reloadFails.Add(1)
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	draws := m.drawCount.Load()
	inputs := m.keyCount.Load() + m.clickCount.Load()

	var avgDraw, avgInput time.Duration
	if draws > 0 {
		avgDraw = time.Duration(m.drawTotalNs.Load() / int64(draws))
	}
	if inputs > 0 {
		avgInput = time.Duration(m.inputTotalNs.Load() / int64(inputs))
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		Draws:          draws,
		AvgDraw:        avgDraw,
		MaxDraw:        time.Duration(m.drawMaxNs.Load()),
		Keys:           m.keyCount.Load(),
		Clicks:         m.clickCount.Load(),
		MissedClicks:   m.missedClicks.Load(),
		AvgInput:       avgInput,
		Wakes:          m.wakeCount.Load(),
		Reloads:        m.reloadCount.Load(),
		ReloadFailures: m.reloadFails.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	Draws          uint64
	AvgDraw        time.Duration
	MaxDraw        time.Duration
	Keys           uint64
	Clicks         uint64
	MissedClicks   uint64
	AvgInput       time.Duration
	Wakes          uint64
	Reloads        uint64
	ReloadFailures uint64
}

// Inputs returns the number of handled key and mouse events.
func (s MetricsSnapshot) Inputs() uint64 {
	return s.Keys + s.Clicks
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
