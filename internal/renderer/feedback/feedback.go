// Package feedback tracks short-lived visual cues: the error flash shown
// after a rejected entry and the highlight on a pressed keypad button.
package feedback

import (
	"sync"
	"time"
)

// Default durations.
const (
	DefaultFlashDuration = 500 * time.Millisecond
	DefaultPressDuration = 150 * time.Millisecond
)

// Clock returns the current time.
type Clock func() time.Time

// Flash is a timed error indicator.
// A Flash is safe for concurrent use.
type Flash struct {
	mu       sync.Mutex
	duration time.Duration
	now      Clock
	started  time.Time
	active   bool
}

// NewFlash creates a flash lasting d. A non-positive d uses the default.
// A nil now uses time.Now.
func NewFlash(d time.Duration, now Clock) *Flash {
	if d <= 0 {
		d = DefaultFlashDuration
	}
	if now == nil {
		now = time.Now
	}
	return &Flash{duration: d, now: now}
}

// Duration returns how long the flash stays visible.
func (f *Flash) Duration() time.Duration {
	return f.duration
}

// Trigger starts or restarts the flash.
func (f *Flash) Trigger() {
	f.mu.Lock()
	f.started = f.now()
	f.active = true
	f.mu.Unlock()
}

// Cancel stops the flash immediately.
func (f *Flash) Cancel() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

// Active reports whether the flash is still visible.
func (f *Flash) Active() bool {
	return f.Remaining() > 0
}

// Remaining returns the time left before the flash expires.
func (f *Flash) Remaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remainingLocked()
}

func (f *Flash) remainingLocked() time.Duration {
	if !f.active {
		return 0
	}
	left := f.duration - f.now().Sub(f.started)
	if left <= 0 {
		f.active = false
		return 0
	}
	return left
}

// Intensity returns 1 right after Trigger, falling linearly to 0 at expiry.
func (f *Flash) Intensity() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	left := f.remainingLocked()
	if left <= 0 {
		return 0
	}
	return float64(left) / float64(f.duration)
}

// Press highlights one keypad button for a short time.
// A Press is safe for concurrent use.
type Press struct {
	mu    sync.Mutex
	flash *Flash
	label string
}

// NewPress creates a press highlight lasting d. A non-positive d uses the
// default.
func NewPress(d time.Duration, now Clock) *Press {
	if d <= 0 {
		d = DefaultPressDuration
	}
	return &Press{flash: NewFlash(d, now)}
}

// Duration returns how long a button stays highlighted.
func (p *Press) Duration() time.Duration {
	return p.flash.Duration()
}

// Trigger highlights the button with the given label.
func (p *Press) Trigger(label string) {
	p.mu.Lock()
	p.label = label
	p.mu.Unlock()
	p.flash.Trigger()
}

// Active returns the highlighted label, or "" when nothing is highlighted.
func (p *Press) Active() string {
	if !p.flash.Active() {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.label
}

// Remaining returns the time left on the current highlight.
func (p *Press) Remaining() time.Duration {
	return p.flash.Remaining()
}
