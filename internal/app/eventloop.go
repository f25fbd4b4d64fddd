package app

import (
	"errors"
	"time"

	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine"
	"github.com/dshills/keycalc/internal/renderer/backend"
)

// flashFrame is the redraw interval while the error flash fades.
const flashFrame = 50 * time.Millisecond

// Wake event payloads.
type (
	// feedbackTick redraws so that expired visual cues disappear.
	feedbackTick struct{}

	// reloadRequest asks the loop to re-read the configuration.
	reloadRequest struct{ path string }
)

// errQuit ends the event loop normally.
var errQuit = errors.New("quit")

// eventLoop polls the backend until it closes or the user quits.
// It is the only goroutine that applies input to the engine.
func (app *Application) eventLoop(b backend.Backend) error {
	for {
		ev := b.PollEvent()
		if ev.Type == backend.EventClosed || app.closed.Load() {
			return nil
		}

		err := app.handleBackendEvent(ev)
		if errors.Is(err, errQuit) {
			app.logger.Info("quit requested")
			return nil
		}
		if err != nil {
			app.logComponentError("eventloop", err)
		}
	}
}

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns errQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventResize:
		app.draw()
		return nil
	case backend.EventWake:
		return app.handleWake(ev)
	default:
		return nil
	}
}

// handleKeyEvent dispatches a key through the keymap.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	start := time.Now()
	res := app.dispatcher.HandleKey(convertToKeyEvent(ev))
	app.metrics.RecordKey(time.Since(start))
	return app.afterDispatch(res)
}

// handleMouseEvent presses the keypad button under a left click.
func (app *Application) handleMouseEvent(ev backend.Event) error {
	if ev.MouseButton != backend.MouseLeft {
		return nil
	}

	r := app.Renderer()
	if r == nil {
		return nil
	}

	start := time.Now()
	label, ok := r.HitTest(ev.MouseX, ev.MouseY)
	if !ok {
		app.metrics.RecordClick(time.Since(start), false)
		return nil
	}
	res := app.dispatcher.HandleButton(label)
	app.metrics.RecordClick(time.Since(start), true)
	return app.afterDispatch(res)
}

// afterDispatch highlights the pressed button and redraws.
func (app *Application) afterDispatch(res dispatcher.Result) error {
	if errors.Is(res.Err, dispatcher.ErrQuit) {
		return errQuit
	}
	if !res.Handled {
		return nil
	}

	if res.Err != nil && !isDisplaySignal(res.Err) {
		app.logger.WithComponent("dispatcher").Warn("%s: %v", res.Action, res.Err)
	}

	if r := app.Renderer(); r != nil {
		if label, ok := ButtonLabel(res.Input); ok {
			r.Pressed(label)
		}
	}

	app.draw()
	return nil
}

// isDisplaySignal reports whether err is an engine signal shown on the
// display rather than a failure.
func isDisplaySignal(err error) bool {
	return errors.Is(err, engine.ErrInvalidEntry) || errors.Is(err, engine.ErrDivideByZero)
}

func (app *Application) handleWake(ev backend.Event) error {
	app.metrics.RecordWake()

	if req, ok := ev.Data.(reloadRequest); ok {
		if err := app.reload("watcher: " + req.path); err != nil {
			app.logger.WithComponent("config").Warn("%v", err)
		}
	}

	app.draw()
	return nil
}

// draw renders the engine state and schedules the next feedback redraw.
func (app *Application) draw() {
	r := app.Renderer()
	if r == nil {
		return
	}

	start := time.Now()
	r.Draw(app.engine.State())
	app.metrics.RecordDraw(time.Since(start))

	app.scheduleWake(r.NextExpiry())
}

// scheduleWake posts a feedbackTick after d, replacing any pending tick.
// A zero d cancels the pending tick.
func (app *Application) scheduleWake(d time.Duration) {
	app.wakeMu.Lock()
	defer app.wakeMu.Unlock()

	if app.wakeTimer != nil {
		app.wakeTimer.Stop()
		app.wakeTimer = nil
	}
	if d <= 0 || app.closed.Load() {
		return
	}

	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return
	}

	app.wakeTimer = time.AfterFunc(min(d, flashFrame), func() {
		b.PostEvent(backend.WakeEvent(feedbackTick{}))
	})
}

func (app *Application) stopWake() {
	app.wakeMu.Lock()
	defer app.wakeMu.Unlock()

	if app.wakeTimer != nil {
		app.wakeTimer.Stop()
		app.wakeTimer = nil
	}
}
