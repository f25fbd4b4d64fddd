package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/keycalc/internal/app"
	"github.com/dshills/keycalc/internal/dispatcher"
	"github.com/dshills/keycalc/internal/engine/display"
	"github.com/dshills/keycalc/internal/plugin/lua"
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// evalKeys presses keys and writes the two display lines, or a JSON
// snapshot when asJSON is set. A quit key ends the sequence quietly.
func evalKeys(w io.Writer, application *app.Application, keys string, asJSON, color bool) error {
	_, err := application.Dispatcher().Press(keys)
	if err != nil && !errors.Is(err, dispatcher.ErrQuit) {
		return err
	}
	return writeDisplay(w, application, asJSON, color)
}

// runScript executes a Lua file with the calc module installed.
func runScript(w io.Writer, application *app.Application, path string) error {
	s, err := lua.NewState(lua.WithOutput(w))
	if err != nil {
		return err
	}
	defer s.Close()

	calc, err := lua.InstallCalc(s, application.Dispatcher(), application.Formatter(),
		lua.WithBus(application.EventBus()))
	if err != nil {
		return err
	}
	defer calc.Close()

	if err := s.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

func writeDisplay(w io.Writer, application *app.Application, asJSON, color bool) error {
	f := application.Formatter()
	state := application.Engine().State()

	if asJSON {
		doc, err := f.Snapshot(application.Engine().SessionID(), state)
		if err != nil {
			return err
		}
		_, err = w.Write(display.Pretty(doc, color))
		return err
	}

	prev, cur := f.Lines(state)
	_, err := fmt.Fprintf(w, "%s\n%s\n", prev, cur)
	return err
}
