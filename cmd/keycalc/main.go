// Package main is the entry point for keycalc.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keycalc/internal/app"
	"github.com/dshills/keycalc/internal/mcp"
	"github.com/dshills/keycalc/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	app    app.Options
	eval   string
	json   bool
	script string
	mcp    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	switch {
	case opts.mcp:
		return runMCP(opts)
	case opts.eval != "":
		return runHeadless(opts, func(application *app.Application) error {
			return evalKeys(os.Stdout, application, opts.eval, opts.json, stdoutIsTerminal())
		})
	case opts.script != "":
		return runHeadless(opts, func(application *app.Application) error {
			return runScript(os.Stdout, application, opts.script)
		})
	}

	// Log lines would corrupt the terminal unless they go to a file.
	opts.app.LogOutput = io.Discard
	opts.app.WatchConfig = true

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runHeadless builds the application without a terminal and hands it to fn.
func runHeadless(opts cliOptions, fn func(*app.Application) error) int {
	opts.app.LogOutput = os.Stderr

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := fn(application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runMCP serves calculator sessions over stdio. Stdout carries the
// protocol, so logs go to stderr.
func runMCP(opts cliOptions) int {
	opts.app.LogOutput = os.Stderr

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	m := mcp.NewManager(mcp.WithLocale(application.Config().Locale))
	if err := mcp.ServeStdio(version, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool
	var noMouse bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.app.Overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.app.Overrides.LogFile, "log-file", "", "Write log lines to this file")
	flag.StringVar(&opts.app.Overrides.Locale, "locale", "", "Display locale (for example en, de, fr)")
	flag.StringVar(&opts.app.Overrides.KeymapPath, "keymap", "", "Path to a JSON keymap merged over the defaults")
	flag.BoolVar(&noMouse, "no-mouse", false, "Disable mouse input")
	flag.StringVar(&opts.eval, "eval", "", "Press KEYS without a terminal and print the display")
	flag.StringVar(&opts.eval, "e", "", "Press KEYS without a terminal (shorthand)")
	flag.BoolVar(&opts.json, "json", false, "With -eval, print a JSON snapshot")
	flag.StringVar(&opts.script, "script", "", "Run a Lua script against the calculator")
	flag.BoolVar(&opts.mcp, "mcp", false, "Serve calculator sessions over MCP on stdio")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keycalc - keyboard driven terminal calculator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keycalc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keycalc                        Start the calculator\n")
		fmt.Fprintf(os.Stderr, "  keycalc -locale de             Start with German separators\n")
		fmt.Fprintf(os.Stderr, "  keycalc -e '1234+7='           Print the display after the keys\n")
		fmt.Fprintf(os.Stderr, "  keycalc -e '9/0=' -json        Print a JSON snapshot\n")
		fmt.Fprintf(os.Stderr, "  keycalc -script sum.lua        Run a Lua script\n")
		fmt.Fprintf(os.Stderr, "  keycalc -mcp                   Serve MCP tools on stdio\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keycalc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if noMouse {
		off := false
		opts.app.Overrides.Mouse = &off
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", flag.Args())
		flag.Usage()
		os.Exit(2)
	}

	if opts.json && opts.eval == "" {
		fmt.Fprintf(os.Stderr, "Error: -json requires -eval\n")
		os.Exit(2)
	}

	return opts
}
