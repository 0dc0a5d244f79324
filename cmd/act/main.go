// act interprets text adventures described as a graph of rooms.
// Usage: act [--version] [--plain] [--config <file>] [--script <file>] [--trace] <game_file>
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nathoo/act/cli"
	"github.com/nathoo/act/config"
	"github.com/nathoo/act/engine"
	"github.com/nathoo/act/observability"
	"github.com/nathoo/act/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: act [--version] [--plain] [--config <file>] [--script <file>] [--trace] <game_file>\n"

func main() {
	plain := false
	trace := false
	var gameFile, scriptFile, configFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("act %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a file path\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--script" {
				scriptFile = args[i+1]
			} else {
				configFile = args[i+1]
			}
			i++
		default:
			if gameFile == "" {
				gameFile = args[i]
			}
		}
	}

	if gameFile == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if plain {
		cfg.Display.Mode = "plain"
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	eng, err := engine.LoadFile(gameFile,
		engine.WithLogger(logger),
		engine.WithStrict(cfg.World.Strict))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	if err := play(eng, cfg, scriptFile, trace, logger); err != nil {
		logger.Error("game ended", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs the game in the front end the configuration and flags ask for.
func play(eng *engine.Engine, cfg config.Config, scriptFile string, trace bool, logger *zap.Logger) error {
	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		c := newCLI(eng, cfg, trace)
		c.In = f
		c.EchoInput = true
		c.Banner = false
		c.ClearScreen = false
		c.Color = false
		return c.Run()
	}

	// Use plain CLI if configured or stdout is not a terminal.
	if cfg.Display.Mode == "plain" || !isTerminal() {
		logger.Debug("starting plain front end")
		return newCLI(eng, cfg, trace).Run()
	}

	logger.Debug("starting tui front end")
	return tui.Run(eng, tui.Options{
		Trace:              trace,
		RecoverUnknownRoom: cfg.World.RecoverUnknownRoom,
	})
}

func newCLI(eng *engine.Engine, cfg config.Config, trace bool) *cli.CLI {
	c := cli.New(eng)
	c.Banner = cfg.Display.Banner
	c.StartupDelay = cfg.Display.StartupDelay
	c.ClearScreen = cfg.Display.ClearScreen
	c.Color = cfg.Display.Color && isTerminal()
	c.Trace = trace
	c.RecoverUnknownRoom = cfg.World.RecoverUnknownRoom
	return c
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
