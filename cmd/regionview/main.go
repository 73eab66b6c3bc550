// Command regionview runs a region FSM document in the terminal. Regions are
// drawn as boxes, one unit per cell; the left mouse button drives press,
// move and release.
//
// Usage:
//
//	regionview [-config file] [-policy detail] [-log regionview.log] doc.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/comalice/regionfsm"
	"github.com/comalice/regionfsm/assets"
	"github.com/comalice/regionfsm/diag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "regionview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	policy, _ := diag.ParsePolicy(cfg.Policy)
	reporter := diag.NewSink(policy, logger)
	diag.SetDefault(reporter)

	dir := cfg.AssetDir
	if dir == "" {
		dir = filepath.Dir(cfg.Document)
	}
	assets.SetSharedLoader(assets.NewSchemeLoader(dir, cfg.HTTPTimeout))

	loose, err := regionfsm.ParseFile(cfg.Document)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.Clear()

	a, err := newApp(cfg, screen, loose, logger, reporter, assets.Shared())
	if err != nil {
		return err
	}
	a.run()
	logger.Info("exiting", "fsm", a.fsm().ID())
	return nil
}

// openLogger logs to cfg.LogFile, or nowhere when it is empty since the
// terminal belongs to the screen.
func openLogger(cfg Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}
