package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/console"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

// main - plays a game on the terminal, or prints it when stdout is not a terminal.
func main() {
	moves := flag.String("moves", "", "comma separated cells (0-8) to replay before starting")
	locations := flag.Bool("locations", true, "append (row, col) to move entries")
	highlight := flag.Bool("highlight", true, "highlight the winning line")
	logPath := flag.String("log", "", "path to a debug log file")
	flag.Parse()

	logger, closeLog, err := initLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log: %v\n", err)
		os.Exit(1)
	}

	err = run(logger, *moves, presenter.Options{ShowLocations: *locations, HighlightWinner: *highlight})
	if err != nil {
		logger.Error("console failed", "error", err)
	}

	// os.Exit skips deferred calls
	closeLog()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, moves string, opts presenter.Options) error {
	game, ignored, err := console.Replay(moves)
	if err != nil {
		return err
	}

	if len(ignored) > 0 {
		logger.Warn("ignored moves", "cells", ignored)
	}

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return console.Render(os.Stdout, termenv.NewOutput(os.Stdout), presenter.Project(game, opts))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("could not init screen: %w", err)
	}
	defer screen.Fini()

	console.New(logger, screen, game, opts).Run()

	return nil
}

func initLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return logger, func() { _ = file.Close() }, nil
}
