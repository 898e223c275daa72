package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Oseday/node-pathfinder/internal/app"
	"github.com/Oseday/node-pathfinder/internal/cli"
)

// main is the entrypoint for the node-pathfinder application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. App construction panics on critical startup errors (bad
// scenario files), so the panic is recovered here and surfaced as a plain
// error.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	pathfinderApp := app.NewApp(outW, appConfig)
	return pathfinderApp.Run(context.Background())
}
