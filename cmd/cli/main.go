package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sugipamo/project-cph-sub010/internal/app"
	"github.com/sugipamo/project-cph-sub010/internal/cli"
)

// main is the entrypoint for the cph binary.
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

// run encapsulates the main application logic for easier testing and
// error handling. Startup panics from app.NewApp are recovered here and
// surfaced as ordinary errors.
func run(outW io.Writer, args []string) (err error) {
	cfg, shouldExit, parseErr := cli.Parse(args, outW)
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

	cphApp := app.NewApp(outW, cfg)
	return cphApp.Run(context.Background(), cfg)
}
