package main

import (
	"context"
	"log/slog"
	"os"

	"mrzgate/internal/platform/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

// cliLogger writes diagnostics to stderr so stdout stays parseable.
func cliLogger(verbose bool) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.NewWithWriter(os.Stderr, level)
}
