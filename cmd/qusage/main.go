// Package main is the entry point for the qusage CLI.
// It builds the command tree and runs it with signal-aware cancellation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Joe-Costa/qumulo-usage-report/internal/cli"
	"github.com/Joe-Costa/qumulo-usage-report/internal/render"
)

func main() {
	if err := run(); err != nil {
		// Configuration and transport failures end up here; the message
		// already carries any response body the cluster returned.
		render.Error(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the root command, separated for cleaner error handling.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd().ExecuteContext(ctx)
}
