// Package main is the entry point for the revenue reconciliation server and CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"revenue-reconciliation-backend/cmd/server/cmd"
	"revenue-reconciliation-backend/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		logging.Error().Err(err).Msg("command failed")
		cancel()
		os.Exit(1)
	}
}
