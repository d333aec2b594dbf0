// Package main is the entry point for the habitctl CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"habitctl/internal/backend/habitapi"
	"habitctl/internal/cli"
	"habitctl/internal/commands"
	"habitctl/internal/config"
	"habitctl/internal/service"
	"habitctl/internal/token"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create service factory
	factory := func(ctx context.Context, cfg *config.Config, tokens *token.Store) (service.Service, error) {
		return habitapi.New(cfg, tokens), nil
	}

	// Create dispatcher
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
