// Package main is the entry point for the formbuilder CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/goliatone/go-formbuilder/internal/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Getenv)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application logic, extracted for testability.
func run(ctx context.Context, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(commands.WithGetenv(getenv))
	return rootCmd.ExecuteContext(ctx)
}
