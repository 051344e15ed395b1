// Package main is the entry point for the steps CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/runoshun/steps/internal/app"
	"github.com/runoshun/steps/internal/cli"
	"github.com/runoshun/steps/internal/usecase"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	container, err := app.New(version)
	if err != nil {
		// Help and version work without a usable store.
		if canRunWithoutStore(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if cerr := container.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return recoverFault(ctx, container.RecordFaultUseCase(), func() error {
		return cli.NewRootCommand(container, version).ExecuteContext(ctx)
	})
}

// faultRecorder appends a fault to the capped error log.
type faultRecorder interface {
	Execute(ctx context.Context, in usecase.RecordFaultInput) error
}

// recoverFault runs fn. A panic is stored in the error log and returned
// as an ordinary error.
func recoverFault(ctx context.Context, rec faultRecorder, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		payload := fmt.Sprintf("%v\n%s", r, debug.Stack())
		_ = rec.Execute(ctx, usecase.RecordFaultInput{Kind: "panic", Payload: payload})
		err = fmt.Errorf("internal error: %v", r)
	}()
	return fn()
}

func canRunWithoutStore(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" || strings.HasPrefix(arg, "--help=") {
			return true
		}
	}
	return false
}
