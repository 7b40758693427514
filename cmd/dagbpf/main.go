package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ruth561/DAG-BPF/internal/cli"
	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/ruth561/DAG-BPF/internal/hcl"
	"github.com/ruth561/DAG-BPF/internal/rdgen"
)

// newLoader builds the loader every command reads its configuration with.
var newLoader = func() config.Loader {
	return config.NewMultiLoader().
		Register(hcl.NewLoader(), ".hcl").
		Register(rdgen.NewLoader(), ".yaml", ".yml")
}

// main is the entrypoint for the dagbpf application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	// Pool and registry constructors panic on impossible sizes; turn that into
	// a clean exit instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = &cli.ExitError{Code: 1, Message: fmt.Sprintf("application startup panicked: %v", r)}
		}
	}()

	return cli.Execute(ctx, args, outW, errW, newLoader())
}
