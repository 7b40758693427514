package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ruth561/DAG-BPF/internal/app"
	"github.com/ruth561/DAG-BPF/internal/config"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	logLevel        string
	logFormat       string
	healthcheckPort int
}

// assignFlags are the overrides accepted by run and check.
type assignFlags struct {
	algorithm    string
	poolCapacity int
	units        int
	debugChecks  bool
	now          int64
}

// Execute parses args and runs the selected subcommand. Reports are written
// to outW, logs and usage errors to errW. Every returned error is an
// *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, loader config.Loader) error {
	root := NewRootCommand(outW, errW, loader)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// NewRootCommand builds the command tree.
func NewRootCommand(outW, errW io.Writer, loader config.Loader) *cobra.Command {
	var global globalFlags

	root := &cobra.Command{
		Use:   "dagbpf",
		Short: "DAG-aware real-time priority assignment",
		Long: `dagbpf reads reactor definitions (HCL) or RD-Gen task sets (YAML), splits
them into DAG tasks, assigns every node a priority with the HELT or HLBS
heuristic and reports which processing unit runs the most urgent task.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&global.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&global.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.IntVar(&global.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")

	root.AddCommand(
		newAssignCommand("run", "Assign priorities to every DAG task and report them", &global, outW, errW, loader,
			func(ctx context.Context, a *app.App) error { return a.Run(ctx) }),
		newAssignCommand("check", "Validate the configuration without assigning priorities", &global, outW, errW, loader,
			func(ctx context.Context, a *app.App) error { return a.Check(ctx) }),
	)
	return root
}

func newAssignCommand(
	use, short string,
	global *globalFlags,
	outW, errW io.Writer,
	loader config.Loader,
	action func(context.Context, *app.App) error,
) *cobra.Command {
	var flags assignFlags

	cmd := &cobra.Command{
		Use:   use + " PATH...",
		Short: short,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError("%s requires at least one .hcl/.yaml file or directory", use)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(global, &flags, args)
			if err != nil {
				return err
			}
			slog.Debug("CLI parser finished successfully.", "command", use, "config", cfg)
			return action(cmd.Context(), app.NewApp(outW, errW, cfg, loader))
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.algorithm, "algorithm", "", "Priority algorithm, 'helt' or 'hlbs'. Overrides the configuration files.")
	f.IntVar(&flags.poolCapacity, "pool-capacity", 0, "Number of DAG task slots. Overrides the configuration files.")
	f.IntVar(&flags.units, "units", 0, "Number of processing units in the registry. Overrides the configuration files.")
	f.BoolVar(&flags.debugChecks, "debug-checks", false, "Re-validate every DAG task after each modification.")
	f.Int64Var(&flags.now, "now", 0, "Release time in nanoseconds that absolute deadlines are computed from.")
	return cmd
}

func buildConfig(global *globalFlags, flags *assignFlags, paths []string) (*app.Config, error) {
	logFormat := strings.ToLower(global.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(global.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cfg, err := app.NewConfig(app.Config{
		Paths:           paths,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: global.healthcheckPort,
		Algorithm:       flags.algorithm,
		PoolCapacity:    flags.poolCapacity,
		Units:           flags.units,
		DebugChecks:     flags.debugChecks,
		Now:             flags.now,
	})
	if err != nil {
		return nil, usageError("%v", err)
	}
	return cfg, nil
}
