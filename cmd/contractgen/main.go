package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"contractgen/internal/driver"
	"contractgen/internal/inspect"
	"contractgen/internal/prof"
	"contractgen/internal/version"
)

// exitError carries an exit status without an error message; the command
// has already reported why it failed.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// profSession is started by the persistent flags and stopped by main.
var profSession *prof.Session

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "contractgen",
		Short:         "Generate ABI wrappers and spec descriptors for WASM contracts",
		Long:          `contractgen turns //contract:fn and //contract:impl declarations into exported wrappers and spec descriptors`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupGlobals(cmd)
		},
	}

	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per package")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	root.PersistentFlags().String("memprofile", "", "write a heap profile to file")
	root.PersistentFlags().String("trace", "", "write a runtime trace to file")

	root.AddCommand(newGenCmd(), newCheckCmd(), newEmbedCmd(), newInspectCmd(), newInitCmd(), newVersionCmd())
	return root
}

func main() {
	err := newRootCmd().Execute()
	if stopErr := profSession.Stop(); stopErr != nil {
		fmt.Fprintln(os.Stderr, color.YellowString("warning:"), stopErr)
	}
	var exit exitError
	switch {
	case err == nil:
	case errors.As(err, &exit):
		os.Exit(exit.code)
	default:
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// setupGlobals applies the persistent flags: colour mode and loggers.
func setupGlobals(cmd *cobra.Command) error {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	enabled, err := colorEnabled(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !enabled

	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	driver.SetLogger(log)
	inspect.SetLogger(log)

	var profOpts prof.Options
	if profOpts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if profOpts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if profOpts.Trace, err = cmd.Flags().GetString("trace"); err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	if profOpts.Enabled() {
		if profSession, err = prof.Start(profOpts); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func colorEnabled(value string) (bool, error) {
	switch value {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
