// Package cli implements the tabview command-line interface. Each command
// is one interaction step: restore the view state, apply the step's events,
// render, checkpoint.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	stateFile string
	logLevel  string
	plain     bool
	grid      bool
}

var flags rootFlags

// NewRootCmd creates the top-level "tabview" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabview",
		Short: "View tab-delimited files and query results as a table",
		Long: `tabview loads rows from a tab-delimited file or a relational query,
shows them as a table, and remembers the sort direction and row selection
between runs.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.stateFile, "state-file", "", "view state file (default: platform state dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&flags.plain, "plain", false, "print tab-separated rows instead of a grid")
	root.PersistentFlags().BoolVar(&flags.grid, "grid", false, "print a grid even when output is not a terminal")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newQueryCmd())
	root.AddCommand(newSortCmd())
	root.AddCommand(newStateCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	root.SetErr(os.Stderr)
	if code := run(root); code != exitSuccess {
		os.Exit(code)
	}
}

// run executes root and reports a failure on its error stream.
func run(root *cobra.Command) int {
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	fmt.Fprintln(root.ErrOrStderr(), "tabview:", err)
	return exitCode(err)
}

// exitCode classifies err: bad input and bad indices are user errors,
// everything else is a system error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case types.IsLoadError(err),
		errors.Is(err, types.ErrIndexOutOfRange),
		errors.Is(err, types.ErrDriverUnknown),
		errors.Is(err, types.ErrLogLevelUnknown),
		errors.Is(err, types.ErrLogFormatUnknown):
		return exitUserError
	default:
		return exitSysError
	}
}
