package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/roomtodo/internal/ui"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
}

// usageError marks bad invocations (exit code 2).
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

// ExitCode maps a command error to the process exit code: 0 ok, 1 error, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// NewRootCommand builds the todo command tree. With no subcommand it opens
// the home screen.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny single-screen todo list",
		Long: `todo keeps a list of todos in a local SQLite database.

Run without arguments for the interactive screen, or script it with
add, ls, edit and rm.`,
		Example: `  todo add "Buy milk"
  todo ls
  todo edit 2 Walk the dog twice
  todo rm 1`,
		Args:          noSubcommand,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, opts)
		},
	}

	// subcommands inherit this, so bad flags anywhere are usage errors
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err.Error()}
	})

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "YAML config file (default ./todo.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newUICommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newEditCommand(opts))
	cmd.AddCommand(newRemoveCommand(opts))

	return cmd
}

func newUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive screen",
		Args:  exactArgs(0, "usage: todo ui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreen(cmd, opts)
		},
	}
}

// noSubcommand rejects leftover arguments on the root, which cobra hands
// over when the first one names no subcommand.
func noSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Sprintf("unknown subcommand: %s", args[0])}
	}
	return nil
}

func runScreen(cmd *cobra.Command, opts *RootOptions) error {
	a, err := openApp(opts, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer a.close()

	return ui.RunHome(a.home)
}
