package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/roomtodo/internal/ui"
)

func newAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (title can be multiple words)",
		Args:  requireArgs(1, "usage: todo add <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return runWrite(cmd, opts, func(a *app) (string, error) {
				a.home.AddTodo(title)
				return "added", nil
			})
		},
	}
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Replace the title of a todo and re-stamp its date",
		Long:  "Replace the title of a todo and re-stamp its date. An unknown id is created.",
		Args:  requireArgs(2, "usage: todo edit <id> <title...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("edit", args[0])
			if err != nil {
				return err
			}
			title := strings.TrimSpace(strings.Join(args[1:], " "))
			return runWrite(cmd, opts, func(a *app) (string, error) {
				_, exists, err := a.store.GetTodo(cmd.Context(), id)
				if err != nil {
					return "", err
				}
				a.home.UpdateTodo(id, title)
				if !exists {
					return fmt.Sprintf("created #%d", id), nil
				}
				return "updated", nil
			})
		},
	}
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a todo by id (unknown ids are ignored)",
		Args:    exactArgs(1, "usage: todo rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("rm", args[0])
			if err != nil {
				return err
			}
			return runWrite(cmd, opts, func(a *app) (string, error) {
				a.home.DeleteTodo(id)
				return "removed", nil
			})
		},
	}
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var oldestFirst bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, newest first",
		Args:    exactArgs(0, "usage: todo ls [--oldest-first]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.close()

			todos, err := a.store.ListTodos(cmd.Context())
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderPanel(todos, !oldestFirst))
			return nil
		},
	}
	cmd.Flags().BoolVar(&oldestFirst, "oldest-first", false, "list in insertion order")
	return cmd
}

// runWrite opens the app, lets fn dispatch through the view-model and waits
// for the background write before printing fn's message.
func runWrite(cmd *cobra.Command, opts *RootOptions, fn func(a *app) (string, error)) error {
	a, err := openApp(opts, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer a.close()

	done, err := fn(a)
	if err != nil {
		return err
	}
	if err := a.settle(); err != nil {
		return err
	}
	ui.OK(cmd.OutOrStdout(), done)
	return nil
}

func parseID(op, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, usageError{fmt.Sprintf("%s: not a valid id: %s", op, s)}
	}
	return id, nil
}

func requireArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{usage}
		}
		return nil
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{usage}
		}
		return nil
	}
}
