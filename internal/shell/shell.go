// Package shell implements the interactive orgtrack session: a prompt that
// reads one command per line and runs it against a budget tree and a task
// graph held for the life of the session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/input"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

// Prompt is printed before every line read.
const Prompt = "orgtrack> "

// ErrQuit is returned by Exec when the line asked to end the session.
var ErrQuit = errors.New("quit")

// Session runs commands against one tree and one graph. It is not safe for
// concurrent use.
type Session struct {
	tree  *budget.Tree
	graph *tasks.Graph
	out   io.Writer
	log   *logging.Logger
}

// New creates a session writing its output to out.
func New(tree *budget.Tree, graph *tasks.Graph, out io.Writer, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Nop()
	}
	return &Session{
		tree:  tree,
		graph: graph,
		out:   out,
		log:   log.WithComponent(logging.ComponentShell),
	}
}

// Run reads lines from in until EOF, quit, or ctx is cancelled. Command
// failures are reported on the session output and never end the loop.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		err := s.Exec(scanner.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			fmt.Fprintln(s.out, Message(err))
		}
	}
}

// Exec runs a single command line. Blank lines and lines starting with #
// are ignored.
func (s *Session) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args, err := Tokenize(line)
	if err != nil {
		return fmt.Errorf("%v: %w", err, fault.ErrValidation)
	}

	// A fresh tree per line so flag values never leak between commands.
	root := s.commands()
	root.SetArgs(args)
	root.SetOut(s.out)
	root.SetErr(s.out)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrQuit) {
			s.log.Debug("command failed",
				logging.NewFields().WithOperation(args[0]).WithError(err, fault.Kind(err)).ToSlice()...)
		}
		return err
	}
	return nil
}

// Message turns an engine error into the line shown to the user.
func Message(err error) string {
	return cli.ErrorMessage(err)
}

func (s *Session) commands() *cobra.Command {
	root := &cobra.Command{
		Use:           "orgtrack",
		Short:         "Track budgets and task dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		s.categoryCmd(),
		s.expenseCmd(),
		s.overviewCmd(),
		s.searchCmd(),
		s.taskCmd(),
		s.tasksCmd(),
		s.cycleCmd(),
		&cobra.Command{
			Use:     "quit",
			Aliases: []string{"exit"},
			Short:   "End the session",
			Args:    cobra.NoArgs,
			RunE:    func(*cobra.Command, []string) error { return ErrQuit },
		},
	)
	return root
}

func (s *Session) categoryCmd() *cobra.Command {
	var parent, limit string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := input.ParseLimit(limit)
			if err != nil {
				return err
			}
			c, err := s.tree.AddCategory(parent, args[0], l)
			if err != nil {
				return err
			}
			under := parent
			if under == "" {
				under = s.tree.Root().Name
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Category '%s' added under '%s' with limit %s.\n",
				c.Name, under, cli.FormatLimit(c.Limit))
			return nil
		},
	}
	add.Flags().StringVarP(&parent, "parent", "p", "", "Parent category (default: root)")
	add.Flags().StringVarP(&limit, "limit", "l", "", "Spending limit (blank for preset or none)")

	c := &cobra.Command{Use: "category", Short: "Manage budget categories"}
	c.AddCommand(add)
	return c
}

func (s *Session) expenseCmd() *cobra.Command {
	add := &cobra.Command{
		Use:   "add CATEGORY AMOUNT",
		Short: "Book an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := input.ParseAmount(args[1])
			if err != nil {
				return err
			}
			r, err := s.tree.AddExpense(args[0], amount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Expense of %s added to '%s'.\n", cli.FormatAmount(amount), r.Category.Name)
			if adv := r.Advisory(); adv != nil {
				fmt.Fprintln(out, Message(adv))
			}
			for _, b := range r.Ancestors {
				fmt.Fprintln(out, Message(b.Err()))
			}
			return nil
		},
	}
	c := &cobra.Command{Use: "expense", Short: "Book expenses"}
	c.AddCommand(add)
	return c
}

func (s *Session) overviewCmd() *cobra.Command {
	var table bool
	c := &cobra.Command{
		Use:   "overview",
		Short: "Show the category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if table {
				fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.BudgetTable(s.tree.Overview())))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderTreeLines(s.tree.Overview()))
			return nil
		},
	}
	c.Flags().BoolVarP(&table, "table", "t", false, "Render as a table")
	return c
}

func (s *Session) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search NAME",
		Short: "Find the first category with a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := s.tree.Search(args[0])
			if !ok {
				return fmt.Errorf("category %q: %w", args[0], fault.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (depth %d): Own %s, Spent %s, Limit %s\n",
				c.Name, c.Depth, cli.FormatAmount(c.Own), cli.FormatAmount(c.Aggregate), cli.FormatLimit(c.Limit))
			return nil
		},
	}
}

func (s *Session) taskCmd() *cobra.Command {
	var desc, deadline, priority string
	add := &cobra.Command{
		Use:   "add [ID]",
		Short: "Add a task; the id defaults to the next free number",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := input.ParseDeadline(deadline)
			if err != nil {
				return err
			}
			p, err := input.ParsePriority(priority)
			if err != nil {
				return err
			}
			id := s.graph.NextID()
			if len(args) == 1 {
				id = args[0]
			}
			if err := s.graph.AddTask(tasks.Task{ID: id, Description: desc, Deadline: d, Priority: p}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' added.\n", id)
			return nil
		},
	}
	add.Flags().StringVarP(&desc, "desc", "d", "", "Description")
	add.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	add.Flags().StringVarP(&priority, "priority", "p", "", "High, Medium or Low")

	depend := &cobra.Command{
		Use:   "depend FROM TO",
		Short: "Record that FROM depends on TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.graph.AddEdge(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task '%s' now depends on '%s'.\n", args[0], args[1])
			return nil
		},
	}

	c := &cobra.Command{Use: "task", Short: "Manage tasks"}
	c.AddCommand(add, depend)
	return c
}

func (s *Session) tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if s.graph.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderTable(cli.TaskTable(s.graph)))
			return nil
		},
	}
}

func (s *Session) cycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycle",
		Short: "Check the dependencies for a cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path := s.graph.FindCycle(); path != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Cycle detected: %s\n", cli.RenderCycle(path))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "No cycle detected.")
			return nil
		},
	}
}
