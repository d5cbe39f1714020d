package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/cli"
)

var flagStrict bool

// errCycle makes `tasks --strict` exit non-zero.
var errCycle = errors.New("dependency cycle detected")

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks and check the dependencies for a cycle",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().BoolVar(&flagStrict, "strict", false, "Exit with an error when a cycle is found")
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, _ []string) error {
	s, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if s.graph.Len() == 0 {
		fmt.Fprintln(out, "  No tasks.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.TaskTable(s.graph)))
	fmt.Fprintln(out)

	path := s.graph.FindCycle()
	if path == nil {
		fmt.Fprintln(out, "  No cycle detected.")
		return nil
	}
	fmt.Fprintf(out, "  Cycle detected: %s\n", cli.RenderCycle(path))
	if flagStrict {
		return errCycle
	}
	return nil
}
