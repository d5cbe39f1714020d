package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/cli"
)

var flagTree bool

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show the category tree with spending against limits",
	Args:  cobra.NoArgs,
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().BoolVar(&flagTree, "tree", false, "Print the plain indented overview instead of a table")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	s, err := newSession(os.Stderr)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if flagTree {
		fmt.Fprint(out, cli.RenderTreeLines(s.tree.Overview()))
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("  %s  ·  %s spent", s.tree.Root().Name, cli.FormatAmount(s.tree.Total()))))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.BudgetTable(s.tree.Overview())))
	return nil
}
