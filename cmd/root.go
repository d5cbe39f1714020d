// Package cmd implements the orgtrack CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/config"
	"github.com/theirongolddev/orgtrack/internal/fault"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/plan"
	"github.com/theirongolddev/orgtrack/internal/tasks"
)

var (
	flagPlan     string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "orgtrack",
	Short: "Budget categories and task dependencies",
	Long: "Track spending against a tree of budget categories and detect cycles\n" +
		"in a graph of task dependencies.",
	SilenceUsage: true,
	RunE:         runBudget,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPlan, "plan", "", "Apply a plan file (.toml, .yaml) before running")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors and hide plan advisories")
}

// session is the state shared by every command: one tree and one graph
// built from the config, with the --plan file already applied.
type session struct {
	cfg    config.Config
	log    *logging.Logger
	tree   *budget.Tree
	graph  *tasks.Graph
	report plan.Report
}

// newSession loads the config, wires the engines and replays --plan. Logs
// go to logOut.
func newSession(logOut io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}
	logging.SetDefault(log)

	s := &session{
		cfg: cfg,
		log: log,
		tree: budget.New(
			budget.WithRootName(cfg.General.RootName),
			budget.WithPresets(cfg.Budget.Presets),
			budget.WithLogger(log),
		),
		graph: tasks.New(
			tasks.WithDefaultPriority(cfg.DefaultPriority()),
			tasks.WithLogger(log),
		),
	}
	if flagPlan == "" {
		return s, nil
	}

	p, err := plan.Load(flagPlan)
	if err != nil {
		return nil, err
	}
	plog := log.WithComponent(logging.ComponentPlan)
	s.report, err = p.Apply(s.tree, s.graph, plan.WithLogger(log))
	if err != nil {
		plog.Error("plan failed", logging.NewFields().
			WithOperation(logging.OpApplyPlan).
			With(logging.FieldPath, flagPlan).
			WithError(err, fault.Kind(err)).ToSlice()...)
		return nil, fmt.Errorf("applying %s: %w", flagPlan, err)
	}
	plog.Info("plan applied", logging.NewFields().
		WithOperation(logging.OpApplyPlan).
		With(logging.FieldPath, flagPlan).
		With("operations", s.report.Operations()).ToSlice()...)

	if !flagQuiet {
		for _, b := range s.report.Advisories {
			fmt.Fprintln(os.Stderr, "  "+cli.ErrorMessage(b.Err()))
		}
	}
	return s, nil
}

func newLogger(cfg config.Config, out io.Writer) (*logging.Logger, error) {
	name := cfg.General.LogLevel
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	if flagQuiet {
		level = max(level, slog.LevelError)
	}
	return logging.New(logging.Config{Level: level, Output: out}), nil
}
