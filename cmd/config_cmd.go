package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/cli"
	"github.com/theirongolddev/orgtrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Root category: %s\n", cfg.General.RootName)
	fmt.Fprintf(out, "    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Budget presets]")
	if len(cfg.Budget.Presets) == 0 {
		fmt.Fprintln(out, "    none")
	}
	names := make([]string, 0, len(cfg.Budget.Presets))
	for name := range cfg.Budget.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "    %-14s %s\n", name, cli.FormatAmount(cfg.Budget.Presets[name]))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Tasks]")
	fmt.Fprintf(out, "    Default priority: %s\n", cfg.DefaultPriority())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `orgtrack setup` to reconfigure.")
	return nil
}
