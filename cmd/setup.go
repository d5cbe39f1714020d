package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/orgtrack/internal/config"
	"github.com/theirongolddev/orgtrack/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Never overwrite a config file that failed to load.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%w (fix or remove %s, then rerun setup)", err, config.ConfigPath())
	}

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	vals.Apply(&cfg)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `orgtrack setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
