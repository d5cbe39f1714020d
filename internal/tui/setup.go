package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/orgtrack/internal/config"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	RootName        string
	Theme           string
	DefaultPriority string
	LogLevel        string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		RootName:        cfg.General.RootName,
		Theme:           cfg.Appearance.Theme,
		DefaultPriority: cfg.DefaultPriority().String(),
		LogLevel:        cfg.General.LogLevel,
	}
}

// Apply copies the answers onto cfg.
func (v SetupValues) Apply(cfg *config.Config) {
	if name := strings.TrimSpace(v.RootName); name != "" {
		cfg.General.RootName = name
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	if v.DefaultPriority != "" {
		cfg.Tasks.DefaultPriority = v.DefaultPriority
	}
	if v.LogLevel != "" {
		cfg.General.LogLevel = v.LogLevel
	}
}

// NewSetupForm builds the first-run wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to orgtrack").
				Description("Budgets and task dependencies from one terminal.\n\nLet's set up a few things."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Root category name").
				Description("Every budget category hangs off this one.").
				Value(&v.RootName).
				Validate(required("root name")),
			huh.NewSelect[string]().
				Title("Default task priority").
				Options(
					huh.NewOption("High", tasks.PriorityHigh.String()),
					huh.NewOption("Medium", tasks.PriorityMedium.String()),
					huh.NewOption("Low", tasks.PriorityLow.String()),
				).
				Value(&v.DefaultPriority),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Description("Logs go to stderr.").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithTheme(huh.ThemeDracula())
}
