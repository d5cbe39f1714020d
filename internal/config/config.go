package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/orgtrack/internal/budget"
	"github.com/theirongolddev/orgtrack/internal/logging"
	"github.com/theirongolddev/orgtrack/internal/tasks"
	"github.com/theirongolddev/orgtrack/internal/tui/theme"
)

// Config holds all orgtrack configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Tasks      TasksConfig      `toml:"tasks"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	RootName string `toml:"root_name"`
	LogLevel string `toml:"log_level"`
}

// BudgetConfig holds category tree settings.
type BudgetConfig struct {
	// Presets maps a category name to the limit it gets when created
	// without one.
	Presets map[string]float64 `toml:"presets,omitempty"`
}

// TasksConfig holds dependency graph settings.
type TasksConfig struct {
	DefaultPriority string `toml:"default_priority"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			RootName: budget.DefaultRootName,
			LogLevel: "warn",
		},
		Budget: BudgetConfig{
			Presets: budget.DefaultPresets(),
		},
		Tasks: TasksConfig{
			DefaultPriority: tasks.PriorityMedium.String(),
		},
		Appearance: AppearanceConfig{
			Theme: theme.FlexokiDark.Name,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orgtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "orgtrack")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A [budget.presets] table in the file replaces the defaults wholesale.
	cfg.Budget.Presets = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if !md.IsDefined("budget", "presets") {
		cfg.Budget.Presets = budget.DefaultPresets()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.General.RootName) == "" {
		problems = append(problems, "general.root_name cannot be empty")
	}
	if _, err := logging.ParseLevel(c.General.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("general.log_level: %v", err))
	}

	names := make([]string, 0, len(c.Budget.Presets))
	for name := range c.Budget.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		v := c.Budget.Presets[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			problems = append(problems, fmt.Sprintf("budget.presets.%s: limit %v must be zero or positive", name, v))
		}
	}

	if c.Tasks.DefaultPriority != "" {
		if _, err := tasks.ParsePriority(c.Tasks.DefaultPriority); err != nil {
			problems = append(problems, fmt.Sprintf("tasks.default_priority %q must be High, Medium or Low", c.Tasks.DefaultPriority))
		}
	}

	if _, ok := theme.Lookup(c.Appearance.Theme); !ok {
		problems = append(problems, fmt.Sprintf("appearance.theme %q must be one of %v", c.Appearance.Theme, theme.Names()))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DefaultPriority returns the configured default task priority, Medium when
// unset.
func (c Config) DefaultPriority() tasks.Priority {
	p, err := tasks.ParsePriority(c.Tasks.DefaultPriority)
	if err != nil {
		return tasks.PriorityMedium
	}
	return p
}
