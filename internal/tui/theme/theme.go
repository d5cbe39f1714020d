// Package theme defines the color themes shared by the orgtrack dashboard and
// the plain terminal renderer.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the color roles used across the UI.
type Theme struct {
	Name         string
	Background   lipgloss.Color
	Surface      lipgloss.Color // panels and the status bar
	SurfaceHover lipgloss.Color // active tab, selected row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused panel
	TextDim      lipgloss.Color // hints, disabled
	TextMuted    lipgloss.Color // labels, metadata
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Budget status colors.
	Within lipgloss.Color
	Near   lipgloss.Color // above 80% of the limit
	Over   lipgloss.Color

	// Task priority colors.
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Within:       lipgloss.Color("#879A39"),
	Near:         lipgloss.Color("#DA702C"),
	Over:         lipgloss.Color("#D14D41"),
	High:         lipgloss.Color("#CE5D97"),
	Medium:       lipgloss.Color("#D0A215"),
	Low:          lipgloss.Color("#4385BE"),
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   lipgloss.Color("#1E1E2E"),
	Surface:      lipgloss.Color("#313244"),
	SurfaceHover: lipgloss.Color("#45475A"),
	Border:       lipgloss.Color("#585B70"),
	BorderAccent: lipgloss.Color("#89B4FA"),
	TextDim:      lipgloss.Color("#6C7086"),
	TextMuted:    lipgloss.Color("#A6ADC8"),
	TextPrimary:  lipgloss.Color("#CDD6F4"),
	Accent:       lipgloss.Color("#89B4FA"),
	AccentBright: lipgloss.Color("#B4D0FB"),
	Within:       lipgloss.Color("#A6E3A1"),
	Near:         lipgloss.Color("#FAB387"),
	Over:         lipgloss.Color("#F38BA8"),
	High:         lipgloss.Color("#F5C2E7"),
	Medium:       lipgloss.Color("#F9E2AF"),
	Low:          lipgloss.Color("#94E2D5"),
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Within:       lipgloss.Color("#9ECE6A"),
	Near:         lipgloss.Color("#FF9E64"),
	Over:         lipgloss.Color("#F7768E"),
	High:         lipgloss.Color("#BB9AF7"),
	Medium:       lipgloss.Color("#E0AF68"),
	Low:          lipgloss.Color("#7DCFFF"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Within:       lipgloss.Color("2"),
	Near:         lipgloss.Color("3"),
	Over:         lipgloss.Color("1"),
	High:         lipgloss.Color("5"),
	Medium:       lipgloss.Color("3"),
	Low:          lipgloss.Color("4"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names lists the theme names in display order.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = t.Name
	}
	return out
}

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// UsageColor picks the budget status color for a spend fraction, where 1
// means the limit is fully used.
func (t Theme) UsageColor(fraction float64) lipgloss.Color {
	switch {
	case fraction > 1:
		return t.Over
	case fraction > 0.8:
		return t.Near
	default:
		return t.Within
	}
}
