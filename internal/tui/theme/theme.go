// Package theme defines color themes for the headway planner TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	Border        lipgloss.Color // Subtle borders
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	Green         lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
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
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
	Blue:         lipgloss.Color("#4385BE"),
	Yellow:       lipgloss.Color("#D0A215"),
	Magenta:      lipgloss.Color("#CE5D97"),
}

// FlexokiLight is the paper-white companion to FlexokiDark.
var FlexokiLight = Theme{
	Name:         "flexoki-light",
	Background:   lipgloss.Color("#FFFCF0"),
	Surface:      lipgloss.Color("#F2F0E5"),
	SurfaceHover: lipgloss.Color("#E6E4D9"),
	Border:       lipgloss.Color("#DAD8CE"),
	BorderAccent: lipgloss.Color("#24837B"),
	TextDim:      lipgloss.Color("#B7B5AC"),
	TextMuted:    lipgloss.Color("#6F6E69"),
	TextPrimary:  lipgloss.Color("#100F0F"),
	Accent:       lipgloss.Color("#24837B"),
	AccentBright: lipgloss.Color("#2F968D"),
	Green:        lipgloss.Color("#66800B"),
	Orange:       lipgloss.Color("#BC5215"),
	Red:          lipgloss.Color("#AF3029"),
	Blue:         lipgloss.Color("#205EA6"),
	Yellow:       lipgloss.Color("#AD8301"),
	Magenta:      lipgloss.Color("#A02F6F"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
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
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
	Blue:         lipgloss.Color("4"),
	Yellow:       lipgloss.Color("3"),
	Magenta:      lipgloss.Color("5"),
}

// All available themes.
var All = []Theme{FlexokiDark, FlexokiLight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
