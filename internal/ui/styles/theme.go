// Package styles holds the colour palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour palette and pre-built styles.
type Theme struct {
	Primary   lipgloss.Color // accent, active controls, start of the slider gradient
	Secondary lipgloss.Color // end of the slider gradient

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	Success lipgloss.Color // playing
	Warning lipgloss.Color // paused, degraded features
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built styles for the player screen.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Button   lipgloss.Style // inactive transport button
	Pressed  lipgloss.Style // button matching the current state
	Playing  lipgloss.Style
	Paused   lipgloss.Style
	Stopped  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	PopupBox lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	Success: lipgloss.Color("#42b883"),
	Warning: lipgloss.Color("#f1a208"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	button := lipgloss.NewStyle().
		Foreground(t.FgMuted).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.FgSubtle).
		Padding(0, 1)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Button:  button,
		Pressed: button.Foreground(t.Primary).BorderForeground(t.Primary).Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Stopped: lipgloss.NewStyle().Foreground(t.FgMuted).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Help:    lipgloss.NewStyle().Foreground(t.FgSubtle),
		HelpKey: lipgloss.NewStyle().Foreground(t.FgMuted).Bold(true),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 2),
	}
}
