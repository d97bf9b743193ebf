package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Surface string
	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

var themes = []Theme{
	{
		Name:    "Slate",
		Surface: "#1e293b",
		Text:    "#e2e8f0",
		Muted:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#4ade80",
		Warning: "#fbbf24",
		Danger:  "#f87171",
	},
	{
		Name:    "Dusk",
		Surface: "#2a273f",
		Text:    "#e0def4",
		Muted:   "#6e6a86",
		Accent:  "#c4a7e7",
		Success: "#9ccfd8",
		Warning: "#f6c177",
		Danger:  "#eb6f92",
	},
}

// themeByName returns the named theme, falling back to the first palette.
func themeByName(name string) Theme {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themes[0]
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Header      lipgloss.Style
	Title       lipgloss.Style
	StatusText  lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	PaneBorder  lipgloss.Style
	FocusBorder lipgloss.Style
	Toast       lipgloss.Style
	ToastLink   lipgloss.Style
	CmdKey      lipgloss.Style
	CmdDesc     lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		StatusText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		PaneBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Muted)),

		FocusBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(t.Accent)),

		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		ToastLink: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Underline(true),

		CmdKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		CmdDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}
