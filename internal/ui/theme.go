package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sqmw/repofolio/internal/project"
	"github.com/sqmw/repofolio/internal/state"
)

// Theme defines colors for the UI.
type Theme struct {
	Name state.Theme

	// Base colors
	Background string
	Surface    string
	SurfaceAlt string

	// Selection
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		CardFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(t.Border)).
			PaddingLeft(1),

		Chip: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		ChipActive: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 1),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Italic(true),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header     lipgloss.Style
	Footer     lipgloss.Style
	Logo       lipgloss.Style
	Selected   lipgloss.Style
	Card       lipgloss.Style
	CardFocus  lipgloss.Style
	Sidebar    lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Tag        lipgloss.Style
}

// GetTheme returns the palette for name, defaulting to light.
func GetTheme(name state.Theme) Theme {
	if name == state.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// GitHub Primer light palette
	return Theme{
		Name: state.ThemeLight,

		Background: "#ffffff",
		Surface:    "#f6f8fa",
		SurfaceAlt: "#eaeef2",

		SelectionBg:   "#ddf4ff",
		SelectionText: "#0969da",

		Border:      "#d0d7de",
		BorderFocus: "#0969da",

		Text:    "#1f2328",
		Muted:   "#59636e",
		Faint:   "#818b98",
		Accent:  "#0969da",
		Success: "#1a7f37",
		Warning: "#9a6700",
		Danger:  "#d1242f",
		Info:    "#8250df",
	}
}

func darkTheme() Theme {
	// GitHub Primer dark palette
	return Theme{
		Name: state.ThemeDark,

		Background: "#0d1117",
		Surface:    "#161b22",
		SurfaceAlt: "#21262d",

		SelectionBg:   "#1f6feb",
		SelectionText: "#f0f6fc",

		Border:      "#30363d",
		BorderFocus: "#58a6ff",

		Text:    "#e6edf3",
		Muted:   "#9198a1",
		Faint:   "#6e7681",
		Accent:  "#58a6ff",
		Success: "#3fb950",
		Warning: "#d29922",
		Danger:  "#f85149",
		Info:    "#bc8cff",
	}
}

// languageColors follows the linguist colors GitHub shows next to a repo.
var languageColors = map[string]string{
	"Go":               "#00ADD8",
	"JavaScript":       "#f1e05a",
	"TypeScript":       "#3178c6",
	"Python":           "#3572A5",
	"Rust":             "#dea584",
	"C":                "#555555",
	"C++":              "#f34b7d",
	"C#":               "#178600",
	"Java":             "#b07219",
	"Kotlin":           "#A97BFF",
	"Swift":            "#F05138",
	"Dart":             "#00B4AB",
	"Ruby":             "#701516",
	"PHP":              "#4F5D95",
	"Shell":            "#89e051",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"Vue":              "#41b883",
	"Lua":              "#000080",
	"Jupyter Notebook": "#DA5B0B",

	project.OtherLanguage: "#8b949e",
}

// LanguageColor returns the swatch color for a language, falling back to the
// "Others" color.
func LanguageColor(lang string) string {
	if c, ok := languageColors[lang]; ok {
		return c
	}
	return languageColors[project.OtherLanguage]
}
