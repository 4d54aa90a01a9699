package browser

import "github.com/charmbracelet/lipgloss"

// Theme defines all colors used by the browser.
// Use DarkTheme() or LightTheme() to get a pre-built theme,
// or construct a custom Theme.
type Theme struct {
	Primary   lipgloss.Color // title, pending transfer
	Secondary lipgloss.Color // selected entry
	Accent    lipgloss.Color // active pane border
	Error     lipgloss.Color // failed operation
	Success   lipgloss.Color // last operation ok
	Info      lipgloss.Color // directory names
	Text      lipgloss.Color // file names
	TextMuted lipgloss.Color // hints, status line
	Highlight lipgloss.Color // selected entry background
	Border    lipgloss.Color // inactive pane border
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Secondary: lipgloss.Color("#5c9cf5"),
		Accent:    lipgloss.Color("#9d7cd8"),
		Error:     lipgloss.Color("#e06c75"),
		Success:   lipgloss.Color("#7fd88f"),
		Info:      lipgloss.Color("#56b6c2"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Highlight: lipgloss.Color("#1e1e1e"),
		Border:    lipgloss.Color("#484848"),
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Secondary: lipgloss.Color("#0550ae"),
		Accent:    lipgloss.Color("#6639ba"),
		Error:     lipgloss.Color("#cf222e"),
		Success:   lipgloss.Color("#116329"),
		Info:      lipgloss.Color("#0969da"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Highlight: lipgloss.Color("#f6f8fa"),
		Border:    lipgloss.Color("#d0d7de"),
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// styles holds all lipgloss styles derived from a Theme.
type styles struct {
	title    lipgloss.Style
	pending  lipgloss.Style
	selected lipgloss.Style
	cursor   lipgloss.Style // selection in an inactive pane
	dir      lipgloss.Style
	file     lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	status   lipgloss.Style

	pane       lipgloss.Style
	paneActive lipgloss.Color
	paneFailed lipgloss.Color
	paneIdle   lipgloss.Color
}

// newStyles builds all styles from a theme.
func newStyles(t Theme) styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		pending:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		selected: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).Background(t.Highlight),
		cursor:   lipgloss.NewStyle().Foreground(t.Secondary),
		dir:      lipgloss.NewStyle().Foreground(t.Info),
		file:     lipgloss.NewStyle().Foreground(t.Text),
		ok:       lipgloss.NewStyle().Foreground(t.Success),
		err:      lipgloss.NewStyle().Foreground(t.Error),
		status:   lipgloss.NewStyle().Foreground(t.TextMuted),

		pane:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		paneActive: t.Accent,
		paneFailed: t.Error,
		paneIdle:   t.Border,
	}
}

// paneBorder picks the border color for a pane: failures only tint the
// active pane.
func (s styles) paneBorder(active, ok bool) lipgloss.Color {
	switch {
	case active && !ok:
		return s.paneFailed
	case active:
		return s.paneActive
	default:
		return s.paneIdle
	}
}
