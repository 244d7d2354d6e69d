package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

type palette struct {
	accent  lipgloss.Color
	text    lipgloss.Color
	muted   lipgloss.Color
	success lipgloss.Color
	warning lipgloss.Color
	danger  lipgloss.Color
	info    lipgloss.Color
	border  lipgloss.Color
}

var (
	lightPalette = palette{
		accent:  lipgloss.Color("#CC0000"),
		text:    lipgloss.Color("#1F1F1F"),
		muted:   lipgloss.Color("#6B6B6B"),
		success: lipgloss.Color("#1E8E3E"),
		warning: lipgloss.Color("#B06000"),
		danger:  lipgloss.Color("#C5221F"),
		info:    lipgloss.Color("#1967D2"),
		border:  lipgloss.Color("#D0D0D0"),
	}
	darkPalette = palette{
		accent:  lipgloss.Color("#FF4E45"),
		text:    lipgloss.Color("#EDEDED"),
		muted:   lipgloss.Color("#9A9A9A"),
		success: lipgloss.Color("#81C995"),
		warning: lipgloss.Color("#FDD663"),
		danger:  lipgloss.Color("#F28B82"),
		info:    lipgloss.Color("#8AB4F8"),
		border:  lipgloss.Color("#3C3C3C"),
	}
)

// Styles holds the rendered look for one theme
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Label     lipgloss.Style
	Body      lipgloss.Style
	Online    lipgloss.Style
	Offline   lipgloss.Style

	notes map[client.Level]lipgloss.Style
}

// NewStyles builds the styles for a theme mode; unknown modes use the light theme
func NewStyles(theme string) Styles {
	p := lightPalette
	if theme == domain.ThemeDark {
		p = darkPalette
	}

	tab := lipgloss.NewStyle().Padding(0, 1).Foreground(p.muted)
	note := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent).Padding(0, 1),
		Tab:       tab,
		ActiveTab: tab.Foreground(p.accent).Bold(true).Underline(true),
		Text:      lipgloss.NewStyle().Foreground(p.text),
		Muted:     lipgloss.NewStyle().Foreground(p.muted),
		Selected:  lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		Label:     lipgloss.NewStyle().Foreground(p.muted).Width(22),
		Body: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		Online:  lipgloss.NewStyle().Foreground(p.success),
		Offline: lipgloss.NewStyle().Foreground(p.danger),
		notes: map[client.Level]lipgloss.Style{
			client.LevelInfo:    note.Foreground(p.info),
			client.LevelSuccess: note.Foreground(p.success),
			client.LevelWarning: note.Foreground(p.warning),
			client.LevelError:   note.Foreground(p.danger),
		},
	}
}

// Note returns the style for a notification level
func (s Styles) Note(level client.Level) lipgloss.Style {
	if style, ok := s.notes[level]; ok {
		return style
	}
	return s.notes[client.LevelInfo]
}
