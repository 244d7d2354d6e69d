package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

var pageTitles = map[client.Page]string{
	client.PageDownload: "Download",
	client.PageQueue:    "Queue",
	client.PageHistory:  "History",
	client.PageSettings: "Settings",
}

// View implements tea.Model
func (m Model) View() string {
	var body string
	switch m.page {
	case client.PageQueue:
		body = m.queueView()
	case client.PageHistory:
		body = m.historyView()
	case client.PageSettings:
		body = m.settingsView()
	default:
		body = m.downloadView()
	}

	bodyStyle := m.styles.Body
	if m.width > 4 {
		bodyStyle = bodyStyle.Width(m.width - 2)
	}

	sections := []string{m.headerView(), bodyStyle.Render(body)}
	if notes := m.notificationsView(); notes != "" {
		sections = append(sections, notes)
	}
	sections = append(sections, m.help.ShortHelpView(m.helpKeys()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	tabs := []string{m.styles.Title.Render("YouTube Downloader")}
	for _, p := range client.Pages {
		style := m.styles.Tab
		if p == m.page {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(pageTitles[p]))
	}

	status := m.state.StatusText()
	statusStyle := m.styles.Online
	if m.state.Connection == client.ConnOffline {
		statusStyle = m.styles.Offline
	}
	tabs = append(tabs, statusStyle.Render("● "+status))

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) downloadView() string {
	s := m.state
	var b strings.Builder

	b.WriteString(m.url.View())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s   %s %s\n",
		m.styles.Muted.Render("Quality:"), m.styles.Text.Render(s.Quality),
		m.styles.Muted.Render("Format:"), m.styles.Text.Render(s.Format))

	switch {
	case s.PreviewLoading:
		b.WriteString(m.styles.Muted.Render("\nLoading video info..."))
	case s.Preview != nil:
		b.WriteString("\n")
		b.WriteString(m.previewView(s.Preview))
	}

	if s.Submitting {
		b.WriteString(m.styles.Muted.Render("\nResolving download link..."))
	} else if s.LastLink != nil {
		fmt.Fprintf(&b, "\n%s\n%s %s\n%s\n",
			m.styles.Selected.Render(s.LastLink.Message),
			m.styles.Muted.Render("File:"), m.styles.Text.Render(s.LastLink.Filename),
			m.styles.Muted.Render(s.LastLink.DownloadURL))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m Model) previewView(meta *domain.VideoMetadata) string {
	var b strings.Builder
	b.WriteString(m.styles.Selected.Render(meta.Title))
	b.WriteString("\n")

	details := []string{meta.Author}
	if meta.Duration != nil {
		details = append(details, client.FormatDuration(*meta.Duration))
	}
	details = append(details, fmt.Sprintf("%d views", meta.Views))
	if meta.UploadDate != "" {
		details = append(details, meta.UploadDate)
	}
	b.WriteString(m.styles.Muted.Render(strings.Join(details, " · ")))
	b.WriteString("\n")

	for _, f := range meta.Formats {
		line := fmt.Sprintf("  %-8s %-5s", f.Quality, f.Container)
		if f.Filesize != nil {
			line += " " + client.FormatSize(*f.Filesize)
		}
		b.WriteString(m.styles.Text.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) queueView() string {
	s := m.state
	active, pending, overall := s.QueueSummary()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n",
		m.styles.Muted.Render(fmt.Sprintf("%d downloading · %d pending", active, pending)),
		m.bar.ViewAs(overall/100))

	if len(s.Tasks) == 0 {
		b.WriteString(m.styles.Muted.Render("No downloads in the queue"))
		return b.String()
	}

	for i, t := range s.Tasks {
		marker := "  "
		title := m.styles.Text.Render(t.Title)
		if i == m.cursor {
			marker = m.styles.Selected.Render("▸ ")
			title = m.styles.Selected.Render(t.Title)
		}
		fmt.Fprintf(&b, "%s%s\n", marker, title)

		line := fmt.Sprintf("%s  %s %s  %s", t.Status.DisplayName(), t.Quality, t.Format, m.bar.ViewAs(t.Progress/100))
		if t.Speed != "" {
			line += "  " + t.Speed
		}
		b.WriteString("  " + m.styles.Muted.Render(line) + "\n")
		if t.Error != "" {
			b.WriteString("  " + m.styles.Note(client.LevelError).Render(t.Error) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) historyView() string {
	s := m.state
	var b strings.Builder

	if m.searching {
		b.WriteString(m.search.View())
	} else if s.HistorySearch != "" {
		b.WriteString(m.styles.Muted.Render("Search: " + s.HistorySearch))
	} else {
		b.WriteString(m.styles.Muted.Render("Press / to search"))
	}
	b.WriteString("\n")

	var filters []string
	for _, f := range client.HistoryFilters {
		style := m.styles.Tab
		if f == s.HistoryFilter {
			style = m.styles.ActiveTab
		}
		filters = append(filters, style.Render(string(f)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, filters...))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n\n", m.styles.Muted.Render(fmt.Sprintf(
		"%d downloads · %s total · %d this month",
		s.Stats.TotalDownloads, client.FormatSize(s.Stats.TotalSize), s.Stats.ThisMonth)))

	entries := s.VisibleHistory(m.now())
	if len(entries) == 0 {
		b.WriteString(m.styles.Muted.Render("No download history"))
		return b.String()
	}

	for i, e := range entries {
		marker := "  "
		title := m.styles.Text.Render(e.Title)
		if i == m.cursor {
			marker = m.styles.Selected.Render("▸ ")
			title = m.styles.Selected.Render(e.Title)
		}
		fmt.Fprintf(&b, "%s%s\n", marker, title)
		fmt.Fprintf(&b, "  %s\n", m.styles.Muted.Render(fmt.Sprintf("%s · %s %s · %s · %s",
			e.Channel, e.Quality, e.Format, client.FormatSize(e.FileSize),
			e.DownloadDate.Local().Format("2006-01-02 15:04"))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) settingsView() string {
	form := m.state.SettingsForm
	var b strings.Builder

	for f := settingField(0); f < fieldCount; f++ {
		marker := "  "
		if f == m.settingsCursor {
			marker = m.styles.Selected.Render("▸ ")
		}
		value := m.styles.Text.Render(fieldValue(form, f))
		if m.editing && f == m.settingsCursor {
			value = m.field.View()
		}
		fmt.Fprintf(&b, "%s%s%s\n", marker, m.styles.Label.Render(fieldLabels[f]), value)
	}

	if form != m.state.Settings {
		b.WriteString(m.styles.Note(client.LevelWarning).Render("\nUnsaved changes, press s to save"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) notificationsView() string {
	var lines []string
	for _, n := range m.state.Notifications {
		lines = append(lines, m.styles.Note(n.Level).Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpKeys() []key.Binding {
	if m.editing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	if m.searching {
		return []key.Binding{key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "done"))}
	}

	nav := []key.Binding{keys.NextPage, keys.PrevPage}
	switch m.page {
	case client.PageQueue:
		return append(nav, keys.Up, keys.Down, keys.Cancel, keys.Fetch, keys.Refresh, keys.Back)
	case client.PageHistory:
		return append(nav, keys.Search, keys.Filter, keys.Delete, keys.Fetch, keys.Back)
	case client.PageSettings:
		return append(nav, keys.Edit, keys.Save, keys.Reset, keys.Back)
	default:
		return append(nav, keys.Submit, keys.Quality, keys.Format, keys.Quit)
	}
}
