package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

type recorder struct {
	commands []client.Command
}

func (r *recorder) Dispatch(cmd client.Command) {
	r.commands = append(r.commands, cmd)
}

func (r *recorder) last() client.Command {
	if len(r.commands) == 0 {
		return nil
	}
	return r.commands[len(r.commands)-1]
}

func newTestModel() (Model, *recorder) {
	rec := &recorder{}
	return New(rec, client.NewAppState(domain.DefaultSettings())), rec
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_TypingDispatchesURL(t *testing.T) {
	m, rec := newTestModel()

	m = send(m, runes("h"), runes("t"))
	assert.Equal(t, []client.Command{
		client.SetURL{Value: "h"},
		client.SetURL{Value: "ht"},
	}, rec.commands)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, client.SubmitDownload{}, rec.last())
}

func TestModel_QualityAndFormatCycle(t *testing.T) {
	m, rec := newTestModel()

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, client.SetQuality{Value: "1080p"}, rec.last())

	m = send(m, tea.KeyMsg{Type: tea.KeyCtrlF}, tea.KeyMsg{Type: tea.KeyCtrlF})
	assert.Equal(t, client.SetFormat{Value: "mp3"}, rec.last())
	assert.Equal(t, "mp3", m.state.Format)
}

func TestModel_PageNavigation(t *testing.T) {
	m, rec := newTestModel()

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, client.Navigate{Page: client.PageQueue}, rec.last())
	assert.False(t, m.url.Focused())

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, client.Navigate{Page: client.PageSettings}, rec.last())

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, client.Navigate{Page: client.PageDownload}, rec.last())
	assert.True(t, m.url.Focused())
}

func TestModel_QueueActions(t *testing.T) {
	m, rec := newTestModel()
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})

	state := client.NewAppState(domain.DefaultSettings())
	state.Page = client.PageQueue
	state.Tasks = []domain.DownloadTask{
		{ID: "a", Title: "First", Status: domain.TaskDownloading, Progress: 30},
		{ID: "b", Title: "Second", Status: domain.TaskCompleted, Progress: 100},
	}
	m = send(m, stateMsg(state))

	m = send(m, runes("j"), runes("c"))
	assert.Equal(t, client.CancelTask{ID: "b"}, rec.last())

	m = send(m, runes("j"), runes("f"))
	assert.Equal(t, client.FetchTaskFile{ID: "b"}, rec.last())

	m = send(m, runes("k"), runes("x"))
	assert.Equal(t, client.CancelTask{ID: "a"}, rec.last())

	view := m.View()
	assert.Contains(t, view, "First")
	assert.Contains(t, view, "Second")
	assert.Contains(t, view, "1 downloading")
}

func TestModel_HistorySearchAndFilter(t *testing.T) {
	m, rec := newTestModel()
	m.now = func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	m = send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, client.Navigate{Page: client.PageHistory}, rec.last())

	m = send(m, runes("/"), runes("r"), runes("x"))
	assert.True(t, m.searching)
	assert.Equal(t, client.SetHistorySearch{Query: "rx"}, rec.last())

	// keys go to the search box until it is closed
	m = send(m, runes("d"))
	assert.Equal(t, client.SetHistorySearch{Query: "rxd"}, rec.last())
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)

	m = send(m, runes("t"))
	assert.Equal(t, client.SetHistoryFilter{Filter: client.FilterToday}, rec.last())

	state := client.NewAppState(domain.DefaultSettings())
	state.Page = client.PageHistory
	state.HistoryFilter = client.FilterToday
	state.History = []domain.HistoryEntry{
		{ID: "old", Title: "Old", DownloadDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "new", Title: "New", DownloadDate: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)},
	}
	m = send(m, stateMsg(state))

	m = send(m, runes("d"))
	assert.Equal(t, client.DeleteHistory{ID: "new"}, rec.last())

	view := m.View()
	assert.Contains(t, view, "New")
	assert.NotContains(t, view, "Old")
}

func TestModel_SettingsEditing(t *testing.T) {
	m, rec := newTestModel()
	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, client.Navigate{Page: client.PageSettings}, rec.last())

	// download path: edit as text
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.editing)
	m.field.SetValue("/srv/videos")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.editing)

	edit, ok := rec.last().(client.EditSettings)
	require.True(t, ok)
	assert.Equal(t, "/srv/videos", edit.Settings.DownloadPath)

	// theme toggles in place
	m = send(m, runes("j"), runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	edit, ok = rec.last().(client.EditSettings)
	require.True(t, ok)
	assert.Equal(t, domain.ThemeDark, edit.Settings.ThemeMode)
	assert.Equal(t, "/srv/videos", edit.Settings.DownloadPath)

	// invalid numbers are rejected
	count := len(rec.commands)
	m = send(m, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	m.field.SetValue("zero")
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Len(t, rec.commands, count)

	assert.Contains(t, m.View(), "Unsaved changes")

	m = send(m, runes("s"))
	assert.Equal(t, client.SaveSettings{}, rec.last())

	m = send(m, runes("R"))
	assert.Equal(t, client.ResetSettings{}, rec.last())
	assert.Equal(t, domain.DefaultSettings(), m.state.SettingsForm)
}

func TestModel_NewTaskSwitchesToQueue(t *testing.T) {
	m, _ := newTestModel()
	m = send(m, runes("u"))
	require.Equal(t, "u", m.url.Value())

	state := client.NewAppState(domain.DefaultSettings())
	state.Page = client.PageQueue
	state.LastLink = &domain.ResolvedLink{TaskID: "1_abc", Filename: "x.mp4"}
	m = send(m, stateMsg(state))

	assert.Equal(t, client.PageQueue, m.page)
	assert.Empty(t, m.url.Value())

	// later snapshots do not move the page again
	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, stateMsg(state))
	assert.Equal(t, client.PageHistory, m.page)
}

func TestModel_FocusAndDismiss(t *testing.T) {
	m, rec := newTestModel()

	m = send(m, tea.BlurMsg{})
	assert.Equal(t, client.SetVisible{Visible: false}, rec.last())
	m = send(m, tea.FocusMsg{})
	assert.Equal(t, client.SetVisible{Visible: true}, rec.last())

	state := client.NewAppState(domain.DefaultSettings())
	state.Notifications = []client.Notification{
		{ID: 1, Level: client.LevelInfo, Message: "one"},
		{ID: 2, Level: client.LevelError, Message: "two"},
	}
	m = send(m, stateMsg(state))
	assert.Contains(t, m.View(), "two")

	m = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, client.Dismiss{ID: 2}, rec.last())
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	// q is text on the download page and quits elsewhere
	m = send(m, runes("q"))
	assert.Equal(t, "q", m.url.Value())

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNewStyles(t *testing.T) {
	light := NewStyles(domain.ThemeLight)
	dark := NewStyles(domain.ThemeDark)
	assert.NotEqual(t, light.Selected.GetForeground(), dark.Selected.GetForeground())
	assert.Equal(t, light.Note(client.LevelInfo).GetForeground(), light.Note("unknown").GetForeground())
}

func TestCycle(t *testing.T) {
	assert.Equal(t, "720p", cycle(qualities, "1080p"))
	assert.Equal(t, "best", cycle(qualities, "360p"))
	assert.Equal(t, "best", cycle(qualities, "weird"))
}
