// Package tui renders the download client in the terminal. The Model only
// draws snapshots and turns key presses into controller commands.
package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yourusername/ytdl-gateway/internal/client"
	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// Dispatcher accepts commands for the controller
type Dispatcher interface {
	Dispatch(cmd client.Command)
}

// stateMsg carries a controller snapshot into the program
type stateMsg client.AppState

var (
	qualities  = []string{"best", "1080p", "720p", "480p", "360p"}
	containers = []string{"mp4", "webm", "mp3"}
)

type settingField int

const (
	fieldDownloadPath settingField = iota
	fieldDefaultQuality
	fieldConcurrentDownloads
	fieldThemeMode
	fieldAnimations
	fieldRetryCount
	fieldHistoryRetention
	fieldCount
)

var fieldLabels = map[settingField]string{
	fieldDownloadPath:        "Download path",
	fieldDefaultQuality:      "Default quality",
	fieldConcurrentDownloads: "Concurrent downloads",
	fieldThemeMode:           "Theme",
	fieldAnimations:          "Animations",
	fieldRetryCount:          "Retry count",
	fieldHistoryRetention:    "History retention (d)",
}

// Model is the bubbletea model of the client
type Model struct {
	out   Dispatcher
	state client.AppState
	page  client.Page

	url       textinput.Model
	search    textinput.Model
	field     textinput.Model
	searching bool
	editing   bool

	cursor         int
	settingsCursor settingField
	lastTaskID     string

	width  int
	styles Styles
	help   help.Model
	bar    progress.Model
	now    func() time.Time
}

// New creates a model showing initial and sending commands to out
func New(out Dispatcher, initial client.AppState) Model {
	url := textinput.New()
	url.Placeholder = "https://www.youtube.com/watch?v=..."
	url.Prompt = "URL ▸ "
	url.CharLimit = 2048
	url.Focus()

	search := textinput.New()
	search.Placeholder = "search history"
	search.Prompt = "/ "

	field := textinput.New()
	field.Prompt = "› "

	m := Model{
		out:    out,
		url:    url,
		search: search,
		field:  field,
		help:   help.New(),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(24)),
		now:    time.Now,
	}
	m.applyState(initial)
	m.page = initial.Page
	if initial.LastLink != nil {
		m.lastTaskID = initial.LastLink.TaskID
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.receive(client.AppState(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if msg.Width > 20 {
			m.url.Width = msg.Width - 20
		}
		return m, nil

	case tea.FocusMsg:
		m.out.Dispatch(client.SetVisible{Visible: true})
		return m, nil

	case tea.BlurMsg:
		m.out.Dispatch(client.SetVisible{Visible: false})
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) applyState(s client.AppState) {
	m.state = s
	m.styles = NewStyles(s.Settings.ThemeMode)
	m.clampCursor()
}

// receive applies a snapshot. The page and the inputs stay local because
// snapshots lag behind typing; a newly created task is the only remote
// event that moves them.
func (m *Model) receive(s client.AppState) {
	m.applyState(s)

	if s.LastLink != nil && s.LastLink.TaskID != m.lastTaskID {
		m.lastTaskID = s.LastLink.TaskID
		m.url.Reset()
		m.page = s.Page
	}
}

func (m *Model) clampCursor() {
	n := m.listLen()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) listLen() int {
	switch m.page {
	case client.PageQueue:
		return len(m.state.Tasks)
	case client.PageHistory:
		return len(m.state.VisibleHistory(m.now()))
	}
	return 0
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// text entry swallows everything else
	if m.editing {
		return m.editKey(msg)
	}
	if m.searching {
		return m.searchKey(msg)
	}

	switch {
	case key.Matches(msg, keys.NextPage):
		m.goTo(1)
		return m, nil
	case key.Matches(msg, keys.PrevPage):
		m.goTo(-1)
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		if n := len(m.state.Notifications); n > 0 {
			m.out.Dispatch(client.Dismiss{ID: m.state.Notifications[n-1].ID})
		}
		return m, nil
	}

	switch m.page {
	case client.PageDownload:
		return m.downloadKey(msg)
	case client.PageQueue:
		return m.queueKey(msg)
	case client.PageHistory:
		return m.historyKey(msg)
	case client.PageSettings:
		return m.settingsKey(msg)
	}
	return m, nil
}

func (m *Model) goTo(step int) {
	idx := 0
	for i, p := range client.Pages {
		if p == m.page {
			idx = i
		}
	}
	n := len(client.Pages)
	m.page = client.Pages[(idx+step+n)%n]
	m.cursor = 0

	if m.page == client.PageDownload {
		m.url.Focus()
	} else {
		m.url.Blur()
	}
	if m.page == client.PageSettings {
		m.state.SettingsForm = m.state.Settings
		m.settingsCursor = 0
	}
	m.out.Dispatch(client.Navigate{Page: m.page})
}

func (m Model) downloadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		m.out.Dispatch(client.SubmitDownload{})
		return m, nil
	case key.Matches(msg, keys.Quality):
		m.state.Quality = cycle(qualities, m.state.Quality)
		m.out.Dispatch(client.SetQuality{Value: m.state.Quality})
		return m, nil
	case key.Matches(msg, keys.Format):
		m.state.Format = cycle(containers, m.state.Format)
		m.out.Dispatch(client.SetFormat{Value: m.state.Format})
		return m, nil
	}

	before := m.url.Value()
	var cmd tea.Cmd
	m.url, cmd = m.url.Update(msg)
	if m.url.Value() != before {
		m.out.Dispatch(client.SetURL{Value: m.url.Value()})
	}
	return m, cmd
}

func (m Model) queueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.state.Tasks
	switch {
	case key.Matches(msg, keys.Back):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		m.move(-1)
	case key.Matches(msg, keys.Down):
		m.move(1)
	case key.Matches(msg, keys.Refresh):
		m.out.Dispatch(client.RefreshTasks{})
	case key.Matches(msg, keys.Cancel):
		if m.cursor < len(tasks) {
			m.out.Dispatch(client.CancelTask{ID: tasks[m.cursor].ID})
		}
	case key.Matches(msg, keys.Fetch):
		if m.cursor < len(tasks) {
			m.out.Dispatch(client.FetchTaskFile{ID: tasks[m.cursor].ID})
		}
	}
	return m, nil
}

func (m Model) historyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.state.VisibleHistory(m.now())
	switch {
	case key.Matches(msg, keys.Back):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.searching = true
		m.search.SetValue(m.state.HistorySearch)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, keys.Up):
		m.move(-1)
	case key.Matches(msg, keys.Down):
		m.move(1)
	case key.Matches(msg, keys.Refresh):
		m.out.Dispatch(client.LoadHistory{})
	case key.Matches(msg, keys.Filter):
		next := client.HistoryFilter(cycle(filterNames(), string(m.state.HistoryFilter)))
		m.state.HistoryFilter = next
		m.cursor = 0
		m.out.Dispatch(client.SetHistoryFilter{Filter: next})
	case key.Matches(msg, keys.Delete):
		if m.cursor < len(entries) {
			m.out.Dispatch(client.DeleteHistory{ID: entries[m.cursor].ID})
		}
	case key.Matches(msg, keys.Fetch):
		if m.cursor < len(entries) {
			m.out.Dispatch(client.FetchHistoryFile{ID: entries[m.cursor].ID})
		}
	}
	return m, nil
}

func (m Model) searchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.state.HistorySearch = v
		m.out.Dispatch(client.SetHistorySearch{Query: v})
	}
	return m, cmd
}

func (m Model) settingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.state.SettingsForm
	switch {
	case key.Matches(msg, keys.Back):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.settingsCursor < fieldCount-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, keys.Save):
		m.state.Settings = form
		m.out.Dispatch(client.SaveSettings{})
	case key.Matches(msg, keys.Reset):
		m.state.Settings = domain.DefaultSettings()
		m.state.SettingsForm = m.state.Settings
		m.out.Dispatch(client.ResetSettings{})
	case key.Matches(msg, keys.Edit):
		switch m.settingsCursor {
		case fieldDefaultQuality:
			form.DefaultQuality = cycle(qualities, form.DefaultQuality)
			m.setForm(form)
		case fieldThemeMode:
			if form.ThemeMode == domain.ThemeDark {
				form.ThemeMode = domain.ThemeLight
			} else {
				form.ThemeMode = domain.ThemeDark
			}
			m.setForm(form)
		case fieldAnimations:
			form.EnableAnimations = !form.EnableAnimations
			m.setForm(form)
		default:
			m.editing = true
			m.field.SetValue(fieldValue(form, m.settingsCursor))
			m.field.CursorEnd()
			return m, m.field.Focus()
		}
	}
	return m, nil
}

func (m Model) editKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.field.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.field.Blur()
		if form, ok := withField(m.state.SettingsForm, m.settingsCursor, m.field.Value()); ok {
			m.setForm(form)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	return m, cmd
}

func (m *Model) setForm(form domain.Settings) {
	m.state.SettingsForm = form
	m.out.Dispatch(client.EditSettings{Settings: form})
}

func (m *Model) move(step int) {
	m.cursor += step
	m.clampCursor()
}

func fieldValue(s domain.Settings, f settingField) string {
	switch f {
	case fieldDownloadPath:
		return s.DownloadPath
	case fieldDefaultQuality:
		return s.DefaultQuality
	case fieldConcurrentDownloads:
		return strconv.Itoa(s.ConcurrentDownloads)
	case fieldThemeMode:
		return s.ThemeMode
	case fieldAnimations:
		if s.EnableAnimations {
			return "on"
		}
		return "off"
	case fieldRetryCount:
		return strconv.Itoa(s.RetryCount)
	case fieldHistoryRetention:
		return strconv.Itoa(s.HistoryRetention)
	}
	return ""
}

// withField returns s with the text field f set to value; numbers must be
// positive and paths non-empty
func withField(s domain.Settings, f settingField, value string) (domain.Settings, bool) {
	value = strings.TrimSpace(value)
	if f == fieldDownloadPath {
		if value == "" {
			return s, false
		}
		s.DownloadPath = value
		return s, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return s, false
	}
	switch f {
	case fieldConcurrentDownloads:
		s.ConcurrentDownloads = n
	case fieldRetryCount:
		s.RetryCount = n
	case fieldHistoryRetention:
		s.HistoryRetention = n
	default:
		return s, false
	}
	return s, true
}

func filterNames() []string {
	names := make([]string, len(client.HistoryFilters))
	for i, f := range client.HistoryFilters {
		names[i] = string(f)
	}
	return names
}

// cycle returns the value after current in values, wrapping around
func cycle(values []string, current string) string {
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
