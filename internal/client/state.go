package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// Page is one of the client's top-level views
type Page string

const (
	PageDownload Page = "download"
	PageQueue    Page = "queue"
	PageHistory  Page = "history"
	PageSettings Page = "settings"
)

// Pages lists the pages in navigation order
var Pages = []Page{PageDownload, PageQueue, PageHistory, PageSettings}

// HistoryFilter restricts the history list by download date
type HistoryFilter string

const (
	FilterAll   HistoryFilter = "all"
	FilterToday HistoryFilter = "today"
	FilterWeek  HistoryFilter = "week"
	FilterMonth HistoryFilter = "month"
)

// HistoryFilters lists the filters in display order
var HistoryFilters = []HistoryFilter{FilterAll, FilterToday, FilterWeek, FilterMonth}

// Connection is the last known reachability of the backend
type Connection string

const (
	ConnUnknown Connection = "unknown"
	ConnOnline  Connection = "online"
	ConnOffline Connection = "offline"
)

// Level is the severity of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a transient, dismissible message
type Notification struct {
	ID        int
	Level     Level
	Message   string
	ExpiresAt time.Time
}

// AppState is everything a renderer needs. Renderers only ever see copies.
type AppState struct {
	Page       Page
	Visible    bool
	Connection Connection
	Polling    bool

	URLInput       string
	Quality        string
	Format         string
	Preview        *domain.VideoMetadata
	PreviewLoading bool
	Submitting     bool
	LastLink       *domain.ResolvedLink

	Tasks []domain.DownloadTask

	History       []domain.HistoryEntry
	HistorySearch string
	HistoryFilter HistoryFilter

	Stats domain.Stats

	Settings     domain.Settings
	SettingsForm domain.Settings

	Notifications []Notification
}

// NewAppState returns the initial state for settings
func NewAppState(settings domain.Settings) AppState {
	return AppState{
		Page:          PageDownload,
		Visible:       true,
		Connection:    ConnUnknown,
		Quality:       settings.DefaultQuality,
		Format:        "mp4",
		HistoryFilter: FilterAll,
		Settings:      settings,
		SettingsForm:  settings,
	}
}

// Clone returns a deep copy
func (s AppState) Clone() AppState {
	out := s
	if s.Preview != nil {
		preview := *s.Preview
		preview.Formats = append([]domain.FormatDescriptor(nil), s.Preview.Formats...)
		out.Preview = &preview
	}
	if s.LastLink != nil {
		link := *s.LastLink
		out.LastLink = &link
	}
	out.Tasks = append([]domain.DownloadTask(nil), s.Tasks...)
	out.History = append([]domain.HistoryEntry(nil), s.History...)
	out.Notifications = append([]Notification(nil), s.Notifications...)
	return out
}

// VisibleHistory applies the date filter to the loaded history
func (s AppState) VisibleHistory(now time.Time) []domain.HistoryEntry {
	cutoff, ok := filterCutoff(s.HistoryFilter, now)
	if !ok {
		return s.History
	}

	var out []domain.HistoryEntry
	for _, entry := range s.History {
		if !entry.DownloadDate.Before(cutoff) {
			out = append(out, entry)
		}
	}
	return out
}

func filterCutoff(filter HistoryFilter, now time.Time) (time.Time, bool) {
	switch filter {
	case FilterToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case FilterWeek:
		return now.AddDate(0, 0, -7), true
	case FilterMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// QueueSummary returns the number of downloading and pending tasks and the
// mean progress over all tasks
func (s AppState) QueueSummary() (active, pending int, overall float64) {
	if len(s.Tasks) == 0 {
		return 0, 0, 0
	}
	var sum float64
	for _, t := range s.Tasks {
		switch t.Status {
		case domain.TaskDownloading:
			active++
		case domain.TaskPending:
			pending++
		}
		sum += t.Progress
	}
	return active, pending, sum / float64(len(s.Tasks))
}

// StatusText is the one-line application status
func (s AppState) StatusText() string {
	switch {
	case s.Connection == ConnOffline:
		return "offline"
	case s.Stats.ActiveDownloads > 0:
		return fmt.Sprintf("%d downloading", s.Stats.ActiveDownloads)
	default:
		return "ready"
	}
}

// LooksLikeYouTube is the cheap check that gates metadata previews
func LooksLikeYouTube(input string) bool {
	return strings.Contains(input, "youtube.com") || strings.Contains(input, "youtu.be")
}

// FormatSize renders a byte count as B, KB, MB or GB
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", size), "0"), ".")
	return s + " " + units[i]
}

// FormatDuration renders seconds as m:ss or h:mm:ss
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
