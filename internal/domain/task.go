package domain

import "time"

// TaskStatus represents the status of a download task as reported by the backend
type TaskStatus string

const (
	TaskPending     TaskStatus = "pending"
	TaskDownloading TaskStatus = "downloading"
	TaskPaused      TaskStatus = "paused"
	TaskCompleted   TaskStatus = "completed"
	TaskFailed      TaskStatus = "failed"
	TaskCancelled   TaskStatus = "cancelled"
)

// IsActive returns true while the backend may still change the task
func (s TaskStatus) IsActive() bool {
	return s == TaskPending || s == TaskDownloading || s == TaskPaused
}

// IsTerminal returns true for completed, failed and cancelled tasks
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskFailed || s == TaskCancelled
}

// DisplayName returns a human readable status
func (s TaskStatus) DisplayName() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskDownloading:
		return "Downloading"
	case TaskPaused:
		return "Paused"
	case TaskCompleted:
		return "Completed"
	case TaskFailed:
		return "Failed"
	case TaskCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// DownloadTask is the client-side projection of a backend download task
type DownloadTask struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Channel   string     `json:"channel"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	Quality   string     `json:"quality"`
	Format    string     `json:"format"`
	Status    TaskStatus `json:"status"`
	Progress  float64    `json:"progress"`
	Speed     string     `json:"speed,omitempty"`
	Error     string     `json:"error,omitempty"`
	Filename  string     `json:"filename,omitempty"`
}

// DeliveryName returns the file name used to fetch the finished file
func (t DownloadTask) DeliveryName() string {
	if t.Filename != "" {
		return t.Filename
	}
	return t.Title + ".mp4"
}

// HistoryEntry is the client-side projection of a backend history record
type HistoryEntry struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Quality      string    `json:"quality"`
	Format       string    `json:"format"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"fileSize"`
	DownloadDate time.Time `json:"downloadDate"`
}

// Stats represents aggregate download statistics from the backend
type Stats struct {
	TotalDownloads  int64 `json:"totalDownloads"`
	TotalSize       int64 `json:"totalSize"`
	ThisMonth       int64 `json:"thisMonth"`
	ActiveDownloads int64 `json:"activeDownloads"`
}
