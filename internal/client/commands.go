package client

import "github.com/yourusername/ytdl-gateway/internal/domain"

// Command is a UI event or timer tick consumed by the Controller
type Command interface {
	isCommand()
}

type (
	// Init loads settings, checks connectivity and starts the timers
	Init struct{}

	// Navigate switches the active page
	Navigate struct{ Page Page }

	// SetVisible reports whether the view is currently shown
	SetVisible struct{ Visible bool }

	// SetURL updates the URL input; a preview is requested after the debounce
	SetURL struct{ Value string }

	// LoadPreview fetches metadata for URL if it is still the current input
	LoadPreview struct{ URL string }

	// SetQuality selects the requested quality token
	SetQuality struct{ Value string }

	// SetFormat selects the requested container token
	SetFormat struct{ Value string }

	// SubmitDownload creates a download for the current input
	SubmitDownload struct{}

	// RefreshTasks reloads the task list when the queue page is active
	RefreshTasks struct{}

	// CancelTask cancels a task and reloads the list
	CancelTask struct{ ID string }

	// SetHistorySearch updates the search text; history reloads after the debounce
	SetHistorySearch struct{ Query string }

	// LoadHistory reloads history and stats
	LoadHistory struct{}

	// SetHistoryFilter selects the date filter
	SetHistoryFilter struct{ Filter HistoryFilter }

	// DeleteHistory deletes a history entry and reloads the list
	DeleteHistory struct{ ID string }

	// RefreshStatus re-fetches stats for the status line
	RefreshStatus struct{}

	// EditSettings replaces the unsaved settings form
	EditSettings struct{ Settings domain.Settings }

	// SaveSettings persists the settings form
	SaveSettings struct{}

	// ResetSettings restores and persists the defaults
	ResetSettings struct{}

	// FetchTaskFile downloads the file of a completed task
	FetchTaskFile struct{ ID string }

	// FetchHistoryFile downloads the file of a history entry
	FetchHistoryFile struct{ ID string }

	// FileFetched reports the outcome of a file download
	FileFetched struct {
		Name string
		Path string
		Err  error
	}

	// Dismiss removes a notification
	Dismiss struct{ ID int }
)

func (Init) isCommand()             {}
func (Navigate) isCommand()         {}
func (SetVisible) isCommand()       {}
func (SetURL) isCommand()           {}
func (LoadPreview) isCommand()      {}
func (SetQuality) isCommand()       {}
func (SetFormat) isCommand()        {}
func (SubmitDownload) isCommand()   {}
func (RefreshTasks) isCommand()     {}
func (CancelTask) isCommand()       {}
func (SetHistorySearch) isCommand() {}
func (LoadHistory) isCommand()      {}
func (SetHistoryFilter) isCommand() {}
func (DeleteHistory) isCommand()    {}
func (RefreshStatus) isCommand()    {}
func (EditSettings) isCommand()     {}
func (SaveSettings) isCommand()     {}
func (ResetSettings) isCommand()    {}
func (FetchTaskFile) isCommand()    {}
func (FetchHistoryFile) isCommand() {}
func (FileFetched) isCommand()      {}
func (Dismiss) isCommand()          {}
