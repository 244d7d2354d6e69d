package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

const commandBuffer = 64

// Controller owns the AppState. Commands are applied one at a time, either
// by Run or by direct calls to Handle; timers only enqueue commands.
type Controller struct {
	backend  Backend
	settings *SettingsService
	config   domain.ClientConfig
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	state    AppState
	nextNote int
	onChange func(AppState)

	commands chan Command
	done     chan struct{}
	stopOnce sync.Once

	taskPoller   *Poller
	statusPoller *Poller
	preview      *Debouncer
	search       *Debouncer
}

// NewController creates a controller. Call Run (or Handle(Init{})) to start it.
func NewController(backend Backend, settings *SettingsService, config domain.ClientConfig, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		backend:  backend,
		settings: settings,
		config:   config,
		logger:   logger,
		now:      time.Now,
		state:    NewAppState(domain.DefaultSettings()),
		commands: make(chan Command, commandBuffer),
		done:     make(chan struct{}),
		preview:  NewDebouncer(config.PreviewDebounce),
		search:   NewDebouncer(config.SearchDebounce),
	}
	c.taskPoller = NewPoller(config.PollInterval, func() { c.tryDispatch(RefreshTasks{}) })
	c.statusPoller = NewPoller(config.StatusInterval, func() { c.tryDispatch(RefreshStatus{}) })
	return c
}

// OnChange registers the renderer callback. It receives a copy of the state
// after every applied command.
func (c *Controller) OnChange(fn func(AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Dispatch enqueues cmd for Run. It blocks while the queue is full and
// drops cmd once the controller has stopped.
func (c *Controller) Dispatch(cmd Command) {
	select {
	case c.commands <- cmd:
	case <-c.done:
	}
}

// tryDispatch enqueues cmd unless the queue is full; used for timer ticks
func (c *Controller) tryDispatch(cmd Command) {
	select {
	case c.commands <- cmd:
	case <-c.done:
	default:
		c.logger.Debug("Dropping command, queue full", zap.String("command", fmt.Sprintf("%T", cmd)))
	}
}

// Run applies Init, then queued commands until ctx is done
func (c *Controller) Run(ctx context.Context) error {
	defer c.Stop()

	c.Handle(ctx, Init{})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-c.commands:
			c.Handle(ctx, cmd)
		}
	}
}

// Stop halts all timers and rejects further commands
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		c.taskPoller.Stop()
		c.statusPoller.Stop()
		c.preview.Cancel()
		c.search.Cancel()
	})
}

// Handle applies one command synchronously and notifies the renderer
func (c *Controller) Handle(ctx context.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case Init:
		c.init(ctx)
	case Navigate:
		c.navigate(ctx, cmd.Page)
	case SetVisible:
		c.setVisible(ctx, cmd.Visible)
	case SetURL:
		c.setURL(cmd.Value)
	case LoadPreview:
		c.loadPreview(ctx, cmd.URL)
	case SetQuality:
		c.update(func(s *AppState) { s.Quality = cmd.Value })
	case SetFormat:
		c.update(func(s *AppState) { s.Format = cmd.Value })
	case SubmitDownload:
		c.submitDownload(ctx)
	case RefreshTasks:
		if c.Snapshot().Page == PageQueue {
			c.loadTasks(ctx)
		}
	case CancelTask:
		c.cancelTask(ctx, cmd.ID)
	case SetHistorySearch:
		c.update(func(s *AppState) { s.HistorySearch = cmd.Query })
		c.search.Trigger(func() { c.tryDispatch(LoadHistory{}) })
	case LoadHistory:
		c.loadHistory(ctx)
	case SetHistoryFilter:
		c.update(func(s *AppState) { s.HistoryFilter = cmd.Filter })
	case DeleteHistory:
		c.deleteHistory(ctx, cmd.ID)
	case RefreshStatus:
		c.refreshStatus(ctx)
	case EditSettings:
		c.update(func(s *AppState) { s.SettingsForm = cmd.Settings })
	case SaveSettings:
		c.saveSettings()
	case ResetSettings:
		c.resetSettings()
	case FetchTaskFile:
		c.fetchTaskFile(ctx, cmd.ID)
	case FetchHistoryFile:
		c.fetchHistoryFile(ctx, cmd.ID)
	case FileFetched:
		if cmd.Err != nil {
			c.notify(LevelError, fmt.Sprintf("Failed to download %s: %v", cmd.Name, cmd.Err))
		} else {
			c.notify(LevelSuccess, "Saved "+cmd.Path)
		}
	case Dismiss:
		c.update(func(s *AppState) {
			for i, n := range s.Notifications {
				if n.ID == cmd.ID {
					s.Notifications = append(s.Notifications[:i:i], s.Notifications[i+1:]...)
					return
				}
			}
		})
	default:
		c.logger.Warn("Unknown command", zap.String("command", fmt.Sprintf("%T", cmd)))
	}

	c.emit()
}

func (c *Controller) update(fn func(s *AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

func (c *Controller) emit() {
	c.mu.Lock()
	fn := c.onChange
	snapshot := c.state.Clone()
	c.mu.Unlock()

	if fn != nil {
		fn(snapshot)
	}
}

func (c *Controller) notify(level Level, message string) {
	c.notifyFor(level, message, c.config.NotificationTTL)
}

// notifyFor adds a notification, or refreshes an identical visible one
func (c *Controller) notifyFor(level Level, message string, ttl time.Duration) {
	c.mu.Lock()
	expires := c.now().Add(ttl)
	for i, n := range c.state.Notifications {
		if n.Level == level && n.Message == message {
			c.state.Notifications[i].ExpiresAt = expires
			id := n.ID
			c.mu.Unlock()
			c.scheduleDismiss(id, ttl)
			return
		}
	}
	c.nextNote++
	id := c.nextNote
	c.state.Notifications = append(c.state.Notifications, Notification{
		ID:        id,
		Level:     level,
		Message:   message,
		ExpiresAt: expires,
	})
	c.mu.Unlock()

	c.scheduleDismiss(id, ttl)
}

func (c *Controller) scheduleDismiss(id int, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	time.AfterFunc(ttl, func() {
		c.mu.Lock()
		expired := false
		for _, n := range c.state.Notifications {
			if n.ID == id && !c.now().Before(n.ExpiresAt) {
				expired = true
			}
		}
		c.mu.Unlock()
		if expired {
			c.tryDispatch(Dismiss{ID: id})
		}
	})
}

// syncTimers starts or stops the pollers to match page, visibility and connectivity
func (c *Controller) syncTimers() {
	s := c.Snapshot()

	if s.Visible {
		if !c.statusPoller.Running() {
			c.statusPoller.Start()
		}
	} else {
		c.statusPoller.Stop()
	}

	wantTasks := s.Visible && s.Page == PageQueue && s.Connection == ConnOnline
	switch {
	case wantTasks && !c.taskPoller.Running():
		c.taskPoller.Start()
	case !wantTasks && c.taskPoller.Running():
		c.taskPoller.Stop()
	}

	c.update(func(st *AppState) { st.Polling = wantTasks })
}

func (c *Controller) init(ctx context.Context) {
	settings, err := c.settings.Load()
	c.update(func(s *AppState) {
		notes := s.Notifications
		*s = NewAppState(settings)
		s.Notifications = notes
	})
	if err != nil {
		c.logger.Warn("Failed to load settings", zap.Error(err))
		c.notify(LevelError, "Failed to load saved settings")
	}

	if c.backend.Ping(ctx) {
		c.update(func(s *AppState) { s.Connection = ConnOnline })
		c.notifyFor(LevelSuccess, "Connected to the download service", 2*time.Second)
		c.refreshStatus(ctx)
	} else {
		c.update(func(s *AppState) { s.Connection = ConnOffline })
		c.notifyFor(LevelWarning, "Not connected to the download service, some features may be unavailable", 5*time.Second)
	}

	c.syncTimers()
}

func (c *Controller) navigate(ctx context.Context, page Page) {
	c.update(func(s *AppState) { s.Page = page })

	switch page {
	case PageQueue:
		c.loadTasks(ctx)
	case PageHistory:
		c.loadHistory(ctx)
	case PageSettings:
		c.update(func(s *AppState) { s.SettingsForm = s.Settings })
	}

	c.syncTimers()
}

func (c *Controller) setVisible(ctx context.Context, visible bool) {
	c.update(func(s *AppState) { s.Visible = visible })
	if visible && c.Snapshot().Page == PageQueue {
		c.loadTasks(ctx)
	}
	c.syncTimers()
}

func (c *Controller) setURL(value string) {
	c.update(func(s *AppState) { s.URLInput = value })

	trimmed := strings.TrimSpace(value)
	if trimmed != "" && LooksLikeYouTube(trimmed) {
		c.preview.Trigger(func() { c.tryDispatch(LoadPreview{URL: trimmed}) })
		return
	}

	c.preview.Cancel()
	c.update(func(s *AppState) {
		s.Preview = nil
		s.PreviewLoading = false
	})
}

func (c *Controller) loadPreview(ctx context.Context, url string) {
	if strings.TrimSpace(c.Snapshot().URLInput) != url {
		return
	}

	c.update(func(s *AppState) { s.PreviewLoading = true })
	c.emit()

	meta, err := c.backend.VideoInfo(ctx, url)

	stale := false
	c.update(func(s *AppState) {
		s.PreviewLoading = false
		if strings.TrimSpace(s.URLInput) != url {
			stale = true
			return
		}
		if err != nil {
			s.Preview = nil
		} else {
			s.Preview = meta
		}
	})
	if stale {
		return
	}

	if err != nil {
		c.notify(LevelError, "Failed to parse video: "+err.Error())
		return
	}
	c.notifyFor(LevelSuccess, "Video info loaded", 2*time.Second)
}

func (c *Controller) submitDownload(ctx context.Context) {
	s := c.Snapshot()
	url := strings.TrimSpace(s.URLInput)
	if url == "" {
		c.notify(LevelWarning, "Please enter a YouTube video URL")
		return
	}

	if !c.backend.Ping(ctx) {
		c.update(func(s *AppState) { s.Connection = ConnOffline })
		c.notify(LevelError, "Cannot connect to the download service, make sure it is running")
		c.syncTimers()
		return
	}

	c.update(func(s *AppState) { s.Submitting = true })
	c.emit()

	link, err := c.backend.Download(ctx, url, s.Quality, s.Format)
	c.update(func(s *AppState) { s.Submitting = false })
	if err != nil {
		c.notify(LevelError, "Download failed: "+err.Error())
		return
	}

	c.logger.Info("Download task created", zap.String("task_id", link.TaskID), zap.String("filename", link.Filename))

	c.preview.Cancel()
	c.update(func(s *AppState) {
		s.Connection = ConnOnline
		s.LastLink = link
		s.URLInput = ""
		s.Preview = nil
	})
	c.notify(LevelSuccess, "Download task created: "+link.TaskID)
	c.navigate(ctx, PageQueue)
}

func (c *Controller) loadTasks(ctx context.Context) {
	tasks, err := c.backend.Tasks(ctx)
	if err != nil {
		c.logger.Debug("Failed to load tasks", zap.Error(err))
		c.notify(LevelError, "Failed to load the download queue")
		return
	}
	c.update(func(s *AppState) { s.Tasks = tasks })
}

func (c *Controller) cancelTask(ctx context.Context, id string) {
	if err := c.backend.CancelTask(ctx, id); err != nil {
		c.notify(LevelError, "Failed to remove task: "+err.Error())
		return
	}
	c.loadTasks(ctx)
	c.notify(LevelSuccess, "Task removed")
}

func (c *Controller) loadHistory(ctx context.Context) {
	history, err := c.backend.History(ctx, c.Snapshot().HistorySearch)
	if err != nil {
		c.logger.Debug("Failed to load history", zap.Error(err))
		c.notify(LevelError, "Failed to load download history")
		return
	}
	c.update(func(s *AppState) { s.History = history })

	if stats, err := c.backend.Stats(ctx); err == nil {
		c.update(func(s *AppState) { s.Stats = *stats })
	}
}

func (c *Controller) deleteHistory(ctx context.Context, id string) {
	if err := c.backend.DeleteHistory(ctx, id); err != nil {
		c.notify(LevelError, "Failed to delete history entry: "+err.Error())
		return
	}
	c.loadHistory(ctx)
	c.notify(LevelSuccess, "History entry deleted")
}

// refreshStatus never notifies; failures only show up as "offline"
func (c *Controller) refreshStatus(ctx context.Context) {
	stats, err := c.backend.Stats(ctx)
	c.update(func(s *AppState) {
		if err != nil {
			s.Connection = ConnOffline
			return
		}
		s.Connection = ConnOnline
		s.Stats = *stats
	})
	c.syncTimers()
}

func (c *Controller) saveSettings() {
	form := c.Snapshot().SettingsForm
	if err := c.settings.Save(form); err != nil {
		c.logger.Warn("Failed to save settings", zap.Error(err))
		c.notify(LevelError, "Failed to save settings")
		return
	}
	c.update(func(s *AppState) { s.Settings = form })
	c.notify(LevelSuccess, "Settings saved")
}

func (c *Controller) resetSettings() {
	defaults, err := c.settings.Reset()
	if err != nil {
		c.logger.Warn("Failed to reset settings", zap.Error(err))
		c.notify(LevelError, "Failed to reset settings")
		return
	}
	c.update(func(s *AppState) {
		s.Settings = defaults
		s.SettingsForm = defaults
	})
	c.notify(LevelInfo, "Settings reset to defaults")
}

func (c *Controller) fetchTaskFile(ctx context.Context, id string) {
	for _, t := range c.Snapshot().Tasks {
		if t.ID == id && t.Status == domain.TaskCompleted {
			c.startFetch(ctx, t.DeliveryName())
			return
		}
	}
	c.notify(LevelError, "File not available")
}

func (c *Controller) fetchHistoryFile(ctx context.Context, id string) {
	for _, h := range c.Snapshot().History {
		if h.ID == id {
			name := h.Filename
			if name == "" {
				name = h.Title + ".mp4"
			}
			c.startFetch(ctx, name)
			return
		}
	}
	c.notify(LevelError, "File does not exist")
}

// startFetch downloads in the background and reports back with FileFetched
func (c *Controller) startFetch(ctx context.Context, name string) {
	dir := c.Snapshot().Settings.DownloadPath
	c.notify(LevelInfo, "Downloading "+name)

	go func() {
		path, err := FetchFile(ctx, c.backend, name, dir, nil)
		c.Dispatch(FileFetched{Name: name, Path: path, Err: err})
	}()
}
