package infrastructure

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/internal/domain"
)

// Notification methods
const (
	MethodOSAScript  = "osascript"
	MethodNotifySend = "notify-send"
)

// NotificationService sends desktop notifications through the platform's
// notifier command
type NotificationService struct {
	config *domain.NotificationConfig
	logger *zap.Logger
	run    func(name string, args ...string) error
}

// NewNotificationService creates a new notification service
func NewNotificationService(config *domain.NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		config: config,
		logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Method returns the configured method, or the platform default
func (n *NotificationService) Method() string {
	if n.config.Method != "" {
		return n.config.Method
	}
	if runtime.GOOS == "darwin" {
		return MethodOSAScript
	}
	return MethodNotifySend
}

// Send sends a notification. Disabled notifications are a no-op.
func (n *NotificationService) Send(title, message string) error {
	if !n.config.Enabled {
		n.logger.Debug("Notifications disabled, skipping",
			zap.String("title", title),
			zap.String("message", message))
		return nil
	}

	var name string
	var args []string
	switch method := n.Method(); method {
	case MethodOSAScript:
		name = "osascript"
		args = []string{"-e", fmt.Sprintf(`display notification %s with title %s`, appleScriptString(message), appleScriptString(title))}
	case MethodNotifySend:
		name = "notify-send"
		args = []string{title, message}
	default:
		n.logger.Warn("Unknown notification method", zap.String("method", method))
		return nil
	}

	if err := n.run(name, args...); err != nil {
		n.logger.Warn("Failed to send notification",
			zap.String("method", name),
			zap.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}

	n.logger.Debug("Notification sent",
		zap.String("title", title),
		zap.String("message", message))
	return nil
}

// NotifyDownloadCompleted reports a file saved to path
func (n *NotificationService) NotifyDownloadCompleted(path string) {
	n.Send("Download Completed", truncateString(path, 60))
}

// NotifyDownloadFailed reports a failed download
func (n *NotificationService) NotifyDownloadFailed(name string, err error) {
	n.Send("Download Failed", fmt.Sprintf("%s: %v", truncateString(name, 40), err))
}

// appleScriptString quotes s as an AppleScript string literal
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// truncateString keeps the last maxLen runes of s, which for paths is the
// file name
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return "..." + string(r[len(r)-maxLen:])
}
