package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogCategory represents different log categories
type LogCategory string

const (
	CategoryAccess  LogCategory = "access"  // HTTP access log (JSON)
	CategoryGateway LogCategory = "gateway" // Metadata, resolve and stream events (JSON)
	CategoryError   LogCategory = "error"   // Application errors (JSON)
)

// AllCategories lists every category in display order
var AllCategories = []LogCategory{CategoryAccess, CategoryGateway, CategoryError}

// ParseCategory returns the category named s
func ParseCategory(s string) (LogCategory, bool) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// MultiLogger provides categorized logging with one JSON file per category
// and day. Files roll over on the first write after midnight.
type MultiLogger struct {
	config MultiLoggerConfig
	level  zapcore.Level

	mu          sync.RWMutex
	loggers     map[LogCategory]*zap.Logger
	files       map[LogCategory]*os.File
	currentDate string
	closed      bool
	now         func() time.Time
}

// MultiLoggerConfig contains configuration for multi-output logging
type MultiLoggerConfig struct {
	Level   string // debug, info, warn, error
	LogsDir string // Directory for log files
}

// NewMultiLogger creates a new multi-output logger
func NewMultiLogger(config MultiLoggerConfig) (*MultiLogger, error) {
	if config.LogsDir == "" {
		return nil, fmt.Errorf("logs_dir must be specified")
	}

	if err := os.MkdirAll(config.LogsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	ml := &MultiLogger{
		config: config,
		level:  level,
		now:    time.Now,
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()
	if err := ml.openAll(ml.now().Format("20060102")); err != nil {
		return nil, err
	}

	return ml, nil
}

// openAll opens the files for date. Caller holds mu.
func (ml *MultiLogger) openAll(date string) error {
	loggers := make(map[LogCategory]*zap.Logger, len(AllCategories))
	files := make(map[LogCategory]*os.File, len(AllCategories))

	for _, category := range AllCategories {
		level := ml.level
		if category == CategoryError {
			level = zapcore.ErrorLevel
		}

		file, err := os.OpenFile(categoryLogPath(ml.config.LogsDir, category, date), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			for _, f := range files {
				f.Close()
			}
			return fmt.Errorf("failed to create %s logger: %w", category, err)
		}

		files[category] = file
		loggers[category] = zap.New(zapcore.NewCore(categoryEncoder(), zapcore.AddSync(file), level))
	}

	for _, f := range ml.files {
		f.Close()
	}
	ml.loggers = loggers
	ml.files = files
	ml.currentDate = date
	return nil
}

func categoryEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.MessageKey = "msg"
	encoderConfig.LevelKey = "level"
	encoderConfig.CallerKey = ""
	return zapcore.NewJSONEncoder(encoderConfig)
}

func categoryLogPath(dir string, category LogCategory, date string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.log", category, date))
}

// rotateIfNeeded switches to new files when the date changed
func (ml *MultiLogger) rotateIfNeeded() {
	date := ml.now().Format("20060102")

	ml.mu.RLock()
	skip := ml.closed || date == ml.currentDate
	ml.mu.RUnlock()
	if skip {
		return
	}

	ml.mu.Lock()
	defer ml.mu.Unlock()
	if ml.closed || date == ml.currentDate {
		return
	}
	if err := ml.openAll(date); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
}

// GetLogsDir returns the logs directory path
func (ml *MultiLogger) GetLogsDir() string {
	return ml.config.LogsDir
}

// GetLogger returns the structured logger for a specific category
func (ml *MultiLogger) GetLogger(category LogCategory) *zap.Logger {
	ml.rotateIfNeeded()

	ml.mu.RLock()
	defer ml.mu.RUnlock()

	if logger, ok := ml.loggers[category]; ok {
		return logger
	}
	if logger, ok := ml.loggers[CategoryError]; ok {
		return logger
	}
	return zap.NewNop()
}

// Access returns the access logger
func (ml *MultiLogger) Access() *zap.Logger {
	return ml.GetLogger(CategoryAccess)
}

// Gateway returns the gateway event logger
func (ml *MultiLogger) Gateway() *zap.Logger {
	return ml.GetLogger(CategoryGateway)
}

// Error returns the error logger
func (ml *MultiLogger) Error() *zap.Logger {
	return ml.GetLogger(CategoryError)
}

// LogAccess logs one served HTTP request
func (ml *MultiLogger) LogAccess(msg string, fields ...zap.Field) {
	ml.Access().Info(msg, fields...)
}

// LogGatewayEvent logs a gateway operation event with structured data
func (ml *MultiLogger) LogGatewayEvent(event string, fields ...zap.Field) {
	ml.Gateway().Info(event, fields...)
}

// LogAppError logs an application-level error (Go errors, panics)
func (ml *MultiLogger) LogAppError(msg string, fields ...zap.Field) {
	ml.Error().Error(msg, fields...)
}

// Sync flushes all loggers
func (ml *MultiLogger) Sync() error {
	ml.mu.RLock()
	defer ml.mu.RUnlock()

	var lastErr error
	for _, logger := range ml.loggers {
		if err := logger.Sync(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Close flushes all loggers and closes their files
func (ml *MultiLogger) Close() error {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	var lastErr error
	for category, logger := range ml.loggers {
		if err := logger.Sync(); err != nil {
			lastErr = err
		}
		if err := ml.files[category].Close(); err != nil {
			lastErr = err
		}
	}
	ml.loggers = map[LogCategory]*zap.Logger{}
	ml.files = map[LogCategory]*os.File{}
	ml.closed = true
	return lastErr
}
