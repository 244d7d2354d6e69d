package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerAdapter hides whether categorized file logging is enabled. With a
// MultiLogger, category loggers write to both the base logger and the
// category file; without one, every category is the base logger.
type LoggerAdapter struct {
	base        *zap.Logger
	multiLogger *MultiLogger
}

// NewLoggerAdapter creates an adapter writing to base and, when not nil, multiLogger
func NewLoggerAdapter(base *zap.Logger, multiLogger *MultiLogger) *LoggerAdapter {
	return &LoggerAdapter{
		base:        base,
		multiLogger: multiLogger,
	}
}

// NewSingleLoggerAdapter creates an adapter for a single logger
func NewSingleLoggerAdapter(logger *zap.Logger) *LoggerAdapter {
	return NewLoggerAdapter(logger, nil)
}

func (la *LoggerAdapter) tee(category LogCategory) *zap.Logger {
	if la.multiLogger == nil {
		return la.base
	}
	fileCore := &categoryCore{ml: la.multiLogger, category: category}
	return la.base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))
}

// Access returns the access logger
func (la *LoggerAdapter) Access() *zap.Logger {
	return la.tee(CategoryAccess)
}

// Gateway returns the gateway event logger
func (la *LoggerAdapter) Gateway() *zap.Logger {
	return la.tee(CategoryGateway)
}

// Error returns the error logger
func (la *LoggerAdapter) Error() *zap.Logger {
	return la.tee(CategoryError)
}

// General returns the base logger
func (la *LoggerAdapter) General() *zap.Logger {
	return la.base
}

// LogAppError logs an application error to the base logger and the error file
func (la *LoggerAdapter) LogAppError(msg string, fields ...zap.Field) {
	la.Error().Error(msg, fields...)
}

// Sync flushes all loggers
func (la *LoggerAdapter) Sync() error {
	err := la.base.Sync()
	if la.multiLogger != nil {
		if mErr := la.multiLogger.Sync(); mErr != nil {
			err = mErr
		}
	}
	return err
}

// GetMultiLogger returns the underlying multi-logger, or nil
func (la *LoggerAdapter) GetMultiLogger() *MultiLogger {
	return la.multiLogger
}

// categoryCore resolves the category file on every write so that loggers
// held for the process lifetime follow the daily rollover
type categoryCore struct {
	ml       *MultiLogger
	category LogCategory
	fields   []zapcore.Field
}

func (c *categoryCore) current() zapcore.Core {
	core := c.ml.GetLogger(c.category).Core()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (c *categoryCore) Enabled(level zapcore.Level) bool {
	return c.ml.GetLogger(c.category).Core().Enabled(level)
}

func (c *categoryCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &categoryCore{ml: c.ml, category: c.category, fields: merged}
}

func (c *categoryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *categoryCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.current().Write(entry, fields)
}

func (c *categoryCore) Sync() error {
	return c.ml.GetLogger(c.category).Sync()
}
