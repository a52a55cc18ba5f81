package log

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Infof takes a pointer subLogger struct, string and interface formats and logs at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	sl.stagef(zapcore.InfoLevel, data, v...)
}

// Infoln takes a pointer subLogger struct and interface and logs at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	sl.stage(zapcore.InfoLevel, fmt.Sprint(v...))
}

// Infow logs a message at info level with structured key value pairs
func Infow(sl *SubLogger, msg string, keysAndValues ...interface{}) {
	sl.stage(zapcore.InfoLevel, msg, keysAndValues...)
}

// Debugf takes a pointer subLogger struct, string and interface formats and logs at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	sl.stagef(zapcore.DebugLevel, data, v...)
}

// Warnf takes a pointer subLogger struct, string and interface formats and logs at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	sl.stagef(zapcore.WarnLevel, data, v...)
}

// Warnw logs a message at warn level with structured key value pairs
func Warnw(sl *SubLogger, msg string, keysAndValues ...interface{}) {
	sl.stage(zapcore.WarnLevel, msg, keysAndValues...)
}

// Errorf takes a pointer subLogger struct, string and interface formats and logs at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	sl.stagef(zapcore.ErrorLevel, data, v...)
}

// Errorln takes a pointer subLogger struct and interface and logs at error level
func Errorln(sl *SubLogger, v ...interface{}) {
	sl.stage(zapcore.ErrorLevel, fmt.Sprint(v...))
}

// Name returns the sub logger name
func (sl *SubLogger) Name() string {
	if sl == nil {
		return ""
	}
	return sl.name
}

func (sl *SubLogger) enabled(level zapcore.Level) bool {
	switch level {
	case zapcore.DebugLevel:
		return sl.levels.Debug
	case zapcore.InfoLevel:
		return sl.levels.Info
	case zapcore.WarnLevel:
		return sl.levels.Warn
	case zapcore.ErrorLevel:
		return sl.levels.Error
	default:
		return false
	}
}

func (sl *SubLogger) stagef(level zapcore.Level, data string, v ...interface{}) {
	if sl == nil {
		return
	}
	mu.RLock()
	on := sl.enabled(level)
	mu.RUnlock()
	if !on {
		return
	}
	sl.stage(level, fmt.Sprintf(data, v...))
}

func (sl *SubLogger) stage(level zapcore.Level, msg string, keysAndValues ...interface{}) {
	if sl == nil {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if !sl.enabled(level) {
		return
	}
	if customLogHook != nil && customLogHook(level.CapitalString(), sl.name, msg) {
		return
	}
	switch level {
	case zapcore.DebugLevel:
		sl.logger.Debugw(msg, keysAndValues...)
	case zapcore.InfoLevel:
		sl.logger.Infow(msg, keysAndValues...)
	case zapcore.WarnLevel:
		sl.logger.Warnw(msg, keysAndValues...)
	default:
		sl.logger.Errorw(msg, keysAndValues...)
	}
}
