// zaplogger_log_levels.go
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the level of logging. Higher values denote more severe log messages.
type LogLevel int

const (
	LogLevelDebug  LogLevel = -1 // Zap's DEBUG level
	LogLevelInfo   LogLevel = 0  // Zap's INFO level
	LogLevelWarn   LogLevel = 1  // Zap's WARN level
	LogLevelError  LogLevel = 2  // Zap's ERROR level
	LogLevelDPanic LogLevel = 3  // Zap's DPANIC level
	LogLevelPanic  LogLevel = 4  // Zap's PANIC level
	LogLevelFatal  LogLevel = 5  // Zap's FATAL level
	LogLevelNone   LogLevel = 6  // Nothing is logged
)

// ParseLogLevelFromString takes a string representation of the log level and returns the corresponding LogLevel.
// Both the "LogLevelDebug" form used in configuration files and the short "debug" form used in
// environment variables are accepted. Unknown values disable logging.
func ParseLogLevelFromString(levelStr string) LogLevel {
	switch strings.ToLower(strings.TrimPrefix(levelStr, "LogLevel")) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "dpanic":
		return LogLevelDPanic
	case "panic":
		return LogLevelPanic
	case "fatal":
		return LogLevelFatal
	default:
		return LogLevelNone
	}
}

// String returns the short name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelDPanic:
		return "dpanic"
	case LogLevelPanic:
		return "panic"
	case LogLevelFatal:
		return "fatal"
	default:
		return "none"
	}
}

// convertToZapLevel converts the custom LogLevel to a zapcore.Level
func convertToZapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelDebug:
		return zap.DebugLevel
	case LogLevelInfo:
		return zap.InfoLevel
	case LogLevelWarn:
		return zap.WarnLevel
	case LogLevelError:
		return zap.ErrorLevel
	case LogLevelDPanic:
		return zap.DPanicLevel
	case LogLevelPanic:
		return zap.PanicLevel
	case LogLevelFatal:
		return zap.FatalLevel
	default:
		return zap.InfoLevel
	}
}

// ToZapFields converts a variadic list of key-value pairs into a slice of Zap fields.
// Keys must be strings; a trailing key without a value is dropped.
func ToZapFields(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
