// zaplogger_logger_test.go
package logger

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(level LogLevel) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core), level), logs
}

// TestDefaultLogger_SetLevel tests the SetLevel method of defaultLogger
func TestDefaultLogger_SetLevel(t *testing.T) {
	dLogger := &defaultLogger{logger: zap.NewNop()}

	dLogger.SetLevel(LogLevelWarn)
	assert.Equal(t, LogLevelWarn, dLogger.GetLogLevel())
}

// TestDefaultLogger_With tests that With keeps the level and attaches the fields
func TestDefaultLogger_With(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	child := log.With(zap.String("request_id", "req-1"))
	assert.IsType(t, &defaultLogger{}, child, "New logger should be of type *defaultLogger")
	assert.Equal(t, LogLevelInfo, child.GetLogLevel())

	child.Info("hello")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}

// TestDefaultLogger_GetLogLevel verifies that GetLogLevel returns the configured level.
func TestDefaultLogger_GetLogLevel(t *testing.T) {
	for _, level := range []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelDPanic, LogLevelPanic, LogLevelFatal} {
		t.Run(fmt.Sprintf("LogLevel %d", level), func(t *testing.T) {
			dLogger := &defaultLogger{logLevel: level}
			assert.Equal(t, level, dLogger.GetLogLevel())
		})
	}
}

// TestDefaultLogger_LevelFiltering checks that messages below the configured level are dropped.
func TestDefaultLogger_LevelFiltering(t *testing.T) {
	log, logs := newObservedLogger(LogLevelWarn)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	err := log.Error("error message")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "warn message", logs.All()[0].Message)
	assert.Equal(t, "error message", logs.All()[1].Message)
	assert.EqualError(t, err, "error message")
}

// TestDefaultLogger_ErrorReturnsErrorWhenFiltered checks that Error still returns an error at LogLevelNone.
func TestDefaultLogger_ErrorReturnsErrorWhenFiltered(t *testing.T) {
	log, logs := newObservedLogger(LogLevelNone)

	err := log.Error("something failed")

	assert.EqualError(t, err, "something failed")
	assert.Equal(t, 0, logs.Len())
}

// TestDefaultLogger_Panic ensures the Panic method logs and panics.
func TestDefaultLogger_Panic(t *testing.T) {
	log, logs := newObservedLogger(LogLevelPanic)

	assert.Panics(t, func() { log.Panic("panic message") }, "The Panic method should trigger a panic")
	assert.Equal(t, 1, logs.FilterMessage("panic message").Len())
}

func TestNewNopLogger(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		log.Info("ignored")
		log.LogAPIError("api_error", "GET", "https://example.com", 500, nil, nil, nil)
	})
	assert.Equal(t, LogLevelNone, log.GetLogLevel())
}

func TestLogAPIError(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	route := map[string]interface{}{"uri": "accounts", "name": "accounts.show", "action": "AccountController@show"}
	log.LogAPIError("api_error", "GET", "https://example.com/accounts", 400,
		map[string]interface{}{}, map[string]interface{}{"message": "bad"}, route)

	entries := logs.FilterMessage(MsgAPIError).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "GET", ctx["method"])
	assert.Equal(t, "https://example.com/accounts", ctx["url"])
	assert.EqualValues(t, 400, ctx["status"])
	assert.Equal(t, map[string]interface{}{"message": "bad"}, ctx["response"])
	assert.Equal(t, route, ctx["route"])
}

func TestLogRequestFailure(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	log.LogRequestFailure("request_failed", "GET", "test/endpoint", map[string]interface{}{}, errors.New("Generic error"), nil)

	entries := logs.FilterMessage(MsgRequestFailure).All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "GET", ctx["method"])
	assert.Equal(t, "test/endpoint", ctx["url"])
	assert.Equal(t, "Generic error", ctx["error"])
}

func TestLogAuthTokenError(t *testing.T) {
	log, logs := newObservedLogger(LogLevelError)

	log.LogAuthTokenError("token_error", "https://login.example.com/token", 401, errors.New("Failed to refresh token: nope"))

	entries := logs.FilterMessage(MsgAuthTokenError).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Failed to refresh token: nope", entries[0].ContextMap()["error"])
	assert.EqualValues(t, 401, entries[0].ContextMap()["status_code"])
}

func TestDebugEventsRespectLevel(t *testing.T) {
	log, logs := newObservedLogger(LogLevelInfo)

	log.LogRequestStart("request_start", "req-1", "GET", "https://example.com", nil)
	log.LogRequestEnd("request_end", "GET", "https://example.com", 200, time.Millisecond)
	assert.Equal(t, 0, logs.Len(), "debug events must be filtered at info level")

	log.LogTokenRefresh("token_refreshed", "https://login.example.com/token", time.Millisecond)
	log.LogRetryAttempt("retry_after_unauthorized", "GET", "https://example.com", 2, "401")
	assert.Equal(t, 2, logs.Len())
}

// TestGetLoggerBasedOnEnv tests the GetLoggerBasedOnEnv function for different environment settings
func TestGetLoggerBasedOnEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		debugEnabled bool
	}{
		{"DevelopmentLogger", "development", true},
		{"ProductionLogger", "production", false},
		{"DefaultToProduction", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("APP_ENV", tt.envValue)
			defer os.Unsetenv("APP_ENV")

			logger := GetLoggerBasedOnEnv()

			assert.Equal(t, tt.debugEnabled, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
