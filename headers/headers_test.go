// headers/headers_test.go
package headers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/mocklogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestSetRequestHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	req.Header.Set("X-App-Uuid", "default")
	req.Header.Set("X-User-Email", "jane@example.com")

	SetRequestHeaders(req, map[string]string{"x-app-uuid": "abc", "x-user-email": ""})

	assert.Equal(t, []string{"abc"}, req.Header.Values("X-App-Uuid"))
	assert.Equal(t, "jane@example.com", req.Header.Get("X-User-Email"), "empty values do not clear defaults")
}

func TestHeadersToString(t *testing.T) {
	h := http.Header{"B": {"2"}, "A": {"1", "x"}}
	assert.Equal(t, "A: 1, x\nB: 2", HeadersToString(h))
}

func TestLogHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer secret")

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelDebug)
	mockLog.On("Debug", "HTTP Request Headers", []zap.Field{zap.String("Headers", "Authorization: REDACTED")}).Once()

	LogHeaders(mockLog, req, true)

	mockLog.AssertExpectations(t)
}

func TestLogHeadersSkippedAboveDebug(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	mockLog := mocklogger.NewMockLogger()
	mockLog.On("GetLogLevel").Return(logger.LogLevelInfo)

	LogHeaders(mockLog, req, true)

	mockLog.AssertNotCalled(t, "Debug", mock.Anything, mock.Anything)
}

func TestCheckDeprecationHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/old", nil)
	resp := &http.Response{Header: http.Header{"Deprecation": {"Sat, 01 Nov 2025 00:00:00 GMT"}}, Request: req}

	mockLog := mocklogger.NewMockLogger()
	mockLog.On("Warn", "API endpoint is deprecated", mock.Anything).Once()

	CheckDeprecationHeader(resp, mockLog)
	mockLog.AssertExpectations(t)

	quiet := mocklogger.NewMockLogger()
	CheckDeprecationHeader(&http.Response{Header: http.Header{}}, quiet)
	quiet.AssertNotCalled(t, "Warn", mock.Anything, mock.Anything)
}
