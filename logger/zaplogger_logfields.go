// zaplogger_logfields.go
package logger

import (
	"time"

	"go.uber.org/zap"
)

// Messages used for failure entries. Alerting rules key on these strings.
const (
	MsgAPIError       = "Salesforce API Error"
	MsgRequestFailure = "Salesforce API Request Failed"
	MsgAuthTokenError = "Failed to obtain Salesforce token"
)

// LogRequestStart logs the initiation of an HTTP request, including the HTTP method, URL, and headers.
// Headers should already be redacted by the caller.
func (d *defaultLogger) LogRequestStart(event string, requestID string, method string, url string, headers map[string][]string) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("headers", headers),
		}
		d.logger.Debug("HTTP request started", fields...)
	}
}

// LogRequestEnd logs the completion of an HTTP request, including the HTTP method, URL, status code, and duration.
func (d *defaultLogger) LogRequestEnd(event string, method string, url string, statusCode int, duration time.Duration) {
	if d.logLevel <= LogLevelDebug {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status_code", statusCode),
			zap.Duration("duration", duration),
		}
		d.logger.Debug("HTTP request completed", fields...)
	}
}

// LogAPIError logs a final non-2xx response from the API together with the request payload,
// the decoded response body and the route of the inbound request being served.
func (d *defaultLogger) LogAPIError(event string, method string, url string, statusCode int, data interface{}, response interface{}, route interface{}) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("data", data),
			zap.Int("status", statusCode),
			zap.Any("response", response),
			zap.Any("route", route),
		}
		d.logger.Error(MsgAPIError, fields...)
	}
}

// LogRequestFailure logs a transport level failure, where no response was received at all.
func (d *defaultLogger) LogRequestFailure(event string, method string, url string, data interface{}, err error, route interface{}) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Any("data", data),
			zap.String("error", errorMessage(err)),
			zap.Any("route", route),
		}
		d.logger.Error(MsgRequestFailure, fields...)
	}
}

// LogAuthTokenError logs a failure to obtain a bearer token from the token endpoint.
func (d *defaultLogger) LogAuthTokenError(event string, tokenURL string, statusCode int, err error) {
	if d.logLevel <= LogLevelError {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("token_url", tokenURL),
			zap.Int("status_code", statusCode),
			zap.String("error", errorMessage(err)),
		}
		d.logger.Error(MsgAuthTokenError, fields...)
	}
}

// LogTokenRefresh logs a successful token refresh.
func (d *defaultLogger) LogTokenRefresh(event string, tokenURL string, duration time.Duration) {
	if d.logLevel <= LogLevelInfo {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("token_url", tokenURL),
			zap.Duration("duration", duration),
		}
		d.logger.Info("Salesforce token refreshed", fields...)
	}
}

// LogRetryAttempt logs a retry attempt for an HTTP request, including the HTTP method, URL, attempt number, and reason for the retry.
func (d *defaultLogger) LogRetryAttempt(event string, method string, url string, attempt int, reason string) {
	if d.logLevel <= LogLevelWarn {
		fields := []zap.Field{
			zap.String("event", event),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.String("reason", reason),
		}
		d.logger.Warn("HTTP request retry", fields...)
	}
}

func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
