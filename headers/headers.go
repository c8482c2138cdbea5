// headers/headers.go
package headers

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/antogkou/salesforce-apex-client/headers/redact"
	"github.com/antogkou/salesforce-apex-client/logger"
	"go.uber.org/zap"
)

// SetRequestHeaders copies headers onto the request, replacing values of the same name. Empty values are skipped.
func SetRequestHeaders(req *http.Request, headers map[string]string) {
	for name, value := range headers {
		if value != "" {
			req.Header.Set(name, value)
		}
	}
}

// LogHeaders logs the request headers at debug level, redacting sensitive values when hideSensitiveData is set.
func LogHeaders(log logger.Logger, req *http.Request, hideSensitiveData bool) {
	if log.GetLogLevel() > logger.LogLevelDebug {
		return
	}
	redacted := http.Header(redact.RedactHeaders(hideSensitiveData, req.Header))
	log.Debug("HTTP Request Headers", zap.String("Headers", HeadersToString(redacted)))
}

// HeadersToString converts a http.Header to a string for logging,
// with each header on a new line. Names are sorted so output is stable.
func HeadersToString(headers http.Header) string {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	headerStrings := make([]string, 0, len(names))
	for _, name := range names {
		headerStrings = append(headerStrings, fmt.Sprintf("%s: %s", name, strings.Join(headers[name], ", ")))
	}
	return strings.Join(headerStrings, "\n")
}

// CheckDeprecationHeader checks the response headers for the Deprecation header and logs a warning if present.
func CheckDeprecationHeader(resp *http.Response, log logger.Logger) {
	deprecationHeader := resp.Header.Get("Deprecation")
	if deprecationHeader == "" {
		return
	}
	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.String()
	}
	log.Warn("API endpoint is deprecated",
		zap.String("Date", deprecationHeader),
		zap.String("Endpoint", endpoint),
	)
}
