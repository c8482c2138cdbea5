// headers/redact/redact.go
package redact

import "strings"

const redacted = "REDACTED"

// sensitiveKeys are compared case-insensitively.
var sensitiveKeys = map[string]bool{
	"authorization": true,
	"accesstoken":   true,
	"access_token":  true,
	"x-api-key":     true,
	"client_secret": true,
	"password":      true,
}

// IsSensitive reports whether values stored under key must not reach the logs.
func IsSensitive(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitive(key) {
		return redacted
	}
	return value
}

// RedactHeaders returns a copy of headers with sensitive values replaced.
func RedactHeaders(hideSensitiveData bool, headers map[string][]string) map[string][]string {
	out := make(map[string][]string, len(headers))
	for name, values := range headers {
		copied := make([]string, len(values))
		for i, v := range values {
			copied[i] = RedactSensitiveHeaderData(hideSensitiveData, name, v)
		}
		out[name] = copied
	}
	return out
}
