// status.go
// Package status provides predicates and translations for HTTP status codes.
package status

import (
	"net/http"
)

// IsSuccess reports whether the status code is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// IsFailure reports whether a final response should be treated as an API error.
// Anything outside 2xx is a failure, including redirects that were not followed.
func IsFailure(statusCode int) bool {
	return !IsSuccess(statusCode)
}

// IsUnauthorized reports whether the status code asks the client to re-authenticate.
func IsUnauthorized(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

var statusMessages = map[int]string{
	http.StatusOK:                  "Request successful.",
	http.StatusCreated:             "Request to create or update resource successful.",
	http.StatusAccepted:            "The request was accepted for processing, but the processing has not completed.",
	http.StatusNoContent:           "Request successful. No content to send for this request.",
	http.StatusBadRequest:          "Bad request. Verify the syntax of the request.",
	http.StatusUnauthorized:        "Authentication failed. Verify the credentials being used for the request.",
	http.StatusForbidden:           "Invalid permissions. Verify the account has the proper permissions for the resource.",
	http.StatusNotFound:            "Resource not found. Verify the URL path is correct.",
	http.StatusMethodNotAllowed:    "Method not allowed. The method specified is not allowed for the resource.",
	http.StatusRequestTimeout:      "Request timeout. The server timed out waiting for the request.",
	http.StatusConflict:            "Conflict. The request could not be processed because of conflict in the request.",
	http.StatusUnprocessableEntity: "Unprocessable entity. The server understands the content type and syntax of the request but was unable to process the contained instructions.",
	http.StatusTooManyRequests:     "Too many requests. The request limit for the org has been exceeded.",
	http.StatusInternalServerError: "Internal server error. The server encountered an unexpected condition.",
	http.StatusBadGateway:          "Bad gateway. The upstream server returned an invalid response.",
	http.StatusServiceUnavailable:  "Service unavailable. The server is currently unable to handle the request.",
	http.StatusGatewayTimeout:      "Gateway timeout. The upstream server failed to respond in time.",
}

// TranslateStatusCode provides a human-readable message for HTTP status codes.
func TranslateStatusCode(statusCode int) string {
	if statusCode == 0 {
		return "No status code received, possible network or connection error."
	}
	if message, ok := statusMessages[statusCode]; ok {
		return message
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "Unknown status code received."
}
