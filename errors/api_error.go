// api_error.go
// Package errors defines the structured errors returned by the Salesforce client.
package errors

import (
	"fmt"

	"github.com/antogkou/salesforce-apex-client/routecontext"
)

// APIError is returned when the API answered with a non-2xx status after authentication succeeded.
// It carries everything needed to reconstruct the failed call.
type APIError struct {
	StatusCode   int                    `json:"status"`
	Method       string                 `json:"method"`
	URL          string                 `json:"url"`
	Message      string                 `json:"message"`
	Data         interface{}            `json:"data"`
	ResponseData interface{}            `json:"response"`     // decoded JSON body, nil when the body was not JSON
	RawResponse  string                 `json:"raw_response"` // body as received
	Route        routecontext.RouteInfo `json:"route"`
	RequestID    string                 `json:"request_id,omitempty"`
}

// Error returns a string representation of the APIError.
func (e *APIError) Error() string {
	return fmt.Sprintf("API Error (Code: %d, %s %s): %s", e.StatusCode, e.Method, e.URL, e.Message)
}

// Context returns the diagnostic fields of the failure, keyed the way they are logged.
func (e *APIError) Context() map[string]interface{} {
	ctx := map[string]interface{}{
		"message":  e.Message,
		"method":   e.Method,
		"url":      e.URL,
		"data":     e.Data,
		"status":   e.StatusCode,
		"response": e.responseValue(),
		"route":    e.Route.Map(),
	}
	if e.RequestID != "" {
		ctx["request_id"] = e.RequestID
	}
	return ctx
}

// Response returns the error in the shape handed to callers that render it: message, code and context.
func (e *APIError) Response() map[string]interface{} {
	return map[string]interface{}{
		"message": e.Message,
		"code":    e.StatusCode,
		"context": e.Context(),
	}
}

func (e *APIError) responseValue() interface{} {
	if e.ResponseData != nil {
		return e.ResponseData
	}
	return e.RawResponse
}
