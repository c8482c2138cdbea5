// auth_error.go
package errors

// AuthError is returned when a bearer token could not be obtained.
type AuthError struct {
	StatusCode   int
	Message      string
	ResponseData interface{} // decoded token endpoint body, if any
	Err          error       // underlying transport error, if any
}

// Error returns the message unchanged so callers can match on its prefix.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Context returns the diagnostic fields of the failure.
func (e *AuthError) Context() map[string]interface{} {
	return map[string]interface{}{"response": e.ResponseData}
}

// Response returns the error in the shape handed to callers that render it: message, code and context.
func (e *AuthError) Response() map[string]interface{} {
	return map[string]interface{}{
		"message": e.Message,
		"code":    e.StatusCode,
		"context": e.Context(),
	}
}
