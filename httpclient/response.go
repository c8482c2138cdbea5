// httpclient/response.go
package httpclient

import (
	"encoding/json"
	"net/http"

	"github.com/antogkou/salesforce-apex-client/response"
	"github.com/antogkou/salesforce-apex-client/status"
)

// Response is a completed API response with its body already read.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte

	// Raw is the underlying response. Its body has been consumed and closed.
	Raw *http.Response
}

// JSON returns the decoded body, or nil when the body is not JSON.
func (r *Response) JSON() interface{} {
	return response.DecodeJSON(r.Body)
}

// Decode unmarshals the JSON body into out.
func (r *Response) Decode(out interface{}) error {
	return json.Unmarshal(r.Body, out)
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return status.IsSuccess(r.StatusCode)
}

// Failed reports any status outside 2xx.
func (r *Response) Failed() bool {
	return status.IsFailure(r.StatusCode)
}

// Unauthorized reports a 401 status.
func (r *Response) Unauthorized() bool {
	return status.IsUnauthorized(r.StatusCode)
}
