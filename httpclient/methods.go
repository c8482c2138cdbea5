// httpclient/methods.go
package httpclient

import (
	"context"
	"net/http"

	"github.com/antogkou/salesforce-apex-client/apiintegrations/apex"
)

// Get sends a GET request. query is merged into any query string endpoint already carries.
func (c *Client) Get(ctx context.Context, endpoint string, query apex.Query, headers map[string]string) (*Response, error) {
	return c.DoRequest(ctx, http.MethodGet, endpoint, query, nil, headers)
}

// Post sends data as a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, data interface{}, headers map[string]string) (*Response, error) {
	return c.DoRequest(ctx, http.MethodPost, endpoint, nil, data, headers)
}

// Put sends data as a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, data interface{}, headers map[string]string) (*Response, error) {
	return c.DoRequest(ctx, http.MethodPut, endpoint, nil, data, headers)
}

// Patch sends data as a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, data interface{}, headers map[string]string) (*Response, error) {
	return c.DoRequest(ctx, http.MethodPatch, endpoint, nil, data, headers)
}

// Delete sends a DELETE request without a body.
func (c *Client) Delete(ctx context.Context, endpoint string, headers map[string]string) (*Response, error) {
	return c.DoRequest(ctx, http.MethodDelete, endpoint, nil, nil, headers)
}
