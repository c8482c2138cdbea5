// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/antogkou/salesforce-apex-client/apiintegrations/apex"
	apierrors "github.com/antogkou/salesforce-apex-client/errors"
	"github.com/antogkou/salesforce-apex-client/headers"
	"github.com/antogkou/salesforce-apex-client/headers/redact"
	"github.com/antogkou/salesforce-apex-client/response"
	"github.com/antogkou/salesforce-apex-client/routecontext"
	"github.com/antogkou/salesforce-apex-client/status"
	"github.com/antogkou/salesforce-apex-client/version"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxAttempts bounds the calls made for one request: the original call plus one retry after a 401.
const maxAttempts = 2

// DoRequest sends one API call. endpoint is either relative to the base URL or absolute; query is
// merged into any query string endpoint already carries. data is JSON encoded as the body for
// every method except GET and DELETE.
//
// A 401 invalidates the cached token and the call is repeated once with a fresh one. A final
// non-2xx response is returned together with an *errors.APIError. Token failures are returned as
// *errors.AuthError. Transport failures are returned exactly as the HTTP client reported them.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, query apex.Query, data interface{}, extraHeaders map[string]string) (*Response, error) {
	method = strings.ToUpper(method)
	requestID := uuid.NewString()
	route := routecontext.FromContext(ctx)
	fullURL := apex.BuildURL(c.baseURL, endpoint, query)

	logData, body, err := requestPayload(method, data)
	if err != nil {
		return nil, c.Logger.Error("Failed to encode request body",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}

	userEmail := c.resolveUserEmail(ctx)
	if userEmail == "" {
		c.Logger.Warn("No user email available, x-user-email header omitted",
			zap.String("method", method),
			zap.String("url", fullURL),
		)
	}

	for attempt := 1; ; attempt++ {
		token, err := c.Tokens.GetToken(ctx)
		if err != nil {
			return nil, err
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
		if err != nil {
			return nil, c.Logger.Error("Failed to create request",
				zap.String("method", method),
				zap.String("url", fullURL),
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
		req.Header = apex.GetAPIRequestHeaders(token, c.config.Connection.AppUUID, c.config.Connection.AppKey, userEmail)
		req.Header.Set("User-Agent", version.GetUserAgentHeader())
		if body != nil {
			req.Header.Set("Content-Type", apex.ContentTypeJSON)
		}
		// Caller headers go last and replace defaults of the same name.
		headers.SetRequestHeaders(req, extraHeaders)

		hideSensitiveData := c.config.ClientOptions.HideSensitiveData
		headers.LogHeaders(c.Logger, req, hideSensitiveData)
		c.Logger.LogRequestStart("request_start", requestID, method, fullURL, redact.RedactHeaders(hideSensitiveData, req.Header))

		start := time.Now()
		httpResp, err := c.http.Do(req)
		if err != nil {
			c.Logger.With(zap.String("request_id", requestID), zap.String("full_url", fullURL)).
				LogRequestFailure("request_failed", method, endpoint, logData, err, route.Map())
			return nil, err
		}

		resp, err := readResponse(httpResp)
		if err != nil {
			c.Logger.With(zap.String("request_id", requestID), zap.String("full_url", fullURL)).
				LogRequestFailure("response_read_failed", method, endpoint, logData, err, route.Map())
			return nil, err
		}

		headers.CheckDeprecationHeader(httpResp, c.Logger)
		c.Logger.LogRequestEnd("request_end", method, fullURL, resp.StatusCode, time.Since(start))

		if resp.Unauthorized() && attempt < maxAttempts {
			c.Logger.LogRetryAttempt("retry_after_unauthorized", method, fullURL, attempt+1, status.TranslateStatusCode(resp.StatusCode))
			if err := c.Tokens.InvalidateToken(ctx); err != nil {
				return resp, c.Logger.Error("Failed to invalidate cached token",
					zap.String("request_id", requestID),
					zap.Error(err),
				)
			}
			continue
		}

		if resp.Successful() {
			return resp, nil
		}
		return resp, c.reportAPIError(method, fullURL, requestID, logData, route, resp)
	}
}

// reportAPIError builds the error for a final non-2xx response and logs it once.
func (c *Client) reportAPIError(method, fullURL, requestID string, data interface{}, route routecontext.RouteInfo, resp *Response) *apierrors.APIError {
	message, decoded := response.ExtractErrorMessage(resp.Body, resp.Header.Get("Content-Type"))

	apiErr := &apierrors.APIError{
		StatusCode:   resp.StatusCode,
		Method:       method,
		URL:          fullURL,
		Message:      message,
		Data:         data,
		ResponseData: decoded,
		RawResponse:  resp.String(),
		Route:        route,
		RequestID:    requestID,
	}

	c.Logger.With(zap.String("request_id", requestID)).
		LogAPIError("api_error", method, fullURL, resp.StatusCode, data, apiErr.Context()["response"], route.Map())

	return apiErr
}

// resolveUserEmail prefers the identity set on the client over the principal of the inbound request.
func (c *Client) resolveUserEmail(ctx context.Context) string {
	if email := c.CallerIdentity(); email != "" {
		return email
	}
	return routecontext.PrincipalEmailFromContext(ctx)
}

// requestPayload returns the data as logged and the encoded body. GET and DELETE carry no body
// and log an empty payload.
func requestPayload(method string, data interface{}) (interface{}, []byte, error) {
	if !methodHasBody(method) {
		return map[string]interface{}{}, nil, nil
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	body, err := json.Marshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal %s payload: %w", method, err)
	}
	return data, body, nil
}

func methodHasBody(method string) bool {
	return method != http.MethodGet && method != http.MethodDelete && method != http.MethodHead
}

func readResponse(httpResp *http.Response) (*Response, error) {
	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Header:     httpResp.Header,
		Body:       body,
		Raw:        httpResp,
	}, nil
}
