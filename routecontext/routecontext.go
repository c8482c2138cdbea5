// Package routecontext captures the inbound request being served so outbound failures can be
// traced back to the route that triggered them.
package routecontext

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	contextKeyRequest        contextKey = "routecontext_request"
	contextKeyPrincipalEmail contextKey = "routecontext_principal_email"
)

// RouteInfo identifies the inbound route. Fields are empty when they cannot be resolved.
type RouteInfo struct {
	URI    string `json:"uri"`
	Name   string `json:"name"`
	Action string `json:"action"`
}

// IsZero reports whether no inbound request was available.
func (r RouteInfo) IsZero() bool {
	return r == RouteInfo{}
}

// Map renders the route for log and error context. Unresolved fields are nil.
func (r RouteInfo) Map() map[string]interface{} {
	return map[string]interface{}{
		"uri":    nilIfEmpty(r.URI),
		"name":   nilIfEmpty(r.Name),
		"action": nilIfEmpty(r.Action),
	}
}

func nilIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// WithRequest stores the inbound request in ctx.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, contextKeyRequest, r)
}

// Middleware stores the inbound request in its own context. Register it with
// (*mux.Router).Use so the matched route is visible to FromContext.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRequest(r.Context(), r)))
	})
}

// RequestFromContext returns the inbound request, or nil outside of a request.
func RequestFromContext(ctx context.Context) *http.Request {
	if ctx == nil {
		return nil
	}
	if r, ok := ctx.Value(contextKeyRequest).(*http.Request); ok {
		return r
	}
	return nil
}

// FromContext resolves the route of the inbound request carried by ctx. Outside of a request,
// for example in a background job, it returns the zero RouteInfo.
func FromContext(ctx context.Context) RouteInfo {
	r := RequestFromContext(ctx)
	if r == nil {
		return RouteInfo{}
	}

	info := RouteInfo{URI: requestPath(r)}
	if route := mux.CurrentRoute(r); route != nil {
		info.Name = route.GetName()
		info.Action = handlerName(route.GetHandler())
	}
	return info
}

// requestPath returns the path without its leading slash, and "/" for the root.
func requestPath(r *http.Request) string {
	if r.URL == nil {
		return ""
	}
	p := strings.Trim(r.URL.Path, "/")
	if p == "" {
		return "/"
	}
	return p
}

func handlerName(h http.Handler) string {
	if h == nil {
		return ""
	}
	if fn, ok := h.(http.HandlerFunc); ok {
		if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
			return f.Name()
		}
	}
	return fmt.Sprintf("%T", h)
}

// WithPrincipalEmail records the email of the authenticated principal making the inbound call.
func WithPrincipalEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, contextKeyPrincipalEmail, email)
}

// PrincipalEmailFromContext returns the authenticated principal's email, or "".
func PrincipalEmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(contextKeyPrincipalEmail); v != nil {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}
