// apex_api_headers.go
package apex

import (
	"net/http"
	"strings"
)

// GetAPIRequestHeaders returns the header set sent with every Apex call: the bearer token, the
// application identity, the acting user's email and an Accept of JSON. The user email header
// is left out when userEmail is empty.
func GetAPIRequestHeaders(token, appUUID, appKey, userEmail string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}
	h.Set("Accept", ContentTypeJSON)
	h.Set(HeaderAppUUID, appUUID)
	h.Set(HeaderAPIKey, appKey)
	if userEmail != "" {
		h.Set(HeaderUserEmail, userEmail)
	}
	return h
}
