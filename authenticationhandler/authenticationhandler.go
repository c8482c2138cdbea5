// authenticationhandler/authenticationhandler.go

package authenticationhandler

import (
	"net/http"
	"time"

	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/tokencache"
)

const (
	// TokenCacheKey is the single cache key the bearer token lives under.
	TokenCacheKey = "salesforceToken"

	// TokenCacheTTL is how long a token is served from the cache before it is refreshed.
	TokenCacheTTL = 8 * time.Hour
)

// Credentials holds the password grant credentials and the endpoint they are exchanged at.
type Credentials struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	TokenURI     string
}

// TokenManager obtains, caches and invalidates the bearer token.
type TokenManager struct {
	Credentials       Credentials      // Credentials used for the password grant.
	Store             tokencache.Store // Store shares the token between calls, and between processes for shared backends.
	HTTP              *http.Client     // HTTP is used for the token endpoint only.
	Logger            logger.Logger
	HideSensitiveData bool
}

// NewTokenManager creates a new TokenManager. A nil store falls back to an in-memory store
// and a nil http client to http.DefaultClient.
func NewTokenManager(log logger.Logger, credentials Credentials, store tokencache.Store, httpClient *http.Client, hideSensitiveData bool) *TokenManager {
	if store == nil {
		store = tokencache.NewMemoryStore()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &TokenManager{
		Credentials:       credentials,
		Store:             store,
		HTTP:              httpClient,
		Logger:            log,
		HideSensitiveData: hideSensitiveData,
	}
}
