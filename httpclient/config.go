// httpclient/config.go
package httpclient

import (
	"time"

	"github.com/antogkou/salesforce-apex-client/authenticationhandler"
)

// ClientConfig holds everything needed to build a Client.
type ClientConfig struct {
	Auth          AuthConfig
	Connection    ConnectionOptions
	ClientOptions ClientOptions
	TokenCache    TokenCacheOptions
}

// AuthConfig holds the password grant credentials.
type AuthConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	TokenURI     string
}

// Credentials converts the auth config for the token manager.
func (a AuthConfig) Credentials() authenticationhandler.Credentials {
	return authenticationhandler.Credentials{
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		Username:     a.Username,
		Password:     a.Password,
		TokenURI:     a.TokenURI,
	}
}

// ConnectionOptions describes the target API and the identity headers sent with every call.
type ConnectionOptions struct {
	APIURI      string // carried for callers, the pipeline calls ApexURI
	ApexURI     string // base URI of the Apex REST API
	DocumentURI string
	Environment string

	Certificate    string // client certificate file, relative names resolve under CertificateDir
	CertificateKey string // client key file, relative names resolve under CertificateDir
	CertificateDir string

	AppUUID string
	AppKey  string

	// Debug enables verbose transport tracing when a client certificate is in use.
	Debug bool
}

// MutualTLS reports whether both certificate and key are configured.
func (c ConnectionOptions) MutualTLS() bool {
	return c.Certificate != "" && c.CertificateKey != ""
}

// ClientOptions holds logging, timeout and proxy settings.
type ClientOptions struct {
	LogLevel            string
	LogOutputFormat     string // "json" or "console"
	LogConsoleSeparator string
	HideSensitiveData   bool

	Timeout time.Duration

	ProxyURL      string
	ProxyUsername string
	ProxyPassword string
}

// TokenCacheOptions selects the token cache backend.
type TokenCacheOptions struct {
	Type         string // "memory", "nats" or "none"
	NATSURL      string
	NATSBucket   string
	SingleFlight bool
}
