// httpclient/client.go
/* Package httpclient provides the Salesforce Apex REST client. Every call is authenticated with a
bearer token obtained through the OAuth2 password grant, retried once with a fresh token when the
API answers 401, and reported as a structured error when it fails. */
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/antogkou/salesforce-apex-client/apiintegrations/apex"
	"github.com/antogkou/salesforce-apex-client/authenticationhandler"
	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/proxy"
	"github.com/antogkou/salesforce-apex-client/tokencache"
	"go.uber.org/zap"
)

// Client issues authenticated calls against the Apex REST API.
type Client struct {
	// Private
	config  ClientConfig
	http    *http.Client
	baseURL string
	lock    sync.Mutex

	callerIdentity string
	closers        []io.Closer

	// Exported
	Logger logger.Logger
	Tokens *authenticationhandler.TokenManager
}

// Option customises BuildClient.
type Option func(*buildOptions)

type buildOptions struct {
	logger     logger.Logger
	store      tokencache.Store
	httpClient *http.Client
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(log logger.Logger) Option {
	return func(o *buildOptions) { o.logger = log }
}

// WithTokenStore replaces the token cache built from the configuration.
func WithTokenStore(store tokencache.Store) Option {
	return func(o *buildOptions) { o.store = store }
}

// WithHTTPClient replaces the HTTP client used for API calls. TLS and proxy settings from the
// configuration are not applied to it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *buildOptions) { o.httpClient = httpClient }
}

// BuildClient creates a new client with the provided configuration.
func BuildClient(ctx context.Context, config ClientConfig, populateDefaultValues bool, opts ...Option) (*Client, error) {
	err := validateClientConfig(&config, populateDefaultValues)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := buildOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	log := options.logger
	if log == nil {
		parsedLogLevel := logger.ParseLogLevelFromString(config.ClientOptions.LogLevel)
		log = logger.BuildLogger(parsedLogLevel, config.ClientOptions.LogOutputFormat, config.ClientOptions.LogConsoleSeparator)
	}

	log.Info("initializing new http client", zap.String("api", apex.APIName), zap.String("environment", config.Connection.Environment))

	mtls := config.Connection.MutualTLS()
	if !mtls && (config.Connection.Certificate != "" || config.Connection.CertificateKey != "") {
		log.Warn("Client certificate ignored, both certificate and certificate_key are required")
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient, err = buildHTTPClient(config, log)
		if err != nil {
			return nil, err
		}
	}

	// The token endpoint is called without the client certificate.
	tokenTransport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if err := proxy.ConfigureProxy(tokenTransport, config.ClientOptions.ProxyURL, config.ClientOptions.ProxyUsername, config.ClientOptions.ProxyPassword, log); err != nil {
		return nil, err
	}
	tokenHTTPClient := &http.Client{Transport: tokenTransport, Timeout: config.ClientOptions.Timeout}

	client := &Client{
		config:  config,
		http:    httpClient,
		baseURL: apex.BaseURL(config.Connection.ApexURI, mtls),
		Logger:  log,
	}

	store := options.store
	if store == nil {
		store, err = tokencache.NewStoreFromConfig(ctx, config.TokenCache.tokenCacheConfig())
		if err != nil {
			log.Error("Failed to create token cache", zap.String("type", config.TokenCache.Type), zap.Error(err))
			return nil, err
		}
		if closer, ok := store.(io.Closer); ok {
			client.closers = append(client.closers, closer)
		}
	}

	client.Tokens = authenticationhandler.NewTokenManager(log, config.Auth.Credentials(), store, tokenHTTPClient, config.ClientOptions.HideSensitiveData)

	log.Debug("New API client initialized",
		zap.String("Base URL", client.baseURL),
		zap.Bool("Mutual TLS", mtls),
		zap.String("Logging Level", config.ClientOptions.LogLevel),
		zap.String("Log Encoding Format", config.ClientOptions.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.ClientOptions.HideSensitiveData),
		zap.Duration("Timeout", config.ClientOptions.Timeout),
		zap.String("Token Cache", config.TokenCache.Type),
	)

	return client, nil
}

// BaseURL returns the API base URL, including the mutual TLS port when a certificate is configured.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	return c.config
}

// SetCallerIdentity sets the email sent as x-user-email on every subsequent call, taking
// precedence over the principal found in the call context.
func (c *Client) SetCallerIdentity(email string) *Client {
	c.lock.Lock()
	c.callerIdentity = email
	c.lock.Unlock()
	return c
}

// CallerIdentity returns the email set with SetCallerIdentity.
func (c *Client) CallerIdentity() string {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.callerIdentity
}

// Close releases the token cache connection, if any.
func (c *Client) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
