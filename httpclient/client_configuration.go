// httpclient/client_configuration.go
// Description: This file contains functions to load and validate configuration values from a file or environment variables.
package httpclient

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/antogkou/salesforce-apex-client/authenticationhandler"
	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/tokencache"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputJSON
	DefaultLogConsoleSeparator   = "	"
	DefaultHideSensitiveData     = true
	DefaultTimeout               = 30 * time.Second
	DefaultCertificateDir        = "storage/certificates"
	DefaultTokenCacheType        = string(tokencache.CacheTypeMemory)
	DefaultNATSBucket            = "salesforce_tokens"

	// EnvPrefix is prepended to every configuration key when read from the environment.
	EnvPrefix = "SF"
)

// Configuration keys, shared by files and the environment (upper cased, with the SF_ prefix).
const (
	keyClientID            = "client_id"
	keyClientSecret        = "client_secret"
	keyUsername            = "username"
	keyPassword            = "password"
	keyTokenURI            = "token_uri"
	keyAPIURI              = "api_uri"
	keyApexURI             = "apex_uri"
	keyDocumentURI         = "document_uri"
	keyEnvironment         = "environment"
	keyCertificate         = "certificate"
	keyCertificateKey      = "certificate_key"
	keyCertificateDir      = "certificate_dir"
	keyAppUUID             = "app_uuid"
	keyAppKey              = "app_key"
	keyDebug               = "debug"
	keyLogLevel            = "log_level"
	keyLogOutputFormat     = "log_output_format"
	keyLogConsoleSeparator = "log_console_separator"
	keyHideSensitiveData   = "hide_sensitive_data"
	keyTimeout             = "timeout"
	keyProxyURL            = "proxy_url"
	keyProxyUsername       = "proxy_username"
	keyProxyPassword       = "proxy_password"
	keyTokenCache          = "token_cache"
	keyNATSURL             = "nats_url"
	keyNATSBucket          = "nats_bucket"
	keyTokenSingleFlight   = "token_cache_single_flight"
)

// LoadConfigFromFile reads a YAML, JSON or TOML file with flat snake_case keys. Environment
// variables with the SF_ prefix override values from the file.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return configFromViper(v), nil
}

// LoadConfigFromEnv reads the configuration from SF_ prefixed environment variables.
// The debug flag is also taken from APP_DEBUG.
func LoadConfigFromEnv() (*ClientConfig, error) {
	return configFromViper(newViper()), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv(keyDebug, EnvPrefix+"_DEBUG", "APP_DEBUG")

	v.SetDefault(keyLogLevel, DefaultLogLevelString)
	v.SetDefault(keyLogOutputFormat, DefaultLogOutputFormatString)
	v.SetDefault(keyHideSensitiveData, DefaultHideSensitiveData)
	v.SetDefault(keyTimeout, DefaultTimeout)
	v.SetDefault(keyCertificateDir, DefaultCertificateDir)
	v.SetDefault(keyTokenCache, DefaultTokenCacheType)
	v.SetDefault(keyNATSBucket, DefaultNATSBucket)
	return v
}

func configFromViper(v *viper.Viper) *ClientConfig {
	return &ClientConfig{
		Auth: AuthConfig{
			ClientID:     v.GetString(keyClientID),
			ClientSecret: v.GetString(keyClientSecret),
			Username:     v.GetString(keyUsername),
			Password:     v.GetString(keyPassword),
			TokenURI:     v.GetString(keyTokenURI),
		},
		Connection: ConnectionOptions{
			APIURI:         v.GetString(keyAPIURI),
			ApexURI:        v.GetString(keyApexURI),
			DocumentURI:    v.GetString(keyDocumentURI),
			Environment:    v.GetString(keyEnvironment),
			Certificate:    v.GetString(keyCertificate),
			CertificateKey: v.GetString(keyCertificateKey),
			CertificateDir: v.GetString(keyCertificateDir),
			AppUUID:        v.GetString(keyAppUUID),
			AppKey:         v.GetString(keyAppKey),
			Debug:          v.GetBool(keyDebug),
		},
		ClientOptions: ClientOptions{
			LogLevel:            v.GetString(keyLogLevel),
			LogOutputFormat:     v.GetString(keyLogOutputFormat),
			LogConsoleSeparator: v.GetString(keyLogConsoleSeparator),
			HideSensitiveData:   v.GetBool(keyHideSensitiveData),
			Timeout:             v.GetDuration(keyTimeout),
			ProxyURL:            v.GetString(keyProxyURL),
			ProxyUsername:       v.GetString(keyProxyUsername),
			ProxyPassword:       v.GetString(keyProxyPassword),
		},
		TokenCache: TokenCacheOptions{
			Type:         v.GetString(keyTokenCache),
			NATSURL:      v.GetString(keyNATSURL),
			NATSBucket:   v.GetString(keyNATSBucket),
			SingleFlight: v.GetBool(keyTokenSingleFlight),
		},
	}
}

// validateClientConfig checks the configuration, filling in defaults first when populateDefaults is set.
func validateClientConfig(config *ClientConfig, populateDefaults bool) error {
	if populateDefaults {
		SetDefaultValuesClientConfig(config)
	}

	var errs []error

	if err := authenticationhandler.ValidateCredentials(config.Auth.Credentials()); err != nil {
		errs = append(errs, err)
	}

	if config.Connection.ApexURI == "" {
		errs = append(errs, errors.New("apex_uri is required"))
	} else if u, err := url.Parse(config.Connection.ApexURI); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("apex_uri %q must be an absolute http or https URL", config.Connection.ApexURI))
	}

	// Both "LogLevelDebug" and "debug" forms are accepted. Anything that does not parse is only
	// valid when it explicitly asks for no logging.
	level := config.ClientOptions.LogLevel
	if logger.ParseLogLevelFromString(level) == logger.LogLevelNone && !strings.EqualFold(strings.TrimPrefix(level, "LogLevel"), "none") {
		errs = append(errs, fmt.Errorf("invalid log level: %s", level))
	}

	validLogFormats := []string{logger.LogOutputJSON, logger.LogOutputConsole}
	if !slices.Contains(validLogFormats, config.ClientOptions.LogOutputFormat) {
		errs = append(errs, fmt.Errorf("invalid log output format: %s", config.ClientOptions.LogOutputFormat))
	}

	if config.ClientOptions.Timeout < 0 {
		errs = append(errs, errors.New("timeout cannot be less than 0 seconds"))
	}

	switch tokencache.CacheType(config.TokenCache.Type) {
	case tokencache.CacheTypeMemory, tokencache.CacheTypeNone:
	case tokencache.CacheTypeNATS:
		if config.TokenCache.NATSURL == "" || config.TokenCache.NATSBucket == "" {
			errs = append(errs, errors.New("nats_url and nats_bucket are required for the nats token cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid token cache type: %s", config.TokenCache.Type))
	}

	return errors.Join(errs...)
}

// SetDefaultValuesClientConfig fills in unset optional values.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.ClientOptions.LogLevel == "" {
		config.ClientOptions.LogLevel = DefaultLogLevelString
	}

	if config.ClientOptions.LogOutputFormat == "" {
		config.ClientOptions.LogOutputFormat = DefaultLogOutputFormatString
	}

	if config.ClientOptions.LogConsoleSeparator == "" {
		config.ClientOptions.LogConsoleSeparator = DefaultLogConsoleSeparator
	}

	if config.ClientOptions.Timeout == 0 {
		config.ClientOptions.Timeout = DefaultTimeout
	}

	if config.Connection.CertificateDir == "" {
		config.Connection.CertificateDir = DefaultCertificateDir
	}

	if config.TokenCache.Type == "" {
		config.TokenCache.Type = DefaultTokenCacheType
	}

	if config.TokenCache.NATSBucket == "" {
		config.TokenCache.NATSBucket = DefaultNATSBucket
	}
}

// tokenCacheConfig converts the options for the tokencache factory.
func (o TokenCacheOptions) tokenCacheConfig() *tokencache.CacheConfig {
	cfg := &tokencache.CacheConfig{
		Type:         tokencache.CacheType(o.Type),
		SingleFlight: o.SingleFlight,
	}
	if cfg.Type == tokencache.CacheTypeNATS {
		cfg.NATS = &tokencache.NATSKVConfig{
			URL:    o.NATSURL,
			Bucket: o.NATSBucket,
			TTL:    authenticationhandler.TokenCacheTTL,
		}
	}
	return cfg
}
