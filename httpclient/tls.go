// httpclient/tls.go
package httpclient

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/http/httptrace"
	"path/filepath"

	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/proxy"
	"go.uber.org/zap"
)

// buildHTTPClient creates the client used for API calls: client certificate when configured,
// optional proxy, and connection tracing in debug mode.
func buildHTTPClient(config ClientConfig, log logger.Logger) (*http.Client, error) {
	tlsConfig, err := buildTLSConfig(config.Connection)
	if err != nil {
		log.Error("Failed to load client certificate", zap.Error(err))
		return nil, err
	}

	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   tlsConfig,
		ForceAttemptHTTP2: true,
	}
	if err := proxy.ConfigureProxy(transport, config.ClientOptions.ProxyURL, config.ClientOptions.ProxyUsername, config.ClientOptions.ProxyPassword, log); err != nil {
		return nil, err
	}

	var roundTripper http.RoundTripper = transport
	if config.Connection.MutualTLS() && config.Connection.Debug {
		roundTripper = &verboseTransport{base: transport, log: log}
	}

	return &http.Client{
		Transport: roundTripper,
		Timeout:   config.ClientOptions.Timeout,
	}, nil
}

// buildTLSConfig constructs the TLS configuration, loading the client certificate for mutual
// TLS when both certificate and key are configured.
func buildTLSConfig(conn ConnectionOptions) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if conn.MutualTLS() {
		certFile := certificatePath(conn.CertificateDir, conn.Certificate)
		keyFile := certificatePath(conn.CertificateDir, conn.CertificateKey)
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// certificatePath resolves relative certificate names under dir.
func certificatePath(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// verboseTransport logs connection level events of every request at debug level.
type verboseTransport struct {
	base http.RoundTripper
	log  logger.Logger
}

func (t *verboseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.Redacted()
	trace := &httptrace.ClientTrace{
		DNSDone: func(info httptrace.DNSDoneInfo) {
			t.log.Debug("DNS lookup done", zap.String("url", url), zap.Error(info.Err))
		},
		ConnectDone: func(network, addr string, err error) {
			t.log.Debug("Connection established", zap.String("url", url), zap.String("network", network), zap.String("addr", addr), zap.Error(err))
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			t.log.Debug("TLS handshake done",
				zap.String("url", url),
				zap.String("server_name", state.ServerName),
				zap.Uint16("version", state.Version),
				zap.Bool("resumed", state.DidResume),
				zap.Error(err),
			)
		},
		GotConn: func(info httptrace.GotConnInfo) {
			t.log.Debug("Got connection", zap.String("url", url), zap.Bool("reused", info.Reused))
		},
	}
	return t.base.RoundTrip(req.WithContext(httptrace.WithClientTrace(req.Context(), trace)))
}
