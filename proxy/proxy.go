// proxy.go

package proxy

import (
	"net/http"
	"net/url"

	"github.com/antogkou/salesforce-apex-client/logger"
	"go.uber.org/zap"
)

// ConfigureProxy routes the transport through proxyURL. Credentials, when both are given, are
// attached to the proxy URL and sent by the transport as Proxy-Authorization.
// The rest of the transport, including its TLS client certificate, is left untouched.
func ConfigureProxy(transport *http.Transport, proxyURL, proxyUsername, proxyPassword string, log logger.Logger) error {
	if proxyURL == "" {
		return nil
	}

	parsedProxyURL, err := url.Parse(proxyURL)
	if err != nil {
		log.Error("Failed to parse proxy URL", zap.Error(err))
		return err
	}
	if parsedProxyURL.Host == "" {
		return log.Error("Proxy URL must include a host", zap.String("ProxyURL", proxyURL))
	}

	if proxyUsername != "" && proxyPassword != "" {
		parsedProxyURL.User = url.UserPassword(proxyUsername, proxyPassword)
	}
	transport.Proxy = http.ProxyURL(parsedProxyURL)

	log.Info("Proxy configured", zap.String("ProxyURL", parsedProxyURL.Redacted()))
	return nil
}
