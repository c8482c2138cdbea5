package httpclient

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// writeClientCertificate writes a self-signed client certificate and key into dir.
func writeClientCertificate(t *testing.T, dir string) (certName, keyName string) {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber:          serialNumber,
		Subject:               pkix.Name{CommonName: "apex-client"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
	}
	derBytes, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.NoError(t, err)

	certName, keyName = "client.crt", "client.key"
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: derBytes})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
	require.NoError(t, os.WriteFile(filepath.Join(dir, certName), certPEM, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyName), keyPEM, 0o600))
	return certName, keyName
}

// newMutualTLSServer requires a client certificate and answers with the number presented.
func newMutualTLSServer(t *testing.T) (*httptest.Server, chan int) {
	t.Helper()
	peers := make(chan int, 1)
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		peers <- len(r.TLS.PeerCertificates)
		w.WriteHeader(http.StatusNoContent)
	}))
	server.TLS = &tls.Config{ClientAuth: tls.RequireAnyClientCert}
	server.StartTLS()
	t.Cleanup(server.Close)
	return server, peers
}

func mutualTLSConfig(t *testing.T, debug bool) ClientConfig {
	t.Helper()
	dir := t.TempDir()
	certName, keyName := writeClientCertificate(t, dir)

	config := validConfig()
	config.Connection.Certificate = certName
	config.Connection.CertificateKey = keyName
	config.Connection.CertificateDir = dir
	config.Connection.Debug = debug
	config.ClientOptions.Timeout = 5 * time.Second
	return config
}

// trustServer makes the transport behind rt accept the test server's certificate.
func trustServer(t *testing.T, rt http.RoundTripper, server *httptest.Server) {
	t.Helper()
	if verbose, ok := rt.(*verboseTransport); ok {
		rt = verbose.base
	}
	transport, ok := rt.(*http.Transport)
	require.True(t, ok)
	transport.TLSClientConfig.RootCAs = server.Client().Transport.(*http.Transport).TLSClientConfig.RootCAs
}

func TestBuildTLSConfig_PresentsClientCertificate(t *testing.T) {
	server, peers := newMutualTLSServer(t)
	config := mutualTLSConfig(t, false)

	tlsConfig, err := buildTLSConfig(config.Connection)
	require.NoError(t, err)
	require.Len(t, tlsConfig.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), tlsConfig.MinVersion)

	tlsConfig.RootCAs = server.Client().Transport.(*http.Transport).TLSClientConfig.RootCAs
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: tlsConfig}, Timeout: 5 * time.Second}

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1, <-peers)
}

func TestBuildTLSConfig_WithoutCertificate(t *testing.T) {
	tlsConfig, err := buildTLSConfig(ConnectionOptions{Certificate: "client.crt"})
	require.NoError(t, err)
	assert.Empty(t, tlsConfig.Certificates)
}

func TestBuildHTTPClient_VerboseTransport(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		wantTraced bool
	}{
		{"debug enabled", true, true},
		{"debug disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, peers := newMutualTLSServer(t)
			core, logs := observer.New(zapcore.DebugLevel)
			log := logger.NewLogger(zap.New(core), logger.LogLevelDebug)

			httpClient, err := buildHTTPClient(mutualTLSConfig(t, tt.debug), log)
			require.NoError(t, err)
			_, isVerbose := httpClient.Transport.(*verboseTransport)
			assert.Equal(t, tt.wantTraced, isVerbose)
			trustServer(t, httpClient.Transport, server)

			resp, err := httpClient.Get(server.URL)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, 1, <-peers)

			handshakes := logs.FilterMessage("TLS handshake done").All()
			if !tt.wantTraced {
				assert.Empty(t, handshakes)
				return
			}
			require.Len(t, handshakes, 1)
			assert.Equal(t, server.URL, handshakes[0].ContextMap()["url"])
		})
	}
}

func TestBuildHTTPClient_DebugWithoutCertificateIsNotTraced(t *testing.T) {
	config := validConfig()
	config.Connection.Debug = true

	httpClient, err := buildHTTPClient(config, logger.NewNopLogger())
	require.NoError(t, err)

	_, isVerbose := httpClient.Transport.(*verboseTransport)
	assert.False(t, isVerbose)
}
