package authenticationhandler

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apierrors "github.com/antogkou/salesforce-apex-client/errors"
	"github.com/antogkou/salesforce-apex-client/logger"
	"github.com/antogkou/salesforce-apex-client/tokencache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type tokenServer struct {
	*httptest.Server
	calls int32
	form  chan map[string]string
}

func newTokenServer(t *testing.T, status int, body string) *tokenServer {
	t.Helper()
	ts := &tokenServer{form: make(chan map[string]string, 10)}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ts.calls, 1)
		require.NoError(t, r.ParseForm())
		ts.form <- map[string]string{
			"content_type":  r.Header.Get("Content-Type"),
			"grant_type":    r.PostForm.Get("grant_type"),
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"username":      r.PostForm.Get("username"),
			"password":      r.PostForm.Get("password"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newManager(tokenURI string) (*TokenManager, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewLogger(zap.New(core), logger.LogLevelInfo)
	creds := Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Username:     "api@example.com",
		Password:     "pass",
		TokenURI:     tokenURI,
	}
	return NewTokenManager(log, creds, tokencache.NewMemoryStore(), &http.Client{Timeout: 5 * time.Second}, true), logs
}

func TestGetToken_RefreshesOnceThenHitsCache(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{"access_token":"tok-1","token_type":"Bearer"}`)
	m, _ := newManager(ts.URL)

	first, err := m.GetToken(context.Background())
	require.NoError(t, err)
	second, err := m.GetToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-1", first)
	assert.Equal(t, "tok-1", second)
	assert.EqualValues(t, 1, atomic.LoadInt32(&ts.calls))

	form := <-ts.form
	assert.Equal(t, "application/x-www-form-urlencoded", form["content_type"])
	assert.Equal(t, "password", form["grant_type"])
	assert.Equal(t, "client-id", form["client_id"])
	assert.Equal(t, "client-secret", form["client_secret"])
	assert.Equal(t, "api@example.com", form["username"])
	assert.Equal(t, "pass", form["password"])
}

func TestInvalidateToken_ForcesRefresh(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{"access_token":"tok"}`)
	m, _ := newManager(ts.URL)

	_, err := m.GetToken(context.Background())
	require.NoError(t, err)
	require.NoError(t, m.InvalidateToken(context.Background()))
	_, err = m.GetToken(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&ts.calls))
}

func TestGetToken_InvalidToken(t *testing.T) {
	bodies := []string{
		`{"token_type":"Bearer"}`,
		`{"access_token":""}`,
		`{"access_token":42}`,
		`not json`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			ts := newTokenServer(t, http.StatusOK, body)
			m, logs := newManager(ts.URL)

			_, err := m.GetToken(context.Background())

			var authErr *apierrors.AuthError
			require.True(t, stderrors.As(err, &authErr))
			assert.Equal(t, "Invalid token received from Salesforce", authErr.Message)
			assert.Equal(t, http.StatusOK, authErr.StatusCode)
			assert.Equal(t, 1, logs.FilterMessage(logger.MsgAuthTokenError).Len())
		})
	}
}

func TestGetToken_EndpointFailure(t *testing.T) {
	ts := newTokenServer(t, http.StatusBadRequest, `{"error":"invalid_grant","error_description":"authentication failure"}`)
	m, logs := newManager(ts.URL)

	_, err := m.GetToken(context.Background())

	var authErr *apierrors.AuthError
	require.True(t, stderrors.As(err, &authErr))
	assert.Equal(t, `Failed to refresh token: {"error":"invalid_grant","error_description":"authentication failure"}`, authErr.Message)
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	assert.Equal(t, map[string]interface{}{"error": "invalid_grant", "error_description": "authentication failure"}, authErr.ResponseData)

	entries := logs.FilterMessage(logger.MsgAuthTokenError).All()
	require.Len(t, entries, 1)
	assert.Equal(t, authErr.Message, entries[0].ContextMap()["error"])
}

func TestGetToken_TransportFailure(t *testing.T) {
	ts := newTokenServer(t, http.StatusOK, `{}`)
	url := ts.URL
	ts.Close()
	m, _ := newManager(url)

	_, err := m.GetToken(context.Background())

	var authErr *apierrors.AuthError
	require.True(t, stderrors.As(err, &authErr))
	assert.Equal(t, http.StatusInternalServerError, authErr.StatusCode)
	assert.Contains(t, authErr.Message, "Failed to refresh token: ")
	assert.NotNil(t, authErr.Err)
}

type failingStore struct{ err error }

func (s failingStore) GetOrRefresh(ctx context.Context, key string, ttl time.Duration, refresh tokencache.RefreshFunc) (string, error) {
	return "", s.err
}

func (s failingStore) Forget(ctx context.Context, key string) error { return s.err }

func TestGetToken_StoreFailureIsWrapped(t *testing.T) {
	m, logs := newManager("https://login.example.com/services/oauth2/token")
	storeErr := stderrors.New("reading token salesforceToken from NATS: timeout")
	m.Store = failingStore{err: storeErr}

	_, err := m.GetToken(context.Background())

	var authErr *apierrors.AuthError
	require.True(t, stderrors.As(err, &authErr))
	assert.Equal(t, http.StatusInternalServerError, authErr.StatusCode)
	assert.Equal(t, storeErr.Error(), authErr.Message)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, logs.FilterMessage(logger.MsgAuthTokenError).Len())
}

func TestValidateCredentials(t *testing.T) {
	valid := Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		Username:     "user",
		Password:     "pass",
		TokenURI:     "https://login.salesforce.com/services/oauth2/token",
	}
	assert.NoError(t, ValidateCredentials(valid))

	err := ValidateCredentials(Credentials{TokenURI: "login.salesforce.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_id is required")
	assert.Contains(t, err.Error(), "password is required")
	assert.Contains(t, err.Error(), "must be an absolute http or https URL")
}
