// authenticationhandler/auth_oauth.go

package authenticationhandler

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apierrors "github.com/antogkou/salesforce-apex-client/errors"
	"github.com/antogkou/salesforce-apex-client/headers/redact"
	"github.com/antogkou/salesforce-apex-client/response"
	"go.uber.org/zap"
)

const (
	msgRefreshFailed = "Failed to refresh token: "
	msgInvalidToken  = "Invalid token received from Salesforce"
)

// RefreshToken exchanges the credentials for a new access token with the OAuth2 password grant.
// It does not touch the cache.
func (m *TokenManager) RefreshToken(ctx context.Context) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("client_id", m.Credentials.ClientID)
	data.Set("client_secret", m.Credentials.ClientSecret)
	data.Set("username", m.Credentials.Username)
	data.Set("password", m.Credentials.Password)

	m.Logger.Debug("Attempting to obtain Salesforce token",
		zap.String("ClientID", m.Credentials.ClientID),
		zap.String("Username", m.Credentials.Username),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Credentials.TokenURI, strings.NewReader(data.Encode()))
	if err != nil {
		return "", transportAuthError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := m.HTTP.Do(req)
	if err != nil {
		return "", transportAuthError(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apierrors.AuthError{StatusCode: resp.StatusCode, Message: msgRefreshFailed + err.Error(), Err: err}
	}
	decoded := response.DecodeJSON(bodyBytes)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &apierrors.AuthError{
			StatusCode:   resp.StatusCode,
			Message:      msgRefreshFailed + string(bodyBytes),
			ResponseData: decoded,
		}
	}

	token, ok := accessToken(decoded)
	if !ok {
		return "", &apierrors.AuthError{
			StatusCode:   resp.StatusCode,
			Message:      msgInvalidToken,
			ResponseData: decoded,
		}
	}

	m.Logger.LogTokenRefresh("token_refreshed", m.Credentials.TokenURI, time.Since(start))
	m.Logger.Debug("Salesforce token obtained", zap.String("AccessToken", redact.RedactSensitiveHeaderData(m.HideSensitiveData, "AccessToken", token)))

	return token, nil
}

// accessToken returns the access_token field when it is a non-empty string.
func accessToken(decoded interface{}) (string, bool) {
	body, ok := decoded.(map[string]interface{})
	if !ok {
		return "", false
	}
	token, ok := body["access_token"].(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func transportAuthError(err error) *apierrors.AuthError {
	return &apierrors.AuthError{
		StatusCode: http.StatusInternalServerError,
		Message:    msgRefreshFailed + err.Error(),
		Err:        err,
	}
}
