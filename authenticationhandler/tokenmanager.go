// authenticationhandler/tokenmanager.go
package authenticationhandler

import (
	"context"
	"errors"
	"net/http"

	apierrors "github.com/antogkou/salesforce-apex-client/errors"
)

// GetToken returns the cached bearer token, refreshing it through the password grant when the
// cache has none. Every failure is logged once here and returned as *errors.AuthError.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.Store.GetOrRefresh(ctx, TokenCacheKey, TokenCacheTTL, m.RefreshToken)
	if err == nil {
		return token, nil
	}

	var authErr *apierrors.AuthError
	if !errors.As(err, &authErr) {
		authErr = &apierrors.AuthError{
			StatusCode: http.StatusInternalServerError,
			Message:    err.Error(),
			Err:        err,
		}
	}
	m.Logger.LogAuthTokenError("token_acquisition_failed", m.Credentials.TokenURI, authErr.StatusCode, authErr)
	return "", authErr
}

// InvalidateToken removes the cached token so the next GetToken call refreshes it.
func (m *TokenManager) InvalidateToken(ctx context.Context) error {
	return m.Store.Forget(ctx, TokenCacheKey)
}
