// authenticationhandler/validation.go

package authenticationhandler

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidateCredentials checks that every credential needed for the password grant is present and
// that the token URI is an absolute http(s) URL. All problems are reported together.
func ValidateCredentials(c Credentials) error {
	var errs []error

	required := []struct {
		name  string
		value string
	}{
		{"client_id", c.ClientID},
		{"client_secret", c.ClientSecret},
		{"username", c.Username},
		{"password", c.Password},
		{"token_uri", c.TokenURI},
	}
	for _, field := range required {
		if field.value == "" {
			errs = append(errs, fmt.Errorf("%s is required", field.name))
		}
	}

	if c.TokenURI != "" {
		if ok, msg := IsValidTokenURI(c.TokenURI); !ok {
			errs = append(errs, errors.New(msg))
		}
	}

	return errors.Join(errs...)
}

// IsValidTokenURI checks that the token endpoint is an absolute http or https URL.
// Returns true if valid, along with an empty error message; otherwise, returns false with an error message.
func IsValidTokenURI(tokenURI string) (bool, string) {
	u, err := url.Parse(tokenURI)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return false, fmt.Sprintf("token_uri %q must be an absolute http or https URL", tokenURI)
	}
	return true, ""
}
