// Package auth attaches Freedom credentials to outgoing requests.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/atlasground/freedom/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrMissingKey    = errors.New("API key is empty")
	ErrMissingSecret = errors.New("API secret is empty")
)

// Authenticator adds credentials to a request before it is sent.
type Authenticator interface {
	Authenticate(ctx context.Context, req *http.Request) error
}

// BasicAuthenticator sends the API key and secret as HTTP basic credentials.
type BasicAuthenticator struct {
	key    string
	secret string
}

// NewBasicAuthenticator creates a basic authenticator.
func NewBasicAuthenticator(key, secret string) *BasicAuthenticator {
	return &BasicAuthenticator{key: key, secret: secret}
}

// Authenticate implements Authenticator.
func (a *BasicAuthenticator) Authenticate(ctx context.Context, req *http.Request) error {
	if a.key == "" {
		return ErrMissingKey
	}

	if a.secret == "" {
		return ErrMissingSecret
	}

	req.SetBasicAuth(a.key, a.secret)

	return nil
}

// Key returns the API key.
func (a *BasicAuthenticator) Key() string {
	return a.key
}

// String never prints the secret.
func (a *BasicAuthenticator) String() string {
	return "basic(" + a.key + ":" + MaskSecret(a.secret) + ")"
}

// MaskSecret keeps the first few characters of a secret and masks the rest.
func MaskSecret(secret string) string {
	if len(secret) <= constants.StringTruncationLimit {
		return constants.MaskedSecret
	}

	return secret[:constants.StringTruncationLimit] + constants.MaskedSecret
}

// RedactHeaders returns a copy of headers safe to log.
func RedactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		value := strings.Join(values, ",")
		if strings.EqualFold(name, "Authorization") {
			value = constants.MaskedSecret
		}

		out[name] = value
	}

	return out
}
