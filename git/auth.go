// Package git provides high-level Git operations through a clean facade.
// This file contains authentication providers for remote transports.
package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// TokenAuth is an AuthProvider for HTTPS remotes using a personal access
// token. The token is sent as the password of a basic auth exchange, which
// is what the major forges expect.
type TokenAuth struct {
	username string
	token    string
}

// NewTokenAuth creates a token-based AuthProvider.
// An empty token yields a provider that declines to authenticate.
func NewTokenAuth(token string) *TokenAuth {
	return &TokenAuth{
		username: "token",
		token:    token,
	}
}

// Method returns basic auth credentials for HTTP(S) URLs and nil for every
// other scheme, letting the transport proceed unauthenticated.
func (t *TokenAuth) Method(remoteURL string) (transport.AuthMethod, error) {
	if t.token == "" {
		return nil, nil
	}

	if !strings.HasPrefix(remoteURL, "https://") && !strings.HasPrefix(remoteURL, "http://") {
		return nil, nil
	}

	return &githttp.BasicAuth{
		Username: t.username,
		Password: t.token,
	}, nil
}
