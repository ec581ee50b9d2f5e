package git

import (
	"testing"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenAuth_Method(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		remoteURL string
		wantAuth  bool
	}{
		{
			name:      "https URL with token",
			token:     "secret",
			remoteURL: "https://github.com/spring-operator/spring-release.git",
			wantAuth:  true,
		},
		{
			name:      "http URL with token",
			token:     "secret",
			remoteURL: "http://git.example.com/a/b.git",
			wantAuth:  true,
		},
		{
			name:      "ssh URL is left unauthenticated",
			token:     "secret",
			remoteURL: "git@github.com:spring-operator/spring-release.git",
			wantAuth:  false,
		},
		{
			name:      "empty token declines",
			token:     "",
			remoteURL: "https://github.com/spring-operator/spring-release.git",
			wantAuth:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewTokenAuth(tt.token)

			method, err := provider.Method(tt.remoteURL)
			require.NoError(t, err)

			if !tt.wantAuth {
				assert.Nil(t, method)
				return
			}

			basic, ok := method.(*githttp.BasicAuth)
			require.True(t, ok, "expected basic auth, got %T", method)
			assert.Equal(t, "token", basic.Username)
			assert.Equal(t, tt.token, basic.Password)
		})
	}
}
