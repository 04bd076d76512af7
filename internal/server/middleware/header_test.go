package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTokenFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		headers   map[string]string
		config    *TokenConfig
		wantToken string
		wantErr   bool
	}{
		{
			name:      "bearer authorization header",
			headers:   map[string]string{"Authorization": "Bearer abc123"},
			wantToken: "abc123",
		},
		{
			name:      "token prefix",
			headers:   map[string]string{"Authorization": "Token abc123"},
			wantToken: "abc123",
		},
		{
			name:      "raw value without prefix",
			headers:   map[string]string{"Authorization": "abc123"},
			wantToken: "abc123",
		},
		{
			name:      "fallback header",
			headers:   map[string]string{"X-Auth-Token": "abc123"},
			wantToken: "abc123",
		},
		{
			name:      "authorization wins over fallback",
			headers:   map[string]string{"Authorization": "Bearer first", "X-Auth-Token": "second"},
			wantToken: "first",
		},
		{
			name:    "no headers",
			headers: map[string]string{},
			wantErr: true,
		},
		{
			name:    "empty bearer token",
			headers: map[string]string{"Authorization": "Bearer "},
			wantErr: true,
		},
		{
			name:    "require bearer rejects raw value",
			headers: map[string]string{"Authorization": "abc123"},
			config: &TokenConfig{
				Headers:       []string{"Authorization"},
				RequireBearer: true,
			},
			wantErr: true,
		},
		{
			name:    "require bearer accepts bearer value",
			headers: map[string]string{"Authorization": "Bearer abc123"},
			config: &TokenConfig{
				Headers:       []string{"Authorization"},
				RequireBearer: true,
			},
			wantToken: "abc123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for name, value := range tt.headers {
				req.Header.Set(name, value)
			}

			token, err := ExtractTokenFromRequest(req, tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}
