package tests

import (
	"net/http"
	"testing"

	"github.com/codeorbit/codeorbit-client/internal/requester"
	"github.com/codeorbit/codeorbit-client/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuthManager_ApplyAuth(t *testing.T) {
	tests := []struct {
		name      string
		reader    session.Reader
		checkAuth func(t *testing.T, req *http.Request)
	}{
		{
			name:   "Valid Session",
			reader: session.NewMemoryStore([]byte(`{"token":"abc123","user":{"id":"7"}}`)),
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer abc123", req.Header.Get("Authorization"))
			},
		},
		{
			name:   "No Session",
			reader: session.NewMemoryStore(nil),
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:   "Malformed Session",
			reader: session.NewMemoryStore([]byte("{token: abc123")),
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:   "Session Without Token",
			reader: session.NewMemoryStore([]byte(`{"user":{"id":"7"}}`)),
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:   "Nil Reader",
			reader: nil,
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := requester.NewSessionAuthManager(tt.reader)

			req, err := http.NewRequest(http.MethodGet, "http://api.example.com/api/internships", nil)
			require.NoError(t, err)

			require.NoError(t, manager.ApplyAuth(req))
			tt.checkAuth(t, req)
		})
	}
}
