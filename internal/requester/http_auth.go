package requester

import (
	"errors"
	"net/http"

	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"go.uber.org/zap"
)

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// SessionAuthManager attaches the bearer token of the persisted session.
type SessionAuthManager struct {
	session session.Reader
}

// NewSessionAuthManager creates a new SessionAuthManager
func NewSessionAuthManager(reader session.Reader) *SessionAuthManager {
	return &SessionAuthManager{session: reader}
}

// ApplyAuth sets "Authorization: Bearer <token>" when a session token exists.
// A missing, unreadable or corrupt session leaves the request unauthenticated
// and never fails it.
func (a *SessionAuthManager) ApplyAuth(req *http.Request) error {
	if a.session == nil {
		return nil
	}

	token, err := a.session.Token()
	switch {
	case err == nil:
		req.Header.Set("Authorization", "Bearer "+token)
	case errors.Is(err, session.ErrNoSession):
		logger.Debug("no session, sending request unauthenticated", zap.String("url", req.URL.String()))
	case errors.Is(err, session.ErrCorruptSession):
		logger.Warn("persisted session is malformed, sending request unauthenticated",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
	default:
		logger.Warn("failed to read session, sending request unauthenticated",
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
	}
	return nil
}
