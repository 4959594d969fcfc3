package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/codeorbit/codeorbit-client/internal/requester"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"go.uber.org/zap"
)

// Login authenticates and persists the returned session.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	creds := credentials{Email: strings.TrimSpace(email), Password: password}
	if err := validateInput(creds); err != nil {
		return nil, err
	}
	var out AuthResponse
	err := s.http.DoJSON(ctx, http.MethodPost, "/auth/login", creds, &out,
		requester.WithLoaderMessage("Signing in..."))
	if err != nil {
		return nil, err
	}
	return s.persist(out)
}

// Register creates an account and persists the returned session.
func (s *Service) Register(ctx context.Context, reg Registration) (*session.Session, error) {
	if err := validateInput(reg); err != nil {
		return nil, err
	}
	var out AuthResponse
	err := s.http.DoJSON(ctx, http.MethodPost, "/auth/register", reg, &out,
		requester.WithLoaderMessage("Creating account..."))
	if err != nil {
		return nil, err
	}
	return s.persist(out)
}

// Logout forgets the persisted session.
func (s *Service) Logout() error {
	return s.session.Clear()
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context) (*session.User, error) {
	var out session.User
	if err := s.http.DoJSON(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) persist(out AuthResponse) (*session.Session, error) {
	if out.Token == "" {
		return nil, fmt.Errorf("auth response did not include a token")
	}
	sess := &session.Session{Token: out.Token, User: out.User}
	if err := s.session.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Info("session saved", zap.String("user", out.User.Email), zap.String("role", out.User.Role))
	return sess, nil
}
