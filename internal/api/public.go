package api

import (
	"context"
	"net/http"

	"github.com/codeorbit/codeorbit-client/internal/requester"
)

// ListInternships returns the published internships.
func (s *Service) ListInternships(ctx context.Context) ([]Internship, error) {
	var out []Internship
	if err := s.http.DoJSON(ctx, http.MethodGet, "/internships", nil, &out,
		requester.WithLoaderMessage("Loading internships...")); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInternship returns a single internship.
func (s *Service) GetInternship(ctx context.Context, id string) (*Internship, error) {
	if err := requireID("internship", id); err != nil {
		return nil, err
	}
	var out Internship
	if err := s.http.DoJSON(ctx, http.MethodGet, pathf("/internships/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendContact submits the public contact form.
func (s *Service) SendContact(ctx context.Context, msg ContactMessage) error {
	if err := validateInput(msg); err != nil {
		return err
	}
	_, err := s.http.Do(ctx, http.MethodPost, "/contact", msg,
		requester.WithLoaderMessage("Sending message..."))
	return err
}
