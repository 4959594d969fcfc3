package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/codeorbit/codeorbit-client/internal/requester"
)

// SubmitApplication files an application for an internship.
func (s *Service) SubmitApplication(ctx context.Context, app Application) (*Application, error) {
	if err := validateInput(app); err != nil {
		return nil, err
	}
	var out Application
	if err := s.http.DoJSON(ctx, http.MethodPost, "/applications", app, &out,
		requester.WithLoaderMessage("Submitting application...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the authenticated student's applications.
func (s *Service) MyApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := s.http.DoJSON(ctx, http.MethodGet, "/applications/me", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyCoupon asks the backend to price an internship with a coupon code.
// An invalid code comes back as an *requester.APIError from the backend.
func (s *Service) ApplyCoupon(ctx context.Context, code, internshipID string) (*CouponQuote, error) {
	body := couponCheck{
		Code:         strings.ToUpper(strings.TrimSpace(code)),
		InternshipID: internshipID,
	}
	if err := validateInput(body); err != nil {
		return nil, err
	}
	var out CouponQuote
	if err := s.http.DoJSON(ctx, http.MethodPost, "/coupons/validate", body, &out,
		requester.WithLoaderMessage("Checking coupon...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard returns the student dashboard.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := s.http.DoJSON(ctx, http.MethodGet, "/student/dashboard", nil, &out,
		requester.WithLoaderMessage("Loading dashboard...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitTask submits a task of an application.
func (s *Service) SubmitTask(ctx context.Context, applicationID string, sub TaskSubmission) error {
	if err := requireID("application", applicationID); err != nil {
		return err
	}
	if err := validateInput(sub); err != nil {
		return err
	}
	_, err := s.http.Do(ctx, http.MethodPost, pathf("/applications/%s/tasks", applicationID), sub,
		requester.WithLoaderMessage("Submitting task..."))
	return err
}

// DownloadDocument fetches a rendered document (PDF) for an application.
// Rendering happens server-side and may take most of the request timeout.
func (s *Service) DownloadDocument(ctx context.Context, applicationID string, kind DocumentKind) ([]byte, string, error) {
	if err := requireID("application", applicationID); err != nil {
		return nil, "", err
	}
	resp, err := s.http.Do(ctx, http.MethodGet, pathf("/applications/%s/documents/%s", applicationID, string(kind)), nil,
		requester.WithLoaderMessage("Generating document..."),
		requester.WithHeader("Accept", "application/pdf"))
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Headers.Get("Content-Type"), nil
}
