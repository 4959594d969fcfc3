package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/requester"
)

func pageValues(values url.Values, page, limit int) url.Values {
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	return values
}

// ListApplications returns a page of applications for review.
func (s *Service) ListApplications(ctx context.Context, filter ApplicationFilter) (*Page[Application], error) {
	values := url.Values{}
	if filter.Status != "" {
		values.Set("status", string(filter.Status))
	}
	if filter.Search != "" {
		values.Set("search", filter.Search)
	}
	pageValues(values, filter.Page, filter.Limit)

	var out Page[Application]
	if err := s.http.DoJSON(ctx, http.MethodGet, withQuery("/admin/applications", values), nil, &out,
		requester.WithLoaderMessage("Loading applications...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateApplicationStatus approves, rejects or completes an application.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id string, status ApplicationStatus) (*Application, error) {
	if err := requireID("application", id); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("unknown application status %q", status)
	}
	var out Application
	if err := s.http.DoJSON(ctx, http.MethodPatch, pathf("/admin/applications/%s/status", id),
		map[string]string{"status": string(status)}, &out,
		requester.WithLoaderMessage("Updating application...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCoupons returns every coupon.
func (s *Service) ListCoupons(ctx context.Context) ([]Coupon, error) {
	var out []Coupon
	if err := s.http.DoJSON(ctx, http.MethodGet, "/admin/coupons", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCoupon creates a coupon.
func (s *Service) CreateCoupon(ctx context.Context, c Coupon) (*Coupon, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	if err := validateInput(c); err != nil {
		return nil, err
	}
	var out Coupon
	if err := s.http.DoJSON(ctx, http.MethodPost, "/admin/coupons", c, &out,
		requester.WithLoaderMessage("Creating coupon...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCoupon removes a coupon.
func (s *Service) DeleteCoupon(ctx context.Context, id string) error {
	if err := requireID("coupon", id); err != nil {
		return err
	}
	_, err := s.http.Do(ctx, http.MethodDelete, pathf("/admin/coupons/%s", id), nil)
	return err
}

// ListUsers returns a page of user accounts.
func (s *Service) ListUsers(ctx context.Context, page, limit int) (*Page[User], error) {
	var out Page[User]
	path := withQuery("/admin/users", pageValues(url.Values{}, page, limit))
	if err := s.http.DoJSON(ctx, http.MethodGet, path, nil, &out,
		requester.WithLoaderMessage("Loading users...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUserRole changes a user's role.
func (s *Service) UpdateUserRole(ctx context.Context, id, role string) error {
	if err := requireID("user", id); err != nil {
		return err
	}
	_, err := s.http.Do(ctx, http.MethodPut, pathf("/admin/users/%s/role", id), map[string]string{"role": role})
	return err
}

// ListMessages returns the contact inbox.
func (s *Service) ListMessages(ctx context.Context) ([]Message, error) {
	var out []Message
	if err := s.http.DoJSON(ctx, http.MethodGet, "/admin/messages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkMessageRead flags a message as read. It runs in the background of the
// inbox view and does not drive the busy indicator.
func (s *Service) MarkMessageRead(ctx context.Context, id string) error {
	if err := requireID("message", id); err != nil {
		return err
	}
	_, err := s.http.Do(ctx, http.MethodPatch, pathf("/admin/messages/%s/read", id), nil, requester.WithoutLoader())
	return err
}

// ListAuditLogs returns a page of audit entries.
func (s *Service) ListAuditLogs(ctx context.Context, filter AuditFilter) (*Page[AuditLog], error) {
	values := url.Values{}
	if filter.Actor != "" {
		values.Set("actor", filter.Actor)
	}
	if filter.Action != "" {
		values.Set("action", filter.Action)
	}
	if !filter.Since.IsZero() {
		values.Set("since", filter.Since.UTC().Format(time.RFC3339))
	}
	pageValues(values, filter.Page, filter.Limit)

	var out Page[AuditLog]
	if err := s.http.DoJSON(ctx, http.MethodGet, withQuery("/admin/audit-logs", values), nil, &out,
		requester.WithLoaderMessage("Loading audit logs...")); err != nil {
		return nil, err
	}
	return &out, nil
}
