// Package api exposes the CodeOrbit REST endpoints as typed calls.
//
// The package holds no business rules: validation, pricing, authorization and
// certificate eligibility are decided by the backend. Failed calls return the
// *requester.APIError produced by the requester; ErrorMessage extracts the
// backend's human readable message from it.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/codeorbit/codeorbit-client/internal/requester"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"go.uber.org/fx"
)

// Caller is the subset of *requester.HTTPRequester the service needs.
type Caller interface {
	Do(ctx context.Context, method, path string, body interface{}, opts ...requester.Option) (*requester.Response, error)
	DoJSON(ctx context.Context, method, path string, body, dest interface{}, opts ...requester.Option) error
}

var _ Caller = (*requester.HTTPRequester)(nil)

// Service groups every CodeOrbit endpoint.
type Service struct {
	http    Caller
	session session.Store
}

type ServiceParams struct {
	fx.In

	Caller  Caller
	Session session.Store
}

// NewService creates a new Service
func NewService(params ServiceParams) *Service {
	return &Service{
		http:    params.Caller,
		session: params.Session,
	}
}

// Module provides the api service
var Module = fx.Module("api",
	fx.Provide(
		fx.Annotate(
			func(r *requester.HTTPRequester) *requester.HTTPRequester { return r },
			fx.As(new(Caller)),
		),
		NewService,
	),
)

// pathf builds a path with escaped segments.
func pathf(format string, segments ...string) string {
	escaped := make([]interface{}, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return fmt.Sprintf(format, escaped...)
}

func withQuery(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s id required", kind)
	}
	return nil
}
