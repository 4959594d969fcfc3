package requester

import (
	"github.com/codeorbit/codeorbit-client/internal/session"
	"go.uber.org/fx"
)

// Module provides the requester module dependencies
var Module = fx.Options(
	fx.Provide(
		NewHTTPRequester,
		fx.Annotate(
			func(store session.Store) *SessionAuthManager {
				return NewSessionAuthManager(store)
			},
			fx.As(new(AuthManager)),
		),
	),
)
