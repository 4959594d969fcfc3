package session

import (
	"github.com/codeorbit/codeorbit-client/internal/config"
	"go.uber.org/fx"
)

// Module provides the file-backed session store as Store.
var Module = fx.Module("session",
	fx.Provide(
		fx.Annotate(
			func(cfg *config.Config) *FileStore {
				return NewFileStore(cfg.Session.Path)
			},
			fx.As(new(Store)),
		),
	),
)
