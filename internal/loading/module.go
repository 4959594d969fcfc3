package loading

import (
	"github.com/codeorbit/codeorbit-client/internal/config"
	"go.uber.org/fx"
)

// Module provides the shared Coordinator and subscribes the terminal
// spinner unless output is quiet.
var Module = fx.Module("loading",
	fx.Provide(NewCoordinator),
	fx.Invoke(func(c *Coordinator, cfg *config.Config) {
		c.Subscribe(LogObserver{})
		if !cfg.Output.Quiet {
			c.Subscribe(NewSpinnerObserver())
		}
	}),
)
