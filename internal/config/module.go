package config

import "go.uber.org/fx"

// Module exposes the sections of an already loaded Config.
func Module(cfg *Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
		fx.Provide(func(c *Config) *APIConfig { return &c.API }),
	)
}
