package payment

import "go.uber.org/fx"

// Module provides the payment flow with the terminal checkout
var Module = fx.Module("payment",
	fx.Provide(
		fx.Annotate(
			NewTerminalCheckout,
			fx.As(new(Checkout)),
		),
		NewFlow,
	),
)
