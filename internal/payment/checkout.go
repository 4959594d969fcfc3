package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
)

// PromptFunc asks the user for a single line of input.
type PromptFunc func(label string) (string, error)

// TerminalCheckout prints the order and asks the user to paste back the
// gateway's payment id and signature once they have paid in the browser.
// Leaving the payment id empty dismisses the checkout.
type TerminalCheckout struct {
	Prompt PromptFunc
}

func NewTerminalCheckout() *TerminalCheckout {
	return &TerminalCheckout{Prompt: ptermPrompt}
}

func ptermPrompt(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(label)
}

func (c *TerminalCheckout) Open(ctx context.Context, order Order) (CheckoutResult, error) {
	pterm.DefaultSection.Println("Razorpay checkout")
	pterm.Info.Printfln("Order %s: %s %.2f (key %s)", order.ID, order.Currency, float64(order.Amount)/100, order.KeyID)
	pterm.Info.Println("Complete the payment in your browser, then paste the gateway response below.")

	paymentID, err := c.ask(ctx, "Payment id (empty to cancel)")
	if err != nil {
		return CheckoutResult{}, err
	}
	if paymentID == "" {
		return CheckoutResult{}, ErrCheckoutDismissed
	}
	signature, err := c.ask(ctx, "Signature")
	if err != nil {
		return CheckoutResult{}, err
	}
	if signature == "" {
		return CheckoutResult{}, fmt.Errorf("signature required for payment %s", paymentID)
	}

	return CheckoutResult{OrderID: order.ID, PaymentID: paymentID, Signature: signature}, nil
}

func (c *TerminalCheckout) ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := c.Prompt(label)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(answer), nil
}
