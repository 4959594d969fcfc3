// Package payment drives the Razorpay checkout for an application:
// create an order on the backend, open the gateway checkout, then have the
// backend verify the gateway's signature.
package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/codeorbit/codeorbit-client/internal/requester"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// State is a step of the payment flow.
type State string

const (
	StateIdle           State = "idle"
	StateOrderCreated   State = "order_created"
	StateCheckoutOpened State = "checkout_opened"
	StateVerifying      State = "verifying"
	StatePaid           State = "paid"
	StateCancelled      State = "cancelled"
	StateFailed         State = "failed"
)

var (
	// ErrInvalidTransition is returned when a step is attempted out of order.
	ErrInvalidTransition = errors.New("invalid payment transition")
	// ErrCheckoutDismissed is returned by a Checkout when the user closes it.
	ErrCheckoutDismissed = errors.New("checkout dismissed")
)

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	StateIdle:           {StateOrderCreated, StateFailed},
	StateOrderCreated:   {StateCheckoutOpened, StateFailed},
	StateCheckoutOpened: {StateVerifying, StateCancelled, StateFailed},
	StateVerifying:      {StatePaid, StateFailed},
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	_, ok := transitions[s]
	return !ok
}

func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is the gateway order created by the backend.
type Order struct {
	ID       string `json:"orderId" yaml:"order_id"`
	Amount   int    `json:"amount" yaml:"amount"` // smallest currency unit
	Currency string `json:"currency" yaml:"currency"`
	KeyID    string `json:"keyId" yaml:"key_id"`
}

// CheckoutResult is what the gateway hands back after a successful payment.
type CheckoutResult struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Checkout opens the gateway's payment UI for an order.
type Checkout interface {
	Open(ctx context.Context, order Order) (CheckoutResult, error)
}

// Receipt is the backend's confirmation of a verified payment.
type Receipt struct {
	PaymentID     string `json:"paymentId" yaml:"payment_id"`
	ApplicationID string `json:"applicationId" yaml:"application_id"`
	Status        string `json:"status" yaml:"status"`
}

// Transition is published on every state change.
type Transition struct {
	From State
	To   State
	Err  error
}

// Flow is a single payment attempt. A Flow is not reusable once terminal.
type Flow struct {
	http     api.Caller
	checkout Checkout

	mu    sync.Mutex
	state State
	order *Order

	// OnTransition, when set, is called after every state change.
	OnTransition func(Transition)
}

type FlowParams struct {
	fx.In

	Caller   api.Caller
	Checkout Checkout
}

// NewFlow returns a flow in StateIdle.
func NewFlow(params FlowParams) *Flow {
	return &Flow{
		http:     params.Caller,
		checkout: params.Checkout,
		state:    StateIdle,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Order returns the created order, or nil before StateOrderCreated.
func (f *Flow) Order() *Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

func (f *Flow) transition(to State, cause error) error {
	f.mu.Lock()
	from := f.state
	if !canTransition(from, to) {
		f.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	f.state = to
	f.mu.Unlock()

	fields := []zap.Field{zap.String("from", string(from)), zap.String("to", string(to))}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	logger.Info("payment state changed", fields...)

	if f.OnTransition != nil {
		f.OnTransition(Transition{From: from, To: to, Err: cause})
	}
	return nil
}

// fail moves to StateFailed and returns cause.
func (f *Flow) fail(cause error) error {
	if err := f.transition(StateFailed, cause); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// CreateOrder asks the backend for a gateway order for the application.
func (f *Flow) CreateOrder(ctx context.Context, applicationID, couponCode string) (*Order, error) {
	if f.State() != StateIdle {
		return nil, fmt.Errorf("%w: create order from %s", ErrInvalidTransition, f.State())
	}

	body := map[string]string{"applicationId": applicationID}
	if couponCode != "" {
		body["couponCode"] = couponCode
	}
	var order Order
	err := f.http.DoJSON(ctx, http.MethodPost, "/payments/create-order", body, &order,
		requester.WithLoaderMessage("Creating order..."))
	if err != nil {
		return nil, f.fail(fmt.Errorf("create order: %w", err))
	}
	if order.ID == "" {
		return nil, f.fail(fmt.Errorf("create order: backend returned no order id"))
	}

	f.mu.Lock()
	f.order = &order
	f.mu.Unlock()
	if err := f.transition(StateOrderCreated, nil); err != nil {
		return nil, err
	}
	return &order, nil
}

// OpenCheckout hands the order to the gateway and waits for the user.
func (f *Flow) OpenCheckout(ctx context.Context) (CheckoutResult, error) {
	order := f.Order()
	if order == nil {
		return CheckoutResult{}, fmt.Errorf("%w: open checkout from %s", ErrInvalidTransition, f.State())
	}
	if err := f.transition(StateCheckoutOpened, nil); err != nil {
		return CheckoutResult{}, err
	}

	result, err := f.checkout.Open(ctx, *order)
	if err != nil {
		if errors.Is(err, ErrCheckoutDismissed) {
			_ = f.transition(StateCancelled, err)
			return CheckoutResult{}, err
		}
		return CheckoutResult{}, f.fail(fmt.Errorf("checkout: %w", err))
	}
	if result.OrderID == "" {
		result.OrderID = order.ID
	}
	return result, nil
}

// Verify asks the backend to check the gateway signature.
func (f *Flow) Verify(ctx context.Context, result CheckoutResult) (*Receipt, error) {
	if err := f.transition(StateVerifying, nil); err != nil {
		return nil, err
	}

	var receipt Receipt
	err := f.http.DoJSON(ctx, http.MethodPost, "/payments/verify", result, &receipt,
		requester.WithLoaderMessage("Verifying payment..."))
	if err != nil {
		return nil, f.fail(fmt.Errorf("verify payment: %w", err))
	}
	if err := f.transition(StatePaid, nil); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// Run performs the whole flow: create order, checkout, verify.
func (f *Flow) Run(ctx context.Context, applicationID, couponCode string) (*Receipt, error) {
	if _, err := f.CreateOrder(ctx, applicationID, couponCode); err != nil {
		return nil, err
	}
	result, err := f.OpenCheckout(ctx)
	if err != nil {
		return nil, err
	}
	return f.Verify(ctx, result)
}
