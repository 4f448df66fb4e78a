package cart

import (
	"context"

	"go-galon-gas/internal/apperr"
	"go-galon-gas/internal/model"
)

// State is the checkout UI position. The flow only ever moves along
// browsing → cart-open → payment-form → confirm-dialog → submitting, then
// lands on receipt, or falls back to payment-form with the cart intact.
type State int

const (
	StateBrowsing State = iota
	StateCartOpen
	StatePaymentForm
	StateConfirmDialog
	StateSubmitting
	StateReceipt
)

func (s State) String() string {
	switch s {
	case StateBrowsing:
		return "browsing"
	case StateCartOpen:
		return "cart-open"
	case StatePaymentForm:
		return "payment-form"
	case StateConfirmDialog:
		return "confirm-dialog"
	case StateSubmitting:
		return "submitting"
	case StateReceipt:
		return "receipt"
	}
	return "unknown"
}

// CustomerInfo is the delivery contact collected on the payment form.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

func (ci CustomerInfo) validate() error {
	if ci.Name == "" || ci.Phone == "" || ci.Address == "" {
		return apperr.Validation("name, phone, and address are required")
	}
	return nil
}

// PaymentMethodLabel maps the form's method id to the label written into
// the order record. Anything but "bank" is treated as cash on delivery.
func PaymentMethodLabel(methodID string) string {
	if methodID == "bank" {
		return model.PaymentTransferBank
	}
	return model.PaymentCashOnDelivery
}

// OrderPlacer submits the finished payload; in production this is the API
// client posting to the order endpoint.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order *model.Order) (*model.Order, error)
}

// Flow drives a single checkout attempt over one cart.
type Flow struct {
	cart    *Cart
	placer  OrderPlacer
	state   State
	receipt *model.Order
}

func NewFlow(c *Cart, placer OrderPlacer) *Flow {
	return &Flow{cart: c, placer: placer, state: StateBrowsing}
}

func (f *Flow) State() State          { return f.state }
func (f *Flow) Cart() *Cart           { return f.cart }
func (f *Flow) Receipt() *model.Order { return f.receipt }

// OpenCart shows the cart drawer. Allowed from browsing or the payment
// form (the customer stepping back).
func (f *Flow) OpenCart() error {
	switch f.state {
	case StateBrowsing, StatePaymentForm:
		f.state = StateCartOpen
		return nil
	}
	return f.badTransition("open cart")
}

// BeginCheckout moves from the cart to the payment form. An empty cart has
// nothing to check out.
func (f *Flow) BeginCheckout() error {
	if f.state != StateCartOpen {
		return f.badTransition("begin checkout")
	}
	if f.cart.IsEmpty() {
		return apperr.Validation("cart is empty")
	}
	f.state = StatePaymentForm
	return nil
}

// Confirm raises the confirmation dialog. The explicit acknowledgement step
// is the guard against accidental purchases; nothing is sent yet.
func (f *Flow) Confirm() error {
	if f.state != StatePaymentForm {
		return f.badTransition("confirm")
	}
	f.state = StateConfirmDialog
	return nil
}

// Back dismisses the confirmation dialog without submitting.
func (f *Flow) Back() error {
	if f.state != StateConfirmDialog {
		return f.badTransition("back")
	}
	f.state = StatePaymentForm
	return nil
}

// Submit fires the order after the customer acknowledged the confirmation
// dialog. On success the cart is cleared and the flow lands on the receipt;
// on any failure the cart is untouched and the flow returns to the payment
// form so the customer can retry.
func (f *Flow) Submit(ctx context.Context, info CustomerInfo, methodID string) (*model.Order, error) {
	if f.state != StateConfirmDialog {
		return nil, f.badTransition("submit")
	}
	if err := info.validate(); err != nil {
		f.state = StatePaymentForm
		return nil, err
	}

	f.state = StateSubmitting

	total := f.cart.Total()
	payload := &model.Order{
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		Items:           f.cart.Items(),
		Subtotal:        total,
		Total:           total,
		PaymentMethod:   PaymentMethodLabel(methodID),
		Notes:           info.Notes,
	}

	created, err := f.placer.PlaceOrder(ctx, payload)
	if err != nil {
		f.state = StatePaymentForm
		return nil, err
	}

	f.cart.Clear()
	f.receipt = created
	f.state = StateReceipt
	return created, nil
}

// Abandon returns to browsing from any state, keeping the cart. A response
// from an in-flight submit that lands after abandoning is simply dropped by
// the caller; the flow holds no reference to it.
func (f *Flow) Abandon() {
	f.state = StateBrowsing
}

func (f *Flow) badTransition(op string) error {
	return apperr.Validation("cannot %s from state %s", op, f.state)
}
