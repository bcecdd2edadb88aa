package domain

import (
	"errors"
	"fmt"
)

// Validation errors, reported by the customization resolver.
var (
	ErrMissingRequiredSelection = errors.New("missing required selection")
	ErrUnknownChoice            = errors.New("unknown choice")
)

// Cart errors.
var (
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrDuplicateLine      = errors.New("duplicate cart line")
	ErrConcurrentMutation = errors.New("concurrent cart mutation")
)

// Lifecycle errors.
var (
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrUnknownStatus     = errors.New("unknown order status")
)

// Checkout and record store errors.
var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMissingDeliveryAddress = errors.New("delivery address is empty")
	ErrMissingPaymentMethod   = errors.New("payment method is empty")
	ErrTermsNotAccepted       = errors.New("terms and conditions not accepted")
	ErrOrderNotFound          = errors.New("order not found")
	ErrStaleOrder             = errors.New("order status changed concurrently")
)

var (
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrInvalidMenuItem  = errors.New("invalid menu item")
)

// ValidationError carries enough context for the caller to point the user at the
// offending option group.
type ValidationError struct {
	Err    error
	ItemID string
	Group  string
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("item %s, group %q, value %q: %v", e.ItemID, e.Group, e.Value, e.Err)
	}

	return fmt.Sprintf("item %s, group %q: %v", e.ItemID, e.Group, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
